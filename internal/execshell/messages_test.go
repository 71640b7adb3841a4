package execshell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildStartedMessageForGroupLookupNamesTheGroup(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name:    CommandGetent,
		Details: CommandDetails{Arguments: []string{"group", "unitadm"}},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Looking up group unitadm in the local account database", message)
}

func TestBuildFailureMessageForGroupLookupIncludesExitCodeAndStandardError(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name:    CommandGetent,
		Details: CommandDetails{Arguments: []string{"group", "missing"}},
	}
	result := ExecutionResult{ExitCode: 2, StandardError: "unknown database"}

	message := formatter.BuildFailureMessage(command, result)

	require.Equal(t, "Failed to look up group missing (exit code 2: unknown database)", message)
}

func TestBuildMessagesForMemberAddition(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name:    CommandGpasswd,
		Details: CommandDetails{Arguments: []string{"-a", "carol", "unitadm"}},
	}

	require.Equal(t, "Adding carol to group unitadm", formatter.BuildStartedMessage(command))
	require.Equal(t, "Added carol to group unitadm", formatter.BuildSuccessMessage(command))
	require.Equal(
		t,
		"Failed to add carol to group unitadm (exit code 3: gpasswd: user 'carol' does not exist)",
		formatter.BuildFailureMessage(command, ExecutionResult{ExitCode: 3, StandardError: "gpasswd: user 'carol' does not exist\n"}),
	)
}

func TestBuildMessagesForMemberRemoval(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name:    CommandGpasswd,
		Details: CommandDetails{Arguments: []string{"-d", "bob", "unitadm"}},
	}

	require.Equal(t, "Removing bob from group unitadm", formatter.BuildStartedMessage(command))
	require.Equal(t, "Removed bob from group unitadm", formatter.BuildSuccessMessage(command))
}

func TestBuildExecutionFailureMessageFallsBackToGenericLabel(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name:    CommandGetent,
		Details: CommandDetails{Arguments: []string{"--version"}},
	}

	message := formatter.BuildExecutionFailureMessage(command, errors.New("executable file not found"))

	require.Equal(t, "getent --version failed: executable file not found", message)
}

func TestBuildGenericMessageForUnrecognizedGpasswdInvocation(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name:    CommandGpasswd,
		Details: CommandDetails{Arguments: []string{"--help"}},
	}

	require.Equal(t, "Running gpasswd --help", formatter.BuildStartedMessage(command))
}
