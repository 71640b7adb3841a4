package groupsync_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/gwsync/internal/groupsync"
	"github.com/temirov/gwsync/internal/membership"
)

func TestSyncCommandMetadata(testInstance *testing.T) {
	builder := &groupsync.CommandBuilder{}

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)
	require.Equal(testInstance, "sync", command.Use)
	require.NotNil(testInstance, command.Flags().Lookup("mappings"))
}

func TestSyncCommandReconcilesConfiguredMappings(testInstance *testing.T) {
	remoteLister := &stubRemoteLister{
		membersByGroup: map[string]membership.MemberSet{testRemoteGroupNameConstant: membership.NewMemberSet("alice", "carol")},
	}
	localManager := &stubLocalGroupManager{
		membersByGroup: map[string]membership.MemberSet{testLocalGroupNameConstant: membership.NewMemberSet("alice", "bob")},
	}
	builder := &groupsync.CommandBuilder{
		LoggerProvider: func() *zap.Logger { return zap.NewNop() },
		ConfigurationProvider: func() groupsync.Configuration {
			configuration := groupsync.DefaultConfiguration()
			configuration.GroupMap = []groupsync.GroupMapping{
				{UWGroupName: testRemoteGroupNameConstant, LocalGroupName: testLocalGroupNameConstant},
			}
			return configuration
		},
		RemoteLister: remoteLister,
		LocalGroups:  localManager,
	}

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)
	command.SetErr(outputBuffer)
	command.SetArgs([]string{})

	require.NoError(testInstance, command.Execute())
	require.Equal(
		testInstance,
		fmt.Sprintf("UWGROUP: %s LGROUP: %s ADD: 1 REM: 1\n", testRemoteGroupNameConstant, testLocalGroupNameConstant),
		outputBuffer.String(),
	)
	require.Equal(testInstance, []recordedMutation{
		{operation: addOperationNameConstant, group: testLocalGroupNameConstant, member: "carol"},
		{operation: removeOperationNameConstant, group: testLocalGroupNameConstant, member: "bob"},
	}, localManager.recordedChanges)
}

func TestSyncCommandMappingsFlagOverridesConfiguration(testInstance *testing.T) {
	remoteLister := &stubRemoteLister{
		membersByGroup: map[string]membership.MemberSet{"u_example_operators": membership.NewMemberSet("alice")},
	}
	localManager := &stubLocalGroupManager{
		membersByGroup: map[string]membership.MemberSet{"exampleops": membership.NewMemberSet("alice")},
	}
	builder := &groupsync.CommandBuilder{
		LoggerProvider: func() *zap.Logger { return zap.NewNop() },
		ConfigurationProvider: func() groupsync.Configuration {
			configuration := groupsync.DefaultConfiguration()
			configuration.GroupMap = []groupsync.GroupMapping{
				{UWGroupName: testRemoteGroupNameConstant, LocalGroupName: testLocalGroupNameConstant},
			}
			return configuration
		},
		RemoteLister: remoteLister,
		LocalGroups:  localManager,
	}

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	mappingsPath := writeMappingsFile(testInstance, "group_map:\n  - uw_group: u_example_operators\n    local_group: exampleops\n")
	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)
	command.SetErr(outputBuffer)
	command.SetArgs([]string{"--mappings", mappingsPath})

	require.NoError(testInstance, command.Execute())
	require.Equal(
		testInstance,
		"UWGROUP: u_example_operators LGROUP: exampleops ADD: 0 REM: 0\n",
		outputBuffer.String(),
	)
	require.Empty(testInstance, localManager.recordedChanges)
}

func TestSyncCommandRejectsInvalidConfiguration(testInstance *testing.T) {
	builder := &groupsync.CommandBuilder{
		LoggerProvider: func() *zap.Logger { return zap.NewNop() },
		ConfigurationProvider: func() groupsync.Configuration {
			configuration := groupsync.DefaultConfiguration()
			configuration.BaseURL = ""
			configuration.GroupMap = []groupsync.GroupMapping{
				{UWGroupName: testRemoteGroupNameConstant, LocalGroupName: testLocalGroupNameConstant},
			}
			return configuration
		},
		RemoteLister: &stubRemoteLister{},
		LocalGroups:  &stubLocalGroupManager{},
	}

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)
	command.SetErr(outputBuffer)
	command.SetArgs([]string{})

	executionError := command.Execute()
	require.Error(testInstance, executionError)
	require.Contains(testInstance, executionError.Error(), "base URL")
}
