package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	fallbackUnknownValueLabelConstant       = "unknown"
)

const (
	getentGroupDatabaseNameConstant = "group"
	gpasswdAddFlagConstant          = "-a"
	gpasswdDeleteFlagConstant       = "-d"
)

const (
	groupLookupStartTemplateConstant               = "Looking up group %s in the local account database"
	groupLookupSuccessTemplateConstant             = "Resolved group %s from the local account database"
	groupLookupFailureTemplateConstant             = "Failed to look up group %s (exit code %d%s)"
	groupLookupExecutionFailureTemplateConstant    = "Unable to look up group %s: %s"
	memberAdditionStartTemplateConstant            = "Adding %s to group %s"
	memberAdditionSuccessTemplateConstant          = "Added %s to group %s"
	memberAdditionFailureTemplateConstant          = "Failed to add %s to group %s (exit code %d%s)"
	memberAdditionExecutionFailureTemplateConstant = "Unable to add %s to group %s: %s"
	memberRemovalStartTemplateConstant             = "Removing %s from group %s"
	memberRemovalSuccessTemplateConstant           = "Removed %s from group %s"
	memberRemovalFailureTemplateConstant           = "Failed to remove %s from group %s (exit code %d%s)"
	memberRemovalExecutionFailureTemplateConstant  = "Unable to remove %s from group %s: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	switch command.Name {
	case CommandGetent:
		return formatter.describeGetentMessage(command, result, failure, stage)
	case CommandGpasswd:
		return formatter.describeGpasswdMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGetentMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) < 2 || strings.TrimSpace(arguments[0]) != getentGroupDatabaseNameConstant {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	groupName := formatter.ensureValue(arguments[1])
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(groupLookupStartTemplateConstant, groupName)
	case messageStageSuccess:
		return fmt.Sprintf(groupLookupSuccessTemplateConstant, groupName)
	case messageStageFailure:
		return fmt.Sprintf(groupLookupFailureTemplateConstant, groupName, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(groupLookupExecutionFailureTemplateConstant, groupName, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGpasswdMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) < 3 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	operationFlag := strings.TrimSpace(arguments[0])
	memberName := formatter.ensureValue(arguments[1])
	groupName := formatter.ensureValue(arguments[2])

	switch operationFlag {
	case gpasswdAddFlagConstant:
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(memberAdditionStartTemplateConstant, memberName, groupName)
		case messageStageSuccess:
			return fmt.Sprintf(memberAdditionSuccessTemplateConstant, memberName, groupName)
		case messageStageFailure:
			return fmt.Sprintf(memberAdditionFailureTemplateConstant, memberName, groupName, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(memberAdditionExecutionFailureTemplateConstant, memberName, groupName, formatter.describeFailure(failure))
		}
	case gpasswdDeleteFlagConstant:
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(memberRemovalStartTemplateConstant, memberName, groupName)
		case messageStageSuccess:
			return fmt.Sprintf(memberRemovalSuccessTemplateConstant, memberName, groupName)
		case messageStageFailure:
			return fmt.Sprintf(memberRemovalFailureTemplateConstant, memberName, groupName, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(memberRemovalExecutionFailureTemplateConstant, memberName, groupName, formatter.describeFailure(failure))
		}
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = fmt.Sprintf("%s %s", commandLabel, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	return commandLabel
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}
