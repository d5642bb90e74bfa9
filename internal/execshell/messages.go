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
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	outputLineSeparatorConstant             = "\n"
)

const (
	gitStatusSubcommandNameConstant = "status"
	gitStashSubcommandNameConstant  = "stash"
	gitRemoteSubcommandNameConstant = "remote"
	gitLogSubcommandNameConstant    = "log"
)

const (
	gitStatusStartTemplateConstant            = "Reviewing working tree status in %s"
	gitStatusSuccessTemplateConstant          = "Collected working tree status for %s (%d entries)"
	gitStatusFailureTemplateConstant          = "Failed to review working tree status in %s (exit code %d%s)"
	gitStatusExecutionFailureTemplateConstant = "Unable to review working tree status in %s: %s"
	gitStashStartTemplateConstant             = "Listing stash entries in %s"
	gitStashSuccessTemplateConstant           = "Found %d stash entries in %s"
	gitStashFailureTemplateConstant           = "Failed to list stash entries in %s (exit code %d%s)"
	gitStashExecutionFailureTemplateConstant  = "Unable to list stash entries in %s: %s"
	gitRemoteStartTemplateConstant            = "Listing remotes in %s"
	gitRemoteSuccessTemplateConstant          = "Found %d remotes in %s"
	gitRemoteFailureTemplateConstant          = "Failed to list remotes in %s (exit code %d%s)"
	gitRemoteExecutionFailureTemplateConstant = "Unable to list remotes in %s: %s"
	gitLogStartTemplateConstant               = "Collecting commits missing from remotes in %s"
	gitLogSuccessTemplateConstant             = "Found %d commits missing from remotes in %s"
	gitLogFailureTemplateConstant             = "Failed to collect commits missing from remotes in %s (exit code %d%s)"
	gitLogExecutionFailureTemplateConstant    = "Unable to collect commits missing from remotes in %s: %s"
)

// gitMessageTemplates groups the per-stage templates for a git subcommand.
type gitMessageTemplates struct {
	start            string
	success          string
	failure          string
	executionFailure string
}

var gitSubcommandTemplates = map[string]gitMessageTemplates{
	gitStatusSubcommandNameConstant: {
		start:            gitStatusStartTemplateConstant,
		success:          gitStatusSuccessTemplateConstant,
		failure:          gitStatusFailureTemplateConstant,
		executionFailure: gitStatusExecutionFailureTemplateConstant,
	},
	gitStashSubcommandNameConstant: {
		start:            gitStashStartTemplateConstant,
		success:          gitStashSuccessTemplateConstant,
		failure:          gitStashFailureTemplateConstant,
		executionFailure: gitStashExecutionFailureTemplateConstant,
	},
	gitRemoteSubcommandNameConstant: {
		start:            gitRemoteStartTemplateConstant,
		success:          gitRemoteSuccessTemplateConstant,
		failure:          gitRemoteFailureTemplateConstant,
		executionFailure: gitRemoteExecutionFailureTemplateConstant,
	},
	gitLogSubcommandNameConstant: {
		start:            gitLogStartTemplateConstant,
		success:          gitLogSuccessTemplateConstant,
		failure:          gitLogFailureTemplateConstant,
		executionFailure: gitLogExecutionFailureTemplateConstant,
	},
}

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageSuccess)
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
	if command.Name != CommandGit || len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	subcommand := strings.TrimSpace(command.Details.Arguments[0])
	templates, known := gitSubcommandTemplates[subcommand]
	if !known {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	workingDirectory := formatter.describeWorkingDirectory(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(templates.start, workingDirectory)
	case messageStageSuccess:
		return formatter.describeGitSuccess(subcommand, templates.success, workingDirectory, countOutputLines(result.StandardOutput))
	case messageStageFailure:
		return fmt.Sprintf(templates.failure, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(templates.executionFailure, workingDirectory, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

// describeGitSuccess orders template arguments; status names the directory first.
func (formatter CommandMessageFormatter) describeGitSuccess(subcommand string, template string, workingDirectory string, lineCount int) string {
	if subcommand == gitStatusSubcommandNameConstant {
		return fmt.Sprintf(template, workingDirectory, lineCount)
	}
	return fmt.Sprintf(template, lineCount, workingDirectory)
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
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, formatter.formatWorkingDirectorySuffix(command))
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func countOutputLines(output string) int {
	trimmedOutput := strings.TrimSpace(output)
	if len(trimmedOutput) == 0 {
		return 0
	}
	return len(strings.Split(trimmedOutput, outputLineSeparatorConstant))
}
