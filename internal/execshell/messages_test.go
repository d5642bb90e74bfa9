package execshell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommandMessageFormatterDescribesGitQueries(testInstance *testing.T) {
	formatter := CommandMessageFormatter{}
	testCases := []struct {
		name            string
		arguments       []string
		result          ExecutionResult
		failure         error
		stage           messageStage
		expectedMessage string
	}{
		{
			name:            "status_start",
			arguments:       []string{"status", "--porcelain"},
			stage:           messageStageStart,
			expectedMessage: "Reviewing working tree status in /workspace/repo",
		},
		{
			name:            "status_success_counts_entries",
			arguments:       []string{"status", "--porcelain"},
			result:          ExecutionResult{StandardOutput: "?? one\n M two\n"},
			stage:           messageStageSuccess,
			expectedMessage: "Collected working tree status for /workspace/repo (2 entries)",
		},
		{
			name:            "stash_success_empty",
			arguments:       []string{"stash", "list"},
			stage:           messageStageSuccess,
			expectedMessage: "Found 0 stash entries in /workspace/repo",
		},
		{
			name:            "remote_failure_includes_standard_error",
			arguments:       []string{"remote"},
			result:          ExecutionResult{ExitCode: 128, StandardError: "fatal: bad config\n"},
			stage:           messageStageFailure,
			expectedMessage: "Failed to list remotes in /workspace/repo (exit code 128: fatal: bad config)",
		},
		{
			name:            "log_execution_failure",
			arguments:       []string{"log", "--branches", "--not", "--remotes"},
			failure:         errors.New("signal: killed"),
			stage:           messageStageExecutionFailure,
			expectedMessage: "Unable to collect commits missing from remotes in /workspace/repo: signal: killed",
		},
		{
			name:            "unknown_subcommand_falls_back_to_generic",
			arguments:       []string{"fetch", "--prune"},
			stage:           messageStageStart,
			expectedMessage: "Running git fetch --prune (in /workspace/repo)",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			command := ShellCommand{
				Name: CommandGit,
				Details: CommandDetails{
					Arguments:        testCase.arguments,
					WorkingDirectory: "/workspace/repo",
				},
			}
			message := formatter.buildMessage(command, testCase.result, testCase.failure, testCase.stage)
			require.Equal(testInstance, testCase.expectedMessage, message)
		})
	}
}

func TestBuildFailureMessageWithoutWorkingDirectory(testInstance *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"status"}}}

	message := formatter.BuildFailureMessage(command, ExecutionResult{ExitCode: 1})

	require.Equal(testInstance, "Failed to review working tree status in current directory (exit code 1)", message)
}
