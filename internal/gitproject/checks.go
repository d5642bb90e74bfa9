package gitproject

import (
	"context"
	"fmt"
)

const (
	remotesPresentMessageConstant         = "There is at least one remote."
	remotesMissingMessageConstant         = "There are no remotes."
	nonEmptyFilePresentTemplateConstant   = "%s exists and isn't empty."
	nonEmptyFileMissingTemplateConstant   = "Either there isn't a file with a name starting with %s, or it is empty."
	stashEmptyMessageConstant             = "The git stash is empty."
	stashPresentMessageConstant           = "Run `git stash list` to see the stashes."
	uncommittedAbsentMessageConstant      = "There are no uncommitted changes."
	uncommittedPresentMessageConstant     = "Run `git status` to see the uncommitted changes."
	unpushedAbsentMessageConstant         = "There are no unpushed commits."
	unpushedPresentMessageConstant        = "There are unpushed commits."
	unpushedWithoutRemotesMessageConstant = "There are no remotes, so all the commits are unpushed."
)

// CheckResult is the verdict of one check with its explanation.
type CheckResult struct {
	Success bool   `yaml:"success"`
	Message string `yaml:"message"`
}

// CheckRemotes passes when at least one remote is configured.
func (inspector *Inspector) CheckRemotes(executionContext context.Context) (CheckResult, error) {
	remotes, remotesError := inspector.Remotes(executionContext)
	if remotesError != nil {
		return CheckResult{}, remotesError
	}
	if len(remotes) == 0 {
		return CheckResult{Success: false, Message: remotesMissingMessageConstant}, nil
	}
	return CheckResult{Success: true, Message: remotesPresentMessageConstant}, nil
}

// CheckNonEmptyFile passes when a non-empty entry whose name starts with prefix exists.
// The success message names the matched file.
func (inspector *Inspector) CheckNonEmptyFile(prefix string) (CheckResult, error) {
	fileName, found, lookupError := inspector.FirstNonEmptyFileWithPrefix(prefix)
	if lookupError != nil {
		return CheckResult{}, lookupError
	}
	if !found {
		return CheckResult{Success: false, Message: fmt.Sprintf(nonEmptyFileMissingTemplateConstant, prefix)}, nil
	}
	return CheckResult{Success: true, Message: fmt.Sprintf(nonEmptyFilePresentTemplateConstant, fileName)}, nil
}

// CheckStash passes when the stash is empty.
func (inspector *Inspector) CheckStash(executionContext context.Context) (CheckResult, error) {
	stashPresent, stashError := inspector.StashPresent(executionContext)
	if stashError != nil {
		return CheckResult{}, stashError
	}
	if stashPresent {
		return CheckResult{Success: false, Message: stashPresentMessageConstant}, nil
	}
	return CheckResult{Success: true, Message: stashEmptyMessageConstant}, nil
}

// CheckUncommittedChanges passes when the working tree has no changed or untracked entries.
func (inspector *Inspector) CheckUncommittedChanges(executionContext context.Context) (CheckResult, error) {
	entries, statusError := inspector.UncommittedEntries(executionContext)
	if statusError != nil {
		return CheckResult{}, statusError
	}
	if len(entries) > 0 {
		return CheckResult{Success: false, Message: uncommittedPresentMessageConstant}, nil
	}
	return CheckResult{Success: true, Message: uncommittedAbsentMessageConstant}, nil
}

// CheckUnpushedCommits passes only when remotes exist and no local branch carries commits
// missing from them. Without remotes every commit counts as unpushed, so the log is not consulted.
func (inspector *Inspector) CheckUnpushedCommits(executionContext context.Context) (CheckResult, error) {
	remotes, remotesError := inspector.Remotes(executionContext)
	if remotesError != nil {
		return CheckResult{}, remotesError
	}
	if len(remotes) == 0 {
		return CheckResult{Success: false, Message: unpushedWithoutRemotesMessageConstant}, nil
	}

	unpushedCommits, logError := inspector.UnpushedCommitSummaries(executionContext)
	if logError != nil {
		return CheckResult{}, logError
	}
	return evaluateUnpushedVerdict(remotes, unpushedCommits), nil
}

func evaluateUnpushedVerdict(remotes []string, unpushedCommits []string) CheckResult {
	switch {
	case len(remotes) > 0 && len(unpushedCommits) == 0:
		return CheckResult{Success: true, Message: unpushedAbsentMessageConstant}
	case len(remotes) > 0:
		return CheckResult{Success: false, Message: unpushedPresentMessageConstant}
	default:
		return CheckResult{Success: false, Message: unpushedWithoutRemotesMessageConstant}
	}
}
