package checklist

import (
	"context"

	"github.com/temirov/check-project/internal/gitproject"
)

const (
	readmeFilePrefixConstant  = "README"
	licenseFilePrefixConstant = "LICENSE"
)

// FindingsExitCode is the process exit code for a report with at least one failed check.
const FindingsExitCode = 3

// ProjectInspector is the subset of gitproject.Inspector the checklist consults.
type ProjectInspector interface {
	Remotes(executionContext context.Context) ([]string, error)
	CheckRemotes(executionContext context.Context) (gitproject.CheckResult, error)
	CheckNonEmptyFile(prefix string) (gitproject.CheckResult, error)
	CheckStash(executionContext context.Context) (gitproject.CheckResult, error)
	CheckUncommittedChanges(executionContext context.Context) (gitproject.CheckResult, error)
	CheckUnpushedCommits(executionContext context.Context) (gitproject.CheckResult, error)
}

type plannedCheck struct {
	category Category
	skipped  bool
	run      func() (gitproject.CheckResult, error)
}

// Evaluate runs every check the configuration does not skip and collects the verdicts.
//
// The unpushed check is also skipped when IgnoreUnpushedIfNoRemotes is set and the repository
// has no remotes right now; that lookup happens even when the remotes check itself is skipped.
// Any inspector error aborts evaluation and no report is returned.
func Evaluate(executionContext context.Context, inspector ProjectInspector, configuration Configuration) (Report, error) {
	plannedChecks := []plannedCheck{
		{
			category: CategoryRemotes,
			skipped:  configuration.SkipRemotes,
			run:      func() (gitproject.CheckResult, error) { return inspector.CheckRemotes(executionContext) },
		},
		{
			category: CategoryReadme,
			skipped:  configuration.SkipReadme,
			run:      func() (gitproject.CheckResult, error) { return inspector.CheckNonEmptyFile(readmeFilePrefixConstant) },
		},
		{
			category: CategoryLicense,
			skipped:  configuration.SkipLicense,
			run:      func() (gitproject.CheckResult, error) { return inspector.CheckNonEmptyFile(licenseFilePrefixConstant) },
		},
		{
			category: CategoryStash,
			skipped:  configuration.SkipStash,
			run:      func() (gitproject.CheckResult, error) { return inspector.CheckStash(executionContext) },
		},
		{
			category: CategoryUncommitted,
			skipped:  configuration.SkipUncommitted,
			run:      func() (gitproject.CheckResult, error) { return inspector.CheckUncommittedChanges(executionContext) },
		},
	}

	report := Report{}
	for _, check := range plannedChecks {
		if check.skipped {
			continue
		}
		result, checkError := check.run()
		if checkError != nil {
			return nil, checkError
		}
		report[check.category] = result
	}

	skipUnpushed, skipDecisionError := shouldSkipUnpushed(executionContext, inspector, configuration)
	if skipDecisionError != nil {
		return nil, skipDecisionError
	}
	if !skipUnpushed {
		result, checkError := inspector.CheckUnpushedCommits(executionContext)
		if checkError != nil {
			return nil, checkError
		}
		report[CategoryUnpushed] = result
	}

	return report, nil
}

func shouldSkipUnpushed(executionContext context.Context, inspector ProjectInspector, configuration Configuration) (bool, error) {
	if configuration.SkipUnpushed {
		return true, nil
	}
	if !configuration.IgnoreUnpushedIfNoRemotes {
		return false, nil
	}
	remotes, remotesError := inspector.Remotes(executionContext)
	if remotesError != nil {
		return false, remotesError
	}
	return len(remotes) == 0, nil
}

// ExitCode returns FindingsExitCode when any entry failed and 0 otherwise, including for an empty report.
func ExitCode(report Report) int {
	if report.Passed() {
		return 0
	}
	return FindingsExitCode
}
