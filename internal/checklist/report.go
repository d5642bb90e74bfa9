package checklist

import (
	"sort"

	"github.com/temirov/check-project/internal/gitproject"
)

// Category names a check in a Report.
type Category string

// Display names of the checks, which double as Report keys.
const (
	CategoryRemotes     Category = "has remotes"
	CategoryReadme      Category = "has a readme"
	CategoryLicense     Category = "has a license"
	CategoryStash       Category = "has no stash"
	CategoryUncommitted Category = "has no uncommitted changes"
	CategoryUnpushed    Category = "has no unpushed commits"
)

// Report maps each check that ran to its verdict. Skipped checks have no entry.
type Report map[Category]gitproject.CheckResult

// Categories returns the report keys sorted lexicographically.
func (report Report) Categories() []Category {
	categories := make([]Category, 0, len(report))
	for category := range report {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(leftIndex int, rightIndex int) bool {
		return categories[leftIndex] < categories[rightIndex]
	})
	return categories
}

// Passed reports whether every entry succeeded. An empty report passes.
func (report Report) Passed() bool {
	for _, result := range report {
		if !result.Success {
			return false
		}
	}
	return true
}

// FailureCount returns the number of failed entries.
func (report Report) FailureCount() int {
	failureCount := 0
	for _, result := range report {
		if !result.Success {
			failureCount++
		}
	}
	return failureCount
}
