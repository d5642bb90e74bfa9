package gitproject

import (
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/check-project/internal/execshell"
)

const (
	notDirectoryMessageConstant            = "path must be an existing directory"
	notRepositoryMessageConstant           = "not a git repository"
	notRepositoryErrorTemplateConstant     = "path %s is not a git repository"
	missingDependencyTemplateConstant      = "inspector dependency not configured: %s"
	notRepositoryDiagnosticPatternConstant = "not a git repository"
)

var (
	// ErrNotDirectory indicates the requested path does not exist or is not a directory.
	ErrNotDirectory = errors.New(notDirectoryMessageConstant)
	// ErrNotRepository indicates git reports the path is outside any working tree.
	ErrNotRepository = errors.New(notRepositoryMessageConstant)
)

// NotRepositoryError reports the resolved path git refused to treat as a working tree.
type NotRepositoryError struct {
	Path string
}

// Error names the rejected path.
func (notRepositoryError *NotRepositoryError) Error() string {
	return fmt.Sprintf(notRepositoryErrorTemplateConstant, notRepositoryError.Path)
}

// Is makes errors.Is(err, ErrNotRepository) hold.
func (notRepositoryError *NotRepositoryError) Is(target error) bool {
	return target == ErrNotRepository
}

type missingDependencyError string

func (dependencyName missingDependencyError) Error() string {
	return fmt.Sprintf(missingDependencyTemplateConstant, string(dependencyName))
}

// classifyProbeFailure turns the status probe failure into NotRepositoryError when git
// reports the well-known condition; every other failure is returned unchanged.
func classifyProbeFailure(probeError error, repositoryPath string) error {
	var commandFailure execshell.CommandFailedError
	if !errors.As(probeError, &commandFailure) {
		return probeError
	}
	if !isNotRepositoryDiagnostic(commandFailure.Result.StandardError) && !isNotRepositoryDiagnostic(commandFailure.Result.StandardOutput) {
		return probeError
	}
	return &NotRepositoryError{Path: repositoryPath}
}

// isNotRepositoryDiagnostic is the single place that interprets git's diagnostic text.
// Git is run with LC_ALL=C, so the English wording is stable; capitalization changed across releases.
func isNotRepositoryDiagnostic(diagnostic string) bool {
	return strings.Contains(strings.ToLower(diagnostic), notRepositoryDiagnosticPatternConstant)
}
