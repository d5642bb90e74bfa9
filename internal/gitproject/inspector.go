package gitproject

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/temirov/check-project/internal/execshell"
)

const (
	projectStringTemplateConstant         = "<Project '%s'>"
	notDirectoryPathTemplateConstant      = "%w: %s"
	notDirectoryCauseTemplateConstant     = "%w: %s: %w"
	resolvePathErrorTemplateConstant      = "unable to resolve path %s: %w"
	readDirectoryErrorTemplateConstant    = "unable to list %s: %w"
	entryInfoErrorTemplateConstant        = "unable to stat %s: %w"
	gitExecutorDependencyNameConstant     = "git executor"
	fileSystemDependencyNameConstant      = "file system"
	outputLineSeparatorConstant           = "\n"
	porcelainStatusPrefixLengthConstant   = 3
	localeEnvironmentVariableNameConstant = "LC_ALL"
	localeEnvironmentValueConstant        = "C"
	optionalLocksEnvironmentNameConstant  = "GIT_OPTIONAL_LOCKS"
	optionalLocksEnvironmentValueConstant = "0"
)

var (
	statusArguments         = []string{"status", "--porcelain"}
	stashListArguments      = []string{"stash", "list"}
	remoteListArguments     = []string{"remote"}
	unpushedCommitArguments = []string{"log", "--branches", "--not", "--remotes", "--simplify-by-decoration", "--decorate", "--oneline"}
)

// Inspector answers questions about one git working tree.
// Every query runs git afresh; nothing is cached between calls.
type Inspector struct {
	path        string
	gitExecutor GitExecutor
	fileSystem  FileSystem
}

// NewInspector resolves repositoryPath and verifies that it is a git working tree.
//
// It fails with an error wrapping ErrNotDirectory when the path is missing or not a directory,
// with *NotRepositoryError when git reports the path is outside a working tree, and with the
// executor's error unchanged for any other git failure.
func NewInspector(executionContext context.Context, dependencies Dependencies, repositoryPath string) (*Inspector, error) {
	if dependencies.GitExecutor == nil {
		return nil, missingDependencyError(gitExecutorDependencyNameConstant)
	}
	if dependencies.FileSystem == nil {
		return nil, missingDependencyError(fileSystemDependencyNameConstant)
	}

	expandedPath := repositoryPath
	if dependencies.HomeExpander != nil {
		expandedPath = dependencies.HomeExpander.Expand(repositoryPath)
	}

	absolutePath, absError := dependencies.FileSystem.Abs(expandedPath)
	if absError != nil {
		return nil, fmt.Errorf(resolvePathErrorTemplateConstant, repositoryPath, absError)
	}

	pathInfo, statError := dependencies.FileSystem.Stat(absolutePath)
	if statError != nil {
		return nil, fmt.Errorf(notDirectoryCauseTemplateConstant, ErrNotDirectory, absolutePath, statError)
	}
	if !pathInfo.IsDir() {
		return nil, fmt.Errorf(notDirectoryPathTemplateConstant, ErrNotDirectory, absolutePath)
	}

	inspector := &Inspector{
		path:        absolutePath,
		gitExecutor: dependencies.GitExecutor,
		fileSystem:  dependencies.FileSystem,
	}

	if _, probeError := inspector.runGit(executionContext, statusArguments); probeError != nil {
		return nil, classifyProbeFailure(probeError, absolutePath)
	}

	return inspector, nil
}

// Path returns the absolute path of the working tree.
func (inspector *Inspector) Path() string {
	return inspector.path
}

// String renders the inspector as <Project '/abs/path'>.
func (inspector *Inspector) String() string {
	return fmt.Sprintf(projectStringTemplateConstant, inspector.path)
}

// Remotes lists configured remote names.
func (inspector *Inspector) Remotes(executionContext context.Context) ([]string, error) {
	output, executionError := inspector.runGit(executionContext, remoteListArguments)
	if executionError != nil {
		return nil, executionError
	}

	remotes := make([]string, 0)
	for _, line := range splitOutputLines(output) {
		trimmedLine := strings.TrimSpace(line)
		if len(trimmedLine) > 0 {
			remotes = append(remotes, trimmedLine)
		}
	}
	return remotes, nil
}

// StashPresent reports whether the stash has any entries.
func (inspector *Inspector) StashPresent(executionContext context.Context) (bool, error) {
	output, executionError := inspector.runGit(executionContext, stashListArguments)
	if executionError != nil {
		return false, executionError
	}
	return len(strings.TrimSpace(output)) > 0, nil
}

// UncommittedEntries lists changed and untracked paths with their two-letter status and separator removed.
func (inspector *Inspector) UncommittedEntries(executionContext context.Context) ([]string, error) {
	output, executionError := inspector.runGit(executionContext, statusArguments)
	if executionError != nil {
		return nil, executionError
	}

	entries := make([]string, 0)
	for _, line := range splitOutputLines(output) {
		if len(line) <= porcelainStatusPrefixLengthConstant {
			entries = append(entries, "")
			continue
		}
		entries = append(entries, line[porcelainStatusPrefixLengthConstant:])
	}
	return entries, nil
}

// UnpushedCommitSummaries lists one-line summaries of commits on local branches that no
// remote-tracking branch contains. The query simplifies by decoration, so it reports roughly
// the tip of each unpushed branch rather than every unpushed commit.
func (inspector *Inspector) UnpushedCommitSummaries(executionContext context.Context) ([]string, error) {
	output, executionError := inspector.runGit(executionContext, unpushedCommitArguments)
	if executionError != nil {
		return nil, executionError
	}
	return splitOutputLines(output), nil
}

// FirstNonEmptyFileWithPrefix returns the first directory entry, in name order, whose name starts
// with prefix and whose size is greater than zero. Zero-byte matches are ignored.
func (inspector *Inspector) FirstNonEmptyFileWithPrefix(prefix string) (string, bool, error) {
	entries, readError := inspector.fileSystem.ReadDir(inspector.path)
	if readError != nil {
		return "", false, fmt.Errorf(readDirectoryErrorTemplateConstant, inspector.path, readError)
	}

	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		entrySize, sizeError := inspector.entrySize(entry)
		if sizeError != nil {
			return "", false, sizeError
		}
		if entrySize > 0 {
			return entry.Name(), true, nil
		}
	}
	return "", false, nil
}

// entrySize follows symbolic links so a link to a non-empty file counts.
func (inspector *Inspector) entrySize(entry fs.DirEntry) (int64, error) {
	entryPath := filepath.Join(inspector.path, entry.Name())
	if entry.Type()&fs.ModeSymlink != 0 {
		targetInfo, statError := inspector.fileSystem.Stat(entryPath)
		if statError != nil {
			if errors.Is(statError, fs.ErrNotExist) {
				return 0, nil
			}
			return 0, fmt.Errorf(entryInfoErrorTemplateConstant, entryPath, statError)
		}
		return targetInfo.Size(), nil
	}

	entryInfo, infoError := entry.Info()
	if infoError != nil {
		if errors.Is(infoError, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf(entryInfoErrorTemplateConstant, entryPath, infoError)
	}
	return entryInfo.Size(), nil
}

func (inspector *Inspector) runGit(executionContext context.Context, arguments []string) (string, error) {
	executionResult, executionError := inspector.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        append([]string{}, arguments...),
		WorkingDirectory: inspector.path,
		EnvironmentVariables: map[string]string{
			localeEnvironmentVariableNameConstant: localeEnvironmentValueConstant,
			optionalLocksEnvironmentNameConstant:  optionalLocksEnvironmentValueConstant,
		},
	})
	if executionError != nil {
		return "", executionError
	}
	return executionResult.StandardOutput, nil
}

func splitOutputLines(output string) []string {
	trimmedOutput := strings.TrimRight(output, outputLineSeparatorConstant)
	if len(strings.TrimSpace(trimmedOutput)) == 0 {
		return []string{}
	}
	return strings.Split(trimmedOutput, outputLineSeparatorConstant)
}
