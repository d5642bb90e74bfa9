package gitproject

import (
	"context"
	"io/fs"

	"github.com/temirov/check-project/internal/execshell"
)

// GitExecutor exposes the subset of shell execution used by the inspector.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// FileSystem provides the filesystem queries the inspector needs.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	Abs(path string) (string, error)
	ReadDir(path string) ([]fs.DirEntry, error)
}

// HomeExpander resolves a leading home-directory shorthand in a path.
type HomeExpander interface {
	Expand(candidatePath string) string
}

// Dependencies bundles the collaborators required to construct an Inspector.
type Dependencies struct {
	GitExecutor  GitExecutor
	FileSystem   FileSystem
	HomeExpander HomeExpander
}
