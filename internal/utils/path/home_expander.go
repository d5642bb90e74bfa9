package pathutils

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"sync"
)

const (
	tildeSymbolConstant        = "~"
	forwardSlashSymbolConstant = "/"
)

var userNameTerminators = forwardSlashSymbolConstant + string(os.PathSeparator)

// HomeDirectoryProvider resolves the current user's home directory path.
type HomeDirectoryProvider func() (string, error)

// UserHomeDirectoryLookup resolves the home directory of a named user.
type UserHomeDirectoryLookup func(userName string) (string, error)

// HomeExpander converts a leading "~" or "~user" in a directory argument to a home directory.
// Paths whose home directory cannot be resolved are returned unchanged.
type HomeExpander struct {
	resolveHomeDirectory func() (string, error)
	lookupUserHome       UserHomeDirectoryLookup
}

// NewHomeExpander constructs a HomeExpander using the operating system lookups.
func NewHomeExpander() *HomeExpander {
	return NewHomeExpanderWithLookups(os.UserHomeDir, lookupOperatingSystemUserHome)
}

// NewHomeExpanderWithProvider constructs a HomeExpander with a custom provider for the current user, consulted at most once.
func NewHomeExpanderWithProvider(provider HomeDirectoryProvider) *HomeExpander {
	return NewHomeExpanderWithLookups(provider, lookupOperatingSystemUserHome)
}

// NewHomeExpanderWithLookups constructs a HomeExpander with custom lookups for the current and named users.
func NewHomeExpanderWithLookups(provider HomeDirectoryProvider, userLookup UserHomeDirectoryLookup) *HomeExpander {
	if provider == nil {
		provider = os.UserHomeDir
	}
	if userLookup == nil {
		userLookup = lookupOperatingSystemUserHome
	}
	return &HomeExpander{resolveHomeDirectory: sync.OnceValues(provider), lookupUserHome: userLookup}
}

// Expand resolves "~", "~/...", "~user" and "~user/..." against the matching home directory.
func (expander *HomeExpander) Expand(candidatePath string) string {
	if expander == nil || !strings.HasPrefix(candidatePath, tildeSymbolConstant) {
		return candidatePath
	}

	userName, remainder := splitTildePrefix(candidatePath)

	var homeDirectory string
	var homeDirectoryError error
	if len(userName) == 0 {
		homeDirectory, homeDirectoryError = expander.resolveHomeDirectory()
	} else {
		homeDirectory, homeDirectoryError = expander.lookupUserHome(userName)
	}
	if homeDirectoryError != nil || len(homeDirectory) == 0 {
		return candidatePath
	}

	if len(remainder) == 0 {
		return homeDirectory
	}
	return filepath.Join(homeDirectory, remainder)
}

// splitTildePrefix separates "~name/rest" into "name" and "rest".
func splitTildePrefix(candidatePath string) (string, string) {
	withoutTilde := strings.TrimPrefix(candidatePath, tildeSymbolConstant)
	terminatorIndex := strings.IndexAny(withoutTilde, userNameTerminators)
	if terminatorIndex < 0 {
		return withoutTilde, ""
	}
	return withoutTilde[:terminatorIndex], withoutTilde[terminatorIndex+1:]
}

func lookupOperatingSystemUserHome(userName string) (string, error) {
	account, lookupError := user.Lookup(userName)
	if lookupError != nil {
		return "", lookupError
	}
	return account.HomeDir, nil
}
