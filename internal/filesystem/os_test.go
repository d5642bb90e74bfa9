package filesystem_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/check-project/internal/filesystem"
)

func TestOSFileSystemReadDirSortsEntries(testInstance *testing.T) {
	directoryPath := testInstance.TempDir()
	for _, fileName := range []string{"README.rst", "LICENSE", "README.md"} {
		require.NoError(testInstance, os.WriteFile(filepath.Join(directoryPath, fileName), []byte("content"), 0o600))
	}

	entries, readError := filesystem.OSFileSystem{}.ReadDir(directoryPath)
	require.NoError(testInstance, readError)

	entryNames := make([]string, 0, len(entries))
	for _, entry := range entries {
		entryNames = append(entryNames, entry.Name())
	}
	require.Equal(testInstance, []string{"LICENSE", "README.md", "README.rst"}, entryNames)
}

func TestOSFileSystemStatAndAbs(testInstance *testing.T) {
	directoryPath := testInstance.TempDir()
	fileSystem := filesystem.OSFileSystem{}

	directoryInfo, statError := fileSystem.Stat(directoryPath)
	require.NoError(testInstance, statError)
	require.True(testInstance, directoryInfo.IsDir())

	_, missingError := fileSystem.Stat(filepath.Join(directoryPath, "missing"))
	require.ErrorIs(testInstance, missingError, os.ErrNotExist)

	absolutePath, absError := fileSystem.Abs(filepath.Join(directoryPath, "nested", ".."))
	require.NoError(testInstance, absError)
	require.Equal(testInstance, directoryPath, absolutePath)
}
