package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/check-project/internal/checklist"
	"github.com/temirov/check-project/internal/utils"
)

const (
	testEnvironmentPrefixConstant     = "TESTCHECKPROJECT"
	testConfigurationNameConstant     = "config"
	testConfigurationTypeConstant     = "yaml"
	testConfigFileNameConstant        = "config.yaml"
	testEmbeddedConfigurationConstant = "common:\n  log_level: error\ncheck:\n  format: text\n  skip_stash: false\n"
	testFileConfigurationConstant     = "check:\n  format: markdown\n  skip_stash: true\n"
	testDefaultDirectoryConstant      = "."
)

type checkProjectConfigurationFixture struct {
	Common struct {
		LogLevel string `mapstructure:"log_level"`
	} `mapstructure:"common"`
	Check struct {
		Directory string           `mapstructure:"directory"`
		Format    checklist.Format `mapstructure:"format"`
		Quiet     bool             `mapstructure:"quiet"`

		checklist.Configuration `mapstructure:",squash"`
	} `mapstructure:"check"`
}

func testDefaultValues() map[string]any {
	return map[string]any{
		"check.directory": testDefaultDirectoryConstant,
		"check.quiet":     false,
	}
}

func newTestConfigurationLoader(searchPaths ...string) *utils.ConfigurationLoader {
	configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, searchPaths)
	configurationLoader.SetEmbeddedConfiguration([]byte(testEmbeddedConfigurationConstant), testConfigurationTypeConstant)
	return configurationLoader
}

func writeTestConfiguration(testInstance *testing.T, directory string, content string) string {
	testInstance.Helper()
	configurationPath := filepath.Join(directory, testConfigFileNameConstant)
	require.NoError(testInstance, os.WriteFile(configurationPath, []byte(content), 0o600))
	return configurationPath
}

func TestConfigurationLoaderLayersCheckSettings(testInstance *testing.T) {
	testCases := []struct {
		name              string
		fileContent       string
		environment       map[string]string
		expectedFormat    checklist.Format
		expectedSkipStash bool
		expectedQuiet     bool
	}{
		{
			name:           "embedded_document_only",
			expectedFormat: checklist.FormatText,
		},
		{
			name:              "file_overrides_embedded_document",
			fileContent:       testFileConfigurationConstant,
			expectedFormat:    checklist.FormatMarkdown,
			expectedSkipStash: true,
		},
		{
			name:        "environment_overrides_file",
			fileContent: testFileConfigurationConstant,
			environment: map[string]string{
				testEnvironmentPrefixConstant + "_CHECK_SKIP_STASH": "false",
				testEnvironmentPrefixConstant + "_CHECK_QUIET":      "true",
			},
			expectedFormat: checklist.FormatMarkdown,
			expectedQuiet:  true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			configurationFilePath := ""
			if len(testCase.fileContent) > 0 {
				configurationFilePath = writeTestConfiguration(testInstance, testInstance.TempDir(), testCase.fileContent)
			}
			for environmentName, environmentValue := range testCase.environment {
				testInstance.Setenv(environmentName, environmentValue)
			}

			loadedConfiguration := checkProjectConfigurationFixture{}
			metadata, loadError := newTestConfigurationLoader().LoadConfiguration(configurationFilePath, testDefaultValues(), &loadedConfiguration)
			require.NoError(testInstance, loadError)

			require.Equal(testInstance, configurationFilePath, metadata.ConfigFileUsed)
			require.Equal(testInstance, "error", loadedConfiguration.Common.LogLevel)
			require.Equal(testInstance, testDefaultDirectoryConstant, loadedConfiguration.Check.Directory)
			require.Equal(testInstance, testCase.expectedFormat, loadedConfiguration.Check.Format)
			require.Equal(testInstance, testCase.expectedSkipStash, loadedConfiguration.Check.SkipStash)
			require.Equal(testInstance, testCase.expectedQuiet, loadedConfiguration.Check.Quiet)
			require.False(testInstance, loadedConfiguration.Check.SkipRemotes)
		})
	}
}

func TestConfigurationLoaderSearchesOnlyListedDirectories(testInstance *testing.T) {
	testCases := []struct {
		name                 string
		listWorkingDirectory bool
		expectedFormat       checklist.Format
	}{
		{name: "listed_directory_is_read", listWorkingDirectory: true, expectedFormat: checklist.FormatMarkdown},
		{name: "unlisted_working_directory_is_ignored", listWorkingDirectory: false, expectedFormat: checklist.FormatText},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			workingDirectory := testInstance.TempDir()
			configurationPath := writeTestConfiguration(testInstance, workingDirectory, testFileConfigurationConstant)
			testInstance.Chdir(workingDirectory)

			searchPaths := []string{testInstance.TempDir()}
			if testCase.listWorkingDirectory {
				searchPaths = append(searchPaths, workingDirectory)
			}

			loadedConfiguration := checkProjectConfigurationFixture{}
			metadata, loadError := newTestConfigurationLoader(searchPaths...).LoadConfiguration("", testDefaultValues(), &loadedConfiguration)
			require.NoError(testInstance, loadError)
			require.Equal(testInstance, testCase.expectedFormat, loadedConfiguration.Check.Format)

			if testCase.listWorkingDirectory {
				require.Equal(testInstance, configurationPath, metadata.ConfigFileUsed)
				return
			}
			require.Empty(testInstance, metadata.ConfigFileUsed)
		})
	}
}

func TestConfigurationLoaderDecodesFormatThroughTextUnmarshaler(testInstance *testing.T) {
	configurationFilePath := writeTestConfiguration(testInstance, testInstance.TempDir(), "check:\n  format: \" YAML \"\n")

	loadedConfiguration := checkProjectConfigurationFixture{}
	_, loadError := newTestConfigurationLoader().LoadConfiguration(configurationFilePath, testDefaultValues(), &loadedConfiguration)

	require.NoError(testInstance, loadError)
	require.Equal(testInstance, checklist.FormatYAML, loadedConfiguration.Check.Format)
}

func TestConfigurationLoaderErrors(testInstance *testing.T) {
	testCases := []struct {
		name                    string
		fileContent             string
		useMissingFile          bool
		expectedMessageFragment string
	}{
		{name: "missing_explicit_file", useMissingFile: true, expectedMessageFragment: "failed to read configuration"},
		{name: "malformed_yaml", fileContent: "check: [unterminated\n", expectedMessageFragment: "failed to read configuration"},
		{name: "unsupported_format", fileContent: "check:\n  format: xml\n", expectedMessageFragment: checklist.ErrUnsupportedFormat.Error()},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			configurationDirectory := testInstance.TempDir()
			configurationFilePath := filepath.Join(configurationDirectory, testConfigFileNameConstant)
			if !testCase.useMissingFile {
				configurationFilePath = writeTestConfiguration(testInstance, configurationDirectory, testCase.fileContent)
			}

			loadedConfiguration := checkProjectConfigurationFixture{}
			_, loadError := newTestConfigurationLoader().LoadConfiguration(configurationFilePath, testDefaultValues(), &loadedConfiguration)

			require.Error(testInstance, loadError)
			require.Contains(testInstance, loadError.Error(), testCase.expectedMessageFragment)
		})
	}
}

func TestSetEmbeddedConfigurationCopiesInput(testInstance *testing.T) {
	embeddedContent := []byte("check:\n  skip_license: true\n")
	configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, nil)
	configurationLoader.SetEmbeddedConfiguration(embeddedContent, testConfigurationTypeConstant)
	copy(embeddedContent, "garbage")

	loadedConfiguration := checkProjectConfigurationFixture{}
	_, loadError := configurationLoader.LoadConfiguration("", testDefaultValues(), &loadedConfiguration)

	require.NoError(testInstance, loadError)
	require.True(testInstance, loadedConfiguration.Check.SkipLicense)
}
