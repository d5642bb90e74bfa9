package pathutils_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/temirov/check-project/internal/utils/path"
)

const (
	testHomeDirectoryConstant      = "/home/auditor"
	testOtherUserNameConstant      = "someone"
	testOtherHomeDirectoryConstant = "/home/someone"
)

func lookupTestUserHome(userName string) (string, error) {
	if userName == testOtherUserNameConstant {
		return testOtherHomeDirectoryConstant, nil
	}
	return "", errors.New("unknown user " + userName)
}

func TestHomeExpanderExpand(testInstance *testing.T) {
	testCases := []struct {
		name          string
		candidatePath string
		expectedPath  string
	}{
		{name: "bare_tilde", candidatePath: "~", expectedPath: testHomeDirectoryConstant},
		{name: "tilde_with_relative_path", candidatePath: "~/projects/tool", expectedPath: filepath.Join(testHomeDirectoryConstant, "projects", "tool")},
		{name: "tilde_with_trailing_slash", candidatePath: "~/", expectedPath: testHomeDirectoryConstant},
		{name: "named_user", candidatePath: "~someone", expectedPath: testOtherHomeDirectoryConstant},
		{name: "named_user_with_relative_path", candidatePath: "~someone/projects", expectedPath: filepath.Join(testOtherHomeDirectoryConstant, "projects")},
		{name: "unknown_user_unchanged", candidatePath: "~nonexist/projects", expectedPath: "~nonexist/projects"},
		{name: "bare_unknown_user_unchanged", candidatePath: "~nonexist", expectedPath: "~nonexist"},
		{name: "absolute_unchanged", candidatePath: "/srv/project", expectedPath: "/srv/project"},
		{name: "relative_unchanged", candidatePath: "project", expectedPath: "project"},
		{name: "empty_unchanged", candidatePath: "", expectedPath: ""},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			expander := pathutils.NewHomeExpanderWithLookups(func() (string, error) {
				return testHomeDirectoryConstant, nil
			}, lookupTestUserHome)
			require.Equal(testInstance, testCase.expectedPath, expander.Expand(testCase.candidatePath))
		})
	}
}

func TestHomeExpanderConsultsProviderOnce(testInstance *testing.T) {
	invocationCount := 0
	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		invocationCount++
		return testHomeDirectoryConstant, nil
	})

	expander.Expand("~/one")
	expander.Expand("~/two")

	require.Equal(testInstance, 1, invocationCount)
}

func TestHomeExpanderLeavesPathWhenLookupFails(testInstance *testing.T) {
	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return "", errors.New("no home directory")
	})
	require.Equal(testInstance, "~/project", expander.Expand("~/project"))

	var nilExpander *pathutils.HomeExpander
	require.Equal(testInstance, "~/project", nilExpander.Expand("~/project"))
}

func TestHomeExpanderNamedUserSkipsCurrentUserLookup(testInstance *testing.T) {
	invocationCount := 0
	expander := pathutils.NewHomeExpanderWithLookups(func() (string, error) {
		invocationCount++
		return testHomeDirectoryConstant, nil
	}, lookupTestUserHome)

	require.Equal(testInstance, testOtherHomeDirectoryConstant, expander.Expand("~someone"))
	require.Zero(testInstance, invocationCount)
}
