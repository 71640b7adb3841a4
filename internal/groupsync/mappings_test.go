package groupsync_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gwsync/internal/groupsync"
)

const (
	testMappingsFileNameConstant = "mappings.yaml"
	testMappingsDocumentConstant = `group_map:
  - uw_group: u_example_admins
    local_group: exampleadm
  - uw_group: u_example_operators
    local_group: exampleops
`
	testEmptyMappingsDocumentConstant     = "group_map: []\n"
	testMalformedMappingsDocumentConstant = "group_map: [unclosed\n"
)

func writeMappingsFile(testInstance *testing.T, documentContents string) string {
	testInstance.Helper()
	mappingsPath := filepath.Join(testInstance.TempDir(), testMappingsFileNameConstant)
	require.NoError(testInstance, os.WriteFile(mappingsPath, []byte(documentContents), 0o600))
	return mappingsPath
}

func TestLoadGroupMappings(testInstance *testing.T) {
	mappingsPath := writeMappingsFile(testInstance, testMappingsDocumentConstant)

	loadedMappings, loadError := groupsync.LoadGroupMappings(mappingsPath)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, []groupsync.GroupMapping{
		{UWGroupName: "u_example_admins", LocalGroupName: "exampleadm"},
		{UWGroupName: "u_example_operators", LocalGroupName: "exampleops"},
	}, loadedMappings)
}

func TestLoadGroupMappingsFailures(testInstance *testing.T) {
	testCases := []struct {
		name              string
		mappingsPath      func(subtest *testing.T) string
		expectedErrorText string
	}{
		{
			name:              "empty_path",
			mappingsPath:      func(*testing.T) string { return "" },
			expectedErrorText: "mappings file path is required",
		},
		{
			name: "missing_file",
			mappingsPath: func(subtest *testing.T) string {
				return filepath.Join(subtest.TempDir(), testMappingsFileNameConstant)
			},
			expectedErrorText: "read mappings file",
		},
		{
			name: "malformed_document",
			mappingsPath: func(subtest *testing.T) string {
				return writeMappingsFile(subtest, testMalformedMappingsDocumentConstant)
			},
			expectedErrorText: "parse mappings file",
		},
		{
			name: "empty_group_map",
			mappingsPath: func(subtest *testing.T) string {
				return writeMappingsFile(subtest, testEmptyMappingsDocumentConstant)
			},
			expectedErrorText: "declares no group mappings",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			loadedMappings, loadError := groupsync.LoadGroupMappings(testCase.mappingsPath(subtest))
			require.Error(subtest, loadError)
			require.Contains(subtest, loadError.Error(), testCase.expectedErrorText)
			require.Nil(subtest, loadedMappings)
		})
	}
}
