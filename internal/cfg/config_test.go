package cfg

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `{
  "workflowVersion": "2.3.0",
  "updateMessage": "rollout of the new review pipeline",
  "dryRun": false,
  "repositories": [
    {
      "owner": "efp-dev-ops",
      "repo": "billing-service",
      "workflowPath": ".github/workflows/ai-review.yml",
      "configProfile": "backend",
      "enabled": true,
      "lastUpdated": "2026-07-01T10:00:00Z"
    },
    {
      "owner": "efp-dev-ops",
      "repo": "webapp",
      "workflowPath": ".github/workflows/ai-review.yml",
      "enabled": false
    }
  ]
}`

func TestLoad(t *testing.T) {
	config, err := Load(strings.NewReader(validConfig))
	require.NoError(t, err)

	assert.Equal(t, "2.3.0", config.WorkflowVersion)
	assert.Equal(t, "rollout of the new review pipeline", config.UpdateMessage)
	assert.False(t, config.DryRun)
	require.Len(t, config.Repositories, 2)

	first := config.Repositories[0]
	assert.Equal(t, "efp-dev-ops", first.Owner)
	assert.Equal(t, "billing-service", first.RepositoryName)
	assert.Equal(t, ".github/workflows/ai-review.yml", first.WorkflowPath)
	assert.Equal(t, "backend", first.ConfigProfile)
	assert.True(t, first.Enabled)

	second := config.Repositories[1]
	assert.False(t, second.Enabled)
	assert.Equal(t, DefaultConfigProfile, second.ConfigProfile,
		"missing configProfile must default to %q", DefaultConfigProfile)
}

func TestLoadFailsOnMalformedDocument(t *testing.T) {
	_, err := Load(strings.NewReader("{ not json"))
	require.Error(t, err)
}

func TestLoadValidation(t *testing.T) {
	testcases := []struct {
		name   string
		doc    string
		errMsg string
	}{
		{
			name:   "missing workflow version",
			doc:    `{"repositories": []}`,
			errMsg: "workflowVersion",
		},
		{
			name:   "missing owner",
			doc:    `{"workflowVersion": "1.0.0", "repositories": [{"repo": "x", "workflowPath": "y"}]}`,
			errMsg: "owner",
		},
		{
			name:   "missing repo",
			doc:    `{"workflowVersion": "1.0.0", "repositories": [{"owner": "x", "workflowPath": "y"}]}`,
			errMsg: "repo",
		},
		{
			name:   "missing workflow path",
			doc:    `{"workflowVersion": "1.0.0", "repositories": [{"owner": "x", "repo": "y"}]}`,
			errMsg: "workflowPath",
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tc.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repositories.json")
	require.NoError(t, os.WriteFile(path, []byte(validConfig), 0o644))

	config, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "2.3.0", config.WorkflowVersion)
}

func TestLoadFileNotFound(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "does-not-exist.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist),
		"a missing config file must be distinguishable from a parse error")
}
