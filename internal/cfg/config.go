// Package cfg loads the repository configuration document.
package cfg

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

const DefaultConfigPath = "./config/repositories.json"

// DefaultConfigProfile is assigned to repositories that do not specify a
// configProfile.
const DefaultConfigProfile = "default"

type Config struct {
	WorkflowVersion string        `json:"workflowVersion"`
	UpdateMessage   string        `json:"updateMessage"`
	DryRun          bool          `json:"dryRun"`
	Repositories    []*Repository `json:"repositories"`
}

// Repository describes one satellite repository whose caller workflows are
// managed by this tool.
// The slice order in Config.Repositories is the processing order.
type Repository struct {
	Owner          string `json:"owner"`
	RepositoryName string `json:"repo"`
	WorkflowPath   string `json:"workflowPath"`
	ConfigProfile  string `json:"configProfile"`
	Enabled        bool   `json:"enabled"`
	// LastUpdated is informational only, it is never read by the
	// propagation logic.
	LastUpdated string `json:"lastUpdated,omitempty"`
}

func (r *Repository) String() string {
	return r.Owner + "/" + r.RepositoryName
}

func Load(reader io.Reader) (*Config, error) {
	var result Config

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("parsing configuration failed: %w", err)
	}

	if err := result.validate(); err != nil {
		return nil, err
	}

	return &result, nil
}

// LoadFile loads and validates the configuration document at path.
// A missing file is reported with an error wrapping fs.ErrNotExist, allowing
// callers to distinguish it from a parse failure.
func LoadFile(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	config, err := Load(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.WorkflowVersion == "" {
		return fmt.Errorf("workflowVersion is empty")
	}

	for i, repo := range c.Repositories {
		if repo == nil {
			return fmt.Errorf("repositories[%d] is null", i)
		}

		if repo.Owner == "" {
			return fmt.Errorf("repositories[%d]: owner is empty", i)
		}

		if repo.RepositoryName == "" {
			return fmt.Errorf("repositories[%d]: repo is empty", i)
		}

		if repo.WorkflowPath == "" {
			return fmt.Errorf("repositories[%d] (%s): workflowPath is empty", i, repo)
		}

		if repo.ConfigProfile == "" {
			repo.ConfigProfile = DefaultConfigProfile
		}
	}

	return nil
}
