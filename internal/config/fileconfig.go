package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// HeaderAliases lists, in priority order, the accepted spreadsheet header
// names per logical field. Matching is case-insensitive substring matching;
// the first header matching an alias wins.
type HeaderAliases struct {
	Email []string `yaml:"email"`
	Case  []string `yaml:"case"`
}

// FileConfig is the optional YAML configuration file. It carries the two
// pieces that don't fit comfortably in environment variables: a structured
// service-account key block and overrides for the header alias lists.
type FileConfig struct {
	ServiceAccount map[string]any `yaml:"service_account"`
	Headers        HeaderAliases  `yaml:"headers"`
}

// DefaultHeaderAliases matches the headers the master sheet has historically
// used. The Chinese aliases cover the sheet's original column names.
func DefaultHeaderAliases() HeaderAliases {
	return HeaderAliases{
		Email: []string{"email", "信箱"},
		Case:  []string{"case", "id", "編號", "案件"},
	}
}

// LoadFile reads the YAML config file at path. A missing file is not an
// error; it returns an empty config with default header aliases.
func LoadFile(path string) (*FileConfig, error) {
	fc := &FileConfig{Headers: DefaultHeaderAliases()}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fc, nil
		}
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, fc); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	// Partial overrides keep the defaults for the other field
	defaults := DefaultHeaderAliases()
	if len(fc.Headers.Email) == 0 {
		fc.Headers.Email = defaults.Email
	}
	if len(fc.Headers.Case) == 0 {
		fc.Headers.Case = defaults.Case
	}

	return fc, nil
}
