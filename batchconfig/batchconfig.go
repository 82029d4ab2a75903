// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package batchconfig loads the YAML job list consumed by "octal batch":
// a set of independent (game code, N) pairs, each run on its own Engine.
package batchconfig

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// Job describes a single engine run: compute G[1..N] for Game.
type Job struct {
	Name string `json:"name,omitempty"`
	Game string `json:"game"`
	N    int    `json:"n"`
	// LogPath, if set, receives one line per computed term. A ".gz"
	// suffix selects a compressed log file (see cmd/octal).
	LogPath string `json:"logPath,omitempty"`
	// Check forces the rc/def cross-check on for this job.
	Check bool `json:"check,omitempty"`
}

// Config is the top-level batch-run document.
type Config struct {
	Jobs []Job `json:"jobs"`
}

// Load reads and validates a batch config from path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("batchconfig: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("batchconfig: %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("batchconfig: %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if len(c.Jobs) == 0 {
		return fmt.Errorf("no jobs listed")
	}
	seen := make(map[string]bool, len(c.Jobs))
	for i, j := range c.Jobs {
		if j.Game == "" {
			return fmt.Errorf("job %d: field 'game' is required", i)
		}
		if j.N <= 0 {
			return fmt.Errorf("job %d (%s): field 'n' must be positive, got %d", i, j.Game, j.N)
		}
		name := j.Name
		if name == "" {
			name = j.Game
		}
		if seen[name] {
			return fmt.Errorf("job %d: duplicate job name %q", i, name)
		}
		seen[name] = true
	}
	return nil
}
