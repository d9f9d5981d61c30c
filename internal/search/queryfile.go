// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/cite-editor/pkg/types"
)

// QueryFile is the on-disk snapshot of one suggestion lookup: the query,
// the backend that answered it, and the candidates it returned. Snapshots
// are for inspection only; the provider never reads them back as a cache.
type QueryFile struct {
	Query      string            `yaml:"query"`
	Backend    string            `yaml:"backend"`
	MaxResults int               `yaml:"max_results"`
	Results    []types.Candidate `yaml:"results"`
	SearchedAt time.Time         `yaml:"searched_at"`
}

// WriteQueryFile saves a lookup and its candidates to a YAML file.
func WriteQueryFile(path string, s *Service, query string, results []types.Candidate) error {
	qf := QueryFile{
		Query:      query,
		Backend:    s.Backend(),
		MaxResults: s.MaxResults(),
		Results:    results,
		SearchedAt: time.Now().UTC(),
	}

	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved snapshot from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}
