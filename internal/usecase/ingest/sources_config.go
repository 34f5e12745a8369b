// Package ingest implements the Feed Ingestor: parallel per-source RSS/Atom
// fetching, normalization into Articles, relevance filtering, and the
// 7-day time window.
package ingest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"hornwatch/internal/domain/entity"
)

// sourcesFile is the on-disk shape of the sources configuration. Sources are
// static operational config, not a database table: there is no crawl
// schedule or CRUD surface for them, only a fixed list read once at startup.
type sourcesFile struct {
	Sources []sourceEntry `yaml:"sources"`
}

type sourceEntry struct {
	Name        string `yaml:"name"`
	URL         string `yaml:"url"`
	Category    string `yaml:"category"`
	Reliability string `yaml:"reliability"`
}

// LoadSources reads and validates the sources configuration file.
// #nosec G304 -- path is provided by trusted source (CLI flag or env var), not user input
func LoadSources(path string) ([]entity.Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sources config: %w", err)
	}

	var file sourcesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse sources config: %w", err)
	}

	if len(file.Sources) == 0 {
		return nil, fmt.Errorf("sources config: no sources defined")
	}

	sources := make([]entity.Source, 0, len(file.Sources))
	for _, se := range file.Sources {
		src := entity.Source{
			Name:        se.Name,
			URL:         se.URL,
			Category:    entity.Category(se.Category),
			Reliability: entity.Reliability(se.Reliability),
		}
		if err := src.Validate(); err != nil {
			return nil, fmt.Errorf("sources config: source %q: %w", se.Name, err)
		}
		sources = append(sources, src)
	}

	return sources, nil
}
