package datasetconfig

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wonny/gdpdash/pkg/config"
)

// Load reads the YAML file and returns the validated Config
// KnownFields(true): 오타/미사용 필드 즉시 실패
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes and validates YAML bytes
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode dataset config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Hash returns the SHA256 of the canonical JSON form
func Hash(cfg *Config) (string, error) {
	jsonBytes, err := json.Marshal(cfg)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(jsonBytes)
	return hex.EncodeToString(sum[:]), nil
}

// Apply overrides the environment's data settings with the values set in the file
func (c *Config) Apply(dc *config.DataConfig) {
	d := c.Dataset
	if d.Source != "" {
		dc.Source = d.Source
	}
	if d.Path != "" {
		dc.File = d.Path
	}
	if d.Table != "" {
		dc.Table = d.Table
	}
	if d.IDColumn != "" {
		dc.IDColumn = d.IDColumn
	}
	if d.NameColumn != "" {
		dc.NameColumn = d.NameColumn
	}
	if d.MinYear != 0 {
		dc.MinYear = d.MinYear
	}
	if d.MaxYear != 0 {
		dc.MaxYear = d.MaxYear
	}
	if d.CacheTTL != "" {
		// already checked by Validate
		ttl, _ := time.ParseDuration(d.CacheTTL)
		dc.CacheTTL = ttl
	}
	if c.Quality.MinCoverage != nil {
		dc.MinCoverage = *c.Quality.MinCoverage
	}
}
