package datasetconfig

// Config is the YAML definition of the dashboard dataset
type Config struct {
	Dataset  Dataset  `yaml:"dataset" json:"dataset"`
	Defaults Defaults `yaml:"defaults" json:"defaults"`
	Quality  Quality  `yaml:"quality" json:"quality"`
}

// Dataset locates the wide table and names its columns
type Dataset struct {
	ID         string `yaml:"id" json:"id"`
	Source     string `yaml:"source" json:"source"` // csv, postgres, mysql; empty keeps the env setting
	Path       string `yaml:"path" json:"path"`
	Table      string `yaml:"table" json:"table"`
	IDColumn   string `yaml:"id_column" json:"id_column"`
	NameColumn string `yaml:"name_column" json:"name_column"`
	MinYear    int    `yaml:"min_year" json:"min_year"`
	MaxYear    int    `yaml:"max_year" json:"max_year"`
	CacheTTL   string `yaml:"cache_ttl" json:"cache_ttl"` // Go duration, "0s" = forever
}

// Defaults is the initial dashboard selection
type Defaults struct {
	Entities []string `yaml:"entities" json:"entities"`
}

// Quality holds the coverage threshold
type Quality struct {
	MinCoverage *float64 `yaml:"min_coverage" json:"min_coverage,omitempty"`
}
