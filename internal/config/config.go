package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the PlannerConfig goapctl reads and writes: default
// heuristic selection, search budgets, and the directories catalog and
// trace files live in.
type Config struct {
	Heuristic HeuristicConfig `yaml:"heuristic"`
	Budget    BudgetConfig    `yaml:"budget"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Trace     TraceConfig     `yaml:"trace"`
}

// HeuristicConfig selects the default heuristic and its parameters.
type HeuristicConfig struct {
	Name     string `yaml:"name"` // zero, mismatch, domain_aware, rpg_add
	Weighted bool   `yaml:"weighted"`
}

// BudgetConfig holds the default search limits passed to calculate.
type BudgetConfig struct {
	MaxExpansions int `yaml:"max_expansions"`
	TimeBudgetMs  int `yaml:"time_budget_ms"`
}

// CatalogConfig names the catalog directory, which `goapctl doctor`
// checks is writable, and the strict-effects default for `goapctl plan`.
// Document paths given on the command line are used as given, not
// resolved against Directory.
type CatalogConfig struct {
	Directory string `yaml:"directory"`
	Strict    bool   `yaml:"strict"`
}

// TraceConfig holds where goapdebug.Recorder writes trace files and
// whether it mirrors summary counters to Prometheus/InfluxDB.
type TraceConfig struct {
	Directory      string `yaml:"directory"`
	PushgatewayURL string `yaml:"pushgateway_url"`
	InfluxURL      string `yaml:"influx_url"`
	InfluxToken    string `yaml:"influx_token"` // supports ${ENV_VAR} interpolation
	InfluxOrg      string `yaml:"influx_org"`
	InfluxBucket   string `yaml:"influx_bucket"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Heuristic: HeuristicConfig{
			Name:     "domain_aware",
			Weighted: false,
		},
		Budget: BudgetConfig{
			MaxExpansions: 50000,
			TimeBudgetMs:  2000,
		},
		Catalog: CatalogConfig{
			Directory: "./catalogs",
			Strict:    false,
		},
		Trace: TraceConfig{
			Directory: "./traces",
		},
	}
}

// LoadConfig loads configuration from a YAML file. A missing path
// returns the defaults rather than an error, matching how goapctl falls
// back when no config file has been initialized yet.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to a YAML file, creating parent
// directories as needed.
func SaveConfig(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ExampleConfig returns a commented example config, written by
// `goapctl config init`.
func ExampleConfig() string {
	return `# goapctl configuration file

heuristic:
  # zero, mismatch, domain_aware, rpg_add
  name: domain_aware

  # multiply the estimate by the catalog's minimum cost, trading a
  # cheaper bound for admissibility under highly variable action costs
  weighted: false

budget:
  # cap on nodes popped from the open set; 0 means unbounded
  max_expansions: 50000

  # cap on wall-clock search time, in milliseconds; 0 means unbounded
  time_budget_ms: 2000

catalog:
  # catalog directory; goapctl doctor checks that it is writable
  # (document paths passed to commands are used as given)
  directory: ./catalogs

  # restrict effect values to booleans only
  strict: false

trace:
  # directory goapdebug.Recorder writes trace JSON files to
  directory: ./traces

  # optional: push summary counters to a Prometheus push gateway
  pushgateway_url: ""

  # optional: write a summary point to InfluxDB
  influx_url: ""
  influx_token: ${GOAP_INFLUX_TOKEN}
  influx_org: ""
  influx_bucket: ""
`
}
