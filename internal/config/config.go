package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Config is the top-level configuration for the identifier service, loaded
// from file and overlaid with environment variables.
type Config struct {
	// NodeID identifies this generator instance in audit records. It has no
	// bearing on the identifiers themselves: the monotonicity guarantee is
	// per generator slot, not per node, so NodeID is metadata only.
	NodeID string `json:"nodeId"`

	LogLevel  string `json:"logLevel"`
	LogFormat string `json:"logFormat"`

	GRPCListenAddr string `json:"grpcListenAddr"`
	HTTPListenAddr string `json:"httpListenAddr"`

	DataDir string `json:"dataDir"`

	Audit  AuditConfig  `json:"audit"`
	Policy PolicyConfig `json:"policy"`

	AllowedNamespaces []string `json:"allowedNamespaces"`
	DefaultNamespace  string   `json:"defaultNamespace"`

	// MaxNamespaces caps how many distinct namespaces the service will ever
	// admit when AllowedNamespaces is empty. Ignored once a static allow-list
	// is configured. Zero disables the cap.
	MaxNamespaces int `json:"maxNamespaces"`
}

// AuditConfig controls the append-only generation ledger.
type AuditConfig struct {
	Enabled bool `json:"enabled"`

	// RetentionDays, when positive, prunes ledger entries older than this
	// many days after each audited batch. Zero keeps entries forever.
	RetentionDays int `json:"retentionDays"`
}

// PolicyConfig configures the CEL-based generation policy that gates batch
// requests before they reach the generator.
type PolicyConfig struct {
	// Expression is a CEL boolean expression evaluated against a request's
	// namespace and batch size; a false result rejects the request. An
	// empty expression disables policy evaluation (always allow).
	Expression   string `json:"expression"`
	MaxBatchSize int    `json:"maxBatchSize"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		NodeID:            "node-1",
		LogLevel:          "info",
		LogFormat:         "text",
		GRPCListenAddr:    ":7443",
		HTTPListenAddr:    ":7080",
		DataDir:           DefaultDataDir(),
		Audit:             AuditConfig{Enabled: true, RetentionDays: 30},
		Policy:            PolicyConfig{Expression: "batch_size <= max_batch_size", MaxBatchSize: 1000},
		AllowedNamespaces: nil,
		DefaultNamespace:  "default",
		MaxNamespaces:     256,
	}
}

// Load reads configuration from a JSON file. If path is empty, returns
// defaults. Unknown extensions are treated as JSON.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return Config{}, errors.New("yaml config not supported yet; use JSON for now")
	default:
		if err := json.Unmarshal(b, &cfg); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}
