package config

import (
	"os"
	"strconv"
	"strings"
)

// FromEnv overlays UUIDV7D_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("UUIDV7D_NODE_ID"); v != "" {
		cfg.NodeID = v
	}
	if v := os.Getenv("UUIDV7D_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("UUIDV7D_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("UUIDV7D_GRPC_LISTEN_ADDR"); v != "" {
		cfg.GRPCListenAddr = v
	}
	if v := os.Getenv("UUIDV7D_HTTP_LISTEN_ADDR"); v != "" {
		cfg.HTTPListenAddr = v
	}
	if v := os.Getenv("UUIDV7D_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("UUIDV7D_AUDIT_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Audit.Enabled = b
		}
	}
	if v := os.Getenv("UUIDV7D_AUDIT_RETENTION_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Audit.RetentionDays = n
		}
	}
	if v := os.Getenv("UUIDV7D_POLICY_EXPRESSION"); v != "" {
		cfg.Policy.Expression = v
	}
	if v := os.Getenv("UUIDV7D_POLICY_MAX_BATCH_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Policy.MaxBatchSize = n
		}
	}
	if v := os.Getenv("UUIDV7D_DEFAULT_NAMESPACE"); v != "" {
		cfg.DefaultNamespace = v
	}
	if v := os.Getenv("UUIDV7D_MAX_NAMESPACES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxNamespaces = n
		}
	}
	if v := os.Getenv("UUIDV7D_ALLOWED_NAMESPACES"); v != "" {
		parts := strings.Split(v, ",")
		cfg.AllowedNamespaces = nil
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				cfg.AllowedNamespaces = append(cfg.AllowedNamespaces, p)
			}
		}
	}
}
