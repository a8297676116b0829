// Package config provides loading and environment overlay for the
// identifier service's runtime configuration. It exposes a Default()
// baseline and helpers to construct the options runtime.Open and the
// servers need.
//
// Example:
//
//	cfg := config.Default()
//	if fileCfg, err := config.Load("/etc/uuidv7d.json"); err == nil {
//	    cfg = fileCfg
//	}
//	config.FromEnv(&cfg)
//	rt, _ := runtime.Open(runtime.Options{Config: cfg})
//	defer rt.Close()
package config
