package runtime

import (
	"context"
	"errors"
	"time"

	"github.com/sazikov-a/userver/internal/audit"
	cfgpkg "github.com/sazikov-a/userver/internal/config"
	"github.com/sazikov-a/userver/internal/idservice"
	pebblestore "github.com/sazikov-a/userver/internal/storage/pebble"
	"github.com/sazikov-a/userver/pkg/log"
)

// Options for building the Runtime.
type Options struct {
	DataDir       string
	Fsync         pebblestore.FsyncMode
	FsyncInterval time.Duration
	Config        cfgpkg.Config
	Logger        log.Logger
}

// Runtime wires storage, config, the audit ledger, and the identifier
// service into a single-node instance.
type Runtime struct {
	db      *pebblestore.DB
	config  cfgpkg.Config
	logger  log.Logger
	ledger  *audit.Ledger
	service *idservice.Service
}

// Open initializes the underlying storage and returns a Runtime.
func Open(opts Options) (*Runtime, error) {
	logger := opts.Logger
	if logger == nil {
		var applyErr error
		logger, applyErr = log.ApplyConfig(&log.Config{Level: opts.Config.LogLevel, Format: opts.Config.LogFormat})
		if applyErr != nil {
			return nil, applyErr
		}
	}

	db, err := pebblestore.Open(pebblestore.Options{
		DataDir:       opts.DataDir,
		Fsync:         opts.Fsync,
		FsyncInterval: opts.FsyncInterval,
		Metrics:       logMetrics{log: logger.WithComponent("pebble")},
	})
	if err != nil {
		return nil, err
	}

	ledger := audit.Open(db)
	service, err := idservice.New(opts.Config, logger, ledger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	rt := &Runtime{
		db:      db,
		config:  opts.Config,
		logger:  logger,
		ledger:  ledger,
		service: service,
	}
	return rt, nil
}

// Close closes underlying resources.
func (r *Runtime) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// CheckHealth performs a simple health check against storage.
func (r *Runtime) CheckHealth(ctx context.Context) error {
	if r.db == nil {
		return errors.New("db not open")
	}
	it, err := r.db.NewIter(nil)
	if err != nil {
		return err
	}
	return it.Close()
}

// IDService exposes the wired identifier service.
func (r *Runtime) IDService() *idservice.Service { return r.service }

// DB exposes the underlying DB for advanced operations (internal use only).
func (r *Runtime) DB() *pebblestore.DB { return r.db }

// Config returns the runtime configuration.
func (r *Runtime) Config() cfgpkg.Config { return r.config }

// Logger returns the runtime's structured logger.
func (r *Runtime) Logger() log.Logger { return r.logger }

// logMetrics implements pebblestore.MetricsHook by logging storage
// observations at debug level, so slow reads or oversized batch commits
// show up in the same structured log stream as everything else.
type logMetrics struct {
	log log.Logger
}

func (m logMetrics) ObserveWrite(elapsed time.Duration, bytes int) {
	m.log.Debug("storage write", log.Duration("elapsed", elapsed), log.Int("bytes", bytes))
}

func (m logMetrics) ObserveRead(elapsed time.Duration, bytes int) {
	m.log.Debug("storage read", log.Duration("elapsed", elapsed), log.Int("bytes", bytes))
}

func (m logMetrics) ObserveBatchCommit(elapsed time.Duration, numOps int, bytes int) {
	m.log.Debug("storage batch commit", log.Duration("elapsed", elapsed), log.Int("ops", numOps), log.Int("bytes", bytes))
}
