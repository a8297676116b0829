package idservice

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/sazikov-a/userver/internal/audit"
	cfgpkg "github.com/sazikov-a/userver/internal/config"
	pebblestore "github.com/sazikov-a/userver/internal/storage/pebble"
	"github.com/sazikov-a/userver/pkg/log"
)

func newTestService(t *testing.T, mutate func(*cfgpkg.Config)) (*Service, *pebblestore.DB) {
	t.Helper()
	db, err := pebblestore.Open(pebblestore.Options{DataDir: t.TempDir(), Fsync: pebblestore.FsyncModeAlways})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	cfg := cfgpkg.Default()
	cfg.NodeID = "test-node"
	cfg.Policy.Expression = ""
	if mutate != nil {
		mutate(&cfg)
	}

	logger := log.NewLogger(log.WithLevel(log.DebugLevel), log.WithOutput(log.NewWriterOutput(&bytes.Buffer{})))
	svc, err := New(cfg, logger, audit.Open(db))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, db
}

func TestGenerateBatchProducesDistinctIDs(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ids, err := svc.GenerateBatch(context.Background(), "default", 5)
	if err != nil {
		t.Fatalf("generate batch: %v", err)
	}
	if len(ids) != 5 {
		t.Fatalf("expected 5 ids, got %d", len(ids))
	}
	seen := map[string]struct{}{}
	for _, id := range ids {
		seen[id.String()] = struct{}{}
	}
	if len(seen) != 5 {
		t.Fatalf("expected 5 distinct ids, got %d", len(seen))
	}
}

func TestGenerateBatchRejectsNonPositiveSize(t *testing.T) {
	svc, _ := newTestService(t, nil)
	if _, err := svc.GenerateBatch(context.Background(), "default", 0); err == nil {
		t.Fatalf("expected error for batch size 0")
	}
}

func TestNamespaceAllowList(t *testing.T) {
	svc, _ := newTestService(t, func(cfg *cfgpkg.Config) {
		cfg.AllowedNamespaces = []string{"billing"}
	})

	if _, err := svc.Generate(context.Background(), "billing"); err != nil {
		t.Fatalf("expected allowed namespace to succeed: %v", err)
	}
	_, err := svc.Generate(context.Background(), "unknown")
	if !errors.Is(err, ErrNamespaceNotAllowed) {
		t.Fatalf("expected ErrNamespaceNotAllowed, got %v", err)
	}
}

func TestNamespaceCapAdmitsUpToLimitThenRejects(t *testing.T) {
	svc, _ := newTestService(t, func(cfg *cfgpkg.Config) {
		cfg.MaxNamespaces = 2
	})

	if _, err := svc.Generate(context.Background(), "a"); err != nil {
		t.Fatalf("expected first namespace to be admitted: %v", err)
	}
	if _, err := svc.Generate(context.Background(), "b"); err != nil {
		t.Fatalf("expected second namespace to be admitted: %v", err)
	}
	if _, err := svc.Generate(context.Background(), "a"); err != nil {
		t.Fatalf("expected previously-admitted namespace to keep working: %v", err)
	}
	_, err := svc.Generate(context.Background(), "c")
	if !errors.Is(err, ErrNamespaceCapReached) {
		t.Fatalf("expected ErrNamespaceCapReached, got %v", err)
	}
}

func TestNamespaceCapDisabledWhenZero(t *testing.T) {
	svc, _ := newTestService(t, func(cfg *cfgpkg.Config) {
		cfg.MaxNamespaces = 0
	})
	for _, ns := range []string{"a", "b", "c", "d"} {
		if _, err := svc.Generate(context.Background(), ns); err != nil {
			t.Fatalf("expected namespace %q to be admitted with cap disabled: %v", ns, err)
		}
	}
}

func TestNewRejectsAllowListLargerThanMaxNamespaces(t *testing.T) {
	cfg := cfgpkg.Default()
	cfg.AllowedNamespaces = []string{"a", "b", "c"}
	cfg.MaxNamespaces = 2

	logger := log.NewLogger(log.WithLevel(log.DebugLevel), log.WithOutput(log.NewWriterOutput(&bytes.Buffer{})))
	if _, err := New(cfg, logger, nil); err == nil {
		t.Fatalf("expected error when allow-list exceeds max namespaces")
	}
}

func TestPolicyRejectsOversizedBatch(t *testing.T) {
	svc, _ := newTestService(t, func(cfg *cfgpkg.Config) {
		cfg.Policy.Expression = "batch_size <= max_batch_size"
		cfg.Policy.MaxBatchSize = 2
	})

	if _, err := svc.GenerateBatch(context.Background(), "default", 2); err != nil {
		t.Fatalf("expected batch at limit to succeed: %v", err)
	}
	_, err := svc.GenerateBatch(context.Background(), "default", 3)
	if !errors.Is(err, ErrPolicyRejected) {
		t.Fatalf("expected ErrPolicyRejected, got %v", err)
	}
}

func TestGenerateAudited(t *testing.T) {
	svc, _ := newTestService(t, func(cfg *cfgpkg.Config) {
		cfg.Audit.Enabled = true
	})

	id, err := svc.Generate(context.Background(), "default")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	tail, err := svc.Tail(context.Background(), "default", 10)
	if err != nil {
		t.Fatalf("tail: %v", err)
	}
	if len(tail) != 1 || tail[0].ID != id.String() {
		t.Fatalf("expected audited id %s in tail, got %+v", id.String(), tail)
	}
}

func TestGenerateNotAuditedWhenDisabled(t *testing.T) {
	svc, _ := newTestService(t, func(cfg *cfgpkg.Config) {
		cfg.Audit.Enabled = false
	})

	if _, err := svc.Generate(context.Background(), "default"); err != nil {
		t.Fatalf("generate: %v", err)
	}
	tail, err := svc.Tail(context.Background(), "default", 10)
	if err != nil {
		t.Fatalf("tail: %v", err)
	}
	if len(tail) != 0 {
		t.Fatalf("expected no audit entries, got %d", len(tail))
	}
}

func TestDefaultNamespaceUsedWhenEmpty(t *testing.T) {
	svc, _ := newTestService(t, func(cfg *cfgpkg.Config) {
		cfg.DefaultNamespace = "fallback"
		cfg.Audit.Enabled = true
	})
	if _, err := svc.Generate(context.Background(), ""); err != nil {
		t.Fatalf("generate: %v", err)
	}
	tail, err := svc.Tail(context.Background(), "", 10)
	if err != nil {
		t.Fatalf("tail: %v", err)
	}
	if len(tail) != 1 {
		t.Fatalf("expected 1 audited entry under fallback namespace, got %d", len(tail))
	}
}
