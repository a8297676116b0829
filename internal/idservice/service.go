package idservice

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sazikov-a/userver/internal/audit"
	cfgpkg "github.com/sazikov-a/userver/internal/config"
	"github.com/sazikov-a/userver/internal/policy"
	"github.com/sazikov-a/userver/pkg/log"
	"github.com/sazikov-a/userver/pkg/uuidv7"
)

// Service is the domain layer sitting between the transport servers and the
// bare uuidv7 generator: it applies the namespace allow-list and namespace
// cap, evaluates the generation policy, generates identifiers, and appends
// them to the audit ledger when auditing is enabled.
type Service struct {
	cfg     cfgpkg.Config
	log     log.Logger
	ledger  *audit.Ledger
	policy  policy.Policy
	allowed allowedSet

	mu   sync.Mutex
	seen allowedSet // namespaces admitted so far, when allowed is unset
}

// allowedSet is the optional namespace allow-list; an empty set means any
// namespace is fine.
type allowedSet = map[string]struct{}

// New builds a Service from cfg. ledger may be nil, in which case auditing
// is skipped regardless of cfg.Audit.Enabled.
func New(cfg cfgpkg.Config, logger log.Logger, ledger *audit.Ledger) (*Service, error) {
	p, err := policy.Compile(cfg.Policy.Expression)
	if err != nil {
		return nil, fmt.Errorf("idservice: compile policy: %w", err)
	}
	if cfg.MaxNamespaces > 0 && len(cfg.AllowedNamespaces) > cfg.MaxNamespaces {
		return nil, fmt.Errorf("idservice: %d allowed namespaces exceeds max namespaces %d", len(cfg.AllowedNamespaces), cfg.MaxNamespaces)
	}

	svc := &Service{
		cfg:    cfg,
		log:    logger.WithComponent("idservice"),
		ledger: ledger,
		policy: p,
		seen:   make(allowedSet),
	}

	if len(cfg.AllowedNamespaces) > 0 {
		allowed := make(allowedSet, len(cfg.AllowedNamespaces))
		for _, ns := range cfg.AllowedNamespaces {
			allowed[ns] = struct{}{}
		}
		svc.allowed = allowed
	}
	return svc, nil
}

// admitNamespace checks ns against the allow-list, then, for deployments
// with no static allow-list, against the configured namespace cap: the
// first cfg.MaxNamespaces distinct namespaces seen are admitted, further
// unseen namespaces are rejected. A zero MaxNamespaces disables the cap.
func (s *Service) admitNamespace(ns string) error {
	if len(s.allowed) > 0 {
		if _, ok := s.allowed[ns]; !ok {
			return fmt.Errorf("%w: %q", ErrNamespaceNotAllowed, ns)
		}
		return nil
	}
	if s.cfg.MaxNamespaces <= 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[ns]; ok {
		return nil
	}
	if len(s.seen) >= s.cfg.MaxNamespaces {
		return fmt.Errorf("%w: %q, max %d", ErrNamespaceCapReached, ns, s.cfg.MaxNamespaces)
	}
	s.seen[ns] = struct{}{}
	return nil
}

// ErrNamespaceNotAllowed is returned when a caller requests generation
// under a namespace outside the configured allow-list.
var ErrNamespaceNotAllowed = fmt.Errorf("idservice: namespace not allowed")

// ErrNamespaceCapReached is returned when a caller requests generation
// under a namespace that has never been seen before and the service has
// already admitted cfg.MaxNamespaces distinct namespaces.
var ErrNamespaceCapReached = fmt.Errorf("idservice: namespace cap reached")

// ErrPolicyRejected is returned when the CEL generation policy rejects a
// request.
var ErrPolicyRejected = fmt.Errorf("idservice: request rejected by policy")

// Generate produces a single identifier under ns, auditing it if enabled.
func (s *Service) Generate(ctx context.Context, ns string) (uuidv7.UUID, error) {
	ids, err := s.GenerateBatch(ctx, ns, 1)
	if err != nil {
		return uuidv7.UUID{}, err
	}
	return ids[0], nil
}

// GenerateBatch produces n identifiers under ns in one call, auditing each
// if enabled. n must be positive and pass the configured policy.
func (s *Service) GenerateBatch(ctx context.Context, ns string, n int) ([]uuidv7.UUID, error) {
	if n <= 0 {
		return nil, fmt.Errorf("idservice: batch size must be positive, got %d", n)
	}
	if ns == "" {
		ns = s.cfg.DefaultNamespace
	}
	if err := s.admitNamespace(ns); err != nil {
		return nil, err
	}
	if !s.policy.Allow(policy.Request{Namespace: ns, BatchSize: n, MaxBatchSize: s.cfg.Policy.MaxBatchSize}) {
		return nil, fmt.Errorf("%w: namespace=%q batch_size=%d", ErrPolicyRejected, ns, n)
	}

	// A batch shares one caller-held generator rather than the pooled
	// facade: the pool can hand out a fresh, freshly-reseeded slot between
	// any two calls, which would let a later id in the batch sort below an
	// earlier one. Owning the generator for the lifetime of the loop is
	// what actually delivers the strictly-increasing guarantee within a
	// batch.
	gen := uuidv7.New()
	ids := make([]uuidv7.UUID, n)
	for i := range ids {
		ids[i] = gen.Next()
	}

	if s.ledger != nil && s.cfg.Audit.Enabled {
		for _, id := range ids {
			if _, err := s.ledger.Record(ns, s.cfg.NodeID, id.String()); err != nil {
				s.log.Warn("failed to record audit entry", log.Str("namespace", ns), log.Err(err))
			}
		}
		if s.cfg.Audit.RetentionDays > 0 {
			cutoff := time.Now().AddDate(0, 0, -s.cfg.Audit.RetentionDays)
			if _, err := s.ledger.Prune(ns, s.cfg.NodeID, cutoff); err != nil {
				s.log.Warn("failed to prune audit ledger", log.Str("namespace", ns), log.Err(err))
			}
		}
	}

	return ids, nil
}

// Tail returns the most recently generated identifiers recorded in the
// audit ledger for ns, newest first. Returns an empty slice when auditing
// is disabled or no ledger is configured.
func (s *Service) Tail(ctx context.Context, ns string, limit int) ([]audit.Record, error) {
	if s.ledger == nil || !s.cfg.Audit.Enabled {
		return nil, nil
	}
	if ns == "" {
		ns = s.cfg.DefaultNamespace
	}
	return s.ledger.Tail(ns, s.cfg.NodeID, limit)
}
