package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/sazikov-a/userver/internal/idservice"
	"github.com/sazikov-a/userver/internal/runtime"
	"github.com/sazikov-a/userver/pkg/log"
)

// Server is a minimal REST gateway exposing identifier generation and the
// audit tail as JSON over HTTP, alongside the same health check the gRPC
// server exposes over the standard health-checking protocol.
type Server struct {
	rt  *runtime.Runtime
	log log.Logger
	srv *http.Server
	lis net.Listener
}

// New builds a Server wired to rt.
func New(rt *runtime.Runtime, logger log.Logger) *Server {
	mux := http.NewServeMux()
	s := &Server{rt: rt, log: logger.WithComponent("httpserver"), srv: &http.Server{Handler: cors(mux)}}
	mux.HandleFunc("/v1/healthz", s.handleHealth)
	mux.HandleFunc("/v1/ids/generate", s.handleGenerate)
	mux.HandleFunc("/v1/ids/generate/batch", s.handleGenerateBatch)
	mux.HandleFunc("/v1/ids/stats", s.handleStats)
	return s
}

// ListenAndServe binds to addr and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.lis = l
	errCh := make(chan error, 1)
	go func() { errCh <- s.srv.Serve(l) }()
	select {
	case <-ctx.Done():
		cctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(cctx)
		return nil
	case err := <-errCh:
		return err
	}
}

// Close closes the listener without waiting for graceful shutdown.
func (s *Server) Close() {
	if s.lis != nil {
		_ = s.lis.Close()
	}
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.rt.CheckHealth(r.Context()); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "not_serving"})
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

type generateReq struct {
	Namespace string `json:"namespace"`
}

type generateResp struct {
	ID string `json:"id"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req generateReq
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
	}
	id, err := s.rt.IDService().Generate(r.Context(), req.Namespace)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(generateResp{ID: id.String()})
}

type generateBatchReq struct {
	Namespace string `json:"namespace"`
	Count     int    `json:"count"`
}

type generateBatchResp struct {
	IDs []string `json:"ids"`
}

func (s *Server) handleGenerateBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req generateBatchReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	ids, err := s.rt.IDService().GenerateBatch(r.Context(), req.Namespace, req.Count)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	resp := generateBatchResp{IDs: make([]string, len(ids))}
	for i, id := range ids {
		resp.IDs[i] = id.String()
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ns := r.URL.Query().Get("namespace")
	limit := 50
	tail, err := s.rt.IDService().Tail(r.Context(), ns, limit)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"recent": tail})
}

func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	msg := err.Error()
	switch {
	case errors.Is(err, idservice.ErrNamespaceNotAllowed):
		w.WriteHeader(http.StatusForbidden)
	case errors.Is(err, idservice.ErrNamespaceCapReached):
		w.WriteHeader(http.StatusTooManyRequests)
	case errors.Is(err, idservice.ErrPolicyRejected):
		w.WriteHeader(http.StatusUnprocessableEntity)
	default:
		s.log.Error("generation request failed", log.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		msg = "internal error"
	}
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
