package api

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	tcarrow "github.com/tchain/go-tchain/arrow"
	"github.com/tchain/go-tchain/chain"
)

// Server exposes the node's HTTP surface: Prometheus metrics, a health
// probe, and the ledger exported as an Arrow IPC stream.
type Server struct {
	server *http.Server
	log    *slog.Logger
}

// NewServer creates a server on addr serving metrics from gatherer and the
// ledger export from ledger.
func NewServer(addr string, gatherer prometheus.Gatherer, ledger *chain.Ledger, log *slog.Logger) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.HandleFunc("/v1/ledger", ledgerHandler(ledger, log))

	return &Server{
		server: &http.Server{
			Addr:    addr,
			Handler: mux,
		},
		log: log,
	}
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// StartAsync starts the server in a background goroutine.
func (s *Server) StartAsync() {
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Error("api server stopped", "error", err)
		}
	}()
}

// Stop closes the server.
func (s *Server) Stop() error {
	return s.server.Close()
}

// ledgerHandler serves a point-in-time ledger snapshot as an Arrow IPC
// stream. Reading the snapshot never mutates the ledger.
func ledgerHandler(ledger *chain.Ledger, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := tcarrow.SerializeLedger(ledger.Blocks())
		if err != nil {
			log.Error("ledger export failed", "error", err)
			http.Error(w, "ledger export failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.apache.arrow.stream")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}
}
