package web

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"io"
	"net"
	"net/http"

	"github.com/Leochin1206/GeraApp/internal/dashboard"
	"github.com/Leochin1206/GeraApp/internal/models"
	"github.com/Leochin1206/GeraApp/internal/service"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type DashboardLoader interface {
	Load(ctx context.Context) (service.Result, error)
}

type Server struct {
	loader      DashboardLoader
	authTokens  []string
	requireAuth bool
	accessLog   io.Writer
	log         logrus.FieldLogger
}

// NewServer builds the dashboard server. Auth is enforced only when tokens
// are given.
func NewServer(loader DashboardLoader, authTokens []string, accessLog io.Writer, log logrus.FieldLogger) *Server {
	return &Server{
		loader:      loader,
		authTokens:  authTokens,
		requireAuth: len(authTokens) > 0,
		accessLog:   accessLog,
		log:         log,
	}
}

func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/dashboard", s.dashboardJSON(func(d models.Dashboard) any { return d })).Methods(http.MethodGet)
	api.HandleFunc("/histogram", s.dashboardJSON(func(d models.Dashboard) any { return dashboard.ChartPoints(d.Histogram) })).Methods(http.MethodGet)
	api.HandleFunc("/upcoming", s.dashboardJSON(func(d models.Dashboard) any { return d.Upcoming })).Methods(http.MethodGet)
	api.HandleFunc("/utilization", s.dashboardJSON(func(d models.Dashboard) any { return d.Utilization })).Methods(http.MethodGet)

	r.HandleFunc("/chart.svg", s.handleChart).Methods(http.MethodGet)

	var h http.Handler = s.tokenAuth(r)
	h = handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(h)
	if s.accessLog != nil {
		h = handlers.CombinedLoggingHandler(s.accessLog, h)
	}
	return h
}

func (s *Server) tokenAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.requireAuth {
			next.ServeHTTP(w, r)
			return
		}

		// Loopback peers skip the token. The Host header is client-controlled,
		// so only the connection's remote address counts.
		if isLoopback(r.RemoteAddr) {
			next.ServeHTTP(w, r)
			return
		}

		token := r.Header.Get("X-Auth-Token")
		if token == "" {
			token = r.URL.Query().Get("token")
			if token == "" {
				http.Error(w, "Unauthorized: X-Auth-Token header or token query parameter required", http.StatusUnauthorized)
				return
			}
		}

		valid := false
		for _, t := range s.authTokens {
			if subtle.ConstantTimeCompare([]byte(t), []byte(token)) == 1 {
				valid = true
				break
			}
		}

		if !valid {
			http.Error(w, "Unauthorized: Invalid token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func isLoopback(remoteAddr string) bool {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return false
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// load serves a dashboard or writes the error response itself and returns false.
func (s *Server) load(w http.ResponseWriter, r *http.Request) (models.Dashboard, bool) {
	res, err := s.loader.Load(r.Context())
	if err != nil {
		s.log.WithError(err).Error("loading dashboard")
		http.Error(w, "dashboard unavailable", http.StatusBadGateway)
		return models.Dashboard{}, false
	}
	if res.Stale {
		w.Header().Set("X-Dashboard-Stale", "true")
	}
	return res.Dashboard, true
}

func (s *Server) dashboardJSON(view func(models.Dashboard) any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, ok := s.load(w, r)
		if !ok {
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(view(d)); err != nil {
			s.log.WithError(err).Warn("writing response")
		}
	}
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	d, ok := s.load(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	io.WriteString(w, ChartSVG(dashboard.ChartPoints(d.Histogram)))
}
