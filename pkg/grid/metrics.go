package grid

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	metricActiveTargets = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "playwright",
		Name:      "grid_targets_active",
		Help:      "Number of browser targets currently running.",
	})
	metricActiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "playwright",
		Name:      "grid_connections_active",
		Help:      "Client connections currently proxied to a target.",
	})
	metricLaunches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "playwright",
		Name:      "grid_launches_total",
		Help:      "Browser launch attempts by outcome.",
	}, []string{"outcome"})
)

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if !s.cfg.PublicMetrics && !s.authorize(r) {
		respondError(w, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}
	promhttp.Handler().ServeHTTP(w, r)
}
