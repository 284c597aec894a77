// Package metrics exposes frame loop statistics to Prometheus
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const metricsNamespace = "nightwhale"

// Frame collects per-frame counters for the animation loop
type Frame struct {
	framesTotal   prometheus.Counter
	frameDuration prometheus.Histogram
	reloadsTotal  prometheus.Counter
	stars         prometheus.Gauge
	segments      prometheus.Gauge
	paused        prometheus.Gauge
}

// New registers the frame metrics with registry
func New(registry prometheus.Registerer) *Frame {
	m := &Frame{
		framesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "scene",
			Name:      "frames_total",
			Help:      "Total number of rendered frames",
		}),
		frameDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "scene",
			Name:      "frame_duration_seconds",
			Help:      "Time spent simulating and rendering one frame",
			Buckets:   []float64{.0005, .001, .002, .004, .008, .016, .033, .066},
		}),
		reloadsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "config",
			Name:      "reloads_total",
			Help:      "Total number of applied config reloads",
		}),
		stars: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "scene",
			Name:      "stars",
			Help:      "Number of stars in the field",
		}),
		segments: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "scene",
			Name:      "segments",
			Help:      "Number of whale segments",
		}),
		paused: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "scene",
			Name:      "paused",
			Help:      "1 while the animation is paused",
		}),
	}
	registry.MustRegister(
		m.framesTotal,
		m.frameDuration,
		m.reloadsTotal,
		m.stars,
		m.segments,
		m.paused,
	)
	return m
}

// ObserveFrame records one frame that took d
func (m *Frame) ObserveFrame(d time.Duration) {
	m.framesTotal.Inc()
	m.frameDuration.Observe(d.Seconds())
}

// SetScene records scene population after a build or resize
func (m *Frame) SetScene(stars, segments int) {
	m.stars.Set(float64(stars))
	m.segments.Set(float64(segments))
}

func (m *Frame) SetPaused(paused bool) {
	if paused {
		m.paused.Set(1)
	} else {
		m.paused.Set(0)
	}
}

func (m *Frame) Reloaded() {
	m.reloadsTotal.Inc()
}

// Server serves /metrics until closed
type Server struct {
	srv  *http.Server
	ln   net.Listener
	done chan struct{}
}

// Start binds addr and serves gatherer in a background goroutine
func Start(addr string, gatherer prometheus.Gatherer) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("error listening on %s: %w", addr, err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	s := &Server{
		srv: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		ln:   ln,
		done: make(chan struct{}),
	}
	go func() {
		defer close(s.done)
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Str("addr", addr).Msg("metrics server stopped")
		}
	}()
	log.Info().Str("addr", ln.Addr().String()).Msg("serving metrics")
	return s, nil
}

// Addr is the bound listen address, useful when started on port 0
func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

// Close shuts the server down and waits for the serve goroutine
func (s *Server) Close(ctx context.Context) error {
	err := s.srv.Shutdown(ctx)
	<-s.done
	if err != nil {
		return fmt.Errorf("error shutting down metrics server: %w", err)
	}
	return nil
}
