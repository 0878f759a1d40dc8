// Package metrics defines the service's Prometheus collectors.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Fallback kinds recorded by EnrichmentFallbacks.
const (
	FallbackName   = "name"
	FallbackLatest = "latest"
)

// Snapshot kinds.
const (
	KindConversations = "conversations"
	KindMessages      = "messages"
	KindNotifications = "notifications"
)

var (
	// EnrichmentFallbacks counts lookups replaced by a fallback value.
	EnrichmentFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "campus",
			Subsystem: "chat",
			Name:      "enrichment_fallbacks_total",
			Help:      "Participant or latest-message lookups that fell back to a placeholder",
		},
		[]string{"kind"},
	)

	MessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "campus",
			Subsystem: "chat",
			Name:      "messages_sent_total",
			Help:      "Messages appended to conversations",
		},
	)

	ConversationsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "campus",
			Subsystem: "chat",
			Name:      "conversations_created_total",
			Help:      "Conversations created by the resolver",
		},
	)

	// Subscriptions tracks live subscriptions currently open.
	Subscriptions = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "campus",
			Subsystem: "chat",
			Name:      "live_subscriptions",
			Help:      "Open live subscriptions",
		},
		[]string{"kind"},
	)

	SnapshotDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "campus",
			Subsystem: "chat",
			Name:      "snapshot_duration_seconds",
			Help:      "Time to build one derived snapshot",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
		},
		[]string{"kind"},
	)

	RateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "campus",
			Subsystem: "chat",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter",
		},
		[]string{"method"},
	)

	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "campus",
			Subsystem: "chat",
			Name:      "rpc_requests_total",
			Help:      "Completed RPCs by method and status code",
		},
		[]string{"method", "code"},
	)
)

// ObserveSnapshot records the time elapsed since start for kind.
func ObserveSnapshot(kind string, start time.Time) {
	SnapshotDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}

// Serve exposes /metrics on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
