package metrics

import (
	"RaceBus/internal/core/ports"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prom exports bus counters on its own prometheus registry.
type Prom struct {
	reg *prometheus.Registry

	published     *prometheus.CounterVec
	deliveries    *prometheus.CounterVec
	panics        *prometheus.CounterVec
	subscriptions *prometheus.GaugeVec
}

var _ ports.Metrics = (*Prom)(nil)

// NewProm creates the bus metrics and registers them on a fresh registry.
func NewProm() *Prom {
	reg := prometheus.NewRegistry()
	labels := []string{"channel", "key"}
	p := &Prom{
		reg: reg,
		published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bus_published_total", Help: "Total publish/trigger calls",
		}, labels),
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bus_deliveries_total", Help: "Total handler invocations that returned normally",
		}, labels),
		panics: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bus_handler_panics_total", Help: "Total handler panics recovered during dispatch",
		}, labels),
		subscriptions: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "bus_subscriptions", Help: "Live subscriptions per channel",
		}, []string{"channel"}),
	}
	reg.MustRegister(p.published, p.deliveries, p.panics, p.subscriptions)
	return p
}

// Handler serves the registry in the prometheus text format.
func (p *Prom) Handler() http.Handler { return promhttp.HandlerFor(p.reg, promhttp.HandlerOpts{}) }

// Serve exposes Handler on addr until ctx is done, then shuts the server down.
// It returns an error if the listener fails or the shutdown does not complete.
func (p *Prom) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: p.Handler()}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return fmt.Errorf("metrics server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("metrics server shutdown failed: %w", err)
	}
	return nil
}

// Registry is exposed for tests and for callers that gather directly.
func (p *Prom) Registry() *prometheus.Registry { return p.reg }

// Published counts one publish or trigger.
func (p *Prom) Published(channel, key string) {
	p.published.WithLabelValues(channel, key).Inc()
}

// Delivered counts one handler that returned normally.
func (p *Prom) Delivered(channel, key string) {
	p.deliveries.WithLabelValues(channel, key).Inc()
}

// HandlerPanicked counts one recovered handler panic.
func (p *Prom) HandlerPanicked(channel, key string) {
	p.panics.WithLabelValues(channel, key).Inc()
}

// SetSubscriptions sets the live subscription gauge for a channel.
func (p *Prom) SetSubscriptions(channel string, n int) {
	p.subscriptions.WithLabelValues(channel).Set(float64(n))
}
