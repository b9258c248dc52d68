package commands

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/openlighting/rdmresponder/internal/rdm"
)

// queuePollInterval is how often serve samples AckTimerResponder queue
// depth for the rdmresponder_rdm_ack_timer_queue_depth gauge.
const queuePollInterval = 2 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the simulated fleet and expose Prometheus metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			g, gctx := errgroup.WithContext(ctx)

			g.Go(func() error { return runMetricsServer(gctx) })
			g.Go(func() error { return pollQueueDepths(gctx) })

			logger.Info("rdmsim serving", "responders", len(fleet), "metrics_addr", cfg.Metrics.Addr)

			if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}

// runMetricsServer serves /metrics until ctx is canceled, then shuts down
// gracefully.
func runMetricsServer(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle(cfg.Metrics.Path, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	srv := &http.Server{Addr: cfg.Metrics.Addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// pollQueueDepths periodically reports every AckTimerResponder's live
// queue depth, since nothing else in the dispatch path observes it between
// requests.
func pollQueueDepths(ctx context.Context) error {
	ticker := time.NewTicker(queuePollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			for uid, responder := range fleet {
				if at, ok := responder.(*rdm.AckTimerResponder); ok {
					metrics.SetQueueDepth(uid, at.QueueDepth())
				}
			}
		}
	}
}
