// Command redmetrics-demo serves a small chi application instrumented with
// httpmetrics and, when a DSN is configured, a gorm database instrumented with
// sqlmetrics. Metrics are served on the application router and on the metrics
// servers configured under "metrics".
package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/aalemi-dev/redmetrics/config"
	"github.com/aalemi-dev/redmetrics/httpmetrics"
	"github.com/aalemi-dev/redmetrics/logger"
	"github.com/aalemi-dev/redmetrics/metrics"
	"github.com/aalemi-dev/redmetrics/observability"
	"github.com/aalemi-dev/redmetrics/sqlmetrics"
	"github.com/aalemi-dev/redmetrics/tracer"
)

const slowOperationThreshold = 500 * time.Millisecond

func main() {
	configPath := flag.String("config", "redmetrics.yaml", "path to the YAML configuration")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	fx.New(options(cfg)...).Run()
}

func options(cfg *config.Config) []fx.Option {
	opts := []fx.Option{
		fx.Supply(cfg),
		fx.Provide(config.Split),
		logger.FXModule,
		metrics.FXModule,
		tracer.FXModule,
		fx.Provide(newObserver),
		httpmetrics.FXModule,
		fx.Provide(newRouter),
		fx.Invoke(registerServer),
	}
	if cfg.SQLMetrics.DSN != "" {
		opts = append(opts, sqlmetrics.FXModule, sqlmetrics.DatabaseFXModule)
	}
	return opts
}

func newObserver(log logger.Logger) observability.Observer {
	return observability.NewLogObserver(log, slowOperationThreshold)
}

type routerParams struct {
	fx.In

	Recorder *httpmetrics.Recorder
	Metrics  *metrics.Metrics
	DB       *gorm.DB `optional:"true"`
}

type order struct {
	ID     uint   `json:"id"`
	Status string `json:"status"`
}

func newRouter(p routerParams) http.Handler {
	r := chi.NewRouter()
	r.Handle(p.Metrics.MetricsPath(), p.Metrics.ScrapeHandler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/users/{id}", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"id": chi.URLParam(req, "id")})
	})
	r.Route("/orders", func(r chi.Router) {
		r.Get("/{id}", func(w http.ResponseWriter, req *http.Request) {
			if p.DB == nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no database configured"})
				return
			}
			var o order
			err := p.DB.WithContext(req.Context()).First(&o, "id = ?", chi.URLParam(req, "id")).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			case err != nil:
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			default:
				writeJSON(w, http.StatusOK, o)
			}
		})
	})
	return p.Recorder.Wrap(r)
}

func registerServer(lc fx.Lifecycle, cfg config.ServerConfig, handler http.Handler, log logger.Logger) {
	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.Info("Starting HTTP server", nil, map[string]interface{}{"address": ln.Addr().String()})
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("HTTP server stopped", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down HTTP server", nil)
			return srv.Shutdown(ctx)
		},
	})
}
