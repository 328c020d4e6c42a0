// Package observability starts the process-wide tracing and profiling
// backends selected by config.
package observability

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/pprof"
	"strings"
	"time"

	"github.com/grafana/pyroscope-go"
	"github.com/riskibarqy/tournament-registration/internal/config"
	"github.com/riskibarqy/tournament-registration/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
)

// Runtime owns whatever Start switched on. A zero Runtime shuts down cleanly.
type Runtime struct {
	logger   *logging.Logger
	tracing  bool
	profiler *pyroscope.Profiler
	pprof    *http.Server
}

// Start enables Uptrace tracing, Pyroscope profiling and the pprof listener
// according to cfg. On error everything already started is stopped again.
func Start(cfg config.Config, logger *logging.Logger) (*Runtime, error) {
	if logger == nil {
		logger = logging.Default()
	}
	rt := &Runtime{logger: logger}

	if cfg.UptraceEnabled && strings.TrimSpace(cfg.UptraceDSN) != "" {
		uptrace.ConfigureOpentelemetry(
			uptrace.WithDSN(cfg.UptraceDSN),
			uptrace.WithServiceName(cfg.ServiceName),
			uptrace.WithServiceVersion(cfg.ServiceVersion),
			uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		)
		rt.tracing = true
	}

	if cfg.PyroscopeEnabled {
		profiler, err := pyroscope.Start(pyroscope.Config{
			ApplicationName:   cfg.PyroscopeAppName,
			ServerAddress:     cfg.PyroscopeServerAddress,
			AuthToken:         cfg.PyroscopeAuthToken,
			BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
			BasicAuthPassword: cfg.PyroscopeBasicAuthPassword,
			UploadRate:        cfg.PyroscopeUploadRate,
			Tags: map[string]string{
				"env":     cfg.AppEnv,
				"service": cfg.ServiceName,
				"version": cfg.ServiceVersion,
			},
			ProfileTypes: []pyroscope.ProfileType{
				pyroscope.ProfileCPU,
				pyroscope.ProfileAllocSpace,
				pyroscope.ProfileInuseSpace,
				pyroscope.ProfileGoroutines,
				pyroscope.ProfileMutexDuration,
				pyroscope.ProfileBlockDuration,
			},
		})
		if err != nil {
			_ = rt.Shutdown(context.Background())
			return nil, err
		}
		rt.profiler = profiler
	}

	if cfg.PprofEnabled {
		ln, err := net.Listen("tcp", cfg.PprofAddr)
		if err != nil {
			_ = rt.Shutdown(context.Background())
			return nil, err
		}
		srv := &http.Server{Addr: ln.Addr().String(), Handler: pprofMux(), ReadHeaderTimeout: 5 * time.Second}
		rt.pprof = srv
		go func() {
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("pprof server failed", "error", err)
			}
		}()
	}

	logger.Info("observability started",
		"tracing", rt.tracing,
		"profiling", rt.profiler != nil,
		"pprof_addr", rt.PprofAddr(),
		"service_name", cfg.ServiceName,
		"environment", cfg.AppEnv,
	)
	return rt, nil
}

// PprofAddr is the bound pprof address, empty when pprof is off.
func (rt *Runtime) PprofAddr() string {
	if rt == nil || rt.pprof == nil || rt.pprof.Addr == "" {
		return ""
	}
	return rt.pprof.Addr
}

// Shutdown stops the pprof listener, the profiler and then flushes traces.
func (rt *Runtime) Shutdown(ctx context.Context) error {
	if rt == nil {
		return nil
	}
	var errs []error
	if rt.pprof != nil {
		errs = append(errs, rt.pprof.Shutdown(ctx))
		rt.pprof = nil
	}
	if rt.profiler != nil {
		errs = append(errs, rt.profiler.Stop())
		rt.profiler = nil
	}
	if rt.tracing {
		errs = append(errs, uptrace.Shutdown(ctx))
		rt.tracing = false
	}
	return errors.Join(errs...)
}

func pprofMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	return mux
}
