package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/ridloal/pharma-catalog-go-microservices/internal/platform/logger"
)

// Run serves handler on addr until SIGINT/SIGTERM, then shuts the HTTP server and
// every extra operation down within timeout. It returns the process exit code.
func Run(name, addr string, handler http.Handler, timeout time.Duration, extra map[string]gfshutdown.Operation) int {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("%s listening on %s", name, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(name+" failed to start or crashed", err)
		}
	}()

	ops := map[string]gfshutdown.Operation{
		"http-server": func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	}
	for k, op := range extra {
		ops[k] = op
	}

	exitCode := <-gfshutdown.GracefulShutdown(context.Background(), timeout, ops)
	logger.Info("%s exited with code %d", name, exitCode)
	logger.Sync()
	return exitCode
}
