// Package debug provides diagnostics for nfsiostatlog: styled record dumps,
// cycle timings, parser tracing, sanity checks and a pprof endpoint.
package debug

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	_ "net/http/pprof"
	"time"

	"github.com/sirupsen/logrus"
)

// StartPprofServer serves net/http/pprof on addr until the returned stop
// function is called. The listener is bound before returning so address
// conflicts surface immediately.
func StartPprofServer(addr string, logger *logrus.Logger) (func(), error) {
	if addr == "" {
		addr = "localhost:6060"
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("pprof server failed: %w", err)
	}

	server := &http.Server{
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) && logger != nil {
			logger.WithError(err).Warn("pprof server stopped")
		}
	}()
	if logger != nil {
		logger.WithField("addr", ln.Addr().String()).Info("pprof server listening")
	}

	stop := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}
	return stop, nil
}
