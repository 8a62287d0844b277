/*
 * © 2026 Snyk Limited
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package server

import (
	"context"
	"net/http"
	"time"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/handler"
	"github.com/creachadair/jrpc2/jhttp"
	"github.com/pkg/errors"

	"github.com/snyk/findings-engine/application/config"
)

const shutdownTimeout = 10 * time.Second

// HealthCheck reports whether the backing stores are reachable.
type HealthCheck func(ctx context.Context) error

// HTTPServer serves the JSON-RPC methods at POST /rpc and a health check at GET /healthz.
type HTTPServer struct {
	c      *config.Config
	bridge jhttp.Bridge
	mux    *http.ServeMux
}

func NewHTTPServer(c *config.Config, handlers handler.Map, health HealthCheck) *HTTPServer {
	bridge := jhttp.NewBridge(handlers, &jhttp.BridgeOptions{
		Server: &jrpc2.ServerOptions{RPCLog: RPCLogger{c}},
	})
	mux := http.NewServeMux()
	mux.Handle("/rpc", bridge)
	mux.HandleFunc("/healthz", healthz(c, health))
	return &HTTPServer{c: c, bridge: bridge, mux: mux}
}

func (s *HTTPServer) Handler() http.Handler {
	return s.mux
}

func (s *HTTPServer) Close() error {
	return s.bridge.Close()
}

// Serve listens on the configured address until ctx is done, then shuts down gracefully.
func (s *HTTPServer) Serve(ctx context.Context) error {
	logger := s.c.Logger().With().Str("method", "server.Serve").Str("address", s.c.ListenAddress()).Logger()
	srv := &http.Server{
		Addr:              s.c.ListenAddress(),
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		logger.Info().Msg("Starting up...")
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		_ = s.Close()
		return errors.Wrap(err, "server stopped because of error")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	_ = s.Close()
	logger.Info().Msg("server stopped gracefully")
	return errors.Wrap(err, "couldn't shut down server")
}

func healthz(c *config.Config, health HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if health != nil {
			if err := health(r.Context()); err != nil {
				c.Logger().Warn().Err(err).Str("method", "healthz").Msg("unhealthy")
				http.Error(w, "unhealthy", http.StatusServiceUnavailable)
				return
			}
		}
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok"))
	}
}
