package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type Config struct {
	Addr              string
	ReadHeaderTimeout time.Duration
	RequestTimeout    time.Duration
}

type HTTPServer struct {
	httpServer *http.Server
	log        *zap.Logger
}

func NewHTTPServer(cfg Config, handler http.Handler, log *zap.Logger) *HTTPServer {
	if cfg.RequestTimeout > 0 {
		handler = http.TimeoutHandler(handler, cfg.RequestTimeout, `{"message":"Request timed out"}`)
	}
	s := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ErrorLog:          zap.NewStdLog(log.Named("http")),
	}
	return &HTTPServer{httpServer: s, log: log}
}

// Run serves until the server is closed. stopFn is called on return so an
// unexpected listener failure also stops the rest of the process.
func (s *HTTPServer) Run(stopFn context.CancelFunc) {
	const op = "HTTPServer.Run"
	log := s.log.With(zap.String("op", op))

	defer stopFn()
	log.Info("http server listening", zap.String("addr", s.httpServer.Addr))
	err := s.httpServer.ListenAndServe()
	if err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			return
		}
		log.Error("unexpected server shutdown", zap.Error(err))
	}
}

func (s *HTTPServer) Close(ctx context.Context) {
	const op = "HTTPServer.Close"
	log := s.log.With(zap.String("op", op))

	log.Info("closing http server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown gracefully", zap.Error(err))
		return
	}
	log.Info("http server is closed")
}
