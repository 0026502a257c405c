// Package server runs the HTTP listener and the optional gRPC health
// listener until the context is cancelled, then shuts both down.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	grpcserver "github.com/shashiranjanraj/offerdesk/pkg/grpc"
	"github.com/shashiranjanraj/offerdesk/pkg/logger"
	"github.com/shashiranjanraj/offerdesk/pkg/sse"
)

// Options configures Run. GRPCAddr is empty when gRPC is disabled.
type Options struct {
	Addr            string
	Handler         http.Handler
	GRPCAddr        string
	Health          grpcserver.Checker
	ShutdownTimeout time.Duration
}

// Run blocks until ctx is done or a listener fails.
func Run(ctx context.Context, o Options) error {
	if o.ShutdownTimeout <= 0 {
		o.ShutdownTimeout = 10 * time.Second
	}

	lis, err := net.Listen("tcp", o.Addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", o.Addr, err)
	}

	var grpcLis net.Listener
	if o.GRPCAddr != "" {
		grpcLis, err = net.Listen("tcp", o.GRPCAddr)
		if err != nil {
			lis.Close()
			return fmt.Errorf("server: listen %s: %w", o.GRPCAddr, err)
		}
	}

	return Serve(ctx, lis, grpcLis, o)
}

// Serve runs on already-bound listeners. grpcLis may be nil.
func Serve(ctx context.Context, lis, grpcLis net.Listener, o Options) error {
	if o.ShutdownTimeout <= 0 {
		o.ShutdownTimeout = 10 * time.Second
	}

	// Shutdown waits for active requests; open event streams are told to end.
	stop := make(chan struct{})
	srv := &http.Server{
		Handler:           o.Handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return sse.WithStop(context.Background(), stop)
		},
	}
	srv.RegisterOnShutdown(func() { close(stop) })

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP server starting", "addr", lis.Addr().String())
		if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: http: %w", err)
		}
		return nil
	})

	var gs *grpcserver.Server
	if grpcLis != nil {
		gs = grpcserver.New(o.Health)
		g.Go(func() error { return gs.Serve(grpcLis) })
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), o.ShutdownTimeout)
		defer cancel()

		if gs != nil {
			gs.Stop(shutdownCtx)
		}
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
