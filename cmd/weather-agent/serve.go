// Copyright (c) Nimbus AI. All rights reserved.

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nimbus-ai/weather-agent/internal/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the agent and workflow over HTTP",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	srv := httpapi.NewServer(a.logger)
	srv.RegisterAgent(a.agent)
	srv.RegisterWorkflow(a.workflow)

	httpSrv := &http.Server{
		Addr:        ":" + a.cfg.Port,
		Handler:     srv.Router(),
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
		// No WriteTimeout: SSE streams can outlive any fixed deadline.
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("weather-agent started",
			"port", a.cfg.Port,
			"explorer", "http://localhost:"+a.cfg.Port+"/",
		)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()

	a.logger.Info("shutting down")
	return httpSrv.Shutdown(ctx)
}
