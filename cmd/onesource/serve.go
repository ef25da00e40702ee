package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/server"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the REST API server",
		Long:  `Expose the lead, view, batch and import/export operations over HTTP.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			addr, _ := cmd.Flags().GetString("addr")

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			manager, kv, err := initViews()
			if err != nil {
				return err
			}
			defer func() { _ = kv.Close() }()

			dispatcher, closeDispatcher, err := initDispatcher()
			if err != nil {
				return err
			}
			defer closeDispatcher()

			generator, err := initGenerator()
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:         addr,
				Handler:      server.New(store, manager, dispatcher, generator, nil).Router(),
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 30 * time.Second,
			}

			errChan := make(chan error, 1)
			go func() {
				slog.Info("API server listening", "addr", addr)
				errChan <- srv.ListenAndServe()
			}()

			select {
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					return fmt.Errorf("server shutdown failed: %w", err)
				}
				return nil
			case err := <-errChan:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("server failed: %w", err)
			}
		},
	}
	cmd.Flags().String("addr", ":8080", "listen address")
	return cmd
}
