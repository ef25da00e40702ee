package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/notify"
)

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the demo dataset into an empty database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.Seed(ctx); err != nil {
				return fmt.Errorf("failed to seed database: %w", err)
			}

			fmt.Println(notify.FormatSuccess("Demo dataset loaded")) //nolint:forbidigo // User-facing output
			return nil
		},
	}
}
