package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/codec"
	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/notify"
)

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import leads from a CSV or JSON file",
		Long: `Parse a lead file and add its records to the database.

CSV files need a header row; columns are matched by name (name, company,
email, phone, status, source, tags). Rows without both a name and an
email are skipped. JSON files hold an array of lead objects. A malformed
file aborts the import without adding anything.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := args[0]

			content, err := os.ReadFile(path) //nolint:gosec // User-supplied import path
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}

			leads, err := codec.ImportLeads(path, content, time.Now())
			if err != nil {
				fmt.Println(notify.FormatError(err.Error())) //nolint:forbidigo // User-facing output
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.SaveLeads(ctx, leads); err != nil {
				return fmt.Errorf("failed to save imported leads: %w", err)
			}

			//nolint:forbidigo // User-facing output
			fmt.Println(notify.FormatSuccess(fmt.Sprintf("Imported %d leads successfully", len(leads))))
			return nil
		},
	}
}
