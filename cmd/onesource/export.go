package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/codec"
	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/filter"
	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/model"
	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/notify"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export leads to a CSV file",
		Long: `Write leads to a date-stamped CSV file.

With --id flags the named leads are exported in the given order;
otherwise the current filtered view is exported. Exporting an empty set
is an error, never an empty file.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			ids, _ := cmd.Flags().GetStringSlice("id")
			out, _ := cmd.Flags().GetString("out")

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			var leads []model.Lead
			if len(ids) > 0 {
				leads, err = store.GetLeadsByIDs(ctx, ids)
			} else {
				leads, err = store.GetLeads(ctx)
				if err == nil {
					leads = filter.Apply(leads, criteriaFromFlags(cmd), nil)
				}
			}
			if err != nil {
				return fmt.Errorf("failed to load leads: %w", err)
			}

			content, err := codec.ExportCSV(leads)
			if err != nil {
				fmt.Println(notify.FormatError(err.Error())) //nolint:forbidigo // User-facing output
				return err
			}

			if out == "" {
				out = codec.ExportFilename(time.Now())
			}
			if err := os.WriteFile(out, content, 0o600); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}

			//nolint:forbidigo // User-facing output
			fmt.Println(notify.FormatSuccess(fmt.Sprintf("Exported %d leads to %s", len(leads), out)))
			return nil
		},
	}
	addFilterFlags(cmd)
	cmd.Flags().StringSlice("id", nil, "export only these lead ids, in order")
	cmd.Flags().String("out", "", "output path (default: leads_export_<date>.csv)")
	return cmd
}
