package main

import (
	"context"
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/batch"
	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/filter"
	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/model"
	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/notify"
	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/selection"
	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/service"
	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/storage"
)

func batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Run a bulk operation on selected leads",
		Long: `Select leads with repeated --id flags and apply one operation to the
whole selection. The selection is consumed when the operation succeeds.`,
	}

	cmd.PersistentFlags().StringSlice("id", nil, "lead id to select (repeatable)")
	cmd.PersistentFlags().Bool("all", false, "select every lead in the current filtered view")
	addFilterFlags(cmd)

	cmd.AddCommand(batchDeleteCmd())
	cmd.AddCommand(batchTagCmd())
	cmd.AddCommand(batchEmailCmd())

	return cmd
}

// buildEngine resolves the selection from flags and wires a batch engine
// around it. The returned cleanup closes storage and the dispatcher.
func buildEngine(cmd *cobra.Command, confirmer service.Confirmer, withProgress bool) (*batch.Engine, func(), error) {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return nil, nil, err
	}

	dispatcher, closeDispatcher, err := initDispatcher()
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	if withProgress {
		dispatcher = &progressDispatcher{inner: dispatcher}
	}

	sel, err := resolveSelection(ctx, cmd, store)
	if err != nil {
		closeDispatcher()
		_ = store.Close()
		return nil, nil, err
	}

	engine := batch.NewEngine(store, dispatcher, notify.NewTerminal(nil), confirmer, sel)
	cleanup := func() {
		closeDispatcher()
		_ = store.Close()
	}
	return engine, cleanup, nil
}

func resolveSelection(ctx context.Context, cmd *cobra.Command, store *storage.SQLiteStorage) (*selection.Tracker, error) {
	ids, _ := cmd.Flags().GetStringSlice("id")
	all, _ := cmd.Flags().GetBool("all")

	sel := selection.NewTracker()
	if all {
		leads, err := store.GetLeads(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get leads: %w", err)
		}
		filtered := filter.Apply(leads, criteriaFromFlags(cmd), nil)
		visible := make([]string, len(filtered))
		for i := range filtered {
			visible[i] = filtered[i].ID
		}
		sel.SelectAll(visible)
		return sel, nil
	}

	for _, id := range ids {
		if !sel.Has(id) {
			sel.Toggle(id)
		}
	}
	return sel, nil
}

func batchDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the selected leads",
		RunE: func(cmd *cobra.Command, _ []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			var confirmer service.Confirmer = notify.NewTerminalConfirmer(nil, nil)
			if yes {
				confirmer = notify.StaticConfirmer{Answer: true}
			}

			engine, cleanup, err := buildEngine(cmd, confirmer, false)
			if err != nil {
				return err
			}
			defer cleanup()

			return engine.Delete(cmd.Context())
		},
	}
	cmd.Flags().Bool("yes", false, "skip the confirmation prompt")
	return cmd
}

func batchTagCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tag <name>",
		Short: "Add a tag to the selected leads",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, cleanup, err := buildEngine(cmd, notify.StaticConfirmer{Answer: true}, false)
			if err != nil {
				return err
			}
			defer cleanup()

			return engine.Tag(cmd.Context(), args[0])
		},
	}
}

func batchEmailCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "email",
		Short: "Queue an outreach email for the selected leads",
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, cleanup, err := buildEngine(cmd, notify.StaticConfirmer{Answer: true}, true)
			if err != nil {
				return err
			}
			defer cleanup()

			return engine.Email(cmd.Context())
		},
	}
}

// progressDispatcher shows a progress bar while the inner dispatcher
// queues one email per lead.
type progressDispatcher struct {
	inner service.Dispatcher
}

func (d *progressDispatcher) QueueEmails(ctx context.Context, leads []model.Lead) (int, error) {
	bar := progressbar.NewOptions(len(leads),
		progressbar.OptionSetDescription("Queueing emails"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	queued := 0
	for i := range leads {
		n, err := d.inner.QueueEmails(ctx, leads[i:i+1])
		queued += n
		if err != nil {
			return queued, err
		}
		_ = bar.Add(1)
	}
	return queued, nil
}
