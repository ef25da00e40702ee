package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/filter"
	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/notify"
)

func viewsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "views",
		Short: "Manage saved filter views",
		Long:  `Save the current filter flags as a named view, list views, apply one to the lead list, or delete one.`,
	}

	cmd.AddCommand(listViewsCmd())
	cmd.AddCommand(saveViewCmd())
	cmd.AddCommand(applyViewCmd())
	cmd.AddCommand(deleteViewCmd())

	return cmd
}

func listViewsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved views",
		RunE: func(_ *cobra.Command, _ []string) error {
			manager, kv, err := initViews()
			if err != nil {
				return err
			}
			defer func() { _ = kv.Close() }()

			filters, err := manager.List()
			if err != nil {
				return err
			}
			if len(filters) == 0 {
				fmt.Println(notify.SubtleStyle.Render("No saved views. Use 'onesource views save' to create one.")) //nolint:forbidigo // User-facing output
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				notify.TableHeaderStyle.Render("ID"),
				notify.TableHeaderStyle.Render("Name"),
				notify.TableHeaderStyle.Render("Status"),
				notify.TableHeaderStyle.Render("Source"),
				notify.TableHeaderStyle.Render("Tag"),
				notify.TableHeaderStyle.Render("Date"),
				notify.TableHeaderStyle.Render("Search"))
			for _, f := range filters {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					f.ID, f.Name, f.Criteria.Status, f.Criteria.Source,
					f.Criteria.Tag, f.Criteria.Date, f.Criteria.Search)
			}
			return nil
		},
	}
}

func saveViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save the current filter flags as a named view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, kv, err := initViews()
			if err != nil {
				return err
			}
			defer func() { _ = kv.Close() }()

			if _, err := manager.Save(args[0], criteriaFromFlags(cmd)); err != nil {
				return err
			}

			fmt.Println(notify.FormatSuccess("Current view saved successfully")) //nolint:forbidigo // User-facing output
			return nil
		},
	}
	addFilterFlags(cmd)
	return cmd
}

func applyViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply <id>",
		Short: "List leads through a saved view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			manager, kv, err := initViews()
			if err != nil {
				return err
			}
			defer func() { _ = kv.Close() }()

			criteria, err := manager.Apply(args[0])
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			leads, err := store.GetLeads(ctx)
			if err != nil {
				return fmt.Errorf("failed to get leads: %w", err)
			}

			filtered := filter.Apply(leads, criteria, nil)
			if len(filtered) == 0 {
				fmt.Println(notify.SubtleStyle.Render("No leads match this view.")) //nolint:forbidigo // User-facing output
				return nil
			}
			printLeadTable(filtered)
			return nil
		},
	}
}

func deleteViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved view",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			manager, kv, err := initViews()
			if err != nil {
				return err
			}
			defer func() { _ = kv.Close() }()

			if err := manager.Delete(args[0]); err != nil {
				return err
			}

			fmt.Println(notify.FormatSuccess("Saved view deleted")) //nolint:forbidigo // User-facing output
			return nil
		},
	}
}
