package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/filter"
	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/model"
	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/notify"
)

func leadsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leads",
		Short: "Browse and inspect leads",
		Long:  `List leads with pipeline filters, show a single lead's timeline, and generate AI summaries and email drafts.`,
	}

	cmd.AddCommand(listLeadsCmd())
	cmd.AddCommand(showLeadCmd())
	cmd.AddCommand(summarizeLeadCmd())
	cmd.AddCommand(draftLeadCmd())

	return cmd
}

// addFilterFlags registers the shared filter flags used by list and export.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("status", model.FilterAll, "pipeline status to match")
	cmd.Flags().String("source", model.FilterAll, "lead source to match")
	cmd.Flags().String("tag", model.FilterAll, "tag to match")
	cmd.Flags().String("date", model.FilterAll, "last-contact bucket (today, week, month, 3months, older)")
	cmd.Flags().String("search", "", "free text matched against name and company")
}

func criteriaFromFlags(cmd *cobra.Command) model.FilterCriteria {
	status, _ := cmd.Flags().GetString("status")
	source, _ := cmd.Flags().GetString("source")
	tag, _ := cmd.Flags().GetString("tag")
	date, _ := cmd.Flags().GetString("date")
	search, _ := cmd.Flags().GetString("search")
	return model.FilterCriteria{Status: status, Source: source, Tag: tag, Date: date, Search: search}
}

func listLeadsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List leads matching the active filters",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			leads, err := store.GetLeads(ctx)
			if err != nil {
				return fmt.Errorf("failed to get leads: %w", err)
			}

			filtered := filter.Apply(leads, criteriaFromFlags(cmd), nil)
			if len(filtered) == 0 {
				fmt.Println(notify.SubtleStyle.Render("No leads match the current filters.")) //nolint:forbidigo // User-facing output
				return nil
			}

			printLeadTable(filtered)
			return nil
		},
	}
	addFilterFlags(cmd)
	return cmd
}

func printLeadTable(leads []model.Lead) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer func() { _ = w.Flush() }()

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
		notify.TableHeaderStyle.Render("ID"),
		notify.TableHeaderStyle.Render("Name"),
		notify.TableHeaderStyle.Render("Company"),
		notify.TableHeaderStyle.Render("Status"),
		notify.TableHeaderStyle.Render("Source"),
		notify.TableHeaderStyle.Render("Tags"))

	for _, lead := range leads {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			lead.ID, lead.Name, lead.Company, notify.FormatStatus(lead.Status), lead.Source,
			strings.Join(lead.Tags, ";"))
	}
}

func showLeadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a lead with its activity timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			lead, err := store.GetLeadByID(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get lead: %w", err)
			}

			//nolint:forbidigo // User-facing output
			{
				fmt.Println(notify.FormatTitle(fmt.Sprintf("%s - %s", lead.Name, lead.Company)))
				fmt.Printf("Email:        %s\n", lead.Email)
				if lead.Phone != "" {
					fmt.Printf("Phone:        %s\n", lead.Phone)
				}
				fmt.Printf("Status:       %s\n", lead.Status)
				fmt.Printf("Source:       %s\n", lead.Source)
				fmt.Printf("Owner:        %s\n", lead.Owner)
				fmt.Printf("Tags:         %s\n", strings.Join(lead.Tags, ", "))
				fmt.Printf("Last contact: %s\n", lead.LastContact.Format("2006-01-02 15:04"))

				if len(lead.Activities) > 0 {
					fmt.Println(notify.FormatTitle("Timeline"))
					for _, a := range lead.Activities {
						fmt.Printf("  %s  %-13s %s (%s)\n",
							a.Timestamp.Format("2006-01-02 15:04"), a.Type, a.Content, a.User)
					}
				}
			}
			return nil
		},
	}
}

func summarizeLeadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summarize <id>",
		Short: "Generate an AI summary of the lead relationship",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			lead, err := store.GetLeadByID(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get lead: %w", err)
			}

			generator, err := initGenerator()
			if err != nil {
				return err
			}

			fmt.Println(generator.Summarize(ctx, lead)) //nolint:forbidigo // User-facing output
			return nil
		},
	}
}

func draftLeadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draft <id>",
		Short: "Draft an outreach email for the lead",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			tone, _ := cmd.Flags().GetString("tone")

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			lead, err := store.GetLeadByID(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get lead: %w", err)
			}

			generator, err := initGenerator()
			if err != nil {
				return err
			}

			fmt.Println(generator.DraftEmail(ctx, lead, tone)) //nolint:forbidigo // User-facing output
			return nil
		},
	}
	cmd.Flags().String("tone", "professional", "tone of the drafted email")
	return cmd
}
