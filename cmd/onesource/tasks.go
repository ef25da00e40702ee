package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/model"
	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/notify"
)

func tasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage follow-up tasks",
	}

	cmd.AddCommand(listTasksCmd())
	cmd.AddCommand(addTaskCmd())
	cmd.AddCommand(completeTaskCmd())

	return cmd
}

func listTasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks ordered by due date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			showDone, _ := cmd.Flags().GetBool("all")

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			tasks, err := store.GetTasks(ctx)
			if err != nil {
				return fmt.Errorf("failed to get tasks: %w", err)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				notify.TableHeaderStyle.Render(" "),
				notify.TableHeaderStyle.Render("ID"),
				notify.TableHeaderStyle.Render("Due"),
				notify.TableHeaderStyle.Render("Priority"),
				notify.TableHeaderStyle.Render("Title"),
				notify.TableHeaderStyle.Render("Lead"))

			for _, task := range tasks {
				if task.Completed && !showDone {
					continue
				}
				mark := " "
				if task.Completed {
					mark = notify.SuccessIcon
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					mark, task.ID, task.DueDate.Format("2006-01-02"),
					task.Priority, task.Title, task.RelatedLeadName)
			}
			return nil
		},
	}
	cmd.Flags().Bool("all", false, "include completed tasks")
	return cmd
}

func addTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a follow-up task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			due, _ := cmd.Flags().GetString("due")
			priority, _ := cmd.Flags().GetString("priority")
			leadID, _ := cmd.Flags().GetString("lead")

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			task := model.Task{
				Title:    args[0],
				Priority: model.TaskPriority(priority),
			}

			if due != "" {
				dueDate, parseErr := time.ParseInLocation("2006-01-02", due, time.Local)
				if parseErr != nil {
					return fmt.Errorf("invalid due date %q (want YYYY-MM-DD): %w", due, parseErr)
				}
				task.DueDate = dueDate
			}

			if leadID != "" {
				lead, leadErr := store.GetLeadByID(ctx, leadID)
				if leadErr != nil {
					return fmt.Errorf("failed to resolve lead: %w", leadErr)
				}
				task.RelatedLeadID = lead.ID
				task.RelatedLeadName = lead.Name
			}

			if err := store.SaveTask(ctx, &task); err != nil {
				return fmt.Errorf("failed to save task: %w", err)
			}

			fmt.Println(notify.FormatSuccess(fmt.Sprintf("Added task %s", task.ID))) //nolint:forbidigo // User-facing output
			return nil
		},
	}
	cmd.Flags().String("due", "", "due date (YYYY-MM-DD, default today)")
	cmd.Flags().String("priority", "medium", "priority (low, medium, high)")
	cmd.Flags().String("lead", "", "related lead id")
	return cmd
}

func completeTaskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.CompleteTask(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to complete task: %w", err)
			}

			fmt.Println(notify.FormatSuccess("Task completed")) //nolint:forbidigo // User-facing output
			return nil
		},
	}
}
