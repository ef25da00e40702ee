package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/model"
	"github.com/crestpointmarketing/OneSource-Cloud-CRM/internal/service"
)

// GetDashboardStats computes the headline numbers shown on the dashboard.
// Conversion rate is the share of leads that reached Won.
func (s *SQLiteStorage) GetDashboardStats(ctx context.Context, now time.Time) (*service.DashboardStats, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	stats := &service.DashboardStats{}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM leads`).Scan(&stats.TotalLeads); err != nil {
		return nil, fmt.Errorf("failed to count leads: %w", err)
	}

	weekAgo := now.Add(-7 * 24 * time.Hour)
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM leads WHERE status = ? AND last_contact >= ?`,
		string(model.StatusNew), weekAgo,
	).Scan(&stats.NewLeadsThisWeek)
	if err != nil {
		return nil, fmt.Errorf("failed to count new leads: %w", err)
	}

	var won int
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM leads WHERE status = ?`, string(model.StatusWon),
	).Scan(&won)
	if err != nil {
		return nil, fmt.Errorf("failed to count won leads: %w", err)
	}
	if stats.TotalLeads > 0 {
		stats.ConversionRate = float64(won) / float64(stats.TotalLeads) * 100
	}

	err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks WHERE completed = 0`).Scan(&stats.PendingTasks)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending tasks: %w", err)
	}

	return stats, nil
}
