package service

import (
	"context"
	"testing"
	"time"

	"royalcert/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardStatsPerRole(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addForkliftTemplate(t)

	f.addInspection(t, models.StatusPending, "1")
	f.addInspection(t, models.StatusInProgress, "2")
	f.addInspection(t, models.StatusReportWritten, "3")
	f.addInspection(t, models.StatusRejected, "4")
	approvedToday := f.addInspection(t, models.StatusApproved, "5")
	approvedEarlier := f.addInspection(t, models.StatusApproved, "6")

	for id, at := range map[string]time.Time{
		approvedToday.ID:   fixedNow.Add(-time.Hour),
		approvedEarlier.ID: fixedNow.AddDate(0, 0, -3),
	} {
		at := at
		_, err := f.inspections.Modify(ctx, id, func(i *models.Inspection) error {
			i.ApprovedAt = &at
			return nil
		})
		require.NoError(t, err)
	}

	s := NewDashboardService(f.users, f.customers, f.templates, f.inspections).(*dashboardService)
	s.now = func() time.Time { return fixedNow }

	admin, err := s.Stats(ctx, f.admin)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{
		"total_users":             5,
		"total_customers":         1,
		"total_templates":         1,
		"total_inspections":       6,
		"pending_inspections":     1,
		"in_progress_inspections": 1,
		"pending_approval":        1,
		"completed_inspections":   2,
	}, admin)

	planner, err := s.Stats(ctx, f.planner)
	require.NoError(t, err)
	assert.NotContains(t, planner, "total_users")
	assert.NotContains(t, planner, "total_templates")
	assert.EqualValues(t, 6, planner["total_inspections"])

	mine, err := s.Stats(ctx, f.inspector)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{
		"my_inspections": 6,
		"my_pending":     1,
		"my_in_progress": 1,
		"my_completed":   3,
		"my_rejected":    1,
	}, mine)

	other, err := s.Stats(ctx, f.otherInspector)
	require.NoError(t, err)
	assert.EqualValues(t, 0, other["my_inspections"])

	mgr, err := s.Stats(ctx, f.manager)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{
		"pending_approval": 1,
		"approved_today":   1,
		"rejected_reports": 1,
		"total_approved":   2,
	}, mgr)
}
