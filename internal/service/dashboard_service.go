package service

import (
	"context"
	"time"

	"royalcert/internal/models"
	"royalcert/internal/repository"
)

type DashboardService interface {
	// Stats returns the counters shown on the caller's dashboard.
	Stats(ctx context.Context, actor *models.User) (map[string]int64, error)
}

type dashboardService struct {
	users       repository.UserRepository
	customers   repository.CustomerRepository
	templates   repository.TemplateRepository
	inspections repository.InspectionRepository
	now         func() time.Time
}

func NewDashboardService(
	users repository.UserRepository,
	customers repository.CustomerRepository,
	templates repository.TemplateRepository,
	inspections repository.InspectionRepository,
) DashboardService {
	return &dashboardService{
		users:       users,
		customers:   customers,
		templates:   templates,
		inspections: inspections,
		now:         time.Now,
	}
}

type counter struct {
	key   string
	count func(ctx context.Context) (int64, error)
}

func (s *dashboardService) byStatus(inspectorID string, statuses ...models.InspectionStatus) func(context.Context) (int64, error) {
	return func(ctx context.Context) (int64, error) {
		return s.inspections.Count(ctx, repository.InspectionFilter{InspectorID: inspectorID, Statuses: statuses})
	}
}

func (s *dashboardService) Stats(ctx context.Context, actor *models.User) (map[string]int64, error) {
	var counters []counter

	switch actor.Role {
	case models.RoleAdmin, models.RolePlanner:
		if actor.Role == models.RoleAdmin {
			counters = append(counters,
				counter{"total_users", s.users.Count},
				counter{"total_templates", s.templates.Count},
			)
		}
		counters = append(counters,
			counter{"total_customers", s.customers.Count},
			counter{"total_inspections", s.byStatus("")},
			counter{"pending_inspections", s.byStatus("", models.StatusPending)},
			counter{"in_progress_inspections", s.byStatus("", models.StatusInProgress)},
			counter{"pending_approval", s.byStatus("", models.StatusReportWritten)},
			counter{"completed_inspections", s.byStatus("", models.StatusApproved)},
		)

	case models.RoleInspector:
		counters = append(counters,
			counter{"my_inspections", s.byStatus(actor.ID)},
			counter{"my_pending", s.byStatus(actor.ID, models.StatusPending)},
			counter{"my_in_progress", s.byStatus(actor.ID, models.StatusInProgress)},
			counter{"my_completed", s.byStatus(actor.ID, models.StatusReportWritten, models.StatusApproved)},
			counter{"my_rejected", s.byStatus(actor.ID, models.StatusRejected)},
		)

	case models.RoleTechnicalMgr:
		now := s.now().UTC()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		counters = append(counters,
			counter{"pending_approval", s.byStatus("", models.StatusReportWritten)},
			counter{"approved_today", func(ctx context.Context) (int64, error) {
				return s.inspections.Count(ctx, repository.InspectionFilter{
					Statuses:      []models.InspectionStatus{models.StatusApproved},
					ApprovedSince: &today,
				})
			}},
			counter{"rejected_reports", s.byStatus("", models.StatusRejected)},
			counter{"total_approved", s.byStatus("", models.StatusApproved)},
		)
	}

	stats := make(map[string]int64, len(counters))
	for _, c := range counters {
		n, err := c.count(ctx)
		if err != nil {
			return nil, err
		}
		stats[c.key] = n
	}
	return stats, nil
}
