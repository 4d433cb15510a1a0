package service

import "royalcert/internal/models"

// CanChangeStatus reports whether role may move an inspection from current to
// next. Inspector rules assume the caller is the assignee.
func CanChangeStatus(role models.UserRole, current, next models.InspectionStatus) bool {
	if current == next || !next.Valid() {
		return false
	}

	switch role {

	case models.RoleAdmin:
		return true

	case models.RolePlanner:
		switch current {
		case models.StatusPending:
			return next == models.StatusInProgress
		case models.StatusRejected:
			return next == models.StatusPending
		}
		return false

	case models.RoleInspector:
		switch current {
		case models.StatusPending, models.StatusRejected:
			return next == models.StatusInProgress
		}
		return false

	case models.RoleTechnicalMgr:
		return current == models.StatusReportWritten &&
			(next == models.StatusApproved || next == models.StatusRejected)

	default:
		return false
	}
}

// formEditable lists the statuses in which the checklist can still be filled.
func formEditable(s models.InspectionStatus) bool {
	switch s {
	case models.StatusPending, models.StatusInProgress, models.StatusRejected:
		return true
	}
	return false
}
