package services

import (
	"time"

	"housing-manager/backend/internal/models"

	"gorm.io/gorm"
)

// DashboardSummary is the staff operational overview: an issue status
// histogram plus pending-task counts summed across both task kinds.
type DashboardSummary struct {
	OpenIssues       int64 `json:"openIssues"`
	InProgressIssues int64 `json:"inProgressIssues"`
	ResolvedIssues   int64 `json:"resolvedIssues"`
	ClosedIssues     int64 `json:"closedIssues"`
	OverdueTasks     int64 `json:"overdueTasks"`
	TasksDueToday    int64 `json:"tasksDueToday"`
}

type DashboardService interface {
	Summary(db *gorm.DB, ident models.Identity) (*DashboardSummary, error)
	// Invalidate discards any cached summary; a no-op without a cache.
	Invalidate()
}

type DashboardServiceImpl struct{}

func NewDashboardService() *DashboardServiceImpl {
	return &DashboardServiceImpl{}
}

func (s *DashboardServiceImpl) Summary(db *gorm.DB, ident models.Identity) (*DashboardSummary, error) {
	if !CanViewDashboard(ident.Role) {
		return nil, ErrForbidden
	}

	now := time.Now().UTC()
	today := now.Truncate(24 * time.Hour)
	tomorrow := today.AddDate(0, 0, 1)

	var summary DashboardSummary

	issueCounts := []struct {
		status string
		dest   *int64
	}{
		{models.IssueStatusOpen, &summary.OpenIssues},
		{models.IssueStatusInProgress, &summary.InProgressIssues},
		{models.IssueStatusResolved, &summary.ResolvedIssues},
		{models.IssueStatusClosed, &summary.ClosedIssues},
	}
	for _, c := range issueCounts {
		if err := db.Model(&models.Issue{}).Where("status = ?", c.status).Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	err := db.Model(&models.Task{}).
		Where("status = ? AND due_date < ?", models.TaskStatusPending, now).
		Count(&summary.OverdueTasks).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&models.Task{}).
		Where("status = ? AND due_date >= ? AND due_date < ?", models.TaskStatusPending, today, tomorrow).
		Count(&summary.TasksDueToday).Error
	if err != nil {
		return nil, err
	}

	return &summary, nil
}

func (s *DashboardServiceImpl) Invalidate() {}
