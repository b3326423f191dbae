package services

import (
	"housing-manager/backend/internal/models"

	"gorm.io/gorm"
)

// Access policy. Pure functions over the resolved request identity; the
// services consult these before touching any row, and the list operations
// use the scope helpers to narrow their queries.

// CanViewIssue reports whether ident may read a single issue. Students only
// see issues they created; staff and maintenance see everything.
func CanViewIssue(ident models.Identity, issue *models.Issue) bool {
	switch ident.Role {
	case models.RoleStaff, models.RoleMaintenance:
		return true
	case models.RoleStudent:
		return issue.CreatedByUserID == ident.UserID
	}
	return false
}

// CanCreateIssue: residents report issues; staff and maintenance do not.
func CanCreateIssue(role models.Role) bool {
	switch role {
	case models.RoleStudent:
		return true
	case models.RoleStaff, models.RoleMaintenance:
		return false
	}
	return false
}

// CanUpdateIssue: only staff triage, assign and progress issues.
func CanUpdateIssue(role models.Role) bool {
	switch role {
	case models.RoleStaff:
		return true
	case models.RoleStudent, models.RoleMaintenance:
		return false
	}
	return false
}

// CanCreateTask: only staff schedule cleaning and garbage tasks.
func CanCreateTask(role models.Role) bool {
	return CanUpdateIssue(role)
}

// CanCompleteTask: a task is completed by its assigned student, nobody else.
func CanCompleteTask(ident models.Identity, task *models.Task) bool {
	if ident.Role != models.RoleStudent {
		return false
	}
	return task.AssignedUserID != nil && *task.AssignedUserID == ident.UserID
}

// CanVerifyTask: staff sign off on completed work.
func CanVerifyTask(role models.Role) bool {
	return CanUpdateIssue(role)
}

// CanViewDashboard: the operational summary is a staff surface.
func CanViewDashboard(role models.Role) bool {
	return CanUpdateIssue(role)
}

// ScopeIssues narrows an issue query to the rows ident may list.
func ScopeIssues(db *gorm.DB, ident models.Identity) *gorm.DB {
	switch ident.Role {
	case models.RoleStudent:
		return db.Where("created_by_user_id = ?", ident.UserID)
	case models.RoleStaff, models.RoleMaintenance:
		return db
	}
	// Unknown roles see nothing.
	return db.Where("1 = 0")
}

// ScopeTasks narrows a task query to the rows ident may list.
func ScopeTasks(db *gorm.DB, ident models.Identity) *gorm.DB {
	switch ident.Role {
	case models.RoleStudent:
		return db.Where("assigned_user_id = ?", ident.UserID)
	case models.RoleStaff, models.RoleMaintenance:
		return db
	}
	return db.Where("1 = 0")
}
