package models

import "time"

// TaskKind discriminates the two recurring task flavors. They share one
// lifecycle and one table; only the wire-level locus field name differs
// (shared space for cleaning, location for garbage).
type TaskKind string

const (
	TaskKindCleaning TaskKind = "cleaning"
	TaskKindGarbage  TaskKind = "garbage"
)

func ParseTaskKind(s string) (TaskKind, bool) {
	switch TaskKind(s) {
	case TaskKindCleaning, TaskKindGarbage:
		return TaskKind(s), true
	}
	return "", false
}

const (
	TaskStatusPending   = "Pending"
	TaskStatusCompleted = "Completed"
	TaskStatusVerified  = "Verified"
)

type Task struct {
	ID             int        `json:"id" gorm:"primaryKey;autoIncrement"`
	Kind           TaskKind   `json:"kind" gorm:"size:20;not null;index"`
	Description    string     `json:"description" gorm:"not null"`
	Locus          string     `json:"locus" gorm:"size:200;not null"`
	Status         string     `json:"status" gorm:"size:50;not null"`
	BuildingID     int        `json:"building_id" gorm:"not null"`
	AssignedUserID *int       `json:"assigned_user_id"`
	DueDate        time.Time  `json:"due_date"`
	CompletedAt    *time.Time `json:"completed_at"`
	CreatedAt      time.Time  `json:"created_at"`

	Building     *Building `json:"-" gorm:"foreignKey:BuildingID"`
	AssignedUser *User     `json:"-" gorm:"foreignKey:AssignedUserID;constraint:OnDelete:SET NULL"`
}

func (Task) TableName() string {
	return "tasks"
}
