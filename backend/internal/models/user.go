package models

type User struct {
	ID           int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Username     string `json:"username" gorm:"uniqueIndex;size:100;not null"`
	Email        string `json:"email" gorm:"uniqueIndex;size:200;not null"`
	PasswordHash string `json:"-" gorm:"not null"`
	Role         Role   `json:"role" gorm:"size:50;not null"`
	BuildingID   *int   `json:"building_id"`

	Building      *Building `json:"-" gorm:"foreignKey:BuildingID;constraint:OnDelete:SET NULL"`
	CreatedIssues []Issue   `json:"-" gorm:"foreignKey:CreatedByUserID"`
	AssignedTasks []Task    `json:"-" gorm:"foreignKey:AssignedUserID"`
}

func (User) TableName() string {
	return "users"
}
