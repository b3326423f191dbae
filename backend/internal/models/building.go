package models

type Building struct {
	ID      int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name    string `json:"name" gorm:"size:200;not null"`
	Address string `json:"address" gorm:"size:500;not null"`

	Residents []User  `json:"-" gorm:"foreignKey:BuildingID"`
	Issues    []Issue `json:"-" gorm:"foreignKey:BuildingID;constraint:OnDelete:CASCADE"`
	Tasks     []Task  `json:"-" gorm:"foreignKey:BuildingID;constraint:OnDelete:CASCADE"`
}

func (Building) TableName() string {
	return "buildings"
}
