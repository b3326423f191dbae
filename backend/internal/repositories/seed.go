package repositories

import (
	"log"

	"housing-manager/backend/internal/models"
	"housing-manager/backend/internal/services"

	"gorm.io/gorm"
)

// SeedData populates a development database with one building and one user
// per role. It is a no-op once any building exists.
func SeedData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Building{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		building := models.Building{
			Name:    "Sunrise Residence",
			Address: "123 University Ave, College Town",
		}
		if err := tx.Create(&building).Error; err != nil {
			return err
		}

		seedUsers := []struct {
			username string
			email    string
			password string
			role     models.Role
		}{
			{"student1", "student1@housing.test", "Student123!", models.RoleStudent},
			{"staff1", "staff1@housing.test", "Staff123!", models.RoleStaff},
			{"maintenance1", "maintenance1@housing.test", "Maintenance123!", models.RoleMaintenance},
		}

		for _, u := range seedUsers {
			hashed, err := services.HashPassword(u.password)
			if err != nil {
				return err
			}

			user := models.User{
				Username:     u.username,
				Email:        u.email,
				PasswordHash: hashed,
				Role:         u.role,
				BuildingID:   &building.ID,
			}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
		}

		log.Printf("🌱 Seeded building %q with %d users", building.Name, len(seedUsers))
		return nil
	})
}
