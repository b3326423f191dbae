package services

import (
	"errors"

	"housing-manager/backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrDuplicateUsername = errors.New("username already exists")
)

type RegistrationInput struct {
	Username   string
	Email      string
	Password   string
	BuildingID *int
}

type RegisterService interface {
	RegisterUser(db *gorm.DB, input RegistrationInput) (*models.User, error)
}

type RegisterServiceImpl struct{}

func NewRegisterService() *RegisterServiceImpl {
	return &RegisterServiceImpl{}
}

// RegisterUser creates a Student account. Staff and Maintenance accounts are
// provisioned out of band, never through self-registration.
func (s *RegisterServiceImpl) RegisterUser(db *gorm.DB, input RegistrationInput) (*models.User, error) {
	var existing models.User
	if err := db.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := db.Where("username = ?", input.Username).First(&existing).Error; err == nil {
		return nil, ErrDuplicateUsername
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if input.BuildingID != nil {
		var building models.Building
		if err := db.First(&building, "id = ?", *input.BuildingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, NewValidationError("Building not found")
			}
			return nil, err
		}
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashed,
		Role:         models.RoleStudent,
		BuildingID:   input.BuildingID,
	}

	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}
