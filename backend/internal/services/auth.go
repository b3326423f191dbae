package services

import (
	"errors"
	"fmt"
	"time"

	"housing-manager/backend/internal/models"

	"github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	tokenIssuer   = "housing-manager"
	tokenAudience = "housing-manager-clients"
)

type AuthService interface {
	LoginUser(db *gorm.DB, email, password string) (*models.User, error)
	GenerateToken(db *gorm.DB, user *models.User) (string, string, error)
	RefreshToken(db *gorm.DB, refreshToken string) (string, string, int64, error)
	RevokeToken(db *gorm.DB, refreshToken string) error
}

type AuthServiceImpl struct {
	secret        string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewAuthService(secret string, accessExpiry, refreshExpiry time.Duration) *AuthServiceImpl {
	return &AuthServiceImpl{
		secret:        secret,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func VerifyPassword(hashedPassword, plainPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	return err == nil
}

// LoginUser never reveals whether the email or the password was wrong.
func (s *AuthServiceImpl) LoginUser(db *gorm.DB, email, password string) (*models.User, error) {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !VerifyPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// GenerateToken issues an access/refresh token pair. The refresh token's JTI
// is persisted so it can be rotated and revoked.
func (s *AuthServiceImpl) GenerateToken(db *gorm.DB, user *models.User) (string, string, error) {
	now := time.Now()

	accessClaims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     string(user.Role),
		"iat":      now.Unix(),
		"exp":      now.Add(s.accessExpiry).Unix(),
		"iss":      tokenIssuer,
		"aud":      tokenAudience,
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString([]byte(s.secret))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign access token: %w", err)
	}

	jti, err := uuid.NewV4()
	if err != nil {
		return "", "", fmt.Errorf("failed to generate jti: %w", err)
	}

	refreshExpiry := now.Add(s.refreshExpiry)
	refreshClaims := jwt.MapClaims{
		"user_id": user.ID,
		"type":    "refresh",
		"jti":     jti.String(),
		"iat":     now.Unix(),
		"exp":     refreshExpiry.Unix(),
		"iss":     tokenIssuer,
		"aud":     tokenAudience,
	}

	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString([]byte(s.secret))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign refresh token: %w", err)
	}

	record := models.Token{
		UserID:       user.ID,
		JTI:          jti,
		RefreshToken: refreshToken,
		ExpiresAt:    refreshExpiry,
	}
	if err := db.Create(&record).Error; err != nil {
		return "", "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return accessToken, refreshToken, nil
}

// RefreshToken rotates a refresh token: the old JTI is consumed and a fresh
// pair is issued for the same user.
func (s *AuthServiceImpl) RefreshToken(db *gorm.DB, refreshToken string) (string, string, int64, error) {
	claims, err := s.parseRefreshClaims(refreshToken)
	if err != nil {
		return "", "", 0, err
	}

	jti, userID, err := refreshTokenIdentity(claims)
	if err != nil {
		return "", "", 0, err
	}

	var dbToken models.Token
	err = db.Where("jti = ? AND user_id = ? AND expires_at > ?", jti, userID, time.Now()).First(&dbToken).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", 0, fmt.Errorf("refresh token not found or expired")
		}
		return "", "", 0, err
	}

	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return "", "", 0, fmt.Errorf("token user not found: %w", err)
	}

	accessToken, newRefreshToken, err := s.GenerateToken(db, &user)
	if err != nil {
		return "", "", 0, fmt.Errorf("failed to generate new tokens: %w", err)
	}

	if err := db.Delete(&dbToken).Error; err != nil {
		return "", "", 0, fmt.Errorf("failed to delete old token: %w", err)
	}

	return accessToken, newRefreshToken, int64(s.accessExpiry.Seconds()), nil
}

func (s *AuthServiceImpl) RevokeToken(db *gorm.DB, refreshToken string) error {
	claims, err := s.parseRefreshClaims(refreshToken)
	if err != nil {
		return err
	}

	jti, _, err := refreshTokenIdentity(claims)
	if err != nil {
		return err
	}

	return db.Where("jti = ?", jti).Delete(&models.Token{}).Error
}

func (s *AuthServiceImpl) parseRefreshClaims(refreshToken string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid refresh token claims")
	}

	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != "refresh" {
		return nil, fmt.Errorf("invalid token type")
	}

	return claims, nil
}

func refreshTokenIdentity(claims jwt.MapClaims) (uuid.UUID, int, error) {
	jtiStr, ok := claims["jti"].(string)
	if !ok {
		return uuid.Nil, 0, fmt.Errorf("missing jti in token")
	}

	jti, err := uuid.FromString(jtiStr)
	if err != nil {
		return uuid.Nil, 0, fmt.Errorf("invalid jti format: %w", err)
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return uuid.Nil, 0, fmt.Errorf("missing user_id in token")
	}

	return jti, int(userIDFloat), nil
}
