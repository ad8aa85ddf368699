package services

import (
	"errors"
	"os"
	"time"

	"taskboard/apperr"
	"taskboard/dto"
	"taskboard/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour
)

type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// Register creates a user and signs them in. Taken emails are a Conflict.
func (s *AuthService) Register(req dto.RegisterRequest) (*dto.TokenResponse, error) {
	var existing model.User
	err := s.db.First(&existing, "email = ?", req.Email).Error
	if err == nil {
		return nil, apperr.Conflictf("user already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
	}
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflictf("user already exists")
		}
		return nil, err
	}
	return s.issueTokens(&user)
}

func (s *AuthService) Login(req dto.LoginRequest) (*dto.TokenResponse, error) {
	var user model.User
	err := s.db.First(&user, "email = ?", req.Email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Unauthorizedf("invalid credentials")
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, apperr.Unauthorizedf("invalid credentials")
	}
	return s.issueTokens(&user)
}

// Refresh rotates a refresh token: the presented token must exist, be
// unrevoked and unexpired; it is revoked and a fresh pair is issued.
func (s *AuthService) Refresh(userID uint, refreshToken string) (*dto.TokenResponse, error) {
	var stored model.RefreshToken
	err := s.db.Where("user_id = ? AND token = ?", userID, refreshToken).First(&stored).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Unauthorizedf("refresh token not recognized")
	}
	if err != nil {
		return nil, err
	}
	if stored.Revoked || stored.ExpiresAt.Before(time.Now()) {
		return nil, apperr.Unauthorizedf("refresh token expired or revoked")
	}

	var user model.User
	if err := s.db.First(&user, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}

	var tokens *dto.TokenResponse
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&stored).Update("revoked", true).Error; err != nil {
			return err
		}
		tokens, err = s.issueTokensTx(tx, &user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

// Logout revokes the presented refresh token.
func (s *AuthService) Logout(userID uint, refreshToken string) error {
	return s.db.Model(&model.RefreshToken{}).
		Where("user_id = ? AND token = ?", userID, refreshToken).
		Update("revoked", true).Error
}

// Profile returns the public slice of the authenticated user.
func (s *AuthService) Profile(userID uint) (*model.UserSummary, error) {
	var user model.UserSummary
	err := s.db.First(&user, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFoundf("user not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) issueTokens(user *model.User) (*dto.TokenResponse, error) {
	return s.issueTokensTx(s.db, user)
}

func (s *AuthService) issueTokensTx(tx *gorm.DB, user *model.User) (*dto.TokenResponse, error) {
	now := time.Now()

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": user.UserID,
		"email":  user.Email,
		"exp":    now.Add(accessTokenTTL).Unix(),
	})
	accessStr, err := access.SignedString([]byte(os.Getenv("JWT_SECRET_KEY")))
	if err != nil {
		return nil, err
	}

	jti := uuid.NewString()
	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": user.UserID,
		"jti":    jti,
		"exp":    now.Add(refreshTokenTTL).Unix(),
	})
	refreshStr, err := refresh.SignedString([]byte(os.Getenv("JWT_REFRESH_SECRET_KEY")))
	if err != nil {
		return nil, err
	}

	row := model.RefreshToken{
		UserID:    user.UserID,
		Token:     refreshStr,
		ExpiresAt: now.Add(refreshTokenTTL),
	}
	if err := tx.Create(&row).Error; err != nil {
		return nil, err
	}
	return &dto.TokenResponse{AccessToken: accessStr, RefreshToken: refreshStr}, nil
}

// PurgeDeadTokens deletes expired and revoked refresh tokens. Called by the
// scheduler.
func PurgeDeadTokens(db *gorm.DB) (int64, error) {
	res := db.Where("expires_at < ? OR revoked = ?", time.Now(), true).Delete(&model.RefreshToken{})
	return res.RowsAffected, res.Error
}
