package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/inkwell-blog/core/internal/models"
	sessionpkg "github.com/inkwell-blog/core/internal/pkg/session"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// failureDelay slows down credential guessing.
var failureDelay = 3 * time.Second

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) Signup(dto *SignupDTO) (*models.UserModel, *models.ProfileModel, error) {
	email := strings.ToLower(strings.TrimSpace(dto.Email))
	username := strings.TrimSpace(dto.Username)

	var count int64
	if err := s.db.Model(&models.UserModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, nil, err
	}
	if count > 0 {
		return nil, nil, errEmailTaken
	}
	if err := s.db.Model(&models.ProfileModel{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, nil, err
	}
	if count > 0 {
		return nil, nil, errUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	u := models.UserModel{Email: email, Password: string(hash)}
	p := models.ProfileModel{Username: username, FullName: dto.FullName}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&u).Error; err != nil {
			return err
		}
		p.ID = u.ID
		return tx.Create(&p).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &u, &p, nil
}

func (s *Service) Login(email, password, ip, ua string) (string, *models.UserModel, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var u models.UserModel
	if err := s.db.Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			time.Sleep(failureDelay)
			return "", nil, errBadCredentials
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		time.Sleep(failureDelay)
		return "", nil, errBadCredentials
	}

	token, _, err := sessionpkg.Issue(s.db, u.ID, ip, ua, sessionpkg.DefaultTTL)
	if err != nil {
		return "", nil, err
	}

	now := time.Now()
	_ = s.db.Model(&u).Select("last_login_time", "last_login_ip").
		Updates(models.UserModel{LastLoginTime: &now, LastLoginIP: ip}).Error

	return token, &u, nil
}

func (s *Service) Logout(userID, sessionID string) error {
	if err := sessionpkg.Revoke(s.db, userID, sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errSessionGone
		}
		return err
	}
	return nil
}

func (s *Service) Me(userID string) (*models.UserModel, *models.ProfileModel, error) {
	var u models.UserModel
	if err := s.db.First(&u, "id = ?", userID).Error; err != nil {
		return nil, nil, err
	}
	var p models.ProfileModel
	if err := s.db.First(&p, "id = ?", userID).Error; err != nil {
		return nil, nil, err
	}
	return &u, &p, nil
}

func (s *Service) Sessions(userID string) ([]models.UserSession, error) {
	return sessionpkg.ListActive(s.db, userID)
}

func (s *Service) RevokeSession(userID, sessionID string) error {
	if err := sessionpkg.Revoke(s.db, userID, sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errSessionGone
		}
		return err
	}
	return nil
}

func (s *Service) RevokeOtherSessions(userID, keepSessionID string) error {
	return sessionpkg.RevokeAllExcept(s.db, userID, keepSessionID)
}
