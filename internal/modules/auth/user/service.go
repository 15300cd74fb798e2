package user

import (
	"errors"
	"strings"
	"time"

	"github.com/postform/core/internal/models"
	sessionpkg "github.com/postform/core/internal/pkg/session"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) GetByID(id string) (*models.UserModel, error) {
	var u models.UserModel
	if err := s.db.First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (s *Service) Login(username, password, ip, ua string) (string, *models.UserModel, error) {
	var u models.UserModel
	if err := s.db.Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			time.Sleep(3 * time.Second)
			return "", nil, errUserNotFound
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return "", nil, errWrongPassword
	}
	now := time.Now()
	s.db.Model(&u).Updates(map[string]interface{}{
		"last_login_time": now,
		"last_login_ip":   ip,
	})
	u.LastLoginTime = &now
	u.LastLoginIP = ip

	token, _, err := sessionpkg.Issue(s.db, u.ID, ip, ua, sessionpkg.DefaultTTL)
	return token, &u, err
}

// Register creates a user. Roles are never taken from the request: the
// first registered user bootstraps as administrator, everyone after lands
// as subscriber until an operator grants more.
func (s *Service) Register(dto *RegisterDTO) (*models.UserModel, error) {
	username := strings.TrimSpace(dto.Username)

	var taken int64
	if err := s.db.Model(&models.UserModel{}).Where("username = ?", username).Count(&taken).Error; err != nil {
		return nil, err
	}
	if taken > 0 {
		return nil, errUsernameTaken
	}

	var count int64
	if err := s.db.Model(&models.UserModel{}).Count(&count).Error; err != nil {
		return nil, err
	}
	roles := defaultRolesForNewUser(count)

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	displayName := strings.TrimSpace(dto.DisplayName)
	if displayName == "" {
		displayName = username
	}
	u := models.UserModel{
		Username:    username,
		Password:    string(hash),
		DisplayName: displayName,
		Mail:        strings.TrimSpace(dto.Mail),
		Roles:       roles,
	}
	return &u, s.db.Create(&u).Error
}

func defaultRolesForNewUser(existing int64) models.StringArray {
	if existing == 0 {
		return models.StringArray{models.RoleAdministrator}
	}
	return models.StringArray{models.RoleSubscriber}
}
