package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"socialhub/db"
	"socialhub/models"
)

type UserService struct{}

func NewUserService() *UserService {
	return &UserService{}
}

// Register создает пользователя с ролью user
func (us *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return nil, ErrInvalidInput
	}

	var existing int64
	err := db.GetReadOnlyDB(ctx).Model(&models.User{}).Where("username = ?", username).Count(&existing).Error
	if err != nil {
		return nil, fmt.Errorf("error checking username: %w", err)
	}
	if existing > 0 {
		return nil, ErrConflict
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         models.ROLE_USER,
	}
	if err := db.GetWriteDB(ctx).Create(user).Error; err != nil {
		// уникальный индекс мог сработать в гонке с параллельной регистрацией
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return user, nil
}

// Login проверяет пароль и выдает токен. Неизвестный логин и неверный
// пароль неразличимы для клиента.
func (us *UserService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return "", nil, ErrInvalidInput
	}

	var user models.User
	err := db.GetReadOnlyDB(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrUnauthenticated
		}
		return "", nil, err
	}

	ok, err := CheckPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return "", nil, ErrUnauthenticated
	}

	token, err := IssueToken(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

func (us *UserService) GetByID(ctx context.Context, userID int64) (*models.User, error) {
	var user models.User
	err := db.GetReadOnlyDB(ctx).First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

type ProfileUpdate struct {
	Username *string
	Avatar   *string
	Password *string
}

// UpdateProfile применяет частичное обновление профиля
func (us *UserService) UpdateProfile(ctx context.Context, userID int64, upd ProfileUpdate) (*models.User, error) {
	var user models.User
	err := db.GetWriteDB(ctx).First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if upd.Username != nil {
		username := strings.TrimSpace(*upd.Username)
		if username == "" {
			return nil, ErrInvalidInput
		}
		var taken int64
		err = db.GetReadOnlyDB(ctx).Model(&models.User{}).
			Where("username = ? AND id <> ?", username, user.ID).Count(&taken).Error
		if err != nil {
			return nil, err
		}
		if taken > 0 {
			return nil, ErrConflict
		}
		user.Username = username
	}

	if upd.Avatar != nil {
		user.Avatar = *upd.Avatar
	}

	if upd.Password != nil && strings.TrimSpace(*upd.Password) != "" {
		hash, err := HashPassword(*upd.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := db.GetWriteDB(ctx).Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser удаляет пользователя и все зависимые строки одной транзакцией
func (us *UserService) DeleteUser(ctx context.Context, userID int64) error {
	var user models.User
	err := db.GetWriteDB(ctx).First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return db.GetWriteDB(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteUserTx(tx, userID)
	})
}

// deleteUserTx чистит посты пользователя (с их зависимостями), его
// комментарии и оценки, затем самого пользователя. Дети раньше родителя.
func deleteUserTx(tx *gorm.DB, userID int64) error {
	var postIDs []int64
	if err := tx.Model(&models.Post{}).Where("user_id = ?", userID).Pluck("id", &postIDs).Error; err != nil {
		return err
	}
	for _, postID := range postIDs {
		if err := deletePostTx(tx, postID); err != nil {
			return err
		}
	}
	if err := tx.Where("user_id = ?", userID).Delete(&models.Comment{}).Error; err != nil {
		return err
	}
	if err := tx.Where("user_id = ?", userID).Delete(&models.Rating{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.User{}, userID).Error
}
