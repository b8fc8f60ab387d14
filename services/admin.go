package services

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"socialhub/db"
	"socialhub/models"
)

type AdminService struct{}

func NewAdminService() *AdminService {
	return &AdminService{}
}

// ListUsers возвращает страницу пользователей, свежие первыми
func (as *AdminService) ListUsers(ctx context.Context, page, perPage int) (*models.PageResponse, error) {
	var total int64
	if err := db.GetReadOnlyDB(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var users []models.User
	err := db.GetReadOnlyDB(ctx).
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	return &models.PageResponse{
		Items:   users,
		Page:    page,
		PerPage: perPage,
		Total:   total,
	}, nil
}

// ListPosts возвращает страницу всех постов без фильтров
func (as *AdminService) ListPosts(ctx context.Context, page, perPage int) (*models.PageResponse, error) {
	return NewPostService().List(ctx, PostFilters{Page: page, PerPage: perPage})
}

// DeleteUser удаляет пользователя с каскадом и пишет строку аудита
func (as *AdminService) DeleteUser(ctx context.Context, adminID, userID int64) error {
	var user models.User
	err := db.GetWriteDB(ctx).First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return db.GetWriteDB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteUserTx(tx, userID); err != nil {
			return err
		}
		return logAction(tx, adminID, "delete_user", "user", userID)
	})
}

// DeletePost удаляет пост с каскадом и пишет строку аудита
func (as *AdminService) DeletePost(ctx context.Context, adminID, postID int64) error {
	var post models.Post
	err := db.GetWriteDB(ctx).First(&post, postID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return db.GetWriteDB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deletePostTx(tx, postID); err != nil {
			return err
		}
		return logAction(tx, adminID, "delete_post", "post", postID)
	})
}

type Stats struct {
	Users    int64 `json:"users"`
	Posts    int64 `json:"posts"`
	Comments int64 `json:"comments"`
	Ratings  int64 `json:"ratings"`
}

func (as *AdminService) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats
	counts := []struct {
		model any
		dst   *int64
	}{
		{&models.User{}, &stats.Users},
		{&models.Post{}, &stats.Posts},
		{&models.Comment{}, &stats.Comments},
		{&models.Rating{}, &stats.Ratings},
	}
	for _, c := range counts {
		if err := db.GetReadOnlyDB(ctx).Model(c.model).Count(c.dst).Error; err != nil {
			return nil, err
		}
	}
	return &stats, nil
}

// logAction пишет в журнал аудита в той же транзакции, что и само действие
func logAction(tx *gorm.DB, adminID int64, action, targetType string, targetID int64) error {
	entry := models.AdminLog{
		AdminID:    adminID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
	}
	if err := tx.Create(&entry).Error; err != nil {
		log.Println("failed to write admin log:", err)
		return err
	}
	return nil
}
