package services

import (
	"context"
	"strings"

	"socialhub/db"
	"socialhub/models"
)

type CommentService struct{}

func NewCommentService() *CommentService {
	return &CommentService{}
}

// Create добавляет комментарий к существующему посту
func (cs *CommentService) Create(ctx context.Context, postID, userID int64, content string) (*models.CommentView, error) {
	exists, err := postExists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrInvalidInput
	}

	comment := models.Comment{
		PostID:  postID,
		UserID:  userID,
		Content: content,
	}
	if err := db.GetWriteDB(ctx).Create(&comment).Error; err != nil {
		return nil, err
	}

	var author models.User
	if err := db.GetReadOnlyDB(ctx).First(&author, userID).Error; err != nil {
		return nil, err
	}
	return &models.CommentView{
		ID:        comment.ID,
		PostID:    comment.PostID,
		UserID:    comment.UserID,
		Username:  author.Username,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}, nil
}

// List возвращает страницу комментариев поста, свежие первыми
func (cs *CommentService) List(ctx context.Context, postID int64, page, perPage int) (*models.PageResponse, error) {
	exists, err := postExists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}

	var total int64
	err = db.GetReadOnlyDB(ctx).Model(&models.Comment{}).Where("post_id = ?", postID).Count(&total).Error
	if err != nil {
		return nil, err
	}

	var items []models.CommentView
	err = db.GetReadOnlyDB(ctx).Model(&models.Comment{}).
		Select("comments.id, comments.post_id, comments.user_id, users.username AS username, comments.content, comments.created_at").
		Joins("JOIN users ON users.id = comments.user_id").
		Where("comments.post_id = ?", postID).
		Order("comments.created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.CommentView{}
	}

	return &models.PageResponse{
		Items:   items,
		Page:    page,
		PerPage: perPage,
		Total:   total,
	}, nil
}
