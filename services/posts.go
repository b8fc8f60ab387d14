package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"socialhub/db"
	"socialhub/models"
)

type PostService struct{}

func NewPostService() *PostService {
	return &PostService{}
}

// TagNames нормализует вход тегов: список строк или одна строка
// с разделителями '#' и пробелами. Пустые токены отбрасываются.
func TagNames(raw any) []string {
	var names []string
	switch v := raw.(type) {
	case string:
		names = strings.FieldsFunc(v, func(r rune) bool {
			return unicode.IsSpace(r) || r == '#'
		})
	case []string:
		names = v
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				names = append(names, s)
			}
		}
	}
	result := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name != "" {
			result = append(result, name)
		}
	}
	return result
}

// MediaInput - нормализованный элемент медиа. Элементы без type или url
// молча отбрасываются до вызова сервиса.
type MediaInput struct {
	Type         string
	URL          string
	ThumbnailURL string
}

// getOrCreateTag создает тег, если его еще нет. ON CONFLICT DO NOTHING
// не прерывает транзакцию на postgres при проигранной гонке, поэтому
// строка всегда дочитывается после вставки.
func getOrCreateTag(tx *gorm.DB, name string) (*models.Tag, error) {
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&models.Tag{Name: name}).Error
	if err != nil {
		return nil, err
	}
	var tag models.Tag
	if err := tx.Where("name = ?", name).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func setPostTags(tx *gorm.DB, postID int64, names []string) error {
	if err := tx.Where("post_id = ?", postID).Delete(&models.PostTag{}).Error; err != nil {
		return err
	}
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		tag, err := getOrCreateTag(tx, name)
		if err != nil {
			return err
		}
		if err := tx.Create(&models.PostTag{PostID: postID, TagID: tag.ID}).Error; err != nil {
			return err
		}
	}
	return nil
}

func setPostMedia(tx *gorm.DB, postID int64, items []MediaInput) error {
	if err := tx.Where("post_id = ?", postID).Delete(&models.Media{}).Error; err != nil {
		return err
	}
	for _, item := range items {
		if item.Type == "" || item.URL == "" {
			continue
		}
		media := models.Media{
			PostID:       postID,
			Type:         models.MediaType(item.Type),
			URL:          item.URL,
			ThumbnailURL: item.ThumbnailURL,
		}
		if err := tx.Create(&media).Error; err != nil {
			return err
		}
	}
	return nil
}

// Create создает пост вместе с тегами и медиа одной транзакцией
func (ps *PostService) Create(ctx context.Context, userID int64, content, visibility string, tags []string, media []MediaInput) (*models.PostView, error) {
	if visibility == "" {
		visibility = string(models.VISIBILITY_PUBLIC)
	}
	post := models.Post{
		UserID:     userID,
		Content:    content,
		Visibility: models.Visibility(visibility),
	}

	err := db.GetWriteDB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&post).Error; err != nil {
			return err
		}
		if err := setPostTags(tx, post.ID, tags); err != nil {
			return err
		}
		return setPostMedia(tx, post.ID, media)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return ps.GetByID(ctx, post.ID)
}

// PostUpdate - частичное обновление. Nil-поля не трогаются; Tags и Media
// при наличии полностью заменяют набор связей.
type PostUpdate struct {
	Content    *string
	Visibility string
	Tags       []string
	TagsSet    bool
	Media      []MediaInput
	MediaSet   bool
}

// Update меняет пост. Разрешено владельцу и администратору.
func (ps *PostService) Update(ctx context.Context, actorID int64, actorRole models.Role, postID int64, upd PostUpdate) (*models.PostView, error) {
	var post models.Post
	err := db.GetWriteDB(ctx).First(&post, postID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if post.UserID != actorID && actorRole != models.ROLE_ADMIN {
		return nil, ErrForbidden
	}

	if upd.Content != nil {
		post.Content = *upd.Content
	}
	if upd.Visibility != "" {
		post.Visibility = models.Visibility(upd.Visibility)
	}

	err = db.GetWriteDB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&post).Error; err != nil {
			return err
		}
		if upd.TagsSet {
			if err := setPostTags(tx, post.ID, upd.Tags); err != nil {
				return err
			}
		}
		if upd.MediaSet {
			if err := setPostMedia(tx, post.ID, upd.Media); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return ps.GetByID(ctx, post.ID)
}

// Delete удаляет пост с каскадом. Разрешено владельцу и администратору.
func (ps *PostService) Delete(ctx context.Context, actorID int64, actorRole models.Role, postID int64) error {
	var post models.Post
	err := db.GetWriteDB(ctx).First(&post, postID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if post.UserID != actorID && actorRole != models.ROLE_ADMIN {
		return ErrForbidden
	}

	return db.GetWriteDB(ctx).Transaction(func(tx *gorm.DB) error {
		return deletePostTx(tx, postID)
	})
}

// deletePostTx удаляет зависимые строки раньше самого поста
func deletePostTx(tx *gorm.DB, postID int64) error {
	if err := tx.Where("post_id = ?", postID).Delete(&models.Media{}).Error; err != nil {
		return err
	}
	if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
		return err
	}
	if err := tx.Where("post_id = ?", postID).Delete(&models.Rating{}).Error; err != nil {
		return err
	}
	if err := tx.Where("post_id = ?", postID).Delete(&models.PostTag{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Post{}, postID).Error
}

func (ps *PostService) GetByID(ctx context.Context, postID int64) (*models.PostView, error) {
	var post models.Post
	err := db.GetReadOnlyDB(ctx).First(&post, postID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	views, err := buildPostViews(ctx, []models.Post{post})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// PostFilters - составные фильтры списка постов, объединяются по AND
type PostFilters struct {
	UserID    int64
	Tag       string
	Keyword   string
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	PerPage   int
}

// List возвращает страницу постов, свежие первыми
func (ps *PostService) List(ctx context.Context, f PostFilters) (*models.PageResponse, error) {
	query := db.GetReadOnlyDB(ctx).Model(&models.Post{})
	if f.UserID != 0 {
		query = query.Where("posts.user_id = ?", f.UserID)
	}
	if f.Tag != "" {
		query = query.
			Joins("JOIN post_tags ON post_tags.post_id = posts.id").
			Joins("JOIN tags ON tags.id = post_tags.tag_id").
			Where("tags.name = ?", f.Tag)
	}
	if f.Keyword != "" {
		query = query.Where("LOWER(posts.content) LIKE ?", "%"+strings.ToLower(f.Keyword)+"%")
	}
	if f.StartDate != nil {
		query = query.Where("posts.created_at >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		query = query.Where("posts.created_at <= ?", *f.EndDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var posts []models.Post
	err := query.
		Order("posts.created_at DESC").
		Offset((f.Page - 1) * f.PerPage).
		Limit(f.PerPage).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	views, err := buildPostViews(ctx, posts)
	if err != nil {
		return nil, err
	}
	return &models.PageResponse{
		Items:   views,
		Page:    f.Page,
		PerPage: f.PerPage,
		Total:   total,
	}, nil
}

// buildPostViews догружает авторов, теги, медиа и агрегаты пачкой
func buildPostViews(ctx context.Context, posts []models.Post) ([]models.PostView, error) {
	views := make([]models.PostView, 0, len(posts))
	if len(posts) == 0 {
		return views, nil
	}

	postIDs := make([]int64, 0, len(posts))
	userIDs := make([]int64, 0, len(posts))
	for _, post := range posts {
		postIDs = append(postIDs, post.ID)
		userIDs = append(userIDs, post.UserID)
	}

	var users []models.User
	if err := db.GetReadOnlyDB(ctx).Where("id IN (?)", userIDs).Find(&users).Error; err != nil {
		return nil, err
	}
	usersByID := make(map[int64]models.User, len(users))
	for _, user := range users {
		usersByID[user.ID] = user
	}

	type tagRow struct {
		PostID int64
		Name   string
	}
	var tagRows []tagRow
	err := db.GetReadOnlyDB(ctx).Model(&models.PostTag{}).
		Select("post_tags.post_id AS post_id, tags.name AS name").
		Joins("JOIN tags ON tags.id = post_tags.tag_id").
		Where("post_tags.post_id IN (?)", postIDs).
		Scan(&tagRows).Error
	if err != nil {
		return nil, err
	}
	tagsByPost := make(map[int64][]string)
	for _, row := range tagRows {
		tagsByPost[row.PostID] = append(tagsByPost[row.PostID], row.Name)
	}

	var mediaRows []models.Media
	if err := db.GetReadOnlyDB(ctx).Where("post_id IN (?)", postIDs).Find(&mediaRows).Error; err != nil {
		return nil, err
	}
	mediaByPost := make(map[int64][]models.MediaView)
	for _, m := range mediaRows {
		mediaByPost[m.PostID] = append(mediaByPost[m.PostID], models.MediaView{
			ID:           m.ID,
			Type:         string(m.Type),
			URL:          m.URL,
			ThumbnailURL: m.ThumbnailURL,
		})
	}

	type countRow struct {
		PostID int64
		Count  int64
	}
	var commentCounts []countRow
	err = db.GetReadOnlyDB(ctx).Model(&models.Comment{}).
		Select("post_id, COUNT(*) AS count").
		Where("post_id IN (?)", postIDs).
		Group("post_id").
		Scan(&commentCounts).Error
	if err != nil {
		return nil, err
	}
	commentsByPost := make(map[int64]int64, len(commentCounts))
	for _, row := range commentCounts {
		commentsByPost[row.PostID] = row.Count
	}

	type avgRow struct {
		PostID int64
		Avg    float64
	}
	var ratingAvgs []avgRow
	err = db.GetReadOnlyDB(ctx).Model(&models.Rating{}).
		Select("post_id, AVG(score) AS avg").
		Where("post_id IN (?)", postIDs).
		Group("post_id").
		Scan(&ratingAvgs).Error
	if err != nil {
		return nil, err
	}
	ratingByPost := make(map[int64]float64, len(ratingAvgs))
	for _, row := range ratingAvgs {
		ratingByPost[row.PostID] = row.Avg
	}

	for _, post := range posts {
		author := usersByID[post.UserID]
		tags := tagsByPost[post.ID]
		if tags == nil {
			tags = []string{}
		}
		media := mediaByPost[post.ID]
		if media == nil {
			media = []models.MediaView{}
		}
		views = append(views, models.PostView{
			ID:           post.ID,
			UserID:       post.UserID,
			Username:     author.Username,
			Avatar:       author.Avatar,
			Content:      post.Content,
			Visibility:   string(post.Visibility),
			CreatedAt:    post.CreatedAt,
			UpdatedAt:    post.UpdatedAt,
			Tags:         tags,
			Media:        media,
			CommentCount: commentsByPost[post.ID],
			AvgRating:    ratingByPost[post.ID],
		})
	}
	return views, nil
}

// postExists - быстрая проверка существования поста для вложенных ресурсов
func postExists(ctx context.Context, postID int64) (bool, error) {
	var count int64
	err := db.GetReadOnlyDB(ctx).Model(&models.Post{}).Where("id = ?", postID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
