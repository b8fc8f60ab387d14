package models

import "time"

type Visibility string

const (
	VISIBILITY_PUBLIC Visibility = "public"
)

type Post struct {
	ID         int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     int64      `gorm:"index" json:"user_id"`
	Content    string     `gorm:"type:text" json:"content"`
	Visibility Visibility `gorm:"size:16;default:public" json:"visibility"`
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (Post) TableName() string {
	return "posts"
}

type Tag struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"size:64;uniqueIndex:tags_name_key" json:"name"`
}

func (Tag) TableName() string {
	return "tags"
}

type PostTag struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID int64 `gorm:"index" json:"post_id"`
	TagID  int64 `gorm:"index" json:"tag_id"`
}

func (PostTag) TableName() string {
	return "post_tags"
}

type MediaType string

const (
	MEDIA_IMAGE MediaType = "image"
	MEDIA_VIDEO MediaType = "video"
)

type Media struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID       int64     `gorm:"index" json:"post_id"`
	Type         MediaType `gorm:"size:16" json:"type"`
	URL          string    `gorm:"size:255" json:"url"`
	ThumbnailURL string    `gorm:"size:255" json:"thumbnail_url"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Media) TableName() string {
	return "media"
}

// MediaView - то, что уходит клиенту внутри поста
type MediaView struct {
	ID           int64  `json:"id"`
	Type         string `json:"type"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

// PostView - пост вместе с данными автора, тегами и медиа
type PostView struct {
	ID           int64       `json:"id"`
	UserID       int64       `json:"user_id"`
	Username     string      `json:"username"`
	Avatar       string      `json:"avatar,omitempty"`
	Content      string      `json:"content"`
	Visibility   string      `json:"visibility"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	Tags         []string    `json:"tags"`
	Media        []MediaView `json:"media"`
	CommentCount int64       `json:"comment_count"`
	AvgRating    float64     `json:"avg_rating"`
}

// PageResponse - единый ответ API для постраничных списков
type PageResponse struct {
	Items   any   `json:"items"`
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
}
