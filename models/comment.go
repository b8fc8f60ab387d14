package models

import "time"

type Comment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID    int64     `gorm:"index" json:"post_id"`
	UserID    int64     `gorm:"index" json:"user_id"`
	Content   string    `gorm:"type:text" json:"content"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (Comment) TableName() string {
	return "comments"
}

// CommentView - комментарий вместе с ником автора
type CommentView struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post_id"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type Rating struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID int64 `gorm:"index:ratings_post_user_key,unique" json:"post_id"`
	UserID int64 `gorm:"index:ratings_post_user_key,unique" json:"user_id"`
	Score  int   `json:"score"`
}

func (Rating) TableName() string {
	return "ratings"
}
