package models

import "time"

// Friend - связь между пользователями. Эндпоинтов пока нет,
// модель мигрируется для будущего API.
// Status: "pending" (ожидание), "approved" (подтверждена)
type Friend struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"index" json:"user_id"`
	FriendID  int64     `gorm:"index" json:"friend_id"`
	Status    string    `gorm:"size:16;default:pending" json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func (Friend) TableName() string {
	return "friends"
}
