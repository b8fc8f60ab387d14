package db

import (
	"fmt"

	"gorm.io/gorm"
)

// EnsureIndexes создает уникальные индексы, на которые опираются
// get-or-create тегов и upsert оценок. AutoMigrate их тоже создает,
// но ограничения критичные, поэтому создаем явно.
func EnsureIndexes(database *gorm.DB) error {
	statements := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS users_username_key ON users (username);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS tags_name_key ON tags (name);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS ratings_post_user_key ON ratings (post_id, user_id);`,
	}
	for _, stmt := range statements {
		if err := database.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}
