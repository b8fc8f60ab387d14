package services

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"socialhub/db"
	"socialhub/models"
)

type RatingService struct{}

func NewRatingService() *RatingService {
	return &RatingService{}
}

// Rate ставит оценку посту. Повторная оценка той же парой (post, user)
// перезаписывает score, строка остается одна.
func (rs *RatingService) Rate(ctx context.Context, postID, userID int64, score int) (*models.Rating, error) {
	if score < 1 || score > 5 {
		return nil, ErrInvalidInput
	}

	exists, err := postExists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}

	var rating models.Rating
	err = db.GetWriteDB(ctx).Transaction(func(tx *gorm.DB) error {
		return upsertRating(tx, &rating, postID, userID, score)
	})
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// upsertRating пишет оценку одним INSERT ... ON CONFLICT DO UPDATE:
// проигранная гонка на первой оценке не прерывает транзакцию на postgres.
// Строка дочитывается, чтобы вернуть ее актуальный id.
func upsertRating(tx *gorm.DB, rating *models.Rating, postID, userID int64, score int) error {
	row := models.Rating{PostID: postID, UserID: userID, Score: score}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "post_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"score"}),
	}).Create(&row).Error
	if err != nil {
		return err
	}
	return tx.Where("post_id = ? AND user_id = ?", postID, userID).First(rating).Error
}
