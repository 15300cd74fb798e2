package submission

import (
	"context"

	"github.com/postform/core/internal/models"
	"gorm.io/gorm"
)

// GormDraftStore persists drafts through GORM.
type GormDraftStore struct{ db *gorm.DB }

func NewGormDraftStore(db *gorm.DB) *GormDraftStore { return &GormDraftStore{db: db} }

func (s *GormDraftStore) CreateDraft(ctx context.Context, draft *models.PostModel) error {
	return s.db.WithContext(ctx).Create(draft).Error
}

func (s *GormDraftStore) SetFeaturedImage(ctx context.Context, postID, attachmentID string) error {
	res := s.db.WithContext(ctx).Model(&models.PostModel{}).
		Where("id = ?", postID).
		Update("featured_image_id", attachmentID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
