package repository

import (
	"errors"
	"time"

	"github.com/inkwell-app/inkwell/internal/models"
	"gorm.io/gorm"
)

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

func (r *LikeRepository) CountByBlog(blogID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Scopes(Listable).
		Where("blog_id = ?", blogID).
		Count(&count).Error
	return count, err
}

func (r *LikeRepository) ListByBlog(blogID uint64, offset, limit int) ([]models.Like, error) {
	var likes []models.Like
	err := r.db.Scopes(Listable).
		Where("blog_id = ?", blogID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&likes).Error
	return likes, err
}

func (r *LikeRepository) GetByID(id uint64) (*models.Like, error) {
	var like models.Like
	err := r.db.First(&like, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &like, nil
}

// GetActive returns the live like for a user+blog pair, nil when the user has
// not liked the blog (or has since unliked it).
func (r *LikeRepository) GetActive(blogID, userID uint64) (*models.Like, error) {
	var like models.Like
	err := r.db.Scopes(Listable).
		Where("blog_id = ? AND user_id = ?", blogID, userID).
		First(&like).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &like, nil
}

func (r *LikeRepository) Create(like *models.Like) error {
	return r.db.Create(like).Error
}

func (r *LikeRepository) MarkDeleted(id uint64) error {
	return r.db.Model(&models.Like{}).
		Where("id = ? AND deleted = ?", id, false).
		Updates(statusMark("deleted", time.Now())).Error
}

func (r *LikeRepository) HardDelete(id uint64) error {
	return r.db.Delete(&models.Like{}, id).Error
}
