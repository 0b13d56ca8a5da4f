package repository

import (
	"errors"
	"time"

	"github.com/inkwell-app/inkwell/internal/models"
	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).Scopes(Listable).Count(&count).Error
	return count, err
}

func (r *CommentRepository) CountByBlog(blogID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).Scopes(Listable).
		Where("blog_id = ?", blogID).
		Count(&count).Error
	return count, err
}

func (r *CommentRepository) List(offset, limit int) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Scopes(Listable).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&comments).Error
	return comments, err
}

func (r *CommentRepository) ListByBlog(blogID uint64, offset, limit int) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Scopes(Listable).
		Where("blog_id = ?", blogID).
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&comments).Error
	return comments, err
}

func (r *CommentRepository) GetByID(id uint64) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.First(&comment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

func (r *CommentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *CommentRepository) Update(id uint64, fields map[string]interface{}) error {
	return r.db.Model(&models.Comment{}).Where("id = ?", id).Updates(fields).Error
}

func (r *CommentRepository) HardDelete(id uint64) error {
	return r.db.Delete(&models.Comment{}, id).Error
}

func (r *CommentRepository) markStatus(id uint64, flag string) error {
	return r.db.Model(&models.Comment{}).
		Where("id = ? AND "+flag+" = ?", id, false).
		Updates(statusMark(flag, time.Now())).Error
}

func (r *CommentRepository) MarkReviewed(id uint64) error { return r.markStatus(id, "reviewed") }
func (r *CommentRepository) MarkApproved(id uint64) error { return r.markStatus(id, "approved") }
func (r *CommentRepository) MarkDeleted(id uint64) error  { return r.markStatus(id, "deleted") }
