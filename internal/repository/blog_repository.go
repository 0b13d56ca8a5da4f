package repository

import (
	"errors"
	"time"

	"github.com/inkwell-app/inkwell/internal/models"
	"gorm.io/gorm"
)

type BlogRepository struct {
	db *gorm.DB
}

func NewBlogRepository(db *gorm.DB) *BlogRepository {
	return &BlogRepository{db: db}
}

func (r *BlogRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Blog{}).Scopes(Listable).Count(&count).Error
	return count, err
}

func (r *BlogRepository) CountPublished() (int64, error) {
	var count int64
	err := r.db.Model(&models.Blog{}).Scopes(Listable).
		Where("published = ?", true).
		Count(&count).Error
	return count, err
}

func (r *BlogRepository) List(offset, limit int) ([]models.Blog, error) {
	var blogs []models.Blog
	err := r.db.Scopes(Listable).
		Preload("Category").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&blogs).Error
	return blogs, err
}

// ListPublished is the reader-facing listing: listable and published only.
func (r *BlogRepository) ListPublished(offset, limit int) ([]models.Blog, error) {
	var blogs []models.Blog
	err := r.db.Scopes(Listable).
		Preload("Category").
		Where("published = ?", true).
		Order("published_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&blogs).Error
	return blogs, err
}

func (r *BlogRepository) GetByID(id uint64) (*models.Blog, error) {
	var blog models.Blog
	err := r.db.Preload("Category").First(&blog, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &blog, nil
}

func (r *BlogRepository) Create(blog *models.Blog) error {
	return r.db.Create(blog).Error
}

func (r *BlogRepository) Update(id uint64, fields map[string]interface{}) error {
	return r.db.Model(&models.Blog{}).Where("id = ?", id).Updates(fields).Error
}

func (r *BlogRepository) HardDelete(id uint64) error {
	return r.db.Delete(&models.Blog{}, id).Error
}

func (r *BlogRepository) markStatus(id uint64, flag string) error {
	return r.db.Model(&models.Blog{}).
		Where("id = ? AND "+flag+" = ?", id, false).
		Updates(statusMark(flag, time.Now())).Error
}

func (r *BlogRepository) MarkReviewed(id uint64) error  { return r.markStatus(id, "reviewed") }
func (r *BlogRepository) MarkApproved(id uint64) error  { return r.markStatus(id, "approved") }
func (r *BlogRepository) MarkPublished(id uint64) error { return r.markStatus(id, "published") }
func (r *BlogRepository) MarkBanned(id uint64) error    { return r.markStatus(id, "banned") }
func (r *BlogRepository) MarkDeleted(id uint64) error   { return r.markStatus(id, "deleted") }
