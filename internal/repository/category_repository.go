package repository

import (
	"errors"
	"time"

	"github.com/inkwell-app/inkwell/internal/models"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Category{}).Scopes(Listable).Count(&count).Error
	return count, err
}

func (r *CategoryRepository) List(offset, limit int) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Scopes(Listable).
		Order("name ASC").
		Offset(offset).
		Limit(limit).
		Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) GetByID(id uint64) (*models.Category, error) {
	var category models.Category
	err := r.db.First(&category, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) GetByName(name string) (*models.Category, error) {
	var category models.Category
	err := r.db.Scopes(Listable).Where("name = ?", name).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

func (r *CategoryRepository) Update(id uint64, fields map[string]interface{}) error {
	return r.db.Model(&models.Category{}).Where("id = ?", id).Updates(fields).Error
}

func (r *CategoryRepository) MarkDeleted(id uint64) error {
	return r.db.Model(&models.Category{}).
		Where("id = ? AND deleted = ?", id, false).
		Updates(statusMark("deleted", time.Now())).Error
}

func (r *CategoryRepository) HardDelete(id uint64) error {
	return r.db.Delete(&models.Category{}, id).Error
}
