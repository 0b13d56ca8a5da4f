package repository

import (
	"errors"
	"time"

	"github.com/inkwell-app/inkwell/internal/models"
	"gorm.io/gorm"
)

type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

func (r *RequestRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Request{}).Scopes(Listable).Count(&count).Error
	return count, err
}

func (r *RequestRepository) List(offset, limit int) ([]models.Request, error) {
	var requests []models.Request
	err := r.db.Scopes(Listable).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&requests).Error
	return requests, err
}

func (r *RequestRepository) GetByID(id uint64) (*models.Request, error) {
	var request models.Request
	err := r.db.First(&request, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *RequestRepository) Create(request *models.Request) error {
	return r.db.Create(request).Error
}

func (r *RequestRepository) MarkDeleted(id uint64) error {
	return r.db.Model(&models.Request{}).
		Where("id = ? AND deleted = ?", id, false).
		Updates(statusMark("deleted", time.Now())).Error
}

func (r *RequestRepository) HardDelete(id uint64) error {
	return r.db.Delete(&models.Request{}, id).Error
}
