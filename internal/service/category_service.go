package service

import (
	"github.com/inkwell-app/inkwell/internal/httperr"
	"github.com/inkwell-app/inkwell/internal/models"
	"github.com/inkwell-app/inkwell/internal/repository"
)

type CategoryService struct {
	categories *repository.CategoryRepository
}

func NewCategoryService(categories *repository.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

func (s *CategoryService) Count() (int64, error) {
	return s.categories.Count()
}

func (s *CategoryService) List(offset, limit int) ([]models.Category, int64, error) {
	count, err := s.categories.Count()
	if err != nil {
		return nil, 0, httperr.Wrap(httperr.Internal, err, "failed to count categories")
	}
	categories, err := s.categories.List(offset, limit)
	if err != nil {
		return nil, 0, httperr.Wrap(httperr.Internal, err, "failed to list categories")
	}
	return categories, count, nil
}

func (s *CategoryService) Get(id uint64) (*models.Category, error) {
	category, err := s.categories.GetByID(id)
	if err != nil {
		return nil, httperr.Wrap(httperr.Internal, err, "failed to load category")
	}
	if category == nil || category.Deleted {
		return nil, httperr.New(httperr.NotFound, "category not found")
	}
	return category, nil
}

func (s *CategoryService) Create(name, description string) (*models.Category, error) {
	if name == "" || len(name) > 100 {
		return nil, httperr.New(httperr.BadRequest, "invalid category name")
	}

	existing, err := s.categories.GetByName(name)
	if err != nil {
		return nil, httperr.Wrap(httperr.Internal, err, "failed to check category name")
	}
	if existing != nil {
		return nil, httperr.New(httperr.BadRequest, "Given 'name' is already in use")
	}

	category := &models.Category{Name: name, Description: description}
	if err := s.categories.Create(category); err != nil {
		return nil, httperr.Wrap(httperr.Internal, err, "failed to create category")
	}
	return category, nil
}

func (s *CategoryService) Update(id uint64, name, description *string) (*models.Category, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if name != nil {
		if *name == "" || len(*name) > 100 {
			return nil, httperr.New(httperr.BadRequest, "invalid category name")
		}
		fields["name"] = *name
	}
	if description != nil {
		fields["description"] = *description
	}
	if len(fields) == 0 {
		return nil, httperr.New(httperr.BadRequest, "nothing to update")
	}

	if err := s.categories.Update(id, fields); err != nil {
		return nil, httperr.Wrap(httperr.Internal, err, "failed to update category")
	}
	return s.Get(id)
}

func (s *CategoryService) SoftDelete(id uint64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.categories.MarkDeleted(id); err != nil {
		return httperr.Wrap(httperr.Internal, err, "failed to retire category")
	}
	return nil
}
