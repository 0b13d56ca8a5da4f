package service

import (
	"github.com/inkwell-app/inkwell/internal/httperr"
	"github.com/inkwell-app/inkwell/internal/models"
	"github.com/inkwell-app/inkwell/internal/repository"
)

// RequestService reads and retires user requests. Creation and update happen
// outside this API.
type RequestService struct {
	requests *repository.RequestRepository
}

func NewRequestService(requests *repository.RequestRepository) *RequestService {
	return &RequestService{requests: requests}
}

func (s *RequestService) Count() (int64, error) {
	return s.requests.Count()
}

func (s *RequestService) List(offset, limit int) ([]models.Request, int64, error) {
	count, err := s.requests.Count()
	if err != nil {
		return nil, 0, httperr.Wrap(httperr.Internal, err, "failed to count requests")
	}
	requests, err := s.requests.List(offset, limit)
	if err != nil {
		return nil, 0, httperr.Wrap(httperr.Internal, err, "failed to list requests")
	}
	return requests, count, nil
}

func (s *RequestService) Get(id uint64) (*models.Request, error) {
	request, err := s.requests.GetByID(id)
	if err != nil {
		return nil, httperr.Wrap(httperr.Internal, err, "failed to load request")
	}
	if request == nil || request.Deleted {
		return nil, httperr.New(httperr.NotFound, "request not found")
	}
	return request, nil
}

func (s *RequestService) SoftDelete(id uint64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.requests.MarkDeleted(id); err != nil {
		return httperr.Wrap(httperr.Internal, err, "failed to retire request")
	}
	return nil
}
