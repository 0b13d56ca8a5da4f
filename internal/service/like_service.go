package service

import (
	"github.com/inkwell-app/inkwell/internal/httperr"
	"github.com/inkwell-app/inkwell/internal/models"
	"github.com/inkwell-app/inkwell/internal/repository"
)

type LikeService struct {
	likes *repository.LikeRepository
	blogs *repository.BlogRepository
}

func NewLikeService(likes *repository.LikeRepository, blogs *repository.BlogRepository) *LikeService {
	return &LikeService{likes: likes, blogs: blogs}
}

func (s *LikeService) CountByBlog(blogID uint64) (int64, error) {
	return s.likes.CountByBlog(blogID)
}

func (s *LikeService) ListByBlog(blogID uint64, offset, limit int) ([]models.Like, int64, error) {
	count, err := s.likes.CountByBlog(blogID)
	if err != nil {
		return nil, 0, httperr.Wrap(httperr.Internal, err, "failed to count likes")
	}
	likes, err := s.likes.ListByBlog(blogID, offset, limit)
	if err != nil {
		return nil, 0, httperr.Wrap(httperr.Internal, err, "failed to list likes")
	}
	return likes, count, nil
}

// Like records a user's like on a published blog; liking twice is a no-op.
func (s *LikeService) Like(blogID, userID uint64) (*models.Like, error) {
	blog, err := s.blogs.GetByID(blogID)
	if err != nil {
		return nil, httperr.Wrap(httperr.Internal, err, "failed to load blog")
	}
	if blog == nil || blog.Deleted {
		return nil, httperr.New(httperr.NotFound, "blog not found")
	}
	if !blog.Published {
		return nil, httperr.New(httperr.BadRequest, "blog is not published")
	}

	existing, err := s.likes.GetActive(blogID, userID)
	if err != nil {
		return nil, httperr.Wrap(httperr.Internal, err, "failed to check like")
	}
	if existing != nil {
		return existing, nil
	}

	like := &models.Like{BlogID: blogID, UserID: userID}
	if err := s.likes.Create(like); err != nil {
		return nil, httperr.Wrap(httperr.Internal, err, "failed to create like")
	}
	return like, nil
}

// Unlike retires the caller's live like for the blog.
func (s *LikeService) Unlike(blogID, userID uint64) error {
	existing, err := s.likes.GetActive(blogID, userID)
	if err != nil {
		return httperr.Wrap(httperr.Internal, err, "failed to check like")
	}
	if existing == nil {
		return httperr.New(httperr.NotFound, "like not found")
	}
	if err := s.likes.MarkDeleted(existing.ID); err != nil {
		return httperr.Wrap(httperr.Internal, err, "failed to remove like")
	}
	return nil
}
