package service

import (
	"github.com/inkwell-app/inkwell/internal/httperr"
	"github.com/inkwell-app/inkwell/internal/models"
	"github.com/inkwell-app/inkwell/internal/repository"
	"github.com/inkwell-app/inkwell/pkg/logger"
	"go.uber.org/zap"
)

type BlogService struct {
	blogs      *repository.BlogRepository
	categories *repository.CategoryRepository
}

func NewBlogService(blogs *repository.BlogRepository, categories *repository.CategoryRepository) *BlogService {
	return &BlogService{blogs: blogs, categories: categories}
}

// Count reports published blogs for regular readers; moderators see the full
// listable count.
func (s *BlogService) Count(includeUnpublished bool) (int64, error) {
	if includeUnpublished {
		return s.blogs.Count()
	}
	return s.blogs.CountPublished()
}

func (s *BlogService) List(offset, limit int, includeUnpublished bool) ([]models.Blog, int64, error) {
	count, err := s.Count(includeUnpublished)
	if err != nil {
		return nil, 0, httperr.Wrap(httperr.Internal, err, "failed to count blogs")
	}

	var blogs []models.Blog
	if includeUnpublished {
		blogs, err = s.blogs.List(offset, limit)
	} else {
		blogs, err = s.blogs.ListPublished(offset, limit)
	}
	if err != nil {
		return nil, 0, httperr.Wrap(httperr.Internal, err, "failed to list blogs")
	}
	return blogs, count, nil
}

func (s *BlogService) Get(id uint64) (*models.Blog, error) {
	blog, err := s.blogs.GetByID(id)
	if err != nil {
		return nil, httperr.Wrap(httperr.Internal, err, "failed to load blog")
	}
	if blog == nil || blog.Deleted {
		return nil, httperr.New(httperr.NotFound, "blog not found")
	}
	return blog, nil
}

func (s *BlogService) Create(authorID uint64, title, content string, categoryID *uint64) (*models.Blog, error) {
	if title == "" || content == "" {
		return nil, httperr.New(httperr.BadRequest, "title and content are required")
	}
	if len(title) > 200 {
		return nil, httperr.New(httperr.BadRequest, "title must be at most 200 characters")
	}

	if categoryID != nil {
		category, err := s.categories.GetByID(*categoryID)
		if err != nil {
			return nil, httperr.Wrap(httperr.Internal, err, "failed to load category")
		}
		if category == nil || category.Deleted {
			return nil, httperr.New(httperr.BadRequest, "unknown category")
		}
	}

	blog := &models.Blog{
		AuthorID:   authorID,
		CategoryID: categoryID,
		Title:      title,
		Content:    content,
	}
	if err := s.blogs.Create(blog); err != nil {
		return nil, httperr.Wrap(httperr.Internal, err, "failed to create blog")
	}

	logger.Log.Info("blog created",
		zap.Uint64("blog_id", blog.ID),
		zap.Uint64("author_id", authorID),
	)
	return blog, nil
}

func (s *BlogService) Update(id uint64, title, content *string, categoryID *uint64) (*models.Blog, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if title != nil {
		if *title == "" || len(*title) > 200 {
			return nil, httperr.New(httperr.BadRequest, "invalid title")
		}
		fields["title"] = *title
	}
	if content != nil {
		if *content == "" {
			return nil, httperr.New(httperr.BadRequest, "content can not be empty")
		}
		fields["content"] = *content
	}
	if categoryID != nil {
		category, err := s.categories.GetByID(*categoryID)
		if err != nil {
			return nil, httperr.Wrap(httperr.Internal, err, "failed to load category")
		}
		if category == nil || category.Deleted {
			return nil, httperr.New(httperr.BadRequest, "unknown category")
		}
		fields["category_id"] = *categoryID
	}
	if len(fields) == 0 {
		return nil, httperr.New(httperr.BadRequest, "nothing to update")
	}

	if err := s.blogs.Update(id, fields); err != nil {
		return nil, httperr.Wrap(httperr.Internal, err, "failed to update blog")
	}
	return s.Get(id)
}

// Review, Approve and Publish walk the moderation ladder in order; each rung
// requires the previous one.
func (s *BlogService) Review(id uint64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.blogs.MarkReviewed(id); err != nil {
		return httperr.Wrap(httperr.Internal, err, "failed to mark blog reviewed")
	}
	return nil
}

func (s *BlogService) Approve(id uint64) error {
	blog, err := s.Get(id)
	if err != nil {
		return err
	}
	if !blog.Reviewed {
		return httperr.New(httperr.BadRequest, "blog has not been reviewed")
	}
	if err := s.blogs.MarkApproved(id); err != nil {
		return httperr.Wrap(httperr.Internal, err, "failed to mark blog approved")
	}
	return nil
}

func (s *BlogService) Publish(id uint64) error {
	blog, err := s.Get(id)
	if err != nil {
		return err
	}
	if !blog.Approved {
		return httperr.New(httperr.BadRequest, "blog has not been approved")
	}
	if blog.Banned {
		return httperr.New(httperr.BadRequest, "blog is banned")
	}
	if err := s.blogs.MarkPublished(id); err != nil {
		return httperr.Wrap(httperr.Internal, err, "failed to mark blog published")
	}
	logger.Log.Info("blog published", zap.Uint64("blog_id", id))
	return nil
}

func (s *BlogService) Ban(id uint64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.blogs.MarkBanned(id); err != nil {
		return httperr.Wrap(httperr.Internal, err, "failed to ban blog")
	}
	logger.Log.Info("blog banned", zap.Uint64("blog_id", id))
	return nil
}

func (s *BlogService) SoftDelete(id uint64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.blogs.MarkDeleted(id); err != nil {
		return httperr.Wrap(httperr.Internal, err, "failed to retire blog")
	}
	return nil
}
