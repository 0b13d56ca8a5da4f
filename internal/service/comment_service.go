package service

import (
	"github.com/inkwell-app/inkwell/internal/httperr"
	"github.com/inkwell-app/inkwell/internal/models"
	"github.com/inkwell-app/inkwell/internal/repository"
)

type CommentService struct {
	comments *repository.CommentRepository
	blogs    *repository.BlogRepository
}

func NewCommentService(comments *repository.CommentRepository, blogs *repository.BlogRepository) *CommentService {
	return &CommentService{comments: comments, blogs: blogs}
}

func (s *CommentService) Count() (int64, error) {
	return s.comments.Count()
}

func (s *CommentService) List(offset, limit int) ([]models.Comment, int64, error) {
	count, err := s.comments.Count()
	if err != nil {
		return nil, 0, httperr.Wrap(httperr.Internal, err, "failed to count comments")
	}
	comments, err := s.comments.List(offset, limit)
	if err != nil {
		return nil, 0, httperr.Wrap(httperr.Internal, err, "failed to list comments")
	}
	return comments, count, nil
}

func (s *CommentService) ListByBlog(blogID uint64, offset, limit int) ([]models.Comment, int64, error) {
	count, err := s.comments.CountByBlog(blogID)
	if err != nil {
		return nil, 0, httperr.Wrap(httperr.Internal, err, "failed to count comments")
	}
	comments, err := s.comments.ListByBlog(blogID, offset, limit)
	if err != nil {
		return nil, 0, httperr.Wrap(httperr.Internal, err, "failed to list comments")
	}
	return comments, count, nil
}

func (s *CommentService) Get(id uint64) (*models.Comment, error) {
	comment, err := s.comments.GetByID(id)
	if err != nil {
		return nil, httperr.Wrap(httperr.Internal, err, "failed to load comment")
	}
	if comment == nil || comment.Deleted {
		return nil, httperr.New(httperr.NotFound, "comment not found")
	}
	return comment, nil
}

// Create attaches a comment to a published blog.
func (s *CommentService) Create(blogID, authorID uint64, content string) (*models.Comment, error) {
	if content == "" {
		return nil, httperr.New(httperr.BadRequest, "content is required")
	}

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

	comment := &models.Comment{
		BlogID:   blogID,
		AuthorID: authorID,
		Content:  content,
	}
	if err := s.comments.Create(comment); err != nil {
		return nil, httperr.Wrap(httperr.Internal, err, "failed to create comment")
	}
	return comment, nil
}

func (s *CommentService) Update(id uint64, content string) (*models.Comment, error) {
	if content == "" {
		return nil, httperr.New(httperr.BadRequest, "content can not be empty")
	}
	if _, err := s.Get(id); err != nil {
		return nil, err
	}
	if err := s.comments.Update(id, map[string]interface{}{"content": content}); err != nil {
		return nil, httperr.Wrap(httperr.Internal, err, "failed to update comment")
	}
	return s.Get(id)
}

func (s *CommentService) Review(id uint64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.comments.MarkReviewed(id); err != nil {
		return httperr.Wrap(httperr.Internal, err, "failed to mark comment reviewed")
	}
	return nil
}

func (s *CommentService) Approve(id uint64) error {
	comment, err := s.Get(id)
	if err != nil {
		return err
	}
	if !comment.Reviewed {
		return httperr.New(httperr.BadRequest, "comment has not been reviewed")
	}
	if err := s.comments.MarkApproved(id); err != nil {
		return httperr.Wrap(httperr.Internal, err, "failed to mark comment approved")
	}
	return nil
}

func (s *CommentService) SoftDelete(id uint64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.comments.MarkDeleted(id); err != nil {
		return httperr.Wrap(httperr.Internal, err, "failed to retire comment")
	}
	return nil
}
