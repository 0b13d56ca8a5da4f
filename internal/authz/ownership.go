package authz

import (
	"github.com/inkwell-app/inkwell/internal/entity"
	"github.com/inkwell-app/inkwell/internal/repository"
)

// RegisterDefaultOwnerships installs the per-entity ownership checks. A user
// owns itself; content rows are owned by their author/user column; a message
// belongs to both parties. Soft-deleted rows count as absent, which denies.
func RegisterDefaultOwnerships(
	r *Resolver,
	users *repository.UserRepository,
	blogs *repository.BlogRepository,
	comments *repository.CommentRepository,
	messages *repository.MessageRepository,
	likes *repository.LikeRepository,
	requests *repository.RequestRepository,
) {
	r.RegisterOwnership(entity.Users, func(targetID uint64) ([]uint64, bool, error) {
		user, err := users.GetByID(targetID)
		if err != nil {
			return nil, false, err
		}
		if user == nil || user.Deleted {
			return nil, false, nil
		}
		return []uint64{user.ID}, true, nil
	})

	r.RegisterOwnership(entity.Blogs, func(targetID uint64) ([]uint64, bool, error) {
		blog, err := blogs.GetByID(targetID)
		if err != nil {
			return nil, false, err
		}
		if blog == nil || blog.Deleted {
			return nil, false, nil
		}
		return []uint64{blog.AuthorID}, true, nil
	})

	r.RegisterOwnership(entity.Comments, func(targetID uint64) ([]uint64, bool, error) {
		comment, err := comments.GetByID(targetID)
		if err != nil {
			return nil, false, err
		}
		if comment == nil || comment.Deleted {
			return nil, false, nil
		}
		return []uint64{comment.AuthorID}, true, nil
	})

	r.RegisterOwnership(entity.Messages, func(targetID uint64) ([]uint64, bool, error) {
		message, err := messages.GetByID(targetID)
		if err != nil {
			return nil, false, err
		}
		if message == nil || message.Deleted {
			return nil, false, nil
		}
		return []uint64{message.SenderID, message.ReceiverID}, true, nil
	})

	r.RegisterOwnership(entity.Likes, func(targetID uint64) ([]uint64, bool, error) {
		like, err := likes.GetByID(targetID)
		if err != nil {
			return nil, false, err
		}
		if like == nil || like.Deleted {
			return nil, false, nil
		}
		return []uint64{like.UserID}, true, nil
	})

	r.RegisterOwnership(entity.Requests, func(targetID uint64) ([]uint64, bool, error) {
		request, err := requests.GetByID(targetID)
		if err != nil {
			return nil, false, err
		}
		if request == nil || request.Deleted {
			return nil, false, nil
		}
		return []uint64{request.UserID}, true, nil
	})
}
