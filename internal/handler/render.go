package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inkwell-app/inkwell/internal/entity"
	"github.com/inkwell-app/inkwell/internal/hashid"
	"github.com/inkwell-app/inkwell/internal/httperr"
	"github.com/inkwell-app/inkwell/internal/models"
)

// decodeParam turns a public id path parameter back into the internal row id.
// A string that does not decode for the kind is an early 404, before any
// storage round-trip.
func decodeParam(c *gin.Context, ids *hashid.Codec, kind entity.Kind, param string) (uint64, bool) {
	public := c.Param(param)
	id, err := ids.Decode(kind, public)
	if err != nil {
		httperr.Render(c, err)
		return 0, false
	}
	return id, true
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

func userResponse(ids *hashid.Codec, u *models.User) gin.H {
	resp := gin.H{
		"id":         ids.MustEncode(entity.Users, u.ID),
		"email":      u.Email,
		"username":   u.Username,
		"anonym":     u.Anonym,
		"validated":  u.Validated,
		"banned":     u.Banned,
		"created_at": formatTime(u.CreatedAt),
	}
	if u.Option != nil {
		resp["option"] = u.Option
	}
	if u.Detail != nil {
		resp["detail"] = u.Detail
	}
	return resp
}

func blogResponse(ids *hashid.Codec, b *models.Blog) gin.H {
	resp := gin.H{
		"id":         ids.MustEncode(entity.Blogs, b.ID),
		"author_id":  ids.MustEncode(entity.Users, b.AuthorID),
		"title":      b.Title,
		"content":    b.Content,
		"reviewed":   b.Reviewed,
		"approved":   b.Approved,
		"published":  b.Published,
		"banned":     b.Banned,
		"created_at": formatTime(b.CreatedAt),
	}
	if b.PublishedAt != nil {
		resp["published_at"] = formatTimePtr(b.PublishedAt)
	}
	if b.Category != nil {
		resp["category"] = categoryResponse(ids, b.Category)
	}
	return resp
}

func commentResponse(ids *hashid.Codec, cm *models.Comment) gin.H {
	return gin.H{
		"id":         ids.MustEncode(entity.Comments, cm.ID),
		"blog_id":    ids.MustEncode(entity.Blogs, cm.BlogID),
		"author_id":  ids.MustEncode(entity.Users, cm.AuthorID),
		"content":    cm.Content,
		"reviewed":   cm.Reviewed,
		"approved":   cm.Approved,
		"created_at": formatTime(cm.CreatedAt),
	}
}

func messageResponse(ids *hashid.Codec, m *models.Message) gin.H {
	return gin.H{
		"id":          ids.MustEncode(entity.Messages, m.ID),
		"sender_id":   ids.MustEncode(entity.Users, m.SenderID),
		"receiver_id": ids.MustEncode(entity.Users, m.ReceiverID),
		"content":     m.Content,
		"created_at":  formatTime(m.CreatedAt),
	}
}

func likeResponse(ids *hashid.Codec, l *models.Like) gin.H {
	return gin.H{
		"id":         ids.MustEncode(entity.Likes, l.ID),
		"blog_id":    ids.MustEncode(entity.Blogs, l.BlogID),
		"user_id":    ids.MustEncode(entity.Users, l.UserID),
		"created_at": formatTime(l.CreatedAt),
	}
}

func categoryResponse(ids *hashid.Codec, cat *models.Category) gin.H {
	return gin.H{
		"id":          ids.MustEncode(entity.Categories, cat.ID),
		"name":        cat.Name,
		"description": cat.Description,
	}
}

func requestResponse(ids *hashid.Codec, r *models.Request) gin.H {
	return gin.H{
		"id":         ids.MustEncode(entity.Requests, r.ID),
		"user_id":    ids.MustEncode(entity.Users, r.UserID),
		"subject":    r.Subject,
		"body":       r.Body,
		"created_at": formatTime(r.CreatedAt),
	}
}

func permissionResponse(ids *hashid.Codec, p *models.Permission) gin.H {
	return gin.H{
		"id":          ids.MustEncode(entity.Permissions, p.ID),
		"name":        p.Name,
		"description": p.Description,
	}
}
