package authz

import (
	"fmt"

	"github.com/inkwell-app/inkwell/internal/audit"
	"github.com/inkwell-app/inkwell/internal/entity"
	"github.com/inkwell-app/inkwell/internal/httperr"
	"github.com/inkwell-app/inkwell/pkg/logger"
	"go.uber.org/zap"
)

// Owner is the sentinel entry in a required-permission list meaning "allow
// when the caller owns the target resource", independent of named
// permissions.
const Owner = "owner"

// Named capabilities. The seed command materializes this catalog.
const (
	PermUpdateUser        = "update-user"
	PermDeleteUser        = "delete-user"
	PermValidateUser      = "validate-user"
	PermBanUser           = "ban-user"
	PermManagePermissions = "manage-permissions"
	PermReviewBlog        = "review-blog"
	PermApproveBlog       = "approve-blog"
	PermPublishBlog       = "publish-blog"
	PermBanBlog           = "ban-blog"
	PermDeleteBlog        = "delete-blog"
	PermReviewComment     = "review-comment"
	PermDeleteComment     = "delete-comment"
	PermManageCategories  = "manage-categories"
	PermDeleteRequest     = "delete-request"
)

// Definition describes one catalog entry.
type Definition struct {
	Name        string
	Description string
}

// Catalog lists every named capability the system knows.
func Catalog() []Definition {
	return []Definition{
		{PermUpdateUser, "Update any user profile"},
		{PermDeleteUser, "Erase any user account"},
		{PermValidateUser, "Mark a user account as validated"},
		{PermBanUser, "Ban a user account"},
		{PermManagePermissions, "Grant and revoke user permissions"},
		{PermReviewBlog, "Review blogs and list unpublished ones"},
		{PermApproveBlog, "Approve reviewed blogs"},
		{PermPublishBlog, "Publish approved blogs"},
		{PermBanBlog, "Ban a blog"},
		{PermDeleteBlog, "Retire any blog"},
		{PermReviewComment, "Review and approve comments"},
		{PermDeleteComment, "Retire any comment"},
		{PermManageCategories, "Create, update and retire categories"},
		{PermDeleteRequest, "Retire user requests"},
	}
}

// Identity is the per-request authentication context. An absent or anonymous
// credential yields the zero value: unauthenticated, id 0, no permissions.
type Identity struct {
	Authenticated bool
	UserID        uint64
	Permissions   map[string]struct{}
	Banned        bool
	Deleted       bool
}

// Anonymous is the identity attached to requests carrying no credential.
func Anonymous() Identity {
	return Identity{Permissions: map[string]struct{}{}}
}

// NewIdentity builds an authenticated identity from the loaded user row and
// its permission names.
func NewIdentity(userID uint64, permissions []string, banned, deleted bool) Identity {
	set := make(map[string]struct{}, len(permissions))
	for _, name := range permissions {
		set[name] = struct{}{}
	}
	return Identity{
		Authenticated: true,
		UserID:        userID,
		Permissions:   set,
		Banned:        banned,
		Deleted:       deleted,
	}
}

// Has reports set membership for a permission name.
func (i Identity) Has(name string) bool {
	_, ok := i.Permissions[name]
	return ok
}

// OwnershipFunc loads the target resource and returns its owning user ids.
// found is false when no such resource exists. Messages report both parties;
// everything else reports one owner.
type OwnershipFunc func(targetID uint64) (owners []uint64, found bool, err error)

// Resolver decides allow/deny for privileged operations. Ownership checks
// dispatch through a registry populated at wiring time, one entry per entity
// kind.
type Resolver struct {
	owners map[entity.Kind]OwnershipFunc
	trail  *audit.Trail
}

func NewResolver(trail *audit.Trail) *Resolver {
	return &Resolver{
		owners: make(map[entity.Kind]OwnershipFunc),
		trail:  trail,
	}
}

// RegisterOwnership installs the ownership check for a kind.
func (r *Resolver) RegisterOwnership(kind entity.Kind, fn OwnershipFunc) {
	r.owners[kind] = fn
}

// Authorize grants access when the caller owns the target and the required
// list carries the Owner sentinel, or when the caller holds every named
// required permission. A missing resource always denies. Denial is a
// Forbidden error, never an unclassified one.
func (r *Resolver) Authorize(ident Identity, required []string, kind entity.Kind, targetID uint64) error {
	err := r.decide(ident, required, kind, targetID)
	r.record(ident, kind, targetID, err)
	return err
}

func (r *Resolver) decide(ident Identity, required []string, kind entity.Kind, targetID uint64) error {
	if ident.Banned || ident.Deleted {
		return httperr.New(httperr.Forbidden, "account is not in good standing")
	}

	ownerAllowed := false
	named := make([]string, 0, len(required))
	for _, perm := range required {
		if perm == Owner {
			ownerAllowed = true
			continue
		}
		named = append(named, perm)
	}

	if ownerAllowed && ident.Authenticated {
		fn, ok := r.owners[kind]
		if !ok {
			return httperr.Newf(httperr.Internal, "no ownership check registered for %s", kind)
		}
		owners, found, err := fn(targetID)
		if err != nil {
			return httperr.Wrap(httperr.Internal, err, "failed to resolve ownership")
		}
		if !found {
			return httperr.New(httperr.Forbidden, "access denied")
		}
		for _, owner := range owners {
			if owner == ident.UserID {
				return nil
			}
		}
	}

	if len(named) > 0 && ident.Authenticated {
		hasAll := true
		for _, perm := range named {
			if !ident.Has(perm) {
				hasAll = false
				break
			}
		}
		if hasAll {
			return nil
		}
	}

	return httperr.New(httperr.Forbidden, "access denied")
}

func (r *Resolver) record(ident Identity, kind entity.Kind, targetID uint64, decision error) {
	allowed := decision == nil

	logger.Log.Debug("authorization decision",
		zap.Uint64("actor", ident.UserID),
		zap.String("entity", kind.String()),
		zap.Uint64("entity_id", targetID),
		zap.Bool("allowed", allowed),
	)

	if r.trail == nil {
		return
	}
	_ = r.trail.Record(audit.Entry{
		Actor:    fmt.Sprintf("%d", ident.UserID),
		Action:   "authorize",
		Entity:   kind.String(),
		EntityID: fmt.Sprintf("%d", targetID),
		Allowed:  allowed,
	})
}
