package authz

import (
	"errors"
	"testing"

	"github.com/inkwell-app/inkwell/internal/entity"
	"github.com/inkwell-app/inkwell/internal/httperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newResolver wires a resolver where blog 1 is owned by user 10 and message 1
// belongs to users 10 and 20. Everything else is absent.
func newResolver() *Resolver {
	r := NewResolver(nil)
	r.RegisterOwnership(entity.Blogs, func(targetID uint64) ([]uint64, bool, error) {
		if targetID == 1 {
			return []uint64{10}, true, nil
		}
		return nil, false, nil
	})
	r.RegisterOwnership(entity.Messages, func(targetID uint64) ([]uint64, bool, error) {
		if targetID == 1 {
			return []uint64{10, 20}, true, nil
		}
		return nil, false, nil
	})
	return r
}

func TestAuthorize_OwnerGranted(t *testing.T) {
	// Arrange
	r := newResolver()
	owner := NewIdentity(10, nil, false, false)

	// Act
	err := r.Authorize(owner, []string{Owner}, entity.Blogs, 1)

	// Assert
	assert.NoError(t, err)
}

func TestAuthorize_NonOwnerDenied(t *testing.T) {
	// Arrange
	r := newResolver()
	stranger := NewIdentity(99, nil, false, false)

	// Act
	err := r.Authorize(stranger, []string{Owner}, entity.Blogs, 1)

	// Assert
	require.Error(t, err)
	assert.Equal(t, httperr.Forbidden, httperr.KindOf(err))
}

func TestAuthorize_EitherMessagePartyIsOwner(t *testing.T) {
	// Arrange
	r := newResolver()

	// Act & Assert
	assert.NoError(t, r.Authorize(NewIdentity(10, nil, false, false), []string{Owner}, entity.Messages, 1))
	assert.NoError(t, r.Authorize(NewIdentity(20, nil, false, false), []string{Owner}, entity.Messages, 1))
	assert.Error(t, r.Authorize(NewIdentity(30, nil, false, false), []string{Owner}, entity.Messages, 1))
}

func TestAuthorize_NamedPermissionGrants(t *testing.T) {
	// Arrange
	r := newResolver()
	moderator := NewIdentity(99, []string{PermDeleteBlog}, false, false)

	// Act
	err := r.Authorize(moderator, []string{Owner, PermDeleteBlog}, entity.Blogs, 1)

	// Assert
	assert.NoError(t, err)
}

func TestAuthorize_AllNamedPermissionsRequired(t *testing.T) {
	// Arrange: holder of one permission out of two required.
	r := newResolver()
	partial := NewIdentity(99, []string{PermReviewBlog}, false, false)

	// Act
	err := r.Authorize(partial, []string{PermReviewBlog, PermBanBlog}, entity.Blogs, 1)

	// Assert
	require.Error(t, err)
	assert.Equal(t, httperr.Forbidden, httperr.KindOf(err))
}

func TestAuthorize_OwnerOnlyListNeverGrantsByPermissions(t *testing.T) {
	// Arrange: the required list is just the owner sentinel; an identity with
	// no permission names must not slip through the permission branch.
	r := newResolver()
	stranger := NewIdentity(99, nil, false, false)

	// Act
	err := r.Authorize(stranger, []string{Owner}, entity.Blogs, 1)

	// Assert
	assert.Equal(t, httperr.Forbidden, httperr.KindOf(err))
}

func TestAuthorize_MissingResourceDenies(t *testing.T) {
	// Arrange
	r := newResolver()
	owner := NewIdentity(10, []string{PermDeleteBlog}, false, false)

	// Act: blog 404 does not exist.
	err := r.Authorize(owner, []string{Owner}, entity.Blogs, 404)

	// Assert
	require.Error(t, err)
	assert.Equal(t, httperr.Forbidden, httperr.KindOf(err))
}

func TestAuthorize_AnonymousDenied(t *testing.T) {
	// Arrange
	r := newResolver()

	// Act
	err := r.Authorize(Anonymous(), []string{Owner, PermDeleteBlog}, entity.Blogs, 1)

	// Assert
	require.Error(t, err)
	assert.Equal(t, httperr.Forbidden, httperr.KindOf(err))
}

func TestAuthorize_BannedAndDeletedDenied(t *testing.T) {
	// Arrange
	r := newResolver()
	banned := NewIdentity(10, []string{PermDeleteBlog}, true, false)
	deleted := NewIdentity(10, []string{PermDeleteBlog}, false, true)

	// Act & Assert: even the owner with every permission is denied.
	assert.Equal(t, httperr.Forbidden, httperr.KindOf(r.Authorize(banned, []string{Owner}, entity.Blogs, 1)))
	assert.Equal(t, httperr.Forbidden, httperr.KindOf(r.Authorize(deleted, []string{Owner}, entity.Blogs, 1)))
}

func TestAuthorize_UnregisteredKindIsInternal(t *testing.T) {
	// Arrange
	r := newResolver()
	owner := NewIdentity(10, nil, false, false)

	// Act: no ownership check registered for categories.
	err := r.Authorize(owner, []string{Owner}, entity.Categories, 1)

	// Assert
	require.Error(t, err)
	assert.Equal(t, httperr.Internal, httperr.KindOf(err))
}

func TestAuthorize_OwnershipErrorIsInternal(t *testing.T) {
	// Arrange
	r := NewResolver(nil)
	r.RegisterOwnership(entity.Blogs, func(uint64) ([]uint64, bool, error) {
		return nil, false, errors.New("db down")
	})

	// Act
	err := r.Authorize(NewIdentity(10, nil, false, false), []string{Owner}, entity.Blogs, 1)

	// Assert
	require.Error(t, err)
	assert.Equal(t, httperr.Internal, httperr.KindOf(err))
}

func TestIdentity_Has(t *testing.T) {
	ident := NewIdentity(1, []string{PermReviewBlog, PermBanBlog}, false, false)

	assert.True(t, ident.Has(PermReviewBlog))
	assert.False(t, ident.Has(PermDeleteBlog))
	assert.False(t, Anonymous().Has(PermReviewBlog))
}

func TestCatalog_NamesAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, def := range Catalog() {
		assert.NotEmpty(t, def.Name)
		assert.NotEmpty(t, def.Description)
		assert.False(t, seen[def.Name], "duplicate catalog entry %q", def.Name)
		seen[def.Name] = true
	}
}
