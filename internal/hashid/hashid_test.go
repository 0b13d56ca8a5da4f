package hashid

import (
	"testing"

	"github.com/inkwell-app/inkwell/internal/entity"
	"github.com/inkwell-app/inkwell/internal/httperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCodec(t *testing.T) *Codec {
	codec, err := New(Config{Salt: "hashid-test-salt"})
	require.NoError(t, err)
	return codec
}

func TestNew_RequiresSalt(t *testing.T) {
	// Act
	codec, err := New(Config{})

	// Assert
	assert.Nil(t, codec)
	assert.Error(t, err)
}

func TestCodec_Roundtrip(t *testing.T) {
	// Arrange
	codec := newCodec(t)

	// Act
	public, err := codec.Encode(entity.Blogs, 12345)
	require.NoError(t, err)
	id, err := codec.Decode(entity.Blogs, public)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, uint64(12345), id)
	assert.GreaterOrEqual(t, len(public), 8)
}

func TestCodec_EncodeIsDeterministic(t *testing.T) {
	// Arrange
	codec := newCodec(t)

	// Act
	first := codec.MustEncode(entity.Users, 7)
	second := codec.MustEncode(entity.Users, 7)

	// Assert
	assert.Equal(t, first, second)
}

func TestCodec_KindsHaveSeparateKeyspaces(t *testing.T) {
	// Arrange
	codec := newCodec(t)
	public := codec.MustEncode(entity.Users, 7)

	// Act: a user id handed to the blog codec must not resolve.
	_, err := codec.Decode(entity.Blogs, public)

	// Assert
	require.Error(t, err)
	assert.Equal(t, httperr.NotFound, httperr.KindOf(err))
}

func TestCodec_DecodeRejectsGarbage(t *testing.T) {
	// Arrange
	codec := newCodec(t)

	// Act & Assert
	for _, bad := range []string{"", "!!!", "not a hashid", "AAAAAAAA"} {
		_, err := codec.Decode(entity.Users, bad)
		assert.Error(t, err, "input %q should not decode", bad)
		assert.Equal(t, httperr.NotFound, httperr.KindOf(err))
	}
}

func TestCodec_Validate(t *testing.T) {
	// Arrange
	codec := newCodec(t)
	public := codec.MustEncode(entity.Comments, 99)

	// Act & Assert
	assert.True(t, codec.Validate(entity.Comments, public))
	assert.False(t, codec.Validate(entity.Users, public))
	assert.False(t, codec.Validate(entity.Comments, "garbage"))
}

func TestCodec_DifferentSaltsProduceDifferentIds(t *testing.T) {
	// Arrange
	first := newCodec(t)
	second, err := New(Config{Salt: "another-salt"})
	require.NoError(t, err)

	// Act & Assert
	assert.NotEqual(t,
		first.MustEncode(entity.Users, 7),
		second.MustEncode(entity.Users, 7),
	)
}
