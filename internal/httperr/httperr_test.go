package httperr

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_StatusAndName(t *testing.T) {
	cases := []struct {
		kind   Kind
		status int
		name   string
	}{
		{BadRequest, http.StatusBadRequest, "Bad Request"},
		{Unauthorized, http.StatusUnauthorized, "Unauthorized"},
		{Forbidden, http.StatusForbidden, "Forbidden"},
		{NotFound, http.StatusNotFound, "Not Found"},
		{MethodNotAllowed, http.StatusMethodNotAllowed, "Method Not Allowed"},
		{Internal, http.StatusInternalServerError, "Internal Server Error"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.kind.Status())
		assert.Equal(t, tc.name, tc.kind.Name())
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, NotFound, KindOf(New(NotFound, "missing")))
	assert.Equal(t, Internal, KindOf(errors.New("plain error")))

	// Classified errors survive wrapping in plain ones.
	wrapped := Wrap(Forbidden, errors.New("cause"), "denied")
	assert.Equal(t, Forbidden, KindOf(wrapped))
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := Wrap(Internal, cause, "something broke")

	assert.ErrorIs(t, err, cause)
}

func TestRender_ClientError(t *testing.T) {
	// Arrange
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	// Act
	Render(c, New(BadRequest, "Given 'email' is already in use"))

	// Assert
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.JSONEq(t,
		`{"status": "Bad Request", "message": "Given 'email' is already in use"}`,
		recorder.Body.String(),
	)
}

func TestRender_InternalHidesDetails(t *testing.T) {
	// Arrange
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	// Act
	Render(c, Wrap(Internal, errors.New("pq: connection refused"), "failed to load user"))

	// Assert
	require.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "connection refused")
	assert.NotContains(t, recorder.Body.String(), "failed to load user")
	assert.Contains(t, recorder.Body.String(), "Internal Server Error")
}

func TestRender_UnclassifiedBecomesInternal(t *testing.T) {
	// Arrange
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	// Act
	Render(c, errors.New("oops"))

	// Assert
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "oops")
}
