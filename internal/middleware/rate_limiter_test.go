package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inkwell-app/inkwell/internal/middleware"
	"github.com/inkwell-app/inkwell/internal/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func newLimitedRouter(client *redis.Client, max int, window time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)
	limiter := middleware.NewRateLimiter(client, middleware.RateLimiterConfig{
		MaxRequests: max,
		Window:      window,
	})

	router := gin.New()
	router.Use(limiter.Middleware())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return router
}

func TestRateLimiter_AllowsWithinBudget(t *testing.T) {
	// Arrange
	testRedis := testutil.SetupTestRedis(t)
	defer testRedis.Teardown(t)
	client := redis.NewClient(&redis.Options{Addr: testRedis.Server.Addr()})
	defer client.Close()

	router := newLimitedRouter(client, 3, time.Minute)

	// Act & Assert
	for i := 0; i < 3; i++ {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusOK, recorder.Code, "request %d should pass", i+1)
	}
}

func TestRateLimiter_ThrottlesBeyondBudget(t *testing.T) {
	// Arrange
	testRedis := testutil.SetupTestRedis(t)
	defer testRedis.Teardown(t)
	client := redis.NewClient(&redis.Options{Addr: testRedis.Server.Addr()})
	defer client.Close()

	router := newLimitedRouter(client, 2, time.Minute)

	for i := 0; i < 2; i++ {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusOK, recorder.Code)
	}

	// Act
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ping", nil))

	// Assert
	assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
	assert.NotEmpty(t, recorder.Header().Get("Retry-After"))
	assert.Contains(t, recorder.Body.String(), "Too Many Requests")
}

func TestRateLimiter_WindowResets(t *testing.T) {
	// Arrange
	testRedis := testutil.SetupTestRedis(t)
	defer testRedis.Teardown(t)
	client := redis.NewClient(&redis.Options{Addr: testRedis.Server.Addr()})
	defer client.Close()

	router := newLimitedRouter(client, 1, time.Second)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusTooManyRequests, recorder.Code)

	// Act: advance miniredis past the window; real time does not move.
	testRedis.Server.FastForward(2 * time.Second)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ping", nil))

	// Assert
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestRateLimiter_FailsOpenWhenRedisDown(t *testing.T) {
	// Arrange: a client pointed at a closed server.
	testRedis := testutil.SetupTestRedis(t)
	client := redis.NewClient(&redis.Options{Addr: testRedis.Server.Addr()})
	defer client.Close()
	testRedis.Server.Close()

	router := newLimitedRouter(client, 1, time.Minute)

	// Act
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ping", nil))

	// Assert: throttling is a protection, not a dependency.
	assert.Equal(t, http.StatusOK, recorder.Code)
}
