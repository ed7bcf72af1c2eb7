package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MileWise/milewise-backend/services"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func rateLimitTestRouter(limiter services.RateLimiterInterface) *gin.Engine {
	r := gin.New()
	r.Use(ErrorHandler())
	r.Use(func(c *gin.Context) {
		c.Set(string(UserIDKey), "user-1")
	})
	r.Use(RateLimiter(limiter, 5, time.Minute))
	r.POST("/optimize", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestRateLimiterAllows(t *testing.T) {
	db, mock := redismock.NewClientMock()
	limiter := services.NewRateLimitService(db)

	mock.ExpectIncr("rate_limit:optimize:user-1").SetVal(1)
	mock.ExpectExpire("rate_limit:optimize:user-1", time.Minute).SetVal(true)

	r := rateLimitTestRouter(limiter)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/optimize", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
}

func TestRateLimiterBlocks(t *testing.T) {
	db, mock := redismock.NewClientMock()
	limiter := services.NewRateLimitService(db)

	mock.ExpectIncr("rate_limit:optimize:user-1").SetVal(6)
	mock.ExpectExpire("rate_limit:optimize:user-1", time.Minute).SetVal(true)
	mock.ExpectTTL("rate_limit:optimize:user-1").SetVal(30 * time.Second)

	r := rateLimitTestRouter(limiter)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/optimize", nil))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "30", w.Header().Get("Retry-After"))
}

func TestRateLimiterFailsOpen(t *testing.T) {
	db, mock := redismock.NewClientMock()
	limiter := services.NewRateLimitService(db)

	mock.ExpectIncr("rate_limit:optimize:user-1").SetErr(assert.AnError)

	r := rateLimitTestRouter(limiter)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/optimize", nil))

	// Redis being down must not take the API with it.
	assert.Equal(t, http.StatusOK, w.Code)
}
