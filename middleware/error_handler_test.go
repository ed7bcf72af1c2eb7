package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/MileWise/milewise-backend/errors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandlerAppError(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/missing", func(c *gin.Context) {
		_ = c.Error(apperrors.ItineraryNotFound("it-1"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ITINERARY_NOT_FOUND", body["type"])
	assert.Equal(t, "Itinerary not found", body["message"])
	assert.Equal(t, "404", body["code"])
}

func TestErrorHandlerUnknownError(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(assert.AnError)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "SERVER_ERROR", body["type"])
	assert.Equal(t, "Internal Server Error", body["message"])
}

func TestErrorHandlerNoError(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "true")
}
