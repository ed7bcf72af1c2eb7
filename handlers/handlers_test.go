package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/MileWise/milewise-backend/logger"
	"github.com/MileWise/milewise-backend/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const testUserID = "user-1"

func TestMain(m *testing.M) {
	logger.IsTest = true
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// newTestRouter builds a gin engine with the error handler and a stub auth
// middleware that sets a fixed user ID.
func newTestRouter() *gin.Engine {
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.Use(func(c *gin.Context) {
		c.Set(string(middleware.UserIDKey), testUserID)
	})
	return r
}

func jsonBody(t *testing.T, v interface{}) *bytes.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func doRequest(r *gin.Engine, method, path string, body *bytes.Reader) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, body)
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
