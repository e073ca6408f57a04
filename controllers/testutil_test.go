package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/face-rate/api-go/middleware"
	"github.com/face-rate/api-go/models"
	"github.com/face-rate/api-go/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "test-secret-key")
}

// testClock pins event timestamps to a known instant.
type testClock struct {
	t time.Time
}

func (c testClock) Now() time.Time {
	return c.t
}

var fixedNow = time.Date(2024, 5, 12, 9, 30, 0, 0, time.UTC)

const fixedTimeString = "09:30 12.05.2024"

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.User{}, &models.RefreshToken{}, &models.NewsfeedEvent{})
	require.NoError(t, err)

	return db
}

// setupTestRouter wires every handler onto a fresh engine the way
// routes.SetupRoutes does, against the given test database.
func setupTestRouter(t *testing.T, db *gorm.DB, media *storage.MemoryMediaStore) *gin.Engine {
	t.Helper()

	clock := testClock{t: fixedNow}

	authController := NewAuthController(db)
	profileController := NewProfileController(db, clock)
	voteController := NewVoteController(db, clock)
	wallController := NewWallController(db, clock)
	directoryController := NewDirectoryController(db)
	uploadController := NewUploadController(db, media)

	r := gin.New()

	public := r.Group("/api")
	public.POST("/register", authController.Register)
	public.POST("/login", authController.Login)

	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	protected.POST("/logout", authController.Logout)
	protected.POST("/refresh-token", authController.RefreshToken)
	protected.GET("/profile", profileController.GetProfile)
	protected.PUT("/profile", profileController.CompleteProfile)
	protected.GET("/users", directoryController.ListUsers)
	protected.GET("/users/search", directoryController.SearchUsers)
	protected.GET("/users/:username", profileController.ShowProfile)
	protected.POST("/users/:username/like", voteController.Like)
	protected.POST("/users/:username/dislike", voteController.Dislike)
	protected.GET("/feed", wallController.GetFeed)
	protected.POST("/posts", wallController.CreatePost)
	protected.POST("/profile/image", uploadController.UploadImage)

	return r
}

func performRequest(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// registerUser signs up a user and returns the access token.
func registerUser(t *testing.T, r *gin.Engine, username, email, password string) string {
	t.Helper()

	w := performRequest(r, http.MethodPost, "/api/register", "", map[string]string{
		"username":         username,
		"email":            email,
		"password":         password,
		"confirm_password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	token, ok := body["access_token"].(string)
	require.True(t, ok, "register response missing access token")
	return token
}

func uploadImageRequest(t *testing.T, r *gin.Engine, token, fieldName, fileName string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if fieldName != "" {
		part, err := writer.CreateFormFile(fieldName, fileName)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/profile/image", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
