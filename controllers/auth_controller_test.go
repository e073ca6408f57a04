package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/face-rate/api-go/models"
	"github.com/face-rate/api-go/storage"
)

func TestRegisterValidation(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter(t, db, storage.NewMemoryMediaStore())

	tests := []struct {
		name          string
		requestBody   map[string]string
		expectedError string
	}{
		{
			name: "Missing username",
			requestBody: map[string]string{
				"email":            "a@x.com",
				"password":         "secret",
				"confirm_password": "secret",
			},
			expectedError: "Please provide username.",
		},
		{
			name: "Missing email",
			requestBody: map[string]string{
				"username":         "alice",
				"password":         "secret",
				"confirm_password": "secret",
			},
			expectedError: "Please provide email.",
		},
		{
			name: "Missing password",
			requestBody: map[string]string{
				"username":         "alice",
				"email":            "a@x.com",
				"confirm_password": "secret",
			},
			expectedError: "Please provide password.",
		},
		{
			name: "Missing confirmation",
			requestBody: map[string]string{
				"username": "alice",
				"email":    "a@x.com",
				"password": "secret",
			},
			expectedError: "Please confirm password.",
		},
		{
			name: "Password mismatch",
			requestBody: map[string]string{
				"username":         "alice",
				"email":            "a@x.com",
				"password":         "secret",
				"confirm_password": "other",
			},
			expectedError: "Passwords don't match.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(r, http.MethodPost, "/api/register", "", tt.requestBody)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			body := decodeBody(t, w)
			assert.Equal(t, tt.expectedError, body["error"])
		})
	}

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(0), count, "no user should be created by rejected registrations")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter(t, db, storage.NewMemoryMediaStore())

	registerUser(t, r, "alice", "a@x.com", "secret")

	w := performRequest(r, http.MethodPost, "/api/register", "", map[string]string{
		"username":         "alice",
		"email":            "other@x.com",
		"password":         "secret",
		"confirm_password": "secret",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Username already exists.", body["error"])

	var count int64
	db.Model(&models.User{}).Where("username = ?", "alice").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRegisterStoresHashedPassword(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter(t, db, storage.NewMemoryMediaStore())

	registerUser(t, r, "alice", "a@x.com", "secret")

	var user models.User
	require.NoError(t, db.Where("username = ?", "alice").First(&user).Error)
	assert.NotEqual(t, "secret", user.Password)
	assert.NotEmpty(t, user.Password)
	assert.False(t, user.IsSet)
	assert.Equal(t, 0, user.Popularity)
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter(t, db, storage.NewMemoryMediaStore())

	registerUser(t, r, "alice", "a@x.com", "secret")

	t.Run("Wrong password", func(t *testing.T) {
		w := performRequest(r, http.MethodPost, "/api/login", "", map[string]string{
			"username": "alice",
			"password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Invalid username and/or password.", body["error"])
	})

	t.Run("Unknown user gets the same message", func(t *testing.T) {
		w := performRequest(r, http.MethodPost, "/api/login", "", map[string]string{
			"username": "nobody",
			"password": "secret",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Invalid username and/or password.", body["error"])
	})

	t.Run("Valid credentials", func(t *testing.T) {
		w := performRequest(r, http.MethodPost, "/api/login", "", map[string]string{
			"username": "alice",
			"password": "secret",
		})
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.NotEmpty(t, body["access_token"])
		assert.NotEmpty(t, body["refresh_token"])

		user := body["user"].(map[string]interface{})
		assert.Equal(t, "alice", user["username"])
		assert.Equal(t, false, user["profileSet"])
	})
}

func TestAuthRequiredOnProtectedRoutes(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter(t, db, storage.NewMemoryMediaStore())

	w := performRequest(r, http.MethodGet, "/api/feed", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = performRequest(r, http.MethodPost, "/api/posts", "not-a-token", map[string]string{"text": "hi"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshTokenRotation(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter(t, db, storage.NewMemoryMediaStore())

	token := registerUser(t, r, "alice", "a@x.com", "secret")

	var stored models.RefreshToken
	require.NoError(t, db.First(&stored).Error)
	oldToken := stored.Token

	w := performRequest(r, http.MethodPost, "/api/refresh-token", token, map[string]string{
		"refresh_token": oldToken,
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	newToken := body["refresh_token"].(string)
	assert.NotEqual(t, oldToken, newToken)

	// The old value no longer refreshes anything.
	w = performRequest(r, http.MethodPost, "/api/refresh-token", token, map[string]string{
		"refresh_token": oldToken,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutDeletesRefreshToken(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter(t, db, storage.NewMemoryMediaStore())

	token := registerUser(t, r, "alice", "a@x.com", "secret")

	var stored models.RefreshToken
	require.NoError(t, db.First(&stored).Error)

	w := performRequest(r, http.MethodPost, "/api/logout", token, map[string]string{
		"refresh_token": stored.Token,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.RefreshToken{}).Where("token = ?", stored.Token).Count(&count)
	assert.Equal(t, int64(0), count)
}
