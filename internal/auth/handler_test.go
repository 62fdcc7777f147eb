package auth_test

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"os"
	"testing"
	"time"

	"github.com/giftbridge/platform/internal/authz"
	"github.com/giftbridge/platform/internal/database"
	"github.com/giftbridge/platform/internal/models"
	"github.com/giftbridge/platform/internal/testutils"
	"github.com/giftbridge/platform/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestRegisterHandler(t *testing.T) {
	app := testutils.SetupTestApp(t)

	t.Run("Success - Register new user", func(t *testing.T) {
		body := map[string]interface{}{
			"name":     "John Doe",
			"email":    "john@example.com",
			"password": "password123",
		}

		resp, err := testutils.MakeRequest(app, "POST", "/auth/register", body, "")
		assert.NoError(t, err)
		assert.Equal(t, 201, resp.Code)

		var result testutils.StandardResponse
		testutils.ParseResponse(t, resp, &result)
		assert.True(t, result.Success)
		assert.Equal(t, "Registration successful", result.Message)

		if result.Data != nil {
			data := result.Data.(map[string]interface{})
			assert.NotEmpty(t, data["access_token"])
			assert.NotEmpty(t, data["refresh_token"])
		}

		var u models.User
		database.DB.Where("email = ?", "john@example.com").First(&u)
		assert.Equal(t, authz.RoleUser, u.Role)
	})

	t.Run("Error - Missing required fields", func(t *testing.T) {
		body := map[string]interface{}{
			"email": "test@example.com",
		}

		resp, err := testutils.MakeRequest(app, "POST", "/auth/register", body, "")
		assert.NoError(t, err)
		assert.Equal(t, 422, resp.Code)

		testutils.AssertError(t, resp, "VALIDATION_ERROR")
	})

	t.Run("Error - Duplicate email", func(t *testing.T) {
		body := map[string]interface{}{
			"name":     "Jane Doe",
			"email":    "john@example.com",
			"password": "password123",
		}

		resp, err := testutils.MakeRequest(app, "POST", "/auth/register", body, "")
		assert.NoError(t, err)
		assert.Equal(t, 409, resp.Code)

		testutils.AssertError(t, resp, "CONFLICT")
	})
}

func TestLoginHandler(t *testing.T) {
	app := testutils.SetupTestApp(t)

	testutils.CreateTestUser(t, database.DB, "test@example.com", "password123", authz.RoleUser, nil)

	t.Run("Success - Valid credentials", func(t *testing.T) {
		body := map[string]interface{}{
			"email":    "test@example.com",
			"password": "password123",
		}

		resp, err := testutils.MakeRequest(app, "POST", "/auth/login", body, "")
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var result testutils.StandardResponse
		testutils.ParseResponse(t, resp, &result)
		assert.True(t, result.Success)

		if result.Data != nil {
			data := result.Data.(map[string]interface{})
			assert.NotEmpty(t, data["access_token"])
			assert.NotEmpty(t, data["refresh_token"])
		} else {
			t.Fatal("Expected data in response but got nil")
		}
	})

	t.Run("Error - Invalid credentials", func(t *testing.T) {
		body := map[string]interface{}{
			"email":    "test@example.com",
			"password": "wrongpassword",
		}

		resp, err := testutils.MakeRequest(app, "POST", "/auth/login", body, "")
		assert.NoError(t, err)
		assert.Equal(t, 401, resp.Code)

		testutils.AssertError(t, resp, "UNAUTHORIZED")
	})

	t.Run("Error - Missing fields", func(t *testing.T) {
		body := map[string]interface{}{
			"email": "test@example.com",
		}

		resp, err := testutils.MakeRequest(app, "POST", "/auth/login", body, "")
		assert.NoError(t, err)
		assert.Equal(t, 422, resp.Code)

		testutils.AssertError(t, resp, "VALIDATION_ERROR")
	})
}

func TestRefreshHandler(t *testing.T) {
	app := testutils.SetupTestApp(t)

	user := testutils.CreateTestUser(t, database.DB, "refresh@example.com", "password123", authz.RoleUser, nil)

	t.Run("Success - Valid refresh token", func(t *testing.T) {
		refreshToken, _ := utils.GenerateRefreshToken(user.ID)

		body := map[string]interface{}{
			"user_id":       user.ID,
			"refresh_token": refreshToken,
		}

		resp, err := testutils.MakeRequest(app, "POST", "/auth/refresh", body, "")
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var result testutils.StandardResponse
		testutils.ParseResponse(t, resp, &result)
		assert.True(t, result.Success)

		data := result.Data.(map[string]interface{})
		assert.NotEmpty(t, data["access_token"])
		assert.NotEmpty(t, data["refresh_token"])
	})

	t.Run("Error - Invalid refresh token", func(t *testing.T) {
		body := map[string]interface{}{
			"user_id":       user.ID,
			"refresh_token": "invalid_token",
		}

		resp, err := testutils.MakeRequest(app, "POST", "/auth/refresh", body, "")
		assert.NoError(t, err)
		assert.Equal(t, 401, resp.Code)

		testutils.AssertError(t, resp, "UNAUTHORIZED")
	})

	t.Run("Error - Missing fields", func(t *testing.T) {
		body := map[string]interface{}{
			"user_id": user.ID,
		}

		resp, err := testutils.MakeRequest(app, "POST", "/auth/refresh", body, "")
		assert.NoError(t, err)
		assert.Equal(t, 422, resp.Code)

		testutils.AssertError(t, resp, "VALIDATION_ERROR")
	})
}

func TestLogoutHandler(t *testing.T) {
	app := testutils.SetupTestApp(t)

	user := testutils.CreateTestUser(t, database.DB, "logout@example.com", "password123", authz.RoleUser, nil)
	token := testutils.GetAuthToken(t, user)

	t.Run("Success - Logout with valid token", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "POST", "/auth/logout", nil, token)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		testutils.AssertSuccess(t, resp)
	})

	t.Run("Error - Logout without token", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "POST", "/auth/logout", nil, "")
		assert.NoError(t, err)
		assert.Equal(t, 401, resp.Code)

		testutils.AssertError(t, resp, "UNAUTHORIZED")
	})
}

func TestForgotPasswordHandler(t *testing.T) {
	app := testutils.SetupTestApp(t)

	testutils.CreateTestUser(t, database.DB, "forgot@example.com", "password123", authz.RoleUser, nil)

	t.Run("Success - Request password reset", func(t *testing.T) {
		body := map[string]interface{}{
			"email": "forgot@example.com",
		}

		resp, err := testutils.MakeRequest(app, "POST", "/auth/forgot-password", body, "")
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		testutils.AssertSuccess(t, resp)
	})

	t.Run("Success - Non-existent email (security)", func(t *testing.T) {
		body := map[string]interface{}{
			"email": "nonexistent@example.com",
		}

		resp, err := testutils.MakeRequest(app, "POST", "/auth/forgot-password", body, "")
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		testutils.AssertSuccess(t, resp)
	})

	t.Run("Error - Missing email", func(t *testing.T) {
		body := map[string]interface{}{}

		resp, err := testutils.MakeRequest(app, "POST", "/auth/forgot-password", body, "")
		assert.NoError(t, err)
		assert.Equal(t, 422, resp.Code)

		testutils.AssertError(t, resp, "VALIDATION_ERROR")
	})
}

func generateSecureToken(n int) (string, string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", "", err
	}
	token := base64.URLEncoding.EncodeToString(b)
	hash := sha256.Sum256([]byte(token))
	return token, base64.URLEncoding.EncodeToString(hash[:]), nil
}

func TestResetPasswordHandler(t *testing.T) {
	app := testutils.SetupTestApp(t)

	user := testutils.CreateTestUser(t, database.DB, "reset@example.com", "oldpassword", authz.RoleUser, nil)

	t.Run("Success - Reset password with valid token", func(t *testing.T) {
		plainToken, tokenHash, _ := generateSecureToken(32)
		resetToken := &models.ResetToken{
			UserID:    user.ID,
			TokenHash: tokenHash,
			ExpiresAt: time.Now().Add(1 * time.Hour),
		}
		database.DB.Create(resetToken)

		body := map[string]interface{}{
			"token":        plainToken,
			"new_password": "newpassword123",
		}

		resp, err := testutils.MakeRequest(app, "POST", "/auth/reset-password", body, "")
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		testutils.AssertSuccess(t, resp)
	})

	t.Run("Error - Invalid token", func(t *testing.T) {
		body := map[string]interface{}{
			"token":        "invalid_token",
			"new_password": "newpassword123",
		}

		resp, err := testutils.MakeRequest(app, "POST", "/auth/reset-password", body, "")
		assert.NoError(t, err)
		assert.Equal(t, 400, resp.Code)

		testutils.AssertError(t, resp, "BAD_REQUEST")
	})

	t.Run("Error - Missing fields", func(t *testing.T) {
		body := map[string]interface{}{
			"token": "some_token",
		}

		resp, err := testutils.MakeRequest(app, "POST", "/auth/reset-password", body, "")
		assert.NoError(t, err)
		assert.Equal(t, 422, resp.Code)

		testutils.AssertError(t, resp, "VALIDATION_ERROR")
	})
}

// ================ OAUTH ====================

func TestGoogleLogin(t *testing.T) {
	app := testutils.SetupTestApp(t)

	os.Setenv("GOOGLE_CLIENT_ID", "test-client-id")
	os.Setenv("GOOGLE_CLIENT_SECRET", "test-client-secret")

	t.Run("Success - Redirect to Google OAuth", func(t *testing.T) {
		resp, err := testutils.MakeRedirectRequest(app, "GET", "/auth/google/login", "")
		assert.NoError(t, err)

		assert.True(t, resp.Code == 302 || resp.Code == 307, "Expected redirect status")

		location := resp.Header().Get("Location")
		assert.Contains(t, location, "accounts.google.com/o/oauth2/auth")
		assert.Contains(t, location, "state=")
	})
}

func TestGoogleCallback(t *testing.T) {
	app := testutils.SetupTestApp(t)

	os.Setenv("GOOGLE_CLIENT_ID", "test-client-id")
	os.Setenv("GOOGLE_CLIENT_SECRET", "test-client-secret")

	t.Run("Error - Invalid state parameter", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", "/auth/google/callback?state=invalid&code=test", nil, "")
		assert.NoError(t, err)
		assert.Equal(t, 400, resp.Code)
		assert.Contains(t, resp.Body.String(), "Invalid state parameter")
	})
}

func TestGoogleProviderField(t *testing.T) {
	testutils.SetupTestApp(t)

	t.Run("Differentiate Google and local users", func(t *testing.T) {
		googleUser := testutils.CreateTestUser(t, database.DB, "google@test.com", "", authz.RoleUser, nil)
		database.DB.Model(googleUser).Update("provider", "google")

		localUser := testutils.CreateTestUser(t, database.DB, "local@test.com", "password123", authz.RoleUser, nil)
		database.DB.Model(localUser).Update("provider", "local")

		var gUser, lUser struct {
			Provider string
		}
		database.DB.Model(googleUser).Select("provider").First(&gUser, googleUser.ID)
		database.DB.Model(localUser).Select("provider").First(&lUser, localUser.ID)

		assert.Equal(t, "google", gUser.Provider)
		assert.NotEqual(t, "google", lUser.Provider)
	})
}
