package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang-jwt/jwt/v5"
	"github.com/lib/pq"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"github.com/nirmaanhomes/backend/internal/models"
)

func newAuthTestService(t *testing.T) (*AuthService, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	viper.Set("jwt.secret_key", "test-secret")
	viper.Set("jwt.expiry_hours", 1)
	t.Cleanup(func() {
		viper.Set("jwt.secret_key", "")
		viper.Set("jwt.expiry_hours", 0)
	})

	return NewAuthService(db, nil), mock
}

func TestPasswordHashing(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		hashed, err := hashPassword("password123")
		assert.NoError(t, err)
		assert.NotEqual(t, "password123", hashed)
		assert.True(t, verifyPassword("password123", hashed))
	})

	t.Run("wrong password", func(t *testing.T) {
		hashed, err := hashPassword("password123")
		assert.NoError(t, err)
		assert.False(t, verifyPassword("password124", hashed))
	})

	t.Run("salted hashes differ", func(t *testing.T) {
		first, err := hashPassword("password123")
		assert.NoError(t, err)
		second, err := hashPassword("password123")
		assert.NoError(t, err)
		assert.NotEqual(t, first, second)
	})

	t.Run("malformed hash", func(t *testing.T) {
		assert.False(t, verifyPassword("password123", "not-a-valid-hash"))
		assert.False(t, verifyPassword("password123", "a$b$c"))
	})
}

func TestGenerateJWT(t *testing.T) {
	viper.Set("jwt.secret_key", "test-secret")
	viper.Set("jwt.expiry_hours", 1)
	defer viper.Set("jwt.secret_key", "")

	user := models.User{ID: "user-1", Name: "Priya Sharma", Email: "priya@example.com", Role: models.RoleUser}
	tokenStr, err := generateJWT(user)
	assert.NoError(t, err)

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	assert.NoError(t, err)
	assert.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, models.RoleUser, claims["role"])
	assert.Equal(t, "priya@example.com", claims["email"])
}

func TestRegister(t *testing.T) {
	t.Run("successful registration", func(t *testing.T) {
		service, mock := newAuthTestService(t)

		mock.ExpectExec("INSERT INTO users").
			WithArgs(sqlmock.AnyArg(), "Priya Sharma", "priya@example.com", "9812345678", sqlmock.AnyArg(),
				models.RoleUser, true, false, true).
			WillReturnResult(sqlmock.NewResult(1, 1))

		body := `{"name":"Priya Sharma","email":"Priya@Example.com","password":"password123","phone":"9812345678"}`
		rec := httptest.NewRecorder()
		service.Register(rec, httptest.NewRequest("POST", "/auth/register", strings.NewReader(body)))

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp AuthResponse
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "priya@example.com", resp.User.Email)
		assert.Equal(t, models.RoleUser, resp.User.Role)
		assert.Equal(t, models.DefaultPreferences(), resp.User.Preferences)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email", func(t *testing.T) {
		service, mock := newAuthTestService(t)

		mock.ExpectExec("INSERT INTO users").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

		body := `{"name":"Priya Sharma","email":"priya@example.com","password":"password123"}`
		rec := httptest.NewRecorder()
		service.Register(rec, httptest.NewRequest("POST", "/auth/register", strings.NewReader(body)))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("validation failure", func(t *testing.T) {
		service, _ := newAuthTestService(t)

		body := `{"name":"P","email":"not-an-email","password":"123"}`
		rec := httptest.NewRecorder()
		service.Register(rec, httptest.NewRequest("POST", "/auth/register", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp ErrorResponse
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.NotEmpty(t, resp.Details)
	})

	t.Run("unknown fields rejected", func(t *testing.T) {
		service, _ := newAuthTestService(t)

		body := `{"name":"Priya Sharma","email":"priya@example.com","password":"password123","role":"admin"}`
		rec := httptest.NewRecorder()
		service.Register(rec, httptest.NewRequest("POST", "/auth/register", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLogin(t *testing.T) {
	userColumns := []string{"id", "name", "email", "phone", "password", "role", "newsletter", "promotions", "project_updates"}

	t.Run("successful login", func(t *testing.T) {
		service, mock := newAuthTestService(t)

		hashed, err := hashPassword("password123")
		assert.NoError(t, err)

		mock.ExpectQuery("SELECT (.+) FROM users WHERE email = \\$1").
			WithArgs("priya@example.com").
			WillReturnRows(sqlmock.NewRows(userColumns).
				AddRow("user-1", "Priya Sharma", "priya@example.com", "9812345678", hashed, models.RoleUser, true, false, true))

		body := `{"email":"priya@example.com","password":"password123"}`
		rec := httptest.NewRecorder()
		service.Login(rec, httptest.NewRequest("POST", "/auth/login", strings.NewReader(body)))

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp AuthResponse
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "user-1", resp.User.ID)
	})

	t.Run("unknown email", func(t *testing.T) {
		service, mock := newAuthTestService(t)

		mock.ExpectQuery("SELECT (.+) FROM users WHERE email = \\$1").
			WithArgs("nobody@example.com").
			WillReturnRows(sqlmock.NewRows(userColumns))

		body := `{"email":"nobody@example.com","password":"password123"}`
		rec := httptest.NewRecorder()
		service.Login(rec, httptest.NewRequest("POST", "/auth/login", strings.NewReader(body)))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		service, mock := newAuthTestService(t)

		hashed, err := hashPassword("password123")
		assert.NoError(t, err)

		mock.ExpectQuery("SELECT (.+) FROM users WHERE email = \\$1").
			WithArgs("priya@example.com").
			WillReturnRows(sqlmock.NewRows(userColumns).
				AddRow("user-1", "Priya Sharma", "priya@example.com", "9812345678", hashed, models.RoleUser, true, false, true))

		body := `{"email":"priya@example.com","password":"hunter22222"}`
		rec := httptest.NewRecorder()
		service.Login(rec, httptest.NewRequest("POST", "/auth/login", strings.NewReader(body)))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pq.Error{Code: "23505"}, ""))
	assert.True(t, isUniqueViolation(&pq.Error{Code: "23505", Constraint: "appointments_slot_active"}, "appointments_slot_active"))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23505", Constraint: "users_email_key"}, "appointments_slot_active"))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}, ""))
	assert.False(t, isUniqueViolation(assert.AnError, ""))
}
