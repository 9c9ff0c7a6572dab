package services

import (
	"context"
	cryptorand "crypto/rand"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/spf13/viper"
	"golang.org/x/crypto/argon2"

	"github.com/nirmaanhomes/backend/internal/models"
)

type AuthService struct {
	db        *sql.DB
	redis     *redis.Client
	validator *ValidationHelper
}

// SignUpRequest represents the registration request payload
// @Description Registration request structure
type SignUpRequest struct {
	Name     string `json:"name" validate:"required,min=2" example:"Priya Sharma"`        // Display name
	Email    string `json:"email" validate:"required,email" example:"priya@example.com"`  // Email address
	Password string `json:"password" validate:"required,min=6" example:"password123"`     // Password
	Phone    string `json:"phone" validate:"omitempty,min=7,max=16" example:"9812345678"` // Phone number
}

// SignInRequest represents the login request payload
// @Description Login request structure
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email" example:"priya@example.com"` // Email address
	Password string `json:"password" validate:"required,min=6" example:"password123"`    // Password
}

// AuthResponse represents the authentication response
// @Description Authentication response structure
type AuthResponse struct {
	Token string      `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."` // JWT token
	User  models.User `json:"user"`                                                    // Profile record
}

func NewAuthService(db *sql.DB, redisClient *redis.Client) *AuthService {
	return &AuthService{
		db:        db,
		redis:     redisClient,
		validator: NewValidationHelper(),
	}
}

// Register handles user sign-up
// @Summary Register a new user
// @Description Create an account and its profile record with default notification preferences
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignUpRequest true "Registration request"
// @Success 200 {object} AuthResponse "Registration successful"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /auth/register [post]
func (s *AuthService) Register(w http.ResponseWriter, r *http.Request) {
	log.Printf("[AUTH] Registration attempt from IP: %s", r.RemoteAddr)

	maxBytes := 1_048_576 // 1 MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req SignUpRequest
	if err := dec.Decode(&req); err != nil {
		log.Printf("[AUTH] Registration failed - invalid request: %v", err)
		SendErrorResponse(w, "Invalid request", http.StatusBadRequest, nil)
		return
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		log.Printf("[AUTH] Multiple JSON objects detected")
		SendErrorResponse(w, "Request body must only contain a single JSON object", http.StatusBadRequest, nil)
		return
	}

	if err := s.validator.ValidateStruct(&req); err != nil {
		log.Printf("[AUTH] Registration validation failed: %v", err)
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	hashedPassword, err := hashPassword(req.Password)
	if err != nil {
		log.Printf("[AUTH] Password hashing failed for %s: %v", req.Email, err)
		SendErrorResponse(w, "An Internal Error Occurred", http.StatusInternalServerError, nil)
		return
	}

	// New sign-ups are always unprivileged; promotion to admin is a manual
	// operation outside this API.
	user := models.User{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Email:       strings.ToLower(req.Email),
		Phone:       req.Phone,
		Role:        models.RoleUser,
		Preferences: models.DefaultPreferences(),
	}

	_, err = s.db.Exec(`INSERT INTO users (id, name, email, phone, password, role, newsletter, promotions, project_updates)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		user.ID, user.Name, user.Email, user.Phone, hashedPassword, user.Role,
		user.Preferences.Newsletter, user.Preferences.Promotions, user.Preferences.ProjectUpdates)
	if err != nil {
		if isUniqueViolation(err, "") {
			log.Printf("[AUTH] Registration rejected - email already registered: %s", user.Email)
			SendErrorResponse(w, "Email Already Registered", http.StatusConflict, nil)
			return
		}
		log.Printf("[AUTH] User creation failed for %s: %v", user.Email, err)
		SendErrorResponse(w, ErrStoreUnavailable.Error(), http.StatusServiceUnavailable, nil)
		return
	}

	token, err := generateJWT(user)
	if err != nil {
		log.Printf("[AUTH] JWT generation failed for user %s: %v", user.ID, err)
		SendErrorResponse(w, "Failed to generate token", http.StatusInternalServerError, nil)
		return
	}

	log.Printf("[AUTH] Registration successful for user %s", user.ID)
	RespondJSON(w, http.StatusOK, AuthResponse{Token: token, User: user})
}

// Login handles user authentication
// @Summary Login user
// @Description Authenticate with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignInRequest true "Login request"
// @Success 200 {object} AuthResponse "Login successful"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 401 {object} ErrorResponse "Invalid credentials"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (s *AuthService) Login(w http.ResponseWriter, r *http.Request) {
	log.Printf("[AUTH] Login attempt from IP: %s", r.RemoteAddr)

	maxBytes := 1_048_576 // 1 MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req SignInRequest
	if err := dec.Decode(&req); err != nil {
		log.Printf("[AUTH] Login failed - invalid request: %v", err)
		SendErrorResponse(w, "Invalid request", http.StatusBadRequest, nil)
		return
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		log.Printf("[AUTH] Multiple JSON objects detected")
		SendErrorResponse(w, "Request body must only contain a single JSON object", http.StatusBadRequest, nil)
		return
	}

	if err := s.validator.ValidateStruct(&req); err != nil {
		log.Printf("[AUTH] Login validation failed: %v", err)
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	var user models.User
	var hashedPassword string
	err := s.db.QueryRow(`SELECT id, name, email, phone, password, role, newsletter, promotions, project_updates
		FROM users WHERE email = $1`, strings.ToLower(req.Email)).
		Scan(&user.ID, &user.Name, &user.Email, &user.Phone, &hashedPassword, &user.Role,
			&user.Preferences.Newsletter, &user.Preferences.Promotions, &user.Preferences.ProjectUpdates)
	if err != nil {
		log.Printf("[AUTH] User not found for email: %s", req.Email)
		SendErrorResponse(w, "Invalid credentials", http.StatusUnauthorized, nil)
		return
	}

	if !verifyPassword(req.Password, hashedPassword) {
		log.Printf("[AUTH] Invalid password for user: %s", req.Email)
		SendErrorResponse(w, "Invalid credentials", http.StatusUnauthorized, nil)
		return
	}

	token, err := generateJWT(user)
	if err != nil {
		log.Printf("[AUTH] JWT generation failed for user %s: %v", user.ID, err)
		SendErrorResponse(w, "Failed to generate token", http.StatusInternalServerError, nil)
		return
	}

	log.Printf("[AUTH] Login successful for user %s", user.ID)
	RespondJSON(w, http.StatusOK, AuthResponse{Token: token, User: user})
}

// Logout handles user logout
// @Summary Logout user
// @Description Logout and blacklist the presented token for its remaining lifetime
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string "Logout successful"
// @Router /auth/logout [post]
func (s *AuthService) Logout(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("Authorization")
	if token != "" && len(token) > 7 {
		token = token[7:] // Remove "Bearer " prefix

		if s.redis != nil {
			ctx := context.Background()
			key := fmt.Sprintf("blacklist:%s", token)
			expiry := time.Duration(viper.GetInt("jwt.expiry_hours")) * time.Hour
			if err := s.redis.Set(ctx, key, "1", expiry).Err(); err != nil {
				log.Printf("[AUTH] Failed to blacklist token: %v", err)
			}
		}
	}

	RespondJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

// GetUserAccount retrieves the profile record for the signed-in identity
// @Summary Get account profile
// @Description Fetch the authenticated user's profile, lazily recreating it if the row is missing
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User "Profile record"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 503 {object} ErrorResponse "Store unavailable"
// @Router /auth/account [get]
func (s *AuthService) GetUserAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	user, err := s.fetchUser(userID)
	if err == sql.ErrNoRows {
		// The identity exists but its profile row is gone; recreate it from
		// the token claims with default preferences.
		log.Printf("[AUTH] Profile missing for user %s, recreating", userID)
		user, err = s.createProfileFromClaims(r.Context(), userID)
	}
	if err != nil {
		log.Printf("[AUTH] Failed to fetch profile for user %s: %v", userID, err)
		SendServiceError(w, ErrStoreUnavailable)
		return
	}

	RespondJSON(w, http.StatusOK, user)
}

// UpdatePreferences persists the notification preferences structure
// @Summary Update notification preferences
// @Description Replace the authenticated user's notification preferences
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.Preferences true "Preferences"
// @Success 200 {object} models.Preferences "Stored preferences"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "Profile not found"
// @Router /auth/preferences [put]
func (s *AuthService) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1_048_576)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var prefs models.Preferences
	if err := dec.Decode(&prefs); err != nil {
		SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		SendErrorResponse(w, "Request body must only contain a single JSON object", http.StatusBadRequest, nil)
		return
	}

	result, err := s.db.Exec(`UPDATE users SET newsletter = $1, promotions = $2, project_updates = $3, updated_at = NOW()
		WHERE id = $4`, prefs.Newsletter, prefs.Promotions, prefs.ProjectUpdates, userID)
	if err != nil {
		log.Printf("[AUTH] Failed to update preferences for user %s: %v", userID, err)
		SendServiceError(w, ErrStoreUnavailable)
		return
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		SendServiceError(w, ErrNotFound)
		return
	}

	log.Printf("[AUTH] Preferences updated for user %s", userID)
	RespondJSON(w, http.StatusOK, prefs)
}

func (s *AuthService) fetchUser(userID string) (models.User, error) {
	var user models.User
	err := s.db.QueryRow(`SELECT id, name, email, phone, role, newsletter, promotions, project_updates, created_at, updated_at
		FROM users WHERE id = $1`, userID).
		Scan(&user.ID, &user.Name, &user.Email, &user.Phone, &user.Role,
			&user.Preferences.Newsletter, &user.Preferences.Promotions, &user.Preferences.ProjectUpdates,
			&user.CreatedAt, &user.UpdatedAt)
	return user, err
}

func (s *AuthService) createProfileFromClaims(ctx context.Context, userID string) (models.User, error) {
	email, _ := ctx.Value("email").(string)
	name, _ := ctx.Value("name").(string)
	if name == "" {
		if at := strings.IndexByte(email, '@'); at > 0 {
			name = email[:at]
		} else {
			name = "User"
		}
	}

	user := models.User{
		ID:          userID,
		Name:        name,
		Email:       email,
		Role:        models.RoleUser,
		Preferences: models.DefaultPreferences(),
	}

	_, err := s.db.Exec(`INSERT INTO users (id, name, email, phone, password, role, newsletter, promotions, project_updates)
		VALUES ($1, $2, $3, '', '', $4, $5, $6, $7)`,
		user.ID, user.Name, user.Email, user.Role,
		user.Preferences.Newsletter, user.Preferences.Promotions, user.Preferences.ProjectUpdates)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func generateJWT(user models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"email":   user.Email,
		"name":    user.Name,
		"exp":     time.Now().Add(time.Duration(viper.GetInt("jwt.expiry_hours")) * time.Hour).Unix(),
	})

	return token.SignedString([]byte(viper.GetString("jwt.secret_key")))
}

type argonParams struct {
	time       uint32
	memory     uint32
	threads    uint8
	keyLength  uint32
	saltLength uint32
}

func loadArgonParams() argonParams {
	p := argonParams{time: 3, memory: 64 * 1024, threads: 4, keyLength: 32, saltLength: 16}
	if v := viper.GetInt("argon2.time"); v > 0 {
		p.time = uint32(v)
	}
	if v := viper.GetInt("argon2.memory"); v > 0 {
		p.memory = uint32(v)
	}
	if v := viper.GetInt("argon2.threads"); v > 0 {
		p.threads = uint8(v)
	}
	if v := viper.GetInt("argon2.key_length"); v > 0 {
		p.keyLength = uint32(v)
	}
	if v := viper.GetInt("argon2.salt_length"); v > 0 {
		p.saltLength = uint32(v)
	}
	return p
}

func hashPassword(password string) (string, error) {
	params := loadArgonParams()

	salt := make([]byte, params.saltLength)
	if _, err := cryptorand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, params.time, params.memory, params.threads, params.keyLength)
	return fmt.Sprintf("%s$%s", base64.StdEncoding.EncodeToString(salt), base64.StdEncoding.EncodeToString(hash)), nil
}

func verifyPassword(password, hashedPassword string) bool {
	parts := strings.Split(hashedPassword, "$")
	if len(parts) != 2 {
		return false
	}

	salt, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return false
	}

	hash, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return false
	}

	params := loadArgonParams()
	computedHash := argon2.IDKey([]byte(password), salt, params.time, params.memory, params.threads, params.keyLength)
	return string(hash) == string(computedHash)
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation, optionally restricted to a named constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	if pqErr.Code != "23505" {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}
