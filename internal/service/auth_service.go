package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"contact-manager/internal/model"
	"contact-manager/pkg/apierror"
)

const bcryptCost = 12

type userStore interface {
	Create(ctx context.Context, u model.User) error
	FindByID(ctx context.Context, id string) (model.User, error)
	FindByUsername(ctx context.Context, username string) (model.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username string, email string) (bool, error)
	Search(ctx context.Context, email string, username string) (model.User, error)
}

type AuthService struct {
	users     userStore
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthService(jwtSecret string, tokenTTL time.Duration, users userStore) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

// Register creates a user and returns a token that proves identity but
// carries no role claim; role-gated routes require a login token.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (string, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)

	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role == "" {
		role = model.RoleUser
	}

	exists, err := s.users.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return "", err
	}
	if exists {
		return "", apierror.Conflict("username or email already in use")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	user := model.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return "", err
	}

	return s.signToken(user.ID, "")
}

// Login verifies credentials and issues a token embedding the user's role.
// Unknown username and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username string, password string) (string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if apierror.HasStatus(err, http.StatusNotFound) {
			return "", apierror.BadRequest("invalid username or password")
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apierror.BadRequest("invalid username or password")
	}

	return s.signToken(user.ID, user.Role)
}

func (s *AuthService) Search(ctx context.Context, email string, username string) (model.PublicUser, error) {
	email = strings.TrimSpace(email)
	username = strings.TrimSpace(username)

	if email == "" && username == "" {
		return model.PublicUser{}, apierror.BadRequest("email or username query parameter is required")
	}

	user, err := s.users.Search(ctx, email, username)
	if err != nil {
		return model.PublicUser{}, err
	}

	return user.Redacted(), nil
}

func (s *AuthService) CurrentUser(ctx context.Context, userID string) (model.PublicUser, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return model.PublicUser{}, err
	}

	return user.Redacted(), nil
}

// ValidateToken checks signature and expiry; authorization is fully
// stateless, no store lookup happens here.
func (s *AuthService) ValidateToken(tokenString string) (*model.AuthClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apierror.Unauthorized("invalid token signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, apierror.Unauthorized("invalid or expired token")
	}

	claimsMap, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apierror.Unauthorized("invalid token claims")
	}

	claims := &model.AuthClaims{}
	claims.UserID, _ = claimsMap["sub"].(string)
	claims.Role, _ = claimsMap["role"].(string)

	if claims.UserID == "" {
		return nil, apierror.Unauthorized("invalid token subject")
	}

	return claims, nil
}

func (s *AuthService) signToken(userID string, role string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
	}
	if role != "" {
		claims["role"] = role
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
