package user

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/stembank/stembank/internal/apperr"
)

// TokenTTL is the session token lifetime.
const TokenTTL = time.Hour

const bcryptCost = 10

type Service struct {
	repo      Repository
	jwtSecret []byte
}

func NewService(repo Repository, jwtSecret []byte) *Service {
	return &Service{repo: repo, jwtSecret: jwtSecret}
}

// Claims are the signed session token claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// CreateAccount hashes the password and inserts the account. Username
// uniqueness is checked before the insert, matching the original flow; the
// unique constraint on Users.Username backstops a race.
func (s *Service) CreateAccount(ctx context.Context, username, password, role string, hospitalID *int64) (*User, error) {
	if username == "" || password == "" {
		return nil, apperr.Validation("username and password are required")
	}
	if !ValidRole(role) {
		return nil, apperr.Validation("invalid role %q", role)
	}

	existing, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, apperr.Query("error creating account", err)
	}
	if existing != nil {
		return nil, apperr.Validation("username already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, apperr.Query("error creating account", err)
	}

	u := &User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		HospitalID:   hospitalID,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, apperr.Query("error creating account", err)
	}
	return u, nil
}

// Login verifies the credentials and returns a signed session token. Bad
// username and bad password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return "", apperr.Query("an error occurred during login", err)
	}
	if u == nil {
		return "", apperr.Auth("invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", apperr.Auth("invalid username or password")
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
		UserID:   u.UserID,
		Username: u.Username,
		Role:     u.Role,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", apperr.Query("an error occurred during login", err)
	}
	return token, nil
}

// VerifyToken parses and validates a session token.
func (s *Service) VerifyToken(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperr.Auth("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, apperr.Auth("invalid or expired token")
	}
	return claims, nil
}
