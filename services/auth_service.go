package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/ideku-backend/errs"
	"github.com/rpupo63/ideku-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// Credentials is the body accepted by register and login.
type Credentials struct {
	Username string `json:"username" validate:"required,min=3,max=50,alphanum"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginResult struct {
	Token string   `json:"token"`
	User  UserView `json:"user"`
}

// Claims are the JWT claims issued to a logged in user. The subject holds the user id.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type AuthConfig struct {
	Secret     string
	TokenTTL   time.Duration
	BcryptCost int
}

// AuthService resolves caller identity: it registers users, issues tokens on
// login and turns a bearer token back into a user id.
type AuthService struct {
	users     UserStore
	secret    []byte
	ttl       time.Duration
	cost      int
	validator *requestValidator
	now       func() time.Time
	logger    zerolog.Logger
}

func NewAuthService(users UserStore, cfg AuthConfig) (*AuthService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("auth: empty JWT secret")
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}

	return &AuthService{
		users:     users,
		secret:    []byte(cfg.Secret),
		ttl:       cfg.TokenTTL,
		cost:      cfg.BcryptCost,
		validator: newRequestValidator(),
		now:       time.Now,
		logger:    log.With().Str("service", "authService").Logger(),
	}, nil
}

func (s *AuthService) Register(ctx context.Context, creds Credentials) (*UserView, error) {
	creds.Username = strings.TrimSpace(creds.Username)
	if err := s.validator.Validate(creds); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, errs.InvalidArgument("password maksimal 72 karakter")
	}
	if err != nil {
		return nil, errs.Unexpected(fmt.Errorf("hash password: %w", err))
	}

	user := &models.User{
		Username:     creds.Username,
		PasswordHash: string(hash),
	}
	if err := s.users.Add(ctx, user); err != nil {
		if errs.IsAlreadyExists(err) {
			return nil, errs.Conflict(msgUsernameTaken)
		}
		return nil, errs.Unexpected(err)
	}

	s.logger.Info().Stringer("userID", user.ID).Str("username", user.Username).Msg("User registered")

	view := newUserView(user)
	return &view, nil
}

func (s *AuthService) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	username := strings.TrimSpace(creds.Username)

	user, err := s.users.FindByUsername(ctx, username)
	if errs.IsRecordMissing(err) {
		return nil, errs.Unauthenticated(msgInvalidCredentials)
	}
	if err != nil {
		return nil, errs.Unexpected(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, errs.Unauthenticated(msgInvalidCredentials)
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, errs.Unexpected(err)
	}

	return &LoginResult{Token: token, User: newUserView(user)}, nil
}

// IssueToken signs an HS256 token for user.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := s.now()
	claims := Claims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Authenticate verifies a bearer token and returns the user id it was issued for.
func (s *AuthService) Authenticate(token string) (uuid.UUID, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return uuid.Nil, errs.Unauthenticated(msgTokenInvalid)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil || userID == uuid.Nil {
		return uuid.Nil, errs.Unauthenticated(msgTokenInvalid)
	}
	return userID, nil
}
