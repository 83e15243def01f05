package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/goserg/campusevents/auth/storage"
	"github.com/goserg/campusevents/auth/users"
	"github.com/goserg/campusevents/internal/normalize"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const CookieName = "token"

type Service struct {
	storage storage.AuthStorage
	cfg     Config
	rules   []rule
	ttl     time.Duration
	log     *logrus.Entry
}

var (
	ErrForbidden          = errors.New("access denied")
	ErrNotAuthorized      = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserExists         = errors.New("username or email already exists")
)

func New(ctx context.Context, cfg Config, storage storage.AuthStorage, l *logrus.Logger) (*Service, error) {
	if len(cfg.Rules) == 0 {
		cfg.Rules = DefaultRules()
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	ttl, err := time.ParseDuration(cfg.Expiration)
	if err != nil {
		return nil, err
	}
	rules, err := compileRules(cfg.Rules)
	if err != nil {
		return nil, err
	}
	s := Service{
		cfg:     cfg,
		storage: storage,
		rules:   rules,
		ttl:     ttl,
		log: l.WithFields(map[string]interface{}{
			"from": "auth-service",
		}),
	}
	if cfg.Admin.Password != "" {
		err = s.EnsureAdmin(ctx, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password)
		if err != nil {
			return nil, err
		}
	}
	return &s, nil
}

func (s *Service) Login(ctx context.Context, name string, password string) (users.User, error) {
	user, secret, err := s.storage.GetUserSecret(ctx, normalize.Name(name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.User{}, ErrInvalidCredentials
		}
		return users.User{}, err
	}
	err = bcrypt.CompareHashAndPassword(secret.PasswordHash, []byte(s.cfg.PasswordPepper+password))
	if err != nil {
		return users.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (s *Service) SignUp(ctx context.Context, name string, email string, password string) (users.User, error) {
	secret, err := s.generateSecret(password)
	if err != nil {
		return users.User{}, err
	}
	user := users.User{
		ID:           uuid.New(),
		Name:         normalize.Name(name),
		Email:        email,
		Role:         users.RoleMember,
		RegisteredAt: time.Now(),
	}
	err = s.storage.CreateUser(ctx, user, secret)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return users.User{}, ErrUserExists
		}
		return users.User{}, err
	}
	s.log.WithField("user", user.Name).Info("user signed up")
	return user, nil
}

// EnsureAdmin creates the admin account or resets its password, email and role.
func (s *Service) EnsureAdmin(ctx context.Context, name string, email string, password string) error {
	if name == "" || password == "" {
		return errors.New("admin name and password must not be empty")
	}
	secret, err := s.generateSecret(password)
	if err != nil {
		return err
	}
	_, err = s.storage.UpsertAdmin(ctx, users.User{
		ID:           uuid.New(),
		Name:         normalize.Name(name),
		Email:        email,
		Role:         users.RoleAdmin,
		RegisteredAt: time.Now(),
	}, secret)
	return err
}

func (s *Service) generateSecret(password string) (users.Secret, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.PasswordPepper+password), s.cfg.BcryptCost)
	if err != nil {
		return users.Secret{}, err
	}
	return users.Secret{PasswordHash: hash}, nil
}

func (s *Service) GenerateJWTCookie(userID uuid.UUID) (*fiber.Cookie, error) {
	now := time.Now()
	expirationTime := now.Add(s.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		ExpiresAt: expirationTime.Unix(),
		IssuedAt:  now.Unix(),
		Subject:   userID.String(),
	})
	tokenString, err := token.SignedString([]byte(s.cfg.Token))
	if err != nil {
		return nil, err
	}
	return &fiber.Cookie{
		Name:     CookieName,
		Value:    tokenString,
		Path:     "/",
		Expires:  expirationTime,
		Secure:   s.cfg.SecureCookie,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	}, nil
}

func (s *Service) LogoutCookie() *fiber.Cookie {
	return &fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		Secure:   s.cfg.SecureCookie,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}

// Authenticate resolves the token cookie into a user. An empty cookie yields
// the guest user and no error.
func (s *Service) Authenticate(ctx context.Context, cookie string) (users.User, error) {
	if cookie == "" {
		return users.User{}, nil
	}
	token, err := jwt.ParseWithClaims(cookie, &jwt.StandardClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.Token), nil
	})
	if err != nil {
		ve := &jwt.ValidationError{}
		if errors.As(err, &ve) && ve.Errors&(jwt.ValidationErrorExpired|jwt.ValidationErrorNotValidYet) != 0 {
			return users.User{}, errors.New("token expired")
		}
		return users.User{}, err
	}
	claims, ok := token.Claims.(*jwt.StandardClaims)
	if !ok || !token.Valid {
		return users.User{}, errors.New("bad token")
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return users.User{}, err
	}
	user, err := s.storage.GetUser(ctx, id)
	if err != nil {
		return users.User{}, err
	}
	return user, nil
}
