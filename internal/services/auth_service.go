package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"busbooking/internal/auth"
	intconfig "busbooking/internal/config"
	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/repositories"
	"busbooking/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	Users     repositories.UserRepository
	DB        *sql.DB
	Secret    []byte
	RequestID string
}

func (s AuthService) users() repositories.UserRepository {
	if s.Users.DB != nil {
		return s.Users
	}
	return repositories.UserRepository{DB: s.db()}
}

func (s AuthService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s AuthService) secret() []byte {
	if len(s.Secret) > 0 {
		return s.Secret
	}
	return intconfig.JWTSecret()
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

// Register stores a new customer account with a bcrypt password hash.
// A taken email is a conflict; the unique index on users.email backstops
// the pre-check under concurrent registrations.
func (s AuthService) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	phone := strings.TrimSpace(in.Phone)
	if name == "" || email == "" || in.Password == "" || phone == "" {
		return models.User{}, domain.ValidationError{Msg: "name, email, password and phone are required"}
	}

	exists, err := s.users().EmailExists(ctx, email)
	if err != nil {
		return models.User{}, domain.InternalError{Err: err}
	}
	if exists {
		return models.User{}, domain.ConflictError{Resource: "user", Msg: "email already registered"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, domain.InternalError{Err: err}
	}

	u := models.User{
		Name:         name,
		Email:        email,
		Phone:        phone,
		Role:         models.RoleCustomer,
		PasswordHash: string(hash),
	}
	id, err := s.users().Insert(ctx, u)
	if err != nil {
		if isDuplicateKey(err) {
			return models.User{}, domain.ConflictError{Resource: "user", Msg: "email already registered"}
		}
		return models.User{}, domain.InternalError{Err: err}
	}
	u.ID = id
	u.PasswordHash = ""

	utils.LogEvent(s.RequestID, "auth", "register", "user registered email="+email)
	return u, nil
}

type LoginResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Login checks credentials and issues a session token. Unknown email and
// wrong password produce the same error so accounts cannot be enumerated.
func (s AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	invalid := domain.UnauthorizedError{Msg: "invalid credentials"}

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return LoginResult{}, domain.ValidationError{Msg: "email and password are required"}
	}

	u, err := s.users().FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return LoginResult{}, invalid
		}
		return LoginResult{}, domain.InternalError{Err: err}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return LoginResult{}, invalid
	}

	token, err := auth.GenerateToken(s.secret(), u)
	if err != nil {
		return LoginResult{}, domain.InternalError{Err: err}
	}

	u.PasswordHash = ""
	utils.LogEvent(s.RequestID, "auth", "login", "user logged in email="+email)
	return LoginResult{Token: token, User: u}, nil
}
