package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"schuhaus/internal/domain"
	"schuhaus/internal/repos"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrBadCreds     = errors.New("email or password is wrong")
	ErrEmailTaken   = errors.New("an account with this email already exists")
	ErrUserNotFound = errors.New("user not found")
	ErrTokenInvalid = errors.New("link is invalid or expired")
)

type AuthService struct {
	Users *repos.UserRepo
	// TokenTTL bounds confirmation and reset links. Zero means 24h.
	TokenTTL time.Duration
}

func (s *AuthService) ttl() time.Duration {
	if s.TokenTTL > 0 {
		return s.TokenTTL
	}
	return 24 * time.Hour
}

// Login checks credentials and binds the session. Unknown email and wrong
// password both return ErrBadCreds before anything else happens.
func (s *AuthService) Login(sid, email, password string, remember bool) (*domain.User, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	if u.Remember != remember {
		if err := s.Users.SetRemember(u.ID, remember); err != nil {
			return nil, err
		}
		u.Remember = remember
	}
	return u, nil
}

// Register creates an unconfirmed MEMBER account and issues a
// confirmation token for the verification email.
func (s *AuthService) Register(firstName, lastName, email, password string) (*domain.User, string, error) {
	if _, err := s.Users.ByEmail(email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, "", err
	}
	u := &domain.User{
		ID:        uuid.NewString(),
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Hash:      string(hash),
		Role:      "MEMBER",
	}
	if err := s.Users.Create(u); err != nil {
		return nil, "", err
	}
	token, err := s.Users.IssueToken(u.ID, repos.PurposeConfirmEmail, s.ttl())
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// ConfirmEmail validates the token before any state changes. An invalid
// or expired token never establishes a session.
func (s *AuthService) ConfirmEmail(sid, userID, token string) (*domain.User, error) {
	u, err := s.Users.ByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	owner, err := s.Users.ConsumeToken(token, repos.PurposeConfirmEmail)
	if err != nil || owner != u.ID {
		return nil, ErrTokenInvalid
	}
	if err := s.Users.MarkConfirmed(u.ID); err != nil {
		return nil, err
	}
	u.Confirmed = true
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

// StartPasswordReset issues a reset-purpose token. Confirmation tokens
// cannot be spent on this flow and vice versa.
func (s *AuthService) StartPasswordReset(email string) (*domain.User, string, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, "", ErrUserNotFound
	}
	token, err := s.Users.IssueToken(u.ID, repos.PurposeResetPassword, s.ttl())
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *AuthService) ResetPassword(userID, token, newPassword string) error {
	owner, err := s.Users.ConsumeToken(token, repos.PurposeResetPassword)
	if err != nil || owner != userID {
		return ErrTokenInvalid
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), 12)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.Users.SetPasswordHash(userID, string(hash))
}

func (s *AuthService) Logout(sid string) error {
	return s.Users.UnbindSession(sid)
}

func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Users.SessionUser(sid)
}
