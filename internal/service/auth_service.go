package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/af-Athameem/gtruth/internal/dto"
	"github.com/af-Athameem/gtruth/internal/pkg/logger"
	"github.com/af-Athameem/gtruth/internal/repository/contract"
	"github.com/af-Athameem/gtruth/internal/repository/memory"
	"github.com/af-Athameem/gtruth/pkg/form"
	"github.com/af-Athameem/gtruth/pkg/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrDocumentServiceAuth = errors.New("document service authentication failed, please try again")
)

// RateLimitError carries the remaining wait reported to the author.
type RateLimitError struct {
	MinutesLeft int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("Too many failed attempts. Try again in %d minutes.", e.MinutesLeft)
}

type IAuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(sess *store.Session)
}

type authService struct {
	users     contract.IUserRepository
	sessions  *memory.SessionRepository
	attempts  *memory.AttemptRepository
	gateway   DocumentGateway
	forms     *form.Manager
	log       logger.ILogger
	jwtSecret string
}

func NewAuthService(
	users contract.IUserRepository,
	sessions *memory.SessionRepository,
	attempts *memory.AttemptRepository,
	gateway DocumentGateway,
	forms *form.Manager,
	log logger.ILogger,
	jwtSecret string,
) IAuthService {
	return &authService{
		users:     users,
		sessions:  sessions,
		attempts:  attempts,
		gateway:   gateway,
		forms:     forms,
		log:       log,
		jwtSecret: jwtSecret,
	}
}

// Login walks the full authentication chain: rate limit, credential check,
// then the document-service token exchange. A failed exchange aborts the
// login entirely so the user retries from the unauthenticated state.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if allowed, minutesLeft := s.attempts.Check(req.Username); !allowed {
		return nil, &RateLimitError{MinutesLeft: minutesLeft}
	}

	cred := s.users.FindByUsername(ctx, req.Username)
	if cred == nil {
		s.attempts.RecordFailure(req.Username)
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(req.Password)); err != nil {
		s.attempts.RecordFailure(req.Username)
		return nil, ErrInvalidCredentials
	}
	s.attempts.Reset(req.Username)

	token, err := s.gateway.AcquireToken(ctx)
	if err != nil {
		s.log.Warn("auth", "document service token exchange failed", map[string]interface{}{
			"username": req.Username,
			"error":    err.Error(),
		})
		return nil, ErrDocumentServiceAuth
	}
	siteID, err := s.gateway.ResolveSite(ctx, token)
	if err != nil {
		s.log.Warn("auth", "document service site resolution failed", map[string]interface{}{
			"username": req.Username,
			"error":    err.Error(),
		})
		return nil, ErrDocumentServiceAuth
	}

	session := &store.Session{
		ID:           uuid.New().String(),
		Username:     req.Username,
		GraphToken:   token,
		SiteID:       siteID,
		LastActivity: time.Now(),
		Form:         s.forms.Initialize(),
	}
	s.sessions.Save(session)

	claims := jwt.MapClaims{
		"session_id": session.ID,
		"username":   req.Username,
		"exp":        time.Now().Add(24 * time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		s.sessions.Delete(session.ID)
		return nil, err
	}

	s.log.Info("auth", "user logged in", map[string]interface{}{"username": req.Username})

	return &dto.LoginResponse{
		AccessToken: signed,
		Username:    req.Username,
	}, nil
}

func (s *authService) Logout(sess *store.Session) {
	s.sessions.Delete(sess.ID)
	s.log.Info("auth", "user logged out", map[string]interface{}{"username": sess.Username})
}
