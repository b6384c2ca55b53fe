package sso

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/pradikta/taskhub/internal"
	"github.com/pradikta/taskhub/internal/user"
)

// Service runs the full authentication pipeline: verify the bearer token,
// resolve the authoritative email, ensure a local user exists.
type Service struct {
	verifier    *TokenVerifier
	resolver    *EmailResolver
	provisioner *Provisioner
	users       user.Repository
	logger      *slog.Logger
}

func NewService(cfg internal.SSOConfig, dir DirectoryAPI, users user.Repository, logger *slog.Logger) *Service {
	return &Service{
		verifier:    NewTokenVerifier(cfg),
		resolver:    NewEmailResolver(cfg, dir),
		provisioner: NewProvisioner(users, dir, logger),
		users:       users,
		logger:      logger,
	}
}

// Authenticate resolves a bearer token to an active local user. All pipeline
// failures surface as the typed errors in this package; the auth middleware is
// the single place they become HTTP responses.
func (s *Service) Authenticate(ctx context.Context, tokenString string) (*user.User, error) {
	claims, err := s.verifier.Verify(tokenString)
	if err != nil {
		return nil, err
	}

	email, err := s.resolver.Resolve(ctx, claims)
	if err != nil {
		return nil, err
	}

	u, err := s.provisioner.EnsureLocalUser(ctx, email)
	if err != nil {
		return nil, err
	}

	if !u.IsActive {
		return nil, ErrUserInactive
	}

	return u, nil
}

// AuthenticateSocket is the handshake-time variant for the chat transport:
// verify the signature, look the user up directly by the subject claim, and
// require the account to be active. No email-resolution fallback chain and no
// provisioning happen here; a socket is only useful to a user who has already
// authenticated over HTTP at least once.
func (s *Service) AuthenticateSocket(ctx context.Context, tokenString string) (*user.User, error) {
	claims, err := s.verifier.Verify(tokenString)
	if err != nil {
		return nil, err
	}

	subject := claimString(claims, "sub")
	if subject == "" {
		subject = claimString(claims, "user_id")
	}
	if subject == "" {
		return nil, ErrEmailResolve
	}

	var u *user.User
	if id, perr := strconv.ParseInt(subject, 10, 64); perr == nil {
		u, err = s.users.GetByID(ctx, id)
	} else {
		u, err = s.users.GetByEmail(ctx, subject)
	}
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrEmailResolve
		}
		return nil, err
	}

	if !u.IsActive {
		return nil, ErrUserInactive
	}

	return u, nil
}
