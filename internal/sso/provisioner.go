package sso

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pradikta/taskhub/internal/user"
	"golang.org/x/crypto/bcrypt"
)

// Provisioner lazily creates and refreshes local user records from the
// employee directory. EnsureLocalUser is idempotent and runs on every
// authenticated request.
type Provisioner struct {
	users      user.Repository
	directory  DirectoryAPI
	logger     *slog.Logger
	bcryptCost int
}

func NewProvisioner(users user.Repository, dir DirectoryAPI, logger *slog.Logger) *Provisioner {
	return &Provisioner{
		users:      users,
		directory:  dir,
		logger:     logger,
		bcryptCost: bcrypt.DefaultCost,
	}
}

func (p *Provisioner) EnsureLocalUser(ctx context.Context, email string) (*user.User, error) {
	existing, err := p.users.GetByEmail(ctx, email)
	if err == nil {
		return p.refreshProfile(ctx, existing)
	}
	if !errors.Is(err, user.ErrNotFound) {
		return nil, fmt.Errorf("lookup user by email: %w", err)
	}

	return p.createUser(ctx, email)
}

// refreshProfile reconciles display name and avatar against the directory.
// Directory unavailability never blocks authentication for a known user; a
// failed lookup just returns the stored record unchanged.
func (p *Provisioner) refreshProfile(ctx context.Context, u *user.User) (*user.User, error) {
	rec, err := p.directory.FetchByEmail(ctx, u.Email)
	if err != nil {
		p.logger.Debug("profile refresh skipped, directory lookup failed",
			"email", u.Email, "error", err)
		return u, nil
	}
	if rec == nil {
		return u, nil
	}

	if rec.Name() == u.FullName && rec.Avatar() == u.AvatarURL {
		return u, nil
	}

	if err := p.users.UpdateProfile(ctx, u.ID, rec.Name(), rec.Avatar()); err != nil {
		p.logger.Warn("profile refresh write failed", "user_id", u.ID, "error", err)
		return u, nil
	}

	u.FullName = rec.Name()
	u.AvatarURL = rec.Avatar()
	u.UpdatedAt = time.Now()
	return u, nil
}

// createUser provisions a brand-new local user. Directory data enriches the
// defaults when reachable; otherwise everything derives from the email alone.
func (p *Provisioner) createUser(ctx context.Context, email string) (*user.User, error) {
	fullName := user.LocalPart(email)
	avatarURL := ""

	rec, err := p.directory.FetchByEmail(ctx, email)
	if err != nil {
		p.logger.Warn("directory lookup failed during provisioning, using email-derived defaults",
			"email", email, "error", err)
	} else if rec != nil {
		if rec.Name() != "" {
			fullName = rec.Name()
		}
		avatarURL = rec.Avatar()
	}

	passwordHash, err := p.placeholderCredential()
	if err != nil {
		return nil, fmt.Errorf("generate placeholder credential: %w", err)
	}

	newUser := &user.User{
		Email:        email,
		Username:     user.LocalPart(email),
		PasswordHash: passwordHash,
		FullName:     fullName,
		AvatarURL:    avatarURL,
		Role:         user.RoleMember,
		IsActive:     true,
	}

	if err := p.users.Create(ctx, newUser); err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			// a concurrent first-time authentication for the same email won
			// the insert race; re-read the row it created
			return p.users.GetByEmail(ctx, email)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	p.logger.Info("provisioned new user", "user_id", newUser.ID, "email", email)
	return newUser, nil
}

// placeholderCredential hashes a random value so the row satisfies the schema;
// authentication is delegated to SSO and no password login ever uses it.
func (p *Provisioner) placeholderCredential() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(hex.EncodeToString(raw)), p.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
