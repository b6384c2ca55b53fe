// Package sso implements token verification and just-in-time user provisioning
// against an external single-sign-on provider. The pipeline is
// verify -> resolve email -> ensure local user; the auth middleware is the only
// place its errors are translated to transport responses.
package sso

import (
	"context"
	"errors"

	"github.com/pradikta/taskhub/internal/directory"
)

var (
	// token layer
	ErrMalformedToken   = errors.New("malformed token")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrTokenExpired     = errors.New("token expired")

	// identity resolution layer
	ErrEmailResolve     = errors.New("token carries no usable identity")
	ErrEmployeeNotFound = errors.New("employee not found in directory")

	// provisioning layer
	ErrUserInactive = errors.New("user is inactive")
)

// DirectoryAPI is the slice of the directory client the pipeline consumes.
type DirectoryAPI interface {
	FetchByEmail(ctx context.Context, email string) (*directory.Record, error)
	FetchByEmployeeID(ctx context.Context, employeeID string) (*directory.Record, error)
}
