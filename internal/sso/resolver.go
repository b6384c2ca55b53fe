package sso

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pradikta/taskhub/internal"
)

// EmailResolver determines the authoritative email for a verified claim set.
// Precedence: configured email claim, then the standard subject claim, then a
// directory lookup by the configured employee-identifier claim.
type EmailResolver struct {
	directory       DirectoryAPI
	emailClaim      string
	employeeIDClaim string
}

func NewEmailResolver(cfg internal.SSOConfig, dir DirectoryAPI) *EmailResolver {
	cfg.ApplyDefaults()
	return &EmailResolver{
		directory:       dir,
		emailClaim:      cfg.EmailClaim,
		employeeIDClaim: cfg.EmployeeIDClaim,
	}
}

func (r *EmailResolver) Resolve(ctx context.Context, claims jwt.MapClaims) (string, error) {
	if email := claimString(claims, r.emailClaim); email != "" {
		return email, nil
	}

	if sub := claimString(claims, "sub"); sub != "" {
		return sub, nil
	}

	if employeeID := claimString(claims, r.employeeIDClaim); employeeID != "" {
		rec, err := r.directory.FetchByEmployeeID(ctx, employeeID)
		if err != nil {
			// retries already happened inside the directory client
			return "", err
		}
		if rec == nil {
			// well-formed token, employee id present, but the directory
			// disagrees: more specific than a generic resolve failure
			return "", ErrEmployeeNotFound
		}
		if rec.Email != "" {
			return rec.Email, nil
		}
	}

	return "", ErrEmailResolve
}

// claimString renders a claim value as a string. Employee identifiers arrive
// as JSON numbers from some issuers, so numeric values are accepted too.
func claimString(claims jwt.MapClaims, key string) string {
	if key == "" {
		return ""
	}
	v, ok := claims[key]
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return fmt.Sprintf("%.0f", val)
	case int64:
		return fmt.Sprintf("%d", val)
	default:
		return ""
	}
}
