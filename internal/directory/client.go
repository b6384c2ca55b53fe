package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/pradikta/taskhub/internal"
)

// Record is one employee row from the external directory. The directory is
// read-only from our side; rows are fetched on demand and never written.
type Record struct {
	Email     string         `db:"employee_email"`
	FullName  sql.NullString `db:"employee_name"`
	AvatarURL sql.NullString `db:"employee_foto"`
}

func (r *Record) Name() string {
	return r.FullName.String
}

func (r *Record) Avatar() string {
	return r.AvatarURL.String
}

// Column identifies a remote column a lookup may match against. Only values
// from this closed set ever reach query construction; the employee-id column
// name comes from configuration, never from a caller.
type Column int

const (
	ColumnEmail Column = iota
	ColumnEmployeeID
)

var (
	// ErrUnavailable reports that a lookup failed even after the link was
	// re-established and the query retried.
	ErrUnavailable = errors.New("employee directory unavailable")

	errUnknownColumn = errors.New("unknown directory lookup column")
)

// Client performs equality lookups against the external employee directory
// through a named dblink connection on the application database. The link is
// established lazily, reused across requests, and re-established once per
// failed lookup.
type Client struct {
	db     *sqlx.DB
	cfg    internal.DirectoryConfig
	logger *slog.Logger

	// guards connect/disconnect so concurrent requests racing on a dead link
	// do not interleave teardown with establishment
	mu sync.Mutex
}

func NewClient(db *sqlx.DB, cfg internal.DirectoryConfig, logger *slog.Logger) *Client {
	cfg.ApplyDefaults()
	return &Client{
		db:     db,
		cfg:    cfg,
		logger: logger,
	}
}

// FetchByEmail looks up the directory record whose email matches. Returns
// (nil, nil) when no employee matches.
func (c *Client) FetchByEmail(ctx context.Context, email string) (*Record, error) {
	return c.fetchByColumn(ctx, ColumnEmail, email)
}

// FetchByEmployeeID looks up the directory record by the organization-specific
// identifier column. Returns (nil, nil) when no employee matches.
func (c *Client) FetchByEmployeeID(ctx context.Context, employeeID string) (*Record, error) {
	return c.fetchByColumn(ctx, ColumnEmployeeID, employeeID)
}

func (c *Client) fetchByColumn(ctx context.Context, column Column, value string) (*Record, error) {
	colName, err := c.columnName(column)
	if err != nil {
		return nil, err
	}

	ctx, cancel := internal.WithTimeout(ctx, c.cfg.QueryTimeout)
	defer cancel()

	if err := c.EnsureConnected(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	rec, err := c.query(ctx, colName, value)
	if err == nil {
		return rec, nil
	}

	c.logger.Warn("directory lookup failed, reconnecting",
		"link", c.cfg.LinkName,
		"column", colName,
		"error", err)

	// tear down the stale link (best effort), bring it back up and retry the
	// lookup exactly once
	c.reconnect(ctx)

	rec, err = c.query(ctx, colName, value)
	if err != nil {
		return nil, fmt.Errorf("%w: lookup by %s failed after reconnect: %v", ErrUnavailable, colName, err)
	}
	return rec, nil
}

// EnsureConnected idempotently guarantees a live dblink under the configured
// name. Safe to call before every lookup; when the link already exists this
// costs a single local query.
func (c *Client) EnsureConnected(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var connected bool
	err := c.db.GetContext(ctx, &connected,
		`SELECT COALESCE($1 = ANY(dblink_get_connections()), false)`, c.cfg.LinkName)
	if err != nil {
		return fmt.Errorf("enumerate dblink connections: %w", err)
	}
	if connected {
		return nil
	}

	return c.connectLocked(ctx)
}

func (c *Client) connectLocked(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, `SELECT dblink_connect($1, $2)`, c.cfg.LinkName, c.cfg.ConnInfo())
	if err != nil {
		// a concurrent request won the race to establish the link; that is
		// success, not failure
		if strings.Contains(err.Error(), "duplicate connection name") {
			return nil
		}
		return fmt.Errorf("dblink_connect %s: %w", c.cfg.LinkName, err)
	}

	c.logger.Info("directory link established", "link", c.cfg.LinkName, "host", c.cfg.Host)
	return nil
}

func (c *Client) reconnect(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.db.ExecContext(ctx, `SELECT dblink_disconnect($1)`, c.cfg.LinkName); err != nil {
		c.logger.Debug("directory link teardown failed", "link", c.cfg.LinkName, "error", err)
	}
	if err := c.connectLocked(ctx); err != nil {
		c.logger.Error("directory link re-establishment failed", "link", c.cfg.LinkName, "error", err)
	}
}

// query runs the remote lookup through the named link. The remote SQL is
// assembled server-side with format(): %I quotes the table and column
// identifiers, %L quotes the caller-supplied value.
func (c *Client) query(ctx context.Context, column, value string) (*Record, error) {
	const stmt = `
SELECT employee_email, employee_name, employee_foto
FROM dblink($1, format('SELECT employee_email, employee_name, employee_foto FROM %I WHERE %I = %L', $2::text, $3::text, $4::text))
  AS t(employee_email text, employee_name text, employee_foto text)`

	var rec Record
	err := c.db.GetContext(ctx, &rec, stmt, c.cfg.LinkName, c.cfg.Table, column, value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// zero matches is the normal "unknown identity" case
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (c *Client) columnName(column Column) (string, error) {
	switch column {
	case ColumnEmail:
		return "employee_email", nil
	case ColumnEmployeeID:
		return c.cfg.EmployeeIDCol, nil
	default:
		return "", errUnknownColumn
	}
}
