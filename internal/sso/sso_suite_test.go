package sso

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"github.com/pradikta/taskhub/internal/directory"
	"github.com/pradikta/taskhub/internal/user"
)

func TestSSO(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "SSO Module Suite")
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(ginkgo.GinkgoWriter, nil))
}

// mockDirectory serves canned records keyed by email and employee id.
type mockDirectory struct {
	byEmail      map[string]*directory.Record
	byEmployeeID map[string]*directory.Record
	failWith     error
	emailCalls   int
	idCalls      int
}

func newMockDirectory() *mockDirectory {
	return &mockDirectory{
		byEmail:      map[string]*directory.Record{},
		byEmployeeID: map[string]*directory.Record{},
	}
}

func (m *mockDirectory) FetchByEmail(_ context.Context, email string) (*directory.Record, error) {
	m.emailCalls++
	if m.failWith != nil {
		return nil, m.failWith
	}
	return m.byEmail[email], nil
}

func (m *mockDirectory) FetchByEmployeeID(_ context.Context, employeeID string) (*directory.Record, error) {
	m.idCalls++
	if m.failWith != nil {
		return nil, m.failWith
	}
	return m.byEmployeeID[employeeID], nil
}

// mockUserRepository is an in-memory user.Repository.
type mockUserRepository struct {
	byEmail     map[string]*user.User
	nextID      int64
	createCalls int
	updateCalls int
	failCreate  error
	failUpdate  error

	// raceOnCreate simulates a concurrent insert winning between the
	// GetByEmail miss and the Create call.
	raceOnCreate *user.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		byEmail: map[string]*user.User{},
		nextID:  1,
	}
}

func (m *mockUserRepository) GetByID(_ context.Context, id int64) (*user.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, user.ErrNotFound
}

func (m *mockUserRepository) GetByEmail(_ context.Context, email string) (*user.User, error) {
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, user.ErrNotFound
}

func (m *mockUserRepository) Create(_ context.Context, u *user.User) error {
	m.createCalls++
	if m.failCreate != nil {
		return m.failCreate
	}
	if m.raceOnCreate != nil {
		m.byEmail[m.raceOnCreate.Email] = m.raceOnCreate
		m.raceOnCreate = nil
		return user.ErrDuplicateEmail
	}
	if _, exists := m.byEmail[u.Email]; exists {
		return user.ErrDuplicateEmail
	}
	u.ID = m.nextID
	m.nextID++
	m.byEmail[u.Email] = u
	return nil
}

func (m *mockUserRepository) UpdateProfile(_ context.Context, id int64, fullName, avatarURL string) error {
	m.updateCalls++
	if m.failUpdate != nil {
		return m.failUpdate
	}
	for _, u := range m.byEmail {
		if u.ID == id {
			u.FullName = fullName
			u.AvatarURL = avatarURL
			return nil
		}
	}
	return user.ErrNotFound
}

func (m *mockUserRepository) List(_ context.Context, limit, offset int) ([]*user.User, error) {
	return nil, errors.New("not implemented")
}

func dirRecord(email, name, avatar string) *directory.Record {
	return &directory.Record{
		Email:     email,
		FullName:  sql.NullString{String: name, Valid: name != ""},
		AvatarURL: sql.NullString{String: avatar, Valid: avatar != ""},
	}
}
