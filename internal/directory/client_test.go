package directory_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pradikta/taskhub/internal"
	"github.com/pradikta/taskhub/internal/directory"
)

func TestDirectory(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Directory Client Suite")
}

const (
	checkQuery  = `SELECT COALESCE\(\$1 = ANY\(dblink_get_connections\(\)\), false\)`
	connectStmt = `SELECT dblink_connect\(\$1, \$2\)`
	dropStmt    = `SELECT dblink_disconnect\(\$1\)`
	lookupQuery = `FROM dblink\(\$1, format\(`
)

var _ = Describe("Directory Client", func() {
	var (
		db     *sqlx.DB
		mock   sqlmock.Sqlmock
		client *directory.Client
		ctx    context.Context
	)

	employeeRow := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"employee_email", "employee_name", "employee_foto"}).
			AddRow("dika@taskhub.dev", "Dika Pradikta", "https://cdn/avatar.png")
	}

	expectLinkAlive := func() {
		mock.ExpectQuery(checkQuery).
			WithArgs("hr_directory").
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(true))
	}

	BeforeEach(func() {
		sqlDB, m, err := sqlmock.New()
		Expect(err).NotTo(HaveOccurred())
		mock = m
		db = sqlx.NewDb(sqlDB, "sqlmock")

		client = directory.NewClient(db, internal.DirectoryConfig{
			Host:         "hr-db.internal",
			Port:         5432,
			Database:     "hr",
			User:         "taskhub_ro",
			LinkName:     "hr_directory",
			QueryTimeout: time.Second,
		}, slog.New(slog.NewTextHandler(GinkgoWriter, nil)))
		ctx = context.Background()
	})

	AfterEach(func() {
		Expect(mock.ExpectationsWereMet()).To(Succeed())
		db.Close()
	})

	Describe("FetchByEmail", func() {
		It("should return the matching record over an already-live link", func() {
			expectLinkAlive()
			mock.ExpectQuery(lookupQuery).
				WithArgs("hr_directory", "employees", "employee_email", "dika@taskhub.dev").
				WillReturnRows(employeeRow())

			rec, err := client.FetchByEmail(ctx, "dika@taskhub.dev")

			Expect(err).NotTo(HaveOccurred())
			Expect(rec).NotTo(BeNil())
			Expect(rec.Email).To(Equal("dika@taskhub.dev"))
			Expect(rec.Name()).To(Equal("Dika Pradikta"))
			Expect(rec.Avatar()).To(Equal("https://cdn/avatar.png"))
		})

		It("should return nil without error for an unknown email", func() {
			expectLinkAlive()
			mock.ExpectQuery(lookupQuery).
				WithArgs("hr_directory", "employees", "employee_email", "ghost@taskhub.dev").
				WillReturnRows(sqlmock.NewRows([]string{"employee_email", "employee_name", "employee_foto"}))

			rec, err := client.FetchByEmail(ctx, "ghost@taskhub.dev")

			Expect(err).NotTo(HaveOccurred())
			Expect(rec).To(BeNil())
		})

		It("should establish the link first when none exists", func() {
			mock.ExpectQuery(checkQuery).
				WithArgs("hr_directory").
				WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(false))
			mock.ExpectExec(connectStmt).
				WithArgs("hr_directory", sqlmock.AnyArg()).
				WillReturnResult(sqlmock.NewResult(0, 1))
			mock.ExpectQuery(lookupQuery).
				WithArgs("hr_directory", "employees", "employee_email", "dika@taskhub.dev").
				WillReturnRows(employeeRow())

			rec, err := client.FetchByEmail(ctx, "dika@taskhub.dev")

			Expect(err).NotTo(HaveOccurred())
			Expect(rec).NotTo(BeNil())
		})

		It("should treat a duplicate connection name as an established link", func() {
			mock.ExpectQuery(checkQuery).
				WithArgs("hr_directory").
				WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(false))
			mock.ExpectExec(connectStmt).
				WithArgs("hr_directory", sqlmock.AnyArg()).
				WillReturnError(errors.New(`pq: duplicate connection name`))
			mock.ExpectQuery(lookupQuery).
				WithArgs("hr_directory", "employees", "employee_email", "dika@taskhub.dev").
				WillReturnRows(employeeRow())

			rec, err := client.FetchByEmail(ctx, "dika@taskhub.dev")

			Expect(err).NotTo(HaveOccurred())
			Expect(rec).NotTo(BeNil())
		})

		It("should reconnect and retry once after a failed lookup", func() {
			expectLinkAlive()
			mock.ExpectQuery(lookupQuery).
				WithArgs("hr_directory", "employees", "employee_email", "dika@taskhub.dev").
				WillReturnError(errors.New("connection to server lost"))
			mock.ExpectExec(dropStmt).
				WithArgs("hr_directory").
				WillReturnResult(sqlmock.NewResult(0, 1))
			mock.ExpectExec(connectStmt).
				WithArgs("hr_directory", sqlmock.AnyArg()).
				WillReturnResult(sqlmock.NewResult(0, 1))
			mock.ExpectQuery(lookupQuery).
				WithArgs("hr_directory", "employees", "employee_email", "dika@taskhub.dev").
				WillReturnRows(employeeRow())

			rec, err := client.FetchByEmail(ctx, "dika@taskhub.dev")

			Expect(err).NotTo(HaveOccurred())
			Expect(rec).NotTo(BeNil())
		})

		It("should report unavailability when the retry fails too", func() {
			expectLinkAlive()
			mock.ExpectQuery(lookupQuery).
				WithArgs("hr_directory", "employees", "employee_email", "dika@taskhub.dev").
				WillReturnError(errors.New("connection to server lost"))
			mock.ExpectExec(dropStmt).
				WithArgs("hr_directory").
				WillReturnResult(sqlmock.NewResult(0, 1))
			mock.ExpectExec(connectStmt).
				WithArgs("hr_directory", sqlmock.AnyArg()).
				WillReturnError(errors.New("could not establish connection"))
			mock.ExpectQuery(lookupQuery).
				WithArgs("hr_directory", "employees", "employee_email", "dika@taskhub.dev").
				WillReturnError(errors.New("connection to server lost"))

			_, err := client.FetchByEmail(ctx, "dika@taskhub.dev")

			Expect(err).To(MatchError(directory.ErrUnavailable))
		})
	})

	Describe("FetchByEmployeeID", func() {
		It("should match against the configured identifier column", func() {
			expectLinkAlive()
			mock.ExpectQuery(lookupQuery).
				WithArgs("hr_directory", "employees", "employee_id", "1001").
				WillReturnRows(employeeRow())

			rec, err := client.FetchByEmployeeID(ctx, "1001")

			Expect(err).NotTo(HaveOccurred())
			Expect(rec).NotTo(BeNil())
		})
	})
})
