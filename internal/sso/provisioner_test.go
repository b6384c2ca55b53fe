package sso

import (
	"context"
	"errors"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"github.com/pradikta/taskhub/internal/user"
	"golang.org/x/crypto/bcrypt"
)

var _ = ginkgo.Describe("Provisioner", func() {
	var (
		provisioner *Provisioner
		repo        *mockUserRepository
		dir         *mockDirectory
		ctx         context.Context
	)

	ginkgo.BeforeEach(func() {
		repo = newMockUserRepository()
		dir = newMockDirectory()
		provisioner = NewProvisioner(repo, dir, testLogger())
		ctx = context.Background()
	})

	ginkgo.Context("for a first-time email", func() {
		ginkgo.It("should create a user enriched from the directory", func() {
			dir.byEmail["dika@taskhub.dev"] = dirRecord("dika@taskhub.dev", "Dika Pradikta", "https://cdn/avatar.png")

			u, err := provisioner.EnsureLocalUser(ctx, "dika@taskhub.dev")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(u.ID).To(gomega.BeNumerically(">", 0))
			gomega.Expect(u.Email).To(gomega.Equal("dika@taskhub.dev"))
			gomega.Expect(u.Username).To(gomega.Equal("dika"))
			gomega.Expect(u.FullName).To(gomega.Equal("Dika Pradikta"))
			gomega.Expect(u.AvatarURL).To(gomega.Equal("https://cdn/avatar.png"))
			gomega.Expect(u.Role).To(gomega.Equal(user.RoleMember))
			gomega.Expect(u.IsActive).To(gomega.BeTrue())
		})

		ginkgo.It("should derive defaults from the email when the directory is down", func() {
			dir.failWith = errors.New("link down")

			u, err := provisioner.EnsureLocalUser(ctx, "sari@taskhub.dev")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(u.FullName).To(gomega.Equal("sari"))
			gomega.Expect(u.AvatarURL).To(gomega.BeEmpty())
		})

		ginkgo.It("should store an unusable placeholder credential", func() {
			u, err := provisioner.EnsureLocalUser(ctx, "sari@taskhub.dev")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(u.PasswordHash).ToNot(gomega.BeEmpty())
			gomega.Expect(bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(""))).To(gomega.HaveOccurred())
		})

		ginkgo.It("should re-read the row when a concurrent insert wins", func() {
			winner := &user.User{ID: 77, Email: "dika@taskhub.dev", FullName: "Dika", IsActive: true}
			repo.raceOnCreate = winner

			u, err := provisioner.EnsureLocalUser(ctx, "dika@taskhub.dev")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(u.ID).To(gomega.Equal(int64(77)))
			gomega.Expect(repo.createCalls).To(gomega.Equal(1))
		})
	})

	ginkgo.Context("for an existing user", func() {
		ginkgo.BeforeEach(func() {
			repo.byEmail["dika@taskhub.dev"] = &user.User{
				ID:        1,
				Email:     "dika@taskhub.dev",
				FullName:  "Old Name",
				AvatarURL: "old.png",
				IsActive:  true,
			}
		})

		ginkgo.It("should be idempotent and not create another row", func() {
			u1, err := provisioner.EnsureLocalUser(ctx, "dika@taskhub.dev")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			u2, err := provisioner.EnsureLocalUser(ctx, "dika@taskhub.dev")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			gomega.Expect(u1.ID).To(gomega.Equal(u2.ID))
			gomega.Expect(repo.createCalls).To(gomega.BeZero())
		})

		ginkgo.It("should refresh the profile when the directory disagrees", func() {
			dir.byEmail["dika@taskhub.dev"] = dirRecord("dika@taskhub.dev", "Dika Pradikta", "new.png")

			u, err := provisioner.EnsureLocalUser(ctx, "dika@taskhub.dev")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(u.FullName).To(gomega.Equal("Dika Pradikta"))
			gomega.Expect(u.AvatarURL).To(gomega.Equal("new.png"))
			gomega.Expect(repo.updateCalls).To(gomega.Equal(1))
		})

		ginkgo.It("should skip the write when the profile already matches", func() {
			dir.byEmail["dika@taskhub.dev"] = dirRecord("dika@taskhub.dev", "Old Name", "old.png")

			_, err := provisioner.EnsureLocalUser(ctx, "dika@taskhub.dev")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(repo.updateCalls).To(gomega.BeZero())
		})

		ginkgo.It("should still authenticate when the directory is down", func() {
			dir.failWith = errors.New("link down")

			u, err := provisioner.EnsureLocalUser(ctx, "dika@taskhub.dev")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(u.FullName).To(gomega.Equal("Old Name"))
		})

		ginkgo.It("should keep serving the stored record when the profile write fails", func() {
			dir.byEmail["dika@taskhub.dev"] = dirRecord("dika@taskhub.dev", "Dika Pradikta", "new.png")
			repo.failUpdate = errors.New("write refused")

			u, err := provisioner.EnsureLocalUser(ctx, "dika@taskhub.dev")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(u.FullName).To(gomega.Equal("Old Name"))
		})
	})
})
