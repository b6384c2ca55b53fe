package page

import (
	"context"
	"log/slog"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"github.com/pradikta/taskhub/internal/team"
)

func TestPage(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Page Module Suite")
}

type mockRepository struct {
	pages  map[int64]*Page
	nextID int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{pages: map[int64]*Page{}, nextID: 1}
}

func (m *mockRepository) Create(_ context.Context, p *Page) error {
	for _, existing := range m.pages {
		if existing.ProjectID == p.ProjectID && existing.Slug == p.Slug {
			return ErrDuplicateSlug
		}
	}
	p.ID = m.nextID
	m.nextID++
	m.pages[p.ID] = p
	return nil
}

func (m *mockRepository) GetByID(_ context.Context, id int64) (*Page, error) {
	if p, ok := m.pages[id]; ok {
		return p, nil
	}
	return nil, ErrNotFound
}

func (m *mockRepository) GetBySlug(_ context.Context, projectID int64, slug string) (*Page, error) {
	for _, p := range m.pages {
		if p.ProjectID == projectID && p.Slug == slug {
			return p, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRepository) ListByProject(_ context.Context, projectID int64) ([]*Page, error) {
	var out []*Page
	for _, p := range m.pages {
		if p.ProjectID == projectID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockRepository) Update(_ context.Context, p *Page) error {
	m.pages[p.ID] = p
	return nil
}

func (m *mockRepository) Delete(_ context.Context, id int64) error {
	delete(m.pages, id)
	return nil
}

type mockProjectGuard struct {
	memberIDs map[int64]bool
}

func (g *mockProjectGuard) TeamForProject(_ context.Context, projectID, userID int64) (int64, error) {
	if !g.memberIDs[userID] {
		return 0, team.ErrNotMember
	}
	return 100, nil
}

var _ = ginkgo.Describe("Page Service", func() {
	var (
		service *Service
		repo    *mockRepository
		ctx     context.Context
	)

	ginkgo.BeforeEach(func() {
		repo = newMockRepository()
		guard := &mockProjectGuard{memberIDs: map[int64]bool{1: true}}
		service = NewService(repo, guard, slog.New(slog.NewTextHandler(ginkgo.GinkgoWriter, nil)))
		ctx = context.Background()
	})

	ginkgo.Describe("Create", func() {
		ginkgo.It("should derive the slug from the title", func() {
			p, err := service.Create(ctx, CreatePageDTO{ProjectID: 10, Title: "Release Checklist 2026!"}, 1)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(p.Slug).To(gomega.Equal("release-checklist-2026"))
		})

		ginkgo.It("should keep an explicit slug", func() {
			p, err := service.Create(ctx, CreatePageDTO{ProjectID: 10, Title: "Release Checklist", Slug: "rc"}, 1)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(p.Slug).To(gomega.Equal("rc"))
		})

		ginkgo.It("should refuse a duplicate slug within the project", func() {
			_, err := service.Create(ctx, CreatePageDTO{ProjectID: 10, Title: "Roadmap"}, 1)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.Create(ctx, CreatePageDTO{ProjectID: 10, Title: "Roadmap"}, 1)
			gomega.Expect(err).To(gomega.MatchError(ErrDuplicateSlug))
		})
	})

	ginkgo.Describe("GetBySlug", func() {
		ginkgo.BeforeEach(func() {
			_, err := service.Create(ctx, CreatePageDTO{ProjectID: 10, Title: "Public Doc", IsPublic: true}, 1)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			_, err = service.Create(ctx, CreatePageDTO{ProjectID: 10, Title: "Private Doc"}, 1)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
		})

		ginkgo.It("should serve a public page to an anonymous reader", func() {
			p, err := service.GetBySlug(ctx, 10, "public-doc", 0)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(p.Title).To(gomega.Equal("Public Doc"))
		})

		ginkgo.It("should hide a private page from an anonymous reader", func() {
			_, err := service.GetBySlug(ctx, 10, "private-doc", 0)

			gomega.Expect(err).To(gomega.MatchError(ErrNotFound))
		})

		ginkgo.It("should serve a private page to a team member", func() {
			p, err := service.GetBySlug(ctx, 10, "private-doc", 1)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(p.Title).To(gomega.Equal("Private Doc"))
		})

		ginkgo.It("should refuse a private page to a non-member", func() {
			_, err := service.GetBySlug(ctx, 10, "private-doc", 99)

			gomega.Expect(err).To(gomega.MatchError(team.ErrNotMember))
		})
	})

	ginkgo.Describe("Slugify", func() {
		ginkgo.It("should collapse punctuation and casing into hyphens", func() {
			gomega.Expect(Slugify("  Hello,   World! ")).To(gomega.Equal("hello-world"))
			gomega.Expect(Slugify("Q3 / OKR -- Review")).To(gomega.Equal("q3-okr-review"))
			gomega.Expect(Slugify("---")).To(gomega.BeEmpty())
		})
	})
})
