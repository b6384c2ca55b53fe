package notification

import (
	"context"
	"log/slog"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"github.com/pradikta/taskhub/internal/core/events"
)

func TestNotification(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Notification Module Suite")
}

type mockRepository struct {
	notifications map[int64]*Notification
	nextID        int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{notifications: map[int64]*Notification{}, nextID: 1}
}

func (m *mockRepository) Create(_ context.Context, n *Notification) error {
	n.ID = m.nextID
	m.nextID++
	m.notifications[n.ID] = n
	return nil
}

func (m *mockRepository) GetByID(_ context.Context, id int64) (*Notification, error) {
	if n, ok := m.notifications[id]; ok {
		return n, nil
	}
	return nil, ErrNotFound
}

func (m *mockRepository) ListForUser(_ context.Context, userID int64, unreadOnly bool, limit, offset int) ([]*Notification, error) {
	var out []*Notification
	for _, n := range m.notifications {
		if n.UserID == userID && (!unreadOnly || !n.IsRead) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *mockRepository) CountUnread(_ context.Context, userID int64) (int64, error) {
	var count int64
	for _, n := range m.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (m *mockRepository) MarkRead(_ context.Context, id int64) error {
	if n, ok := m.notifications[id]; ok {
		n.IsRead = true
	}
	return nil
}

func (m *mockRepository) MarkAllRead(_ context.Context, userID int64) error {
	for _, n := range m.notifications {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

var _ = ginkgo.Describe("Notification Service", func() {
	var (
		service *Service
		repo    *mockRepository
		bus     *events.EventBus
		ctx     context.Context
	)

	lg := slog.New(slog.NewTextHandler(ginkgo.GinkgoWriter, nil))

	ginkgo.BeforeEach(func() {
		repo = newMockRepository()
		service = NewService(repo, lg)
		bus = events.NewEventBus(lg)
		service.RegisterEventHandlers(bus)
		ctx = context.Background()
	})

	ginkgo.Describe("task assignment events", func() {
		ginkgo.It("should notify the assignee", func() {
			err := bus.PublishSync(ctx, events.NewTaskAssignedEvent(5, 10, 100, 2, 1))
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			notifications, unread, err := service.ListForUser(ctx, 2, false, 0, 0)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(notifications).To(gomega.HaveLen(1))
			gomega.Expect(notifications[0].Type).To(gomega.Equal(TypeTaskAssigned))
			gomega.Expect(unread).To(gomega.Equal(int64(1)))
		})

		ginkgo.It("should stay silent on self-assignment", func() {
			err := bus.PublishSync(ctx, events.NewTaskAssignedEvent(5, 10, 100, 1, 1))
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			notifications, _, err := service.ListForUser(ctx, 1, false, 0, 0)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(notifications).To(gomega.BeEmpty())
		})
	})

	ginkgo.Describe("MarkRead", func() {
		ginkgo.It("should only mark the owner's notification", func() {
			gomega.Expect(repo.Create(ctx, &Notification{UserID: 2, Type: TypeCommentAdded, Message: "x"})).To(gomega.Succeed())

			gomega.Expect(service.MarkRead(ctx, 1, 3)).To(gomega.MatchError(ErrNotFound))
			gomega.Expect(service.MarkRead(ctx, 1, 2)).To(gomega.Succeed())

			_, unread, err := service.ListForUser(ctx, 2, false, 0, 0)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(unread).To(gomega.BeZero())
		})
	})
})
