package store

import (
	"fmt"
	"testing"
	"time"

	"queueless/internal/database"
	"queueless/internal/model"
)

func setupNotificationTestDB(t *testing.T) *NotificationStore {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewNotificationStore(db)
}

func testNotification(id string, ts time.Time) *model.Notification {
	return &model.Notification{
		ID:          id,
		Type:        model.NotificationOrder,
		Title:       "New Order Received",
		Message:     "2x Cappuccino, 1x Margherita Pizza ordered by Alice",
		TableNumber: "3",
		OrderID:     "ORDER-1700000000000",
		Timestamp:   ts,
	}
}

func TestNotificationCreateAndList(t *testing.T) {
	ns := setupNotificationTestDB(t)

	base := time.Now().UTC()
	for i := 0; i < 3; i++ {
		n := testNotification(fmt.Sprintf("NOTIF-%d", i), base.Add(time.Duration(i)*time.Minute))
		if err := ns.Create(n); err != nil {
			t.Fatalf("create notification %d: %v", i, err)
		}
	}

	notifications, err := ns.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(notifications) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(notifications))
	}
	for i, want := range []string{"NOTIF-2", "NOTIF-1", "NOTIF-0"} {
		if notifications[i].ID != want {
			t.Errorf("notifications[%d].ID = %q, want %q", i, notifications[i].ID, want)
		}
	}
}

func TestNotificationRelativeTime(t *testing.T) {
	ns := setupNotificationTestDB(t)

	now := time.Now().UTC()
	fresh := testNotification("NOTIF-fresh", now)
	older := testNotification("NOTIF-older", now.Add(-10*time.Minute))
	if err := ns.Create(fresh); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := ns.Create(older); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := ns.GetByID("NOTIF-fresh")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Time != "Just now" {
		t.Errorf("fresh Time = %q, want %q", got.Time, "Just now")
	}

	got, err = ns.GetByID("NOTIF-older")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Time != "10 minutes ago" {
		t.Errorf("older Time = %q, want %q", got.Time, "10 minutes ago")
	}
}

func TestNotificationMarkRead(t *testing.T) {
	ns := setupNotificationTestDB(t)

	if err := ns.Create(testNotification("NOTIF-a", time.Now().UTC())); err != nil {
		t.Fatalf("create: %v", err)
	}

	n, err := ns.MarkRead("NOTIF-a")
	if err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if !n.Read {
		t.Error("expected notification to be read")
	}

	unread, err := ns.ListUnread()
	if err != nil {
		t.Fatalf("list unread: %v", err)
	}
	if len(unread) != 0 {
		t.Errorf("expected no unread notifications, got %d", len(unread))
	}
}

func TestNotificationMarkAllRead(t *testing.T) {
	ns := setupNotificationTestDB(t)

	now := time.Now().UTC()
	for i := 0; i < 4; i++ {
		if err := ns.Create(testNotification(fmt.Sprintf("NOTIF-%d", i), now)); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if _, err := ns.MarkRead("NOTIF-0"); err != nil {
		t.Fatalf("mark read: %v", err)
	}

	changed, err := ns.MarkAllRead()
	if err != nil {
		t.Fatalf("mark all read: %v", err)
	}
	if changed != 3 {
		t.Errorf("changed = %d, want 3", changed)
	}

	count, err := ns.CountUnread()
	if err != nil {
		t.Fatalf("count unread: %v", err)
	}
	if count != 0 {
		t.Errorf("unread count = %d, want 0", count)
	}
}

func TestNotificationDeleteRemovesExactlyOne(t *testing.T) {
	ns := setupNotificationTestDB(t)

	now := time.Now().UTC()
	for i := 0; i < 3; i++ {
		if err := ns.Create(testNotification(fmt.Sprintf("NOTIF-%d", i), now)); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	if err := ns.Delete("NOTIF-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	notifications, err := ns.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(notifications) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(notifications))
	}
	for _, n := range notifications {
		if n.ID == "NOTIF-1" {
			t.Error("deleted notification still listed")
		}
	}
}
