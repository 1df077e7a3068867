package store

import (
	"database/sql"
	"fmt"
	"time"

	"queueless/internal/model"
	"queueless/internal/reltime"
)

type NotificationStore struct {
	db *sql.DB
}

func NewNotificationStore(db *sql.DB) *NotificationStore {
	return &NotificationStore{db: db}
}

func scanNotification(scanner interface{ Scan(...any) error }, now time.Time) (*model.Notification, error) {
	var n model.Notification
	var read int

	err := scanner.Scan(
		&n.ID, &n.Type, &n.Title, &n.Message, &read,
		&n.TableNumber, &n.OrderID, &n.Timestamp,
	)
	if err != nil {
		return nil, err
	}

	n.Read = read != 0
	// Relative display time is derived on every read, never stored.
	n.Time = reltime.Format(n.Timestamp, now)
	return &n, nil
}

const notificationCols = `id, type, title, message, read, table_number, order_id, timestamp`

func (s *NotificationStore) Create(n *model.Notification) error {
	read := 0
	if n.Read {
		read = 1
	}
	_, err := s.db.Exec(
		`INSERT INTO notifications (`+notificationCols+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.Type, n.Title, n.Message, read, n.TableNumber, n.OrderID, n.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// List returns all notifications, newest first.
func (s *NotificationStore) List() ([]model.Notification, error) {
	return s.listWhere(``)
}

// ListUnread returns unread notifications, newest first.
func (s *NotificationStore) ListUnread() ([]model.Notification, error) {
	return s.listWhere(`WHERE read = 0`)
}

func (s *NotificationStore) listWhere(where string) ([]model.Notification, error) {
	rows, err := s.db.Query(`SELECT ` + notificationCols + ` FROM notifications ` + where + ` ORDER BY timestamp DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	now := time.Now()
	var notifications []model.Notification
	for rows.Next() {
		n, err := scanNotification(rows, now)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, *n)
	}
	return notifications, rows.Err()
}

func (s *NotificationStore) GetByID(id string) (*model.Notification, error) {
	row := s.db.QueryRow(`SELECT `+notificationCols+` FROM notifications WHERE id = ?`, id)
	n, err := scanNotification(row, time.Now())
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get notification: %w", err)
	}
	return n, nil
}

func (s *NotificationStore) MarkRead(id string) (*model.Notification, error) {
	_, err := s.db.Exec(`UPDATE notifications SET read = 1 WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("mark notification read: %w", err)
	}
	return s.GetByID(id)
}

// MarkAllRead marks every notification read and returns how many changed.
func (s *NotificationStore) MarkAllRead() (int64, error) {
	result, err := s.db.Exec(`UPDATE notifications SET read = 1 WHERE read = 0`)
	if err != nil {
		return 0, fmt.Errorf("mark all read: %w", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return count, nil
}

func (s *NotificationStore) Delete(id string) error {
	_, err := s.db.Exec(`DELETE FROM notifications WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	return nil
}

func (s *NotificationStore) CountUnread() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM notifications WHERE read = 0`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}
	return count, nil
}
