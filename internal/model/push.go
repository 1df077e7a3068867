package model

import "time"

// PushSubscription is a staff browser's web-push endpoint, used to alert the
// kitchen when new orders arrive while the dashboard tab is closed.
type PushSubscription struct {
	ID        int64     `json:"id"`
	Endpoint  string    `json:"endpoint"`
	P256dhKey string    `json:"p256dh_key"`
	AuthKey   string    `json:"auth_key"`
	UserAgent string    `json:"user_agent"`
	CreatedAt time.Time `json:"created_at"`
}
