package client

import (
	"sync"
	"time"
)

type NotificationLevel string

const (
	NotifySuccess NotificationLevel = "success"
	NotifyError   NotificationLevel = "error"
)

type Notification struct {
	ID      int               `json:"id"`
	Level   NotificationLevel `json:"level"`
	Message string            `json:"message"`
	Time    time.Time         `json:"time"`
}

// NotificationCenter is a bounded in-memory feed of transient user-facing
// events, the toast analog. Oldest entries are dropped once the bound is hit.
type NotificationCenter struct {
	mu     sync.Mutex
	items  []Notification
	max    int
	nextID int
}

func NewNotificationCenter(max int) *NotificationCenter {
	if max <= 0 {
		max = 20
	}
	return &NotificationCenter{max: max}
}

func (nc *NotificationCenter) Push(level NotificationLevel, message string) Notification {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	nc.nextID++
	n := Notification{ID: nc.nextID, Level: level, Message: message, Time: time.Now()}
	nc.items = append(nc.items, n)
	if len(nc.items) > nc.max {
		nc.items = nc.items[len(nc.items)-nc.max:]
	}
	return n
}

func (nc *NotificationCenter) List() []Notification {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	out := make([]Notification, len(nc.items))
	copy(out, nc.items)
	return out
}

func (nc *NotificationCenter) Dismiss(id int) {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	for i, n := range nc.items {
		if n.ID == id {
			nc.items = append(nc.items[:i], nc.items[i+1:]...)
			return
		}
	}
}

func (nc *NotificationCenter) Clear() {
	nc.mu.Lock()
	nc.items = nil
	nc.mu.Unlock()
}
