package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"weatherdesk.app/models"
)

// Notifier holds the single transient user-facing message. A new notice
// replaces the prior one and re-arms the dismissal timer; timers never stack.
type Notifier struct {
	mu      sync.Mutex
	ttl     time.Duration
	current *models.Notice
	timer   *time.Timer
}

// NewNotifier creates a notifier whose notices auto-dismiss after ttl
func NewNotifier(ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = 3 * time.Second
	}
	return &Notifier{ttl: ttl}
}

// Notify replaces the visible notice and schedules its dismissal
func (n *Notifier) Notify(message string) models.Notice {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
	}

	notice := models.Notice{
		ID:      uuid.NewString(),
		Message: message,
	}
	n.current = &notice
	n.timer = time.AfterFunc(n.ttl, func() {
		n.dismiss(notice.ID)
	})
	return notice
}

// Current returns the visible notice, nil when none is active
func (n *Notifier) Current() *models.Notice {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.current == nil {
		return nil
	}
	notice := *n.current
	return &notice
}

// dismiss clears the notice only if it is still the visible one
func (n *Notifier) dismiss(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.current != nil && n.current.ID == id {
		n.current = nil
	}
}
