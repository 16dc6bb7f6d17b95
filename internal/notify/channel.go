// Package notify carries transient user feedback from whoever triggered it to the
// display layer. At most one notification is live; showing a new one replaces it.
// The channel has no timers; auto-dismiss is a Display policy.
package notify

import (
	"sync"
)

// Severity of a notification.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Valid reports whether s is a known severity.
func (s Severity) Valid() bool {
	switch s {
	case SeverityInfo, SeveritySuccess, SeverityWarning, SeverityError:
		return true
	}
	return false
}

// Notification is the single live message.
type Notification struct {
	Message  string
	Severity Severity
	Open     bool
	// Seq increases with every Show so observers can tell replacements apart.
	Seq uint64
}

// Channel holds the current notification. The zero value is not usable; use NewChannel.
type Channel struct {
	mu          sync.Mutex
	current     Notification
	has         bool
	seq         uint64
	nextID      int
	subscribers map[int]func(Notification)
}

// NewChannel creates an empty channel.
func NewChannel() *Channel {
	return &Channel{subscribers: make(map[int]func(Notification))}
}

// Show replaces any current notification and opens it. Unknown severities become info.
func (c *Channel) Show(message string, severity Severity) {
	if !severity.Valid() {
		severity = SeverityInfo
	}
	c.mu.Lock()
	c.seq++
	c.current = Notification{Message: message, Severity: severity, Open: true, Seq: c.seq}
	c.has = true
	n := c.current
	c.mu.Unlock()
	c.publish(n)
}

func (c *Channel) Info(message string)    { c.Show(message, SeverityInfo) }
func (c *Channel) Success(message string) { c.Show(message, SeveritySuccess) }
func (c *Channel) Warning(message string) { c.Show(message, SeverityWarning) }
func (c *Channel) Error(message string)   { c.Show(message, SeverityError) }

// Hide closes the current notification but keeps its content for the exit transition.
func (c *Channel) Hide() {
	c.mu.Lock()
	n, closed := c.closeLocked()
	c.mu.Unlock()
	if closed {
		c.publish(n)
	}
}

// HideSeq hides the notification only if it is still the one identified by seq.
func (c *Channel) HideSeq(seq uint64) {
	c.mu.Lock()
	var (
		n      Notification
		closed bool
	)
	if c.has && c.current.Seq == seq {
		n, closed = c.closeLocked()
	}
	c.mu.Unlock()
	if closed {
		c.publish(n)
	}
}

// closeLocked marks the current notification closed. c.mu must be held.
func (c *Channel) closeLocked() (Notification, bool) {
	if !c.has || !c.current.Open {
		return Notification{}, false
	}
	c.current.Open = false
	return c.current, true
}

// Discard drops a closed notification's content. Open notifications are kept.
func (c *Channel) Discard() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.has && !c.current.Open {
		c.current = Notification{}
		c.has = false
	}
}

// Current returns a copy of the current notification.
func (c *Channel) Current() (Notification, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current, c.has
}

// Subscribe registers fn for every change and returns a function that removes it.
// fn runs on the goroutine that made the change.
func (c *Channel) Subscribe(fn func(Notification)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subscribers[id] = fn
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.subscribers, id)
		c.mu.Unlock()
	}
}

func (c *Channel) publish(n Notification) {
	c.mu.Lock()
	subs := make([]func(Notification), 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		subs = append(subs, fn)
	}
	c.mu.Unlock()
	for _, fn := range subs {
		fn(n)
	}
}
