package notify

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// DefaultAutoHide is how long a notification stays open without user action.
const DefaultAutoHide = 6 * time.Second

// Display renders notifications to a writer and hides each one after AutoHide
// unless it is replaced first.
type Display struct {
	channel  *Channel
	out      io.Writer
	autoHide time.Duration

	mu          sync.Mutex
	timer       *time.Timer
	last        Notification
	unsubscribe func()
}

// NewDisplay attaches a display to channel. autoHide <= 0 uses DefaultAutoHide.
func NewDisplay(channel *Channel, out io.Writer, autoHide time.Duration) *Display {
	if autoHide <= 0 {
		autoHide = DefaultAutoHide
	}
	d := &Display{channel: channel, out: out, autoHide: autoHide}
	d.unsubscribe = channel.Subscribe(d.onChange)
	return d
}

// Last returns the most recently rendered notification.
func (d *Display) Last() (Notification, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last, d.last.Seq != 0
}

// Dismiss hides the current notification as if the user closed it.
func (d *Display) Dismiss() {
	d.mu.Lock()
	d.stopTimer()
	d.mu.Unlock()
	d.channel.Hide()
	d.channel.Discard()
}

// Close stops the auto-hide timer and detaches from the channel.
func (d *Display) Close() {
	d.mu.Lock()
	d.stopTimer()
	unsubscribe := d.unsubscribe
	d.unsubscribe = nil
	d.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
}

func (d *Display) onChange(n Notification) {
	if !n.Open {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if n.Seq <= d.last.Seq {
		return
	}
	d.last = n
	d.stopTimer()
	seq := n.Seq
	d.timer = time.AfterFunc(d.autoHide, func() {
		d.channel.HideSeq(seq)
		d.channel.Discard()
	})
	_, _ = fmt.Fprintln(d.out, Format(n))
}

// stopTimer requires d.mu.
func (d *Display) stopTimer() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Format renders a notification as a single line, for example "success: Employee created successfully!".
func Format(n Notification) string {
	return fmt.Sprintf("%s: %s", strings.ToLower(string(n.Severity)), n.Message)
}
