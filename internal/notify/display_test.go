package notify

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestDisplay_RendersAndAutoHides(t *testing.T) {
	c := NewChannel()
	out := &syncBuffer{}
	d := NewDisplay(c, out, 20*time.Millisecond)
	defer d.Close()

	c.Success("Employee created successfully!")
	assert.Equal(t, "success: Employee created successfully!\n", out.String())

	assert.Eventually(t, func() bool {
		_, ok := c.Current()
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestDisplay_ReplacementRestartsTimer(t *testing.T) {
	c := NewChannel()
	out := &syncBuffer{}
	d := NewDisplay(c, out, 80*time.Millisecond)
	defer d.Close()

	c.Info("first")
	time.Sleep(50 * time.Millisecond)
	c.Error("second")
	time.Sleep(50 * time.Millisecond)

	n, ok := c.Current()
	require.True(t, ok, "second notification must outlive the first one's timer")
	assert.Equal(t, "second", n.Message)
	assert.True(t, n.Open)

	last, ok := d.Last()
	require.True(t, ok)
	assert.Equal(t, "second", last.Message)
	assert.Equal(t, "info: first\nerror: second\n", out.String())
}

func TestDisplay_DismissAndClose(t *testing.T) {
	c := NewChannel()
	out := &syncBuffer{}
	d := NewDisplay(c, out, time.Hour)

	c.Warning("dismiss me")
	d.Dismiss()
	_, ok := c.Current()
	assert.False(t, ok)

	d.Close()
	c.Info("after close")
	assert.Equal(t, "warning: dismiss me\n", out.String())
}

func TestNewDisplay_DefaultAutoHide(t *testing.T) {
	d := NewDisplay(NewChannel(), &syncBuffer{}, 0)
	defer d.Close()
	assert.Equal(t, DefaultAutoHide, d.autoHide)
}
