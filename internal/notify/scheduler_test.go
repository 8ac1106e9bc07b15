package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManualSchedulerFiresInDeadlineOrder(t *testing.T) {
	sched := NewManualScheduler()

	var fired []string
	sched.AfterFunc(2*time.Second, func() { fired = append(fired, "b") })
	sched.AfterFunc(1*time.Second, func() { fired = append(fired, "a") })
	sched.AfterFunc(10*time.Second, func() { fired = append(fired, "c") })

	sched.Advance(5 * time.Second)
	assert.Equal(t, []string{"a", "b"}, fired)
	assert.Equal(t, 1, sched.Pending())

	sched.Advance(5 * time.Second)
	assert.Equal(t, []string{"a", "b", "c"}, fired)
	assert.Zero(t, sched.Pending())
}

func TestManualSchedulerCancel(t *testing.T) {
	sched := NewManualScheduler()

	fired := false
	cancel := sched.AfterFunc(time.Second, func() { fired = true })
	cancel()

	sched.Advance(time.Minute)
	assert.False(t, fired)
	assert.Zero(t, sched.Pending())
}

func TestTimerSchedulerFiresAndCancels(t *testing.T) {
	var sched Scheduler = TimerScheduler{}

	done := make(chan struct{})
	sched.AfterFunc(time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timer callback never fired")
	}

	cancel := sched.AfterFunc(time.Hour, func() { t.Error("cancelled callback fired") })
	cancel()
}
