package screen

import (
	"sync"
	"time"
)

// debouncer runs only the most recently scheduled call once its delay has
// passed without another call being scheduled.
type debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	seq   uint64
	timer *time.Timer
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{delay: delay}
}

func (d *debouncer) schedule(fn func()) {
	if d.delay <= 0 {
		fn()
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	seq := d.seq
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		latest := seq == d.seq
		d.mu.Unlock()
		if latest {
			fn()
		}
	})
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
	}
}
