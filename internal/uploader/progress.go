package uploader

import "sync"

// Status is the lifecycle state of an upload batch
type Status string

const (
	StatusPending     Status = "pending"
	StatusProgressing Status = "progressing"
	StatusCompleted   Status = "completed"
	StatusFailed      Status = "failed"
)

// Update is one observable progress event
type Update struct {
	Status  Status
	Percent int
}

// Progress is an explicit finite-state progress object
// (pending -> progressing(percent) -> completed | failed) that any UI layer
// can poll or subscribe to. Percent is monotonically non-decreasing; the
// terminal event is delivered only after every progress event.
type Progress struct {
	mu      sync.Mutex
	status  Status
	percent int
	err     error
	done    chan struct{}
	subs    []chan Update
}

func newProgress() *Progress {
	return &Progress{
		status: StatusPending,
		done:   make(chan struct{}),
	}
}

// Snapshot returns the current state for polling consumers
func (p *Progress) Snapshot() Update {
	p.mu.Lock()
	defer p.mu.Unlock()

	return Update{Status: p.status, Percent: p.percent}
}

// Err returns the terminal error, if the batch failed outright
func (p *Progress) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.err
}

// Done returns a channel closed when the batch reaches a terminal state
func (p *Progress) Done() <-chan struct{} {
	return p.done
}

// Subscribe returns a channel receiving every subsequent update. The channel
// is buffered generously and closed on the terminal event; slow consumers
// drop intermediate updates rather than blocking the pipeline.
func (p *Progress) Subscribe() <-chan Update {
	p.mu.Lock()
	defer p.mu.Unlock()

	ch := make(chan Update, 64)
	ch <- Update{Status: p.status, Percent: p.percent}
	if p.status == StatusCompleted || p.status == StatusFailed {
		close(ch)
		return ch
	}
	p.subs = append(p.subs, ch)
	return ch
}

// setPercent advances the percentage. Regressions are ignored so observers
// always see a non-decreasing sequence.
func (p *Progress) setPercent(percent int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.status == StatusCompleted || p.status == StatusFailed {
		return
	}
	if percent < p.percent {
		return
	}
	if percent > 100 {
		percent = 100
	}

	p.status = StatusProgressing
	p.percent = percent
	p.notifyLocked()
}

// complete moves to the completed state at 100%
func (p *Progress) complete() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.status == StatusCompleted || p.status == StatusFailed {
		return
	}
	p.status = StatusCompleted
	p.percent = 100
	p.notifyLocked()
	p.closeLocked()
}

// fail moves to the failed state
func (p *Progress) fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.status == StatusCompleted || p.status == StatusFailed {
		return
	}
	p.status = StatusFailed
	p.err = err
	p.notifyLocked()
	p.closeLocked()
}

func (p *Progress) notifyLocked() {
	update := Update{Status: p.status, Percent: p.percent}
	for _, ch := range p.subs {
		select {
		case ch <- update:
		default:
		}
	}
}

func (p *Progress) closeLocked() {
	for _, ch := range p.subs {
		close(ch)
	}
	p.subs = nil
	close(p.done)
}
