package realtime

import (
	"sync"

	"github.com/ironfellow/companion/core"
)

// consumer is one Subscribe call. Callbacks run one at a time under deliverMu, outside mu, so a
// callback may cancel its own subscription. done is checked under mu right before each callback:
// once Cancel has returned no further callback starts. A callback already running is not waited
// for.
type consumer struct {
	engine     *engine
	listener   *listener
	path       string
	onSnapshot func(core.View)
	onError    func(error)
	stop       func() bool

	deliverMu sync.Mutex

	mu      sync.Mutex
	done    bool
	lastSeq uint64
	once    sync.Once
}

func (c *consumer) Path() string {
	return c.path
}

// Cancel is idempotent.
func (c *consumer) Cancel() {
	c.once.Do(func() {
		c.mu.Lock()
		c.done = true
		stop := c.stop
		c.mu.Unlock()

		if stop != nil {
			stop()
		}
		c.engine.detach(c)
	})
}

func (c *consumer) deliver(seq uint64, view core.View) {
	c.deliverMu.Lock()
	defer c.deliverMu.Unlock()

	c.mu.Lock()
	if c.done || seq <= c.lastSeq {
		c.mu.Unlock()
		return
	}
	c.lastSeq = seq
	c.mu.Unlock()

	c.engine.deliveredSnapshots.Add(1)
	c.onSnapshot(view)
}

func (c *consumer) fail(err error) {
	c.deliverMu.Lock()
	defer c.deliverMu.Unlock()

	c.mu.Lock()
	if c.done {
		c.mu.Unlock()
		return
	}
	c.done = true
	c.mu.Unlock()

	c.onError(err)
}
