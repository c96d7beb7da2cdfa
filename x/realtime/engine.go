// Package realtime mirrors remote documents into local state.
//
// Consumers subscribing to the same path share one remote listener. Snapshots of a path are
// normalized once and delivered to its consumers in the order the store emitted them.
package realtime

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ironfellow/companion/core"
)

var tracer = otel.Tracer("realtime")

type cachedView struct {
	seq  uint64
	view core.View
}

type listener struct {
	path      string
	ctx       context.Context
	cancel    context.CancelFunc
	consumers []*consumer
	seq       uint64
}

type engine struct {
	store  core.RemoteStore
	config core.Config

	mu        sync.Mutex
	listeners map[string]*listener
	cache     map[string]cachedView

	deliveredSnapshots atomic.Int64
	remoteErrors       atomic.Int64
}

// NewEngine creates a sync engine reading from store.
func NewEngine(store core.RemoteStore, config core.Config) core.SyncEngine {
	return &engine{
		store:     store,
		config:    config,
		listeners: make(map[string]*listener),
		cache:     make(map[string]cachedView),
	}
}

// Subscribe implements core.SyncEngine. The subscription also ends when ctx is done.
func (e *engine) Subscribe(ctx context.Context, path string, onSnapshot func(core.View), onError func(error)) (core.Subscription, error) {
	_, span := tracer.Start(ctx, "Realtime.Engine.Subscribe")
	defer span.End()

	info, err := core.ParsePath(path)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("path", info.Path))

	if onSnapshot == nil {
		onSnapshot = func(core.View) {}
	}
	if onError == nil {
		onError = func(error) {}
	}

	c := &consumer{
		engine:     e,
		path:       info.Path,
		onSnapshot: onSnapshot,
		onError:    onError,
	}

	e.mu.Lock()
	l, ok := e.listeners[info.Path]
	if !ok {
		listenerCtx, cancel := context.WithCancel(context.Background())
		l = &listener{
			path:   info.Path,
			ctx:    listenerCtx,
			cancel: cancel,
		}
		e.listeners[info.Path] = l
		go e.run(l)

		slog.Info(
			fmt.Sprintf("listener started: %s", info.Path),
			slog.String("module", "realtime"),
		)
	}
	c.listener = l
	l.consumers = append(l.consumers, c)
	cached, hasCache := e.cache[info.Path]
	e.mu.Unlock()

	if hasCache {
		go c.deliver(cached.seq, cached.view)
	}

	stop := context.AfterFunc(ctx, c.Cancel)
	c.mu.Lock()
	c.stop = stop
	c.mu.Unlock()

	return c, nil
}

// Cached implements core.SyncEngine
func (e *engine) Cached(path string) (core.View, bool) {
	cleaned, err := core.CleanPath(path)
	if err != nil {
		return core.View{}, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	cached, ok := e.cache[cleaned]
	return cached.view, ok
}

// GetMetrics implements core.SyncEngine
func (e *engine) GetMetrics() map[string]int64 {
	e.mu.Lock()
	listeners := int64(len(e.listeners))
	var consumers int64
	for _, l := range e.listeners {
		consumers += int64(len(l.consumers))
	}
	cached := int64(len(e.cache))
	e.mu.Unlock()

	return map[string]int64{
		"listeners":           listeners,
		"consumers":           consumers,
		"cached_views":        cached,
		"delivered_snapshots": e.deliveredSnapshots.Load(),
		"remote_errors":       e.remoteErrors.Load(),
	}
}

func (e *engine) run(l *listener) {
	snapshots := make(chan core.Snapshot, max(e.config.RealtimeBufferSize, 1))
	errc := make(chan error, 1)

	go func() {
		errc <- e.store.Subscribe(l.ctx, l.path, snapshots)
	}()

	for {
		select {
		case <-l.ctx.Done():
			return
		case snapshot := <-snapshots:
			if !e.handle(l, snapshot) {
				return
			}
		case err := <-errc:
			if l.ctx.Err() != nil {
				return
			}
			// snapshots emitted before the failure are still delivered
			for drained := false; !drained; {
				select {
				case snapshot := <-snapshots:
					if !e.handle(l, snapshot) {
						return
					}
				default:
					drained = true
				}
			}
			if err == nil {
				err = core.NewErrorNetworkFailure()
			}
			e.fail(l, err)
			return
		}
	}
}

func (e *engine) handle(l *listener, snapshot core.Snapshot) bool {
	view, err := core.Normalize(snapshot)
	if err != nil {
		e.fail(l, err)
		return false
	}
	e.publish(l, view)
	return true
}

func (e *engine) publish(l *listener, view core.View) {
	e.mu.Lock()
	if e.listeners[l.path] != l {
		e.mu.Unlock()
		return
	}
	l.seq++
	seq := l.seq
	e.cache[l.path] = cachedView{seq: seq, view: view}
	consumers := make([]*consumer, len(l.consumers))
	copy(consumers, l.consumers)
	e.mu.Unlock()

	for _, c := range consumers {
		c.deliver(seq, view)
	}
}

// fail terminates the listener and reports err once to every consumer attached to it.
func (e *engine) fail(l *listener, err error) {
	e.remoteErrors.Add(1)

	e.mu.Lock()
	if e.listeners[l.path] != l {
		e.mu.Unlock()
		return
	}
	delete(e.listeners, l.path)
	delete(e.cache, l.path)
	consumers := l.consumers
	l.consumers = nil
	e.mu.Unlock()

	l.cancel()

	slog.Error(
		fmt.Sprintf("listener failed: %s: %v", l.path, err),
		slog.String("module", "realtime"),
	)

	for _, c := range consumers {
		c.fail(err)
	}
}

// detach removes a consumer and stops the listener when it was the last one.
func (e *engine) detach(c *consumer) {
	e.mu.Lock()
	l := c.listener
	for i, other := range l.consumers {
		if other == c {
			l.consumers = append(l.consumers[:i], l.consumers[i+1:]...)
			break
		}
	}
	stop := len(l.consumers) == 0 && e.listeners[l.path] == l
	if stop {
		delete(e.listeners, l.path)
		delete(e.cache, l.path)
	}
	e.mu.Unlock()

	if stop {
		l.cancel()
		slog.Info(
			fmt.Sprintf("listener stopped: %s", l.path),
			slog.String("module", "realtime"),
		)
	}
}
