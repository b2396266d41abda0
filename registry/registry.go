// Package registry implements the device event router (C5): a single
// consumer-supplied callback, fed by every loaded plugin's own thread,
// delivered on one dispatch goroutine so a plugin's reader thread is
// never blocked on consumer code, the consumer may safely call back
// into the core, and events for a single device are never reordered
// relative to one another, per spec.md §5.
package registry

import (
	"sync"

	"github.com/andrieee44/analogsdk"
	"go.uber.org/zap"
)

// queuedEvent is one device event waiting for the dispatch goroutine.
type queuedEvent struct {
	event analogsdk.DeviceEventType
	info  analogsdk.DeviceInfo
}

// Router holds the mutex-guarded consumer callback slot and a single
// FIFO queue shared by every loaded plugin. All plugins funnel their
// events through the same queue and the same dispatch goroutine, so
// per-device (and global) delivery order always matches call order,
// even across plugins racing to call Forward at the same time.
type Router struct {
	log *zap.SugaredLogger

	mu    sync.Mutex
	cond  *sync.Cond
	cb    analogsdk.DeviceEventCallback
	queue []queuedEvent
}

// NewRouter returns a Router that logs dropped events through log and
// starts its dispatch goroutine, which runs for the life of the Router.
func NewRouter(log *zap.SugaredLogger) *Router {
	var r = &Router{log: log}

	r.cond = sync.NewCond(&r.mu)

	go r.dispatchLoop()

	return r
}

// Forward is the closure passed to every plugin's Initialise. It clones
// info (the string data is copied) and appends the event to the
// dispatch queue, decoupling the plugin's thread from consumer code
// without reordering: Forward never blocks on the consumer callback, but
// every event it enqueues is delivered in exactly the order Forward was
// called, plugin-wide.
func (r *Router) Forward(event analogsdk.DeviceEventType, info analogsdk.DeviceInfo) {
	r.mu.Lock()
	r.queue = append(r.queue, queuedEvent{event: event, info: info.Clone()})
	r.mu.Unlock()

	r.cond.Signal()
}

// dispatchLoop is the only goroutine that ever invokes the consumer
// callback. It drains the queue strictly in FIFO order, one event at a
// time, so no two events can ever be delivered concurrently or
// out of order relative to each other.
func (r *Router) dispatchLoop() {
	for {
		r.mu.Lock()

		for len(r.queue) == 0 {
			r.cond.Wait()
		}

		var next = r.queue[0]
		r.queue = r.queue[1:]
		var cb = r.cb

		r.mu.Unlock()

		if cb == nil {
			r.log.Debugw("registry: dropping event, no callback registered", "event", next.event, "device", next.info.DeviceID)

			continue
		}

		cb(next.event, next.info)
	}
}

// SetCallback installs cb as the consumer callback, replacing any
// previous one. It may be called at any time after initialisation.
func (r *Router) SetCallback(cb analogsdk.DeviceEventCallback) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cb = cb
}

// ClearCallback removes the consumer callback, if any.
func (r *Router) ClearCallback() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cb = nil
}
