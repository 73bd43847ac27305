package api

import (
	"sync"

	"github.com/grandcallpro/callctl/internal/log"
)

// InvalidationNotifier broadcasts "session became invalid" to subscribers.
//
// It replaces the ad-hoc global event the browser client used with an
// explicit observer interface: the transport layer owns the notifier, the
// session layer subscribes. Broadcast is synchronous and fire-and-forget;
// with zero subscribers it is a no-op. Subscribers must be idempotent, a
// burst of 401s delivers more than one notification.
type InvalidationNotifier struct {
	mu   sync.Mutex
	next int
	subs map[int]func()
}

// NewInvalidationNotifier creates an empty notifier
func NewInvalidationNotifier() *InvalidationNotifier {
	return &InvalidationNotifier{subs: make(map[int]func())}
}

// Subscribe registers fn and returns a cancel function.
// Cancel is safe to call more than once.
func (n *InvalidationNotifier) Subscribe(fn func()) (cancel func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.next
	n.next++
	n.subs[id] = fn

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

// Broadcast delivers the invalidation signal to every current subscriber.
// A panicking subscriber does not prevent delivery to the others.
func (n *InvalidationNotifier) Broadcast() {
	n.mu.Lock()
	fns := make([]func(), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.Unlock()

	for _, fn := range fns {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Error("invalidation subscriber panicked", "panic", r)
				}
			}()
			fn()
		}()
	}
}
