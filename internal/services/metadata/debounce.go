package metadata

import (
	"context"
	"sync"
	"time"

	"github.com/collectarr/collectarr/internal/models"
)

// Debouncer coalesces keystroke-driven searches. Each media type is one
// input scope: scheduling a newer query for a scope cancels the pending one
// and marks any in-flight call superseded, so a stale result is dropped
// rather than delivered.
type Debouncer struct {
	client *Client
	delay  time.Duration

	mu      sync.Mutex
	pending map[models.MediaType]*pendingSearch
	gen     map[models.MediaType]uint64
}

type pendingSearch struct {
	timer  *time.Timer
	cancel context.CancelFunc
}

// NewDebouncer wraps the client with a per-scope debounce delay
func NewDebouncer(client *Client, delay time.Duration) *Debouncer {
	return &Debouncer{
		client:  client,
		delay:   delay,
		pending: make(map[models.MediaType]*pendingSearch),
		gen:     make(map[models.MediaType]uint64),
	}
}

// Search schedules a lookup after the debounce delay and invokes deliver
// with the results. Only the latest call per media type is ever delivered.
func (d *Debouncer) Search(ctx context.Context, query string, mediaType models.MediaType, deliver func([]Result)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if prev, ok := d.pending[mediaType]; ok {
		prev.timer.Stop()
		prev.cancel()
	}

	d.gen[mediaType]++
	gen := d.gen[mediaType]

	searchCtx, cancel := context.WithCancel(ctx)
	p := &pendingSearch{cancel: cancel}
	p.timer = time.AfterFunc(d.delay, func() {
		defer cancel()
		results, err := d.client.Search(searchCtx, query, mediaType)
		if err != nil {
			return
		}
		// Deliver only if no newer search for this scope arrived while the
		// call was in flight.
		d.mu.Lock()
		latest := d.gen[mediaType] == gen
		if latest {
			delete(d.pending, mediaType)
		}
		d.mu.Unlock()
		if latest {
			deliver(results)
		}
	})
	d.pending[mediaType] = p
}

// Flush cancels every pending search
func (d *Debouncer) Flush() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for key, p := range d.pending {
		p.timer.Stop()
		p.cancel()
		delete(d.pending, key)
	}
}
