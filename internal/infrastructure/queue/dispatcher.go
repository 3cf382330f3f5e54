package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/ghsm/ticketing-admin/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes ticket scans to a fixed set of workers using consistent
// hashing on the ticket code, so repeat scans of the same ticket are always
// processed in order by the same worker (the dedup check depends on it).
type Dispatcher struct {
	workers []chan ports.CheckinInput
	service ports.CheckinService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.CheckinService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.CheckinInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.CheckinInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a scan to the worker responsible for its ticket code.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(in ports.CheckinInput) {
	d.workers[d.shardIndex(in.TicketCode)] <- in
}

// shardIndex maps a ticket code deterministically to a worker index.
func (d *Dispatcher) shardIndex(ticketCode string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(ticketCode))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.CheckinInput) {
	for {
		select {
		case <-ctx.Done():
			return
		case in, ok := <-ch:
			if !ok {
				return
			}
			if err := d.service.Process(ctx, in); err != nil {
				d.log.Error().Err(err).
					Str("ticket", in.TicketCode).
					Int("worker_id", id).
					Msg("checkin processing failed")
			}
		}
	}
}
