package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/taskdesk/task-system/internal/api/metrics"
	"github.com/taskdesk/task-system/internal/core/domain"
	"github.com/taskdesk/task-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes audit events to a fixed set of workers using
// consistent hashing on the subject id, so events about one user are
// persisted in the order they were recorded.
type Dispatcher struct {
	workers []chan domain.AuditEvent
	store   ports.AuditStore
	log     zerolog.Logger
	wg      sync.WaitGroup

	mu       sync.RWMutex
	stopped  bool
	stopOnce sync.Once
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, store ports.AuditStore, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.AuditEvent, numWorkers),
		store:   store,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers run until Stop closes
// their channels.
func (d *Dispatcher) Start() {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(i, ch)
	}
}

// Stop rejects further events, then blocks until every worker has
// drained its channel and persisted the remaining buffered events.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		d.mu.Lock()
		d.stopped = true
		d.mu.Unlock()

		for _, ch := range d.workers {
			close(ch)
		}
	})
	d.wg.Wait()
}

// Record implements ports.AuditRecorder. It never blocks the request
// path: when the target worker's channel is full, or the dispatcher is
// stopping, the event is dropped and counted.
func (d *Dispatcher) Record(event domain.AuditEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		metrics.AuditEventsDroppedTotal.Inc()
		d.log.Warn().Str("action", event.Action).Msg("dispatcher stopped, audit event dropped")
		return
	}

	select {
	case d.workers[d.shardIndex(event.SubjectID)] <- event:
	default:
		metrics.AuditEventsDroppedTotal.Inc()
		d.log.Warn().Str("action", event.Action).Msg("audit queue full, event dropped")
	}
}

func (d *Dispatcher) runWorker(id int, ch chan domain.AuditEvent) {
	defer d.wg.Done()
	gauge := metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(id))

	for event := range ch {
		gauge.Set(float64(len(ch)))
		if err := d.store.Insert(context.Background(), event); err != nil {
			d.log.Error().Err(err).Str("action", event.Action).Msg("failed to persist audit event")
			continue
		}
		metrics.AuditEventsWrittenTotal.WithLabelValues(event.Action).Inc()
	}
	gauge.Set(0)
}

// shardIndex maps a subject id deterministically to a worker index.
func (d *Dispatcher) shardIndex(subjectID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(subjectID))
	return int(h.Sum32()) % len(d.workers)
}
