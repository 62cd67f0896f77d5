// Package audit writes the audit trail after a mutation has been committed.
//
// Recording is best-effort: an entry whose write fails is logged and counted,
// never retried and never reported to the caller. The primary mutation is
// the source of truth.
package audit

import (
	"context"
	"encoding/json"
	"reflect"
	"sync"
	"time"

	"github.com/SundayYogurt/pim_service/internal/domain"
	"github.com/SundayYogurt/pim_service/internal/dto"
	"github.com/SundayYogurt/pim_service/internal/interfaces"
	"github.com/SundayYogurt/pim_service/internal/metrics"
	"github.com/SundayYogurt/pim_service/internal/repository"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type Options struct {
	QueueSize    int
	Workers      int
	WriteTimeout time.Duration
}

// record is an entry with its snapshots already encoded, so later changes to
// the caller's values cannot leak into the trail.
type record struct {
	log     domain.AuditLog
	history *domain.ChangeHistory
	event   dto.AuditEvent
}

type Recorder struct {
	repo     repository.AuditRepository
	producer interfaces.ProducerHandler
	log      *zap.Logger
	timeout  time.Duration

	queue     chan record
	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
	wg        sync.WaitGroup

	// events feeds the publisher goroutine for entries written inline, so a
	// slow broker never holds up the caller.
	events     chan dto.AuditEvent
	eventsOpen bool
	pubWG      sync.WaitGroup
}

var _ interfaces.AuditRecorder = (*Recorder)(nil)

// NewRecorder starts opts.Workers goroutines draining the queue. With zero
// workers every entry is written on the caller goroutine.
func NewRecorder(repo repository.AuditRepository, producer interfaces.ProducerHandler, log *zap.Logger, opts Options) *Recorder {
	if opts.QueueSize < 0 {
		opts.QueueSize = 0
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 5 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}

	r := &Recorder{
		repo:     repo,
		producer: producer,
		log:      log.Named("audit"),
		timeout:  opts.WriteTimeout,
		queue:    make(chan record, opts.QueueSize),
	}

	if producer != nil {
		r.events = make(chan dto.AuditEvent, max(opts.QueueSize, 1))
		r.eventsOpen = true
		r.pubWG.Add(1)
		go r.runPublisher()
	}

	if opts.Workers <= 0 {
		r.closed = true
		close(r.queue)
		return r
	}

	for i := 0; i < opts.Workers; i++ {
		r.wg.Add(1)
		go r.runWorker()
	}
	return r
}

// Record enqueues the entry. When the queue is full or the recorder is closed
// the rows are written inline instead of being dropped; the event is handed
// to the publisher and dropped if it is busy.
func (r *Recorder) Record(_ context.Context, entry dto.AuditEntry) {
	rec := r.prepare(entry)

	r.mu.RLock()
	queued := false
	if !r.closed {
		metrics.AuditQueueDepth.Inc()
		select {
		case r.queue <- rec:
			queued = true
		default:
			metrics.AuditQueueDepth.Dec()
		}
	}
	r.mu.RUnlock()

	if !queued {
		metrics.AuditInlineTotal.Inc()
		r.write(rec)
		r.handOff(rec.event)
	}
}

// Close stops accepting queued entries and waits for the workers to drain
// the queue, or for ctx to expire.
func (r *Recorder) Close(ctx context.Context) error {
	r.closeOnce.Do(func() {
		r.mu.Lock()
		if !r.closed {
			r.closed = true
			close(r.queue)
		}
		r.mu.Unlock()
	})

	done := make(chan struct{})
	go func() {
		r.wg.Wait()

		r.mu.Lock()
		if r.eventsOpen {
			r.eventsOpen = false
			close(r.events)
		}
		r.mu.Unlock()

		r.pubWG.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		r.log.Warn("audit recorder shutdown interrupted", zap.Int("pending", len(r.queue)))
		return ctx.Err()
	}
}

func (r *Recorder) runWorker() {
	defer r.wg.Done()
	for rec := range r.queue {
		metrics.AuditQueueDepth.Dec()
		r.write(rec)
		r.publish(rec.event)
	}
}

func (r *Recorder) runPublisher() {
	defer r.pubWG.Done()
	for event := range r.events {
		r.publish(event)
	}
}

func (r *Recorder) handOff(event dto.AuditEvent) {
	if r.producer == nil {
		return
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.eventsOpen {
		select {
		case r.events <- event:
			return
		default:
		}
	}

	metrics.AuditPublishDroppedTotal.Inc()
	r.log.Warn("audit event not published, publisher busy", eventFields(event)...)
}

func (r *Recorder) prepare(entry dto.AuditEntry) record {
	now := time.Now()
	rec := record{
		log: domain.AuditLog{
			Action:   entry.Action,
			Entity:   entry.Entity,
			EntityID: entry.EntityID,
			UserID:   entry.UserID,
		},
		event: dto.AuditEvent{
			Action:     entry.Action,
			Entity:     entry.Entity,
			EntityID:   entry.EntityID,
			UserID:     entry.UserID,
			OccurredAt: now,
		},
	}

	if !domain.HistoryTracked(entry.Entity) {
		return rec
	}

	before, err := Snapshot(entry.Before)
	if err != nil {
		r.log.Error("encode before snapshot", zap.String("entity", entry.Entity), zap.Uint("entity_id", entry.EntityID), zap.Error(err))
		metrics.AuditWritesTotal.WithLabelValues("change_history", "error").Inc()
		return rec
	}
	after, err := Snapshot(entry.After)
	if err != nil {
		r.log.Error("encode after snapshot", zap.String("entity", entry.Entity), zap.Uint("entity_id", entry.EntityID), zap.Error(err))
		metrics.AuditWritesTotal.WithLabelValues("change_history", "error").Inc()
		return rec
	}

	rec.history = &domain.ChangeHistory{
		Entity:     entry.Entity,
		EntityID:   entry.EntityID,
		Action:     entry.Action,
		DataBefore: before,
		DataAfter:  after,
		UserID:     entry.UserID,
	}
	return rec
}

func eventFields(event dto.AuditEvent) []zap.Field {
	return []zap.Field{
		zap.String("action", string(event.Action)),
		zap.String("entity", event.Entity),
		zap.Uint("entity_id", event.EntityID),
		zap.Uint("user_id", event.UserID),
	}
}

// write persists the audit log and history rows independently; a failure of
// one does not prevent the other.
func (r *Recorder) write(rec record) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	fields := eventFields(rec.event)

	auditLog := rec.log
	if err := r.repo.CreateAuditLog(ctx, &auditLog); err != nil {
		r.log.Error("write audit log", append(fields, zap.Error(err))...)
		metrics.AuditWritesTotal.WithLabelValues("audit_log", "error").Inc()
	} else {
		metrics.AuditWritesTotal.WithLabelValues("audit_log", "ok").Inc()
	}

	if rec.history != nil {
		history := *rec.history
		if err := r.repo.CreateChangeHistory(ctx, &history); err != nil {
			r.log.Error("write change history", append(fields, zap.Error(err))...)
			metrics.AuditWritesTotal.WithLabelValues("change_history", "error").Inc()
		} else {
			metrics.AuditWritesTotal.WithLabelValues("change_history", "ok").Inc()
		}
	}
}

func (r *Recorder) publish(event dto.AuditEvent) {
	if r.producer == nil {
		return
	}

	fields := eventFields(event)
	payload, err := json.Marshal(event)
	if err != nil {
		r.log.Error("encode audit event", append(fields, zap.Error(err))...)
		return
	}
	if err := r.producer.PublishMessage([]byte(event.Entity), payload); err != nil {
		r.log.Warn("publish audit event", append(fields, zap.Error(err))...)
	}
}

// Snapshot encodes v as JSON. A nil value, including a typed nil pointer,
// yields a nil snapshot.
func Snapshot(v any) (datatypes.JSON, error) {
	if v == nil {
		return nil, nil
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, nil
	}

	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}
