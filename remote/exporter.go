package remote

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// DefaultDebounce is the quiet window before a scheduled export is sent.
const DefaultDebounce = 2 * time.Second

// statusTTL is how long synced/error stay visible before reading idle again.
const statusTTL = 30 * time.Second

type Status string

const (
	StatusIdle    Status = "idle"
	StatusSyncing Status = "syncing"
	StatusSynced  Status = "synced"
	StatusError   Status = "error"
)

const (
	statusKey = "status"
	errorKey  = "error"
)

// Exporter coalesces exports: only the latest payload scheduled within the
// debounce window is sent. Failures are logged and kept as a transient
// status; they never reach the caller of Schedule.
type Exporter struct {
	client   *Client
	debounce time.Duration
	log      *zap.Logger

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	pending *OutboundPayload
	sends   sync.WaitGroup

	status *cache.Cache
}

func NewExporter(client *Client, debounce time.Duration, log *zap.Logger) *Exporter {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Exporter{
		client:   client,
		debounce: debounce,
		log:      log,
		status:   cache.New(statusTTL, time.Minute),
	}
}

// Schedule replaces any pending payload with p and restarts the quiet window.
func (e *Exporter) Schedule(p OutboundPayload) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.pending = &p
	e.stopLocked()
	e.gen++
	gen := e.gen
	e.sends.Add(1)
	e.timer = time.AfterFunc(e.debounce, func() {
		defer e.sends.Done()
		e.fire(gen)
	})
}

// stopLocked cancels the running timer. A timer that already fired settles
// its own wait count.
func (e *Exporter) stopLocked() {
	if e.timer != nil && e.timer.Stop() {
		e.sends.Done()
	}
	e.timer = nil
}

func (e *Exporter) fire(gen uint64) {
	e.mu.Lock()
	if e.gen != gen || e.pending == nil {
		e.mu.Unlock()
		return
	}
	p := *e.pending
	e.pending = nil
	e.timer = nil
	e.mu.Unlock()

	e.send(context.Background(), p)
}

// Flush sends a pending payload now instead of waiting out the window.
func (e *Exporter) Flush(ctx context.Context) error {
	e.mu.Lock()
	e.stopLocked()
	e.gen++
	p := e.pending
	e.pending = nil
	e.mu.Unlock()

	if p == nil {
		return nil
	}
	return e.send(ctx, *p)
}

// Wait blocks until every timer already scheduled has fired or been stopped.
func (e *Exporter) Wait() {
	e.sends.Wait()
}

func (e *Exporter) send(ctx context.Context, p OutboundPayload) error {
	e.status.Set(statusKey, StatusSyncing, cache.NoExpiration)
	if err := e.client.Push(ctx, p); err != nil {
		e.log.Warn("sync push failed", zap.Error(err), zap.Int("rows", len(p.Rows)))
		e.status.Set(statusKey, StatusError, cache.DefaultExpiration)
		e.status.Set(errorKey, err.Error(), cache.DefaultExpiration)
		return err
	}
	e.log.Info("synced", zap.Int("rows", len(p.Rows)))
	e.status.Set(statusKey, StatusSynced, cache.DefaultExpiration)
	e.status.Delete(errorKey)
	return nil
}

// Status reports the transient sync state and the last error, if any.
func (e *Exporter) Status() (Status, string) {
	s, ok := e.status.Get(statusKey)
	if !ok {
		return StatusIdle, ""
	}
	msg, _ := e.status.Get(errorKey)
	text, _ := msg.(string)
	return s.(Status), text
}
