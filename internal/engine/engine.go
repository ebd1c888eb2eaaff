package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gyaneshwarpardhi/vtxsmear/internal/config"
	"github.com/gyaneshwarpardhi/vtxsmear/internal/event"
	"github.com/gyaneshwarpardhi/vtxsmear/internal/hepmc"
	"github.com/gyaneshwarpardhi/vtxsmear/internal/metrics"
	"github.com/gyaneshwarpardhi/vtxsmear/internal/pipeline"
	"github.com/gyaneshwarpardhi/vtxsmear/internal/record"
	"github.com/gyaneshwarpardhi/vtxsmear/internal/sink"
)

// Engine runs events through the pipeline on a fixed set of processing streams.
type Engine struct {
	pipeline  atomic.Pointer[pipeline.Pipeline]
	publisher sink.Publisher
	pool      *workerPool[*eventWork]
	conf      *config.EngineConf
}

type eventWork struct {
	ev      *event.Event
	resultC chan *event.Result
}

// New creates an Engine using conf and starts one worker per stream.
func New(ctx context.Context, p *pipeline.Pipeline, pub sink.Publisher, conf config.EngineConf) *Engine {
	if pub == nil {
		pub = sink.Nop{}
	}
	e := &Engine{
		publisher: pub,
		conf:      &conf,
	}
	e.pipeline.Store(p)

	e.pool = newWorkerPool[*eventWork](
		ctx,
		conf.Streams,
		conf.QueueDepth,
		func(ctx context.Context, stream int, w *eventWork) {
			res := e.processEvent(ctx, stream, w.ev)
			if w.resultC != nil {
				w.resultC <- res
			}
		},
	)

	return e
}

// SwapPipeline atomically replaces the module chain (used on hot-reload).
func (e *Engine) SwapPipeline(p *pipeline.Pipeline) {
	e.pipeline.Store(p)
}

// Pipeline returns the chain currently in use.
func (e *Engine) Pipeline() *pipeline.Pipeline {
	return e.pipeline.Load()
}

// ProcessSync processes an event synchronously and returns the result.
// Returns an error if the queue is full or the event times out.
func (e *Engine) ProcessSync(ctx context.Context, ev *event.Event) (*event.Result, error) {
	w := &eventWork{ev: ev, resultC: make(chan *event.Result, 1)}
	if !e.pool.Submit(w) {
		metrics.EventsDropped.Inc()
		return nil, fmt.Errorf("event queue full (capacity %d)", e.conf.QueueDepth)
	}
	return e.await(ctx, w)
}

// ProcessOn is ProcessSync pinned to one stream. Events given to the same
// stream run in call order, so with a fixed seed the stream draws the same
// random sequence on every run.
func (e *Engine) ProcessOn(ctx context.Context, stream int, ev *event.Event) (*event.Result, error) {
	w := &eventWork{ev: ev, resultC: make(chan *event.Result, 1)}
	if !e.pool.SubmitTo(stream, w) {
		metrics.EventsDropped.Inc()
		return nil, fmt.Errorf("stream %d: lane full or unavailable", stream)
	}
	return e.await(ctx, w)
}

func (e *Engine) await(ctx context.Context, w *eventWork) (*event.Result, error) {
	metrics.EventsEnqueued.Inc()
	timeout := time.Duration(e.conf.EventTimeoutMs) * time.Millisecond
	select {
	case res := <-w.resultC:
		return res, nil
	case <-time.After(timeout):
		return nil, fmt.Errorf("event processing timeout after %v", timeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// ProcessAsync enqueues an event for background processing. Returns false if the queue is full.
func (e *Engine) ProcessAsync(ev *event.Event) bool {
	w := &eventWork{ev: ev}
	if !e.pool.Submit(w) {
		metrics.EventsDropped.Inc()
		return false
	}
	metrics.EventsEnqueued.Inc()
	return true
}

// QueueUtilization returns queue used / capacity (0–1).
func (e *Engine) QueueUtilization() float64 {
	if e.pool.QueueCap() == 0 {
		return 0
	}
	return float64(e.pool.QueueLen()) / float64(e.pool.QueueCap())
}

// Streams returns the number of processing streams.
func (e *Engine) Streams() int {
	return e.conf.Streams
}

func (e *Engine) processEvent(ctx context.Context, stream int, ev *event.Event) *event.Result {
	start := time.Now()
	p := e.pipeline.Load()

	result := &event.Result{
		EventID:  ev.ID,
		Run:      ev.Run,
		Lumi:     ev.Lumi,
		Number:   ev.Number,
		StreamID: stream,
	}

	outputs, err := e.runPipeline(ctx, p, stream, ev)
	result.Outputs = outputs
	elapsed := time.Since(start)
	result.DurationMs = elapsed.Milliseconds()
	metrics.EventProcessingDuration.Observe(float64(elapsed.Microseconds()) / 1000)

	status := "success"
	if err != nil {
		status = "error"
		result.Error = err.Error()
		slog.Warn("event processing failed", "event_id", ev.ID, "stream", stream, "err", err)
	} else if perr := e.publisher.Publish(ctx, result); perr != nil {
		metrics.SinkErrors.WithLabelValues(e.publisher.Kind()).Inc()
		slog.Error("failed to publish result", "event_id", ev.ID, "sink", e.publisher.Kind(), "err", perr)
	}
	metrics.EventsProcessed.WithLabelValues(strconv.Itoa(stream), status).Inc()

	return result
}

func (e *Engine) runPipeline(ctx context.Context, p *pipeline.Pipeline, stream int, ev *event.Event) ([]record.Output, error) {
	if ev.GenEvent == nil {
		return nil, fmt.Errorf("event %s: missing gen_event", ev.ID)
	}
	if err := ev.GenEvent.Validate(); err != nil {
		return nil, fmt.Errorf("event %s: invalid gen_event: %w", ev.ID, err)
	}
	rec := record.NewEvent(ev.ID, stream, p.Process())
	rec.Run, rec.Lumi, rec.Number = ev.Run, ev.Lumi, ev.Number
	if err := rec.Seed(p.Source(), hepmc.NewProduct(ev.GenEvent)); err != nil {
		return nil, err
	}
	if err := p.Run(ctx, rec); err != nil {
		return nil, err
	}
	return rec.Outputs(), nil
}

// Shutdown drains the queue gracefully.
func (e *Engine) Shutdown() {
	e.pool.Drain()
}
