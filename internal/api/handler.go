package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gyaneshwarpardhi/vtxsmear/internal/config"
	"github.com/gyaneshwarpardhi/vtxsmear/internal/engine"
	"github.com/gyaneshwarpardhi/vtxsmear/internal/event"
	"github.com/gyaneshwarpardhi/vtxsmear/internal/metrics"
	"github.com/gyaneshwarpardhi/vtxsmear/internal/pipeline"
)

const maxBatchSize = 100

// BuildFunc turns a freshly loaded config into a pipeline.
type BuildFunc func(*config.Config) (*pipeline.Pipeline, error)

// Handler holds all HTTP handler dependencies.
type Handler struct {
	eng    *engine.Engine
	loader *config.Loader
	build  BuildFunc
	mux    *http.ServeMux

	stagedMu sync.Mutex
	staged   *pipeline.Pipeline
}

// New creates an HTTP handler and registers all routes. Every loader reload,
// from the file watcher or from POST /v1/config/reload, must build a pipeline
// before the config is accepted, and an accepted config swaps that pipeline in.
func New(eng *engine.Engine, loader *config.Loader, build BuildFunc) http.Handler {
	h := &Handler{eng: eng, loader: loader, build: build, mux: http.NewServeMux()}
	loader.AddCheck(h.stage)
	loader.OnChange(h.activate)

	h.mux.HandleFunc("POST /v1/events", h.ingestEvent)
	h.mux.HandleFunc("POST /v1/events/batch", h.ingestBatch)
	h.mux.HandleFunc("GET /v1/modules", h.listModules)
	h.mux.HandleFunc("POST /v1/config/reload", h.reloadConfig)
	h.mux.HandleFunc("GET /healthz", h.healthz)
	h.mux.HandleFunc("GET /readyz", h.readyz)
	h.mux.Handle("GET /metrics", promhttp.Handler())

	return loggingMiddleware(h.mux)
}

// POST /v1/events — synchronous single-event smearing.
func (h *Handler) ingestEvent(w http.ResponseWriter, r *http.Request) {
	var ev event.Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}
	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}
	if ev.GenEvent == nil {
		writeError(w, http.StatusBadRequest, "gen_event is required")
		return
	}
	ev.ReceivedAt = time.Now()

	res, err := h.eng.ProcessSync(r.Context(), &ev)
	if err != nil {
		writeError(w, http.StatusTooManyRequests, err.Error())
		return
	}
	if !res.OK() {
		writeJSON(w, http.StatusUnprocessableEntity, res)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// POST /v1/events/batch — async batch ingestion (up to 100 events).
func (h *Handler) ingestBatch(w http.ResponseWriter, r *http.Request) {
	var events []*event.Event
	if err := json.NewDecoder(r.Body).Decode(&events); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}
	if len(events) == 0 {
		writeError(w, http.StatusBadRequest, "batch must contain at least one event")
		return
	}
	if len(events) > maxBatchSize {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("batch size %d exceeds max %d", len(events), maxBatchSize))
		return
	}

	now := time.Now()
	jobID := uuid.New().String()
	queued := 0
	for _, ev := range events {
		if ev == nil || ev.GenEvent == nil {
			continue
		}
		if ev.ID == "" {
			ev.ID = uuid.New().String()
		}
		ev.ReceivedAt = now
		if h.eng.ProcessAsync(ev) {
			queued++
		}
	}

	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"job_id":   jobID,
		"total":    len(events),
		"queued":   queued,
		"rejected": len(events) - queued,
	})
}

// GET /v1/modules — list configured and active modules.
func (h *Handler) listModules(w http.ResponseWriter, r *http.Request) {
	cfg := h.loader.Config()
	p := h.eng.Pipeline()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"version": cfg.Version,
		"source":  p.Source().String(),
		"active":  p.Modules(),
		"modules": cfg.Modules,
	})
}

// POST /v1/config/reload — hot-reload the module chain from disk.
func (h *Handler) reloadConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.loader.Reload()
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, config.ErrReloadRejected) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reloaded":      true,
		"version":       cfg.Version,
		"modules_count": h.eng.Pipeline().Len(),
	})
}

// stage builds the pipeline for a reloaded config; a build error rejects it.
func (h *Handler) stage(cfg *config.Config) error {
	p, err := h.build(cfg)
	if err != nil {
		return err
	}
	h.stagedMu.Lock()
	h.staged = p
	h.stagedMu.Unlock()
	return nil
}

func (h *Handler) activate(cfg *config.Config) {
	h.stagedMu.Lock()
	p := h.staged
	h.staged = nil
	h.stagedMu.Unlock()
	if p == nil {
		return
	}
	h.eng.SwapPipeline(p)
	slog.Info("pipeline hot-reloaded", "version", cfg.Version, "modules", p.Modules())
}

// GET /healthz — always 200 (liveness probe).
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GET /readyz — 503 if event queue >80% full.
func (h *Handler) readyz(w http.ResponseWriter, r *http.Request) {
	util := h.eng.QueueUtilization()
	metrics.QueueUtilization.Set(util)
	if util > 0.8 {
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":            "overloaded",
			"queue_utilization": util,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":            "ready",
		"queue_utilization": util,
	})
}
