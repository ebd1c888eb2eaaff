package record

import (
	"fmt"
	"sync"
)

// Event is the per-event product store handed to every module. It lives for
// one processing call on a single stream.
type Event struct {
	ID       string
	Run      uint64
	Lumi     uint64
	Number   uint64
	StreamID int
	Process  string

	mu       sync.RWMutex
	products map[productKey]*entry
	outputs  []Output
}

type productKey struct {
	label    string
	instance string
}

type entry struct {
	process string
	value   any
}

// Output is a product put during processing.
type Output struct {
	Tag     InputTag `json:"tag"`
	Product any      `json:"product"`
}

// NewEvent creates an empty event bound to a stream.
func NewEvent(id string, streamID int, process string) *Event {
	return &Event{
		ID:       id,
		StreamID: streamID,
		Process:  process,
		products: make(map[productKey]*entry),
	}
}

// Seed stores an input product under tag without recording it as an output.
func (e *Event) Seed(tag InputTag, product any) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store(tag.Label, tag.Instance, tag.Process, product)
}

// Put publishes a product from the module labelled label.
func (e *Event) Put(label, instance string, product any) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.store(label, instance, e.Process, product); err != nil {
		return err
	}
	e.outputs = append(e.outputs, Output{
		Tag:     InputTag{Label: label, Instance: instance, Process: e.Process},
		Product: product,
	})
	return nil
}

func (e *Event) store(label, instance, process string, product any) error {
	k := productKey{label: label, instance: instance}
	if _, exists := e.products[k]; exists {
		return fmt.Errorf("put %s: %w", InputTag{Label: label, Instance: instance}, ErrDuplicatePut)
	}
	e.products[k] = &entry{process: process, value: product}
	return nil
}

// Outputs returns the products put during processing, in put order.
func (e *Event) Outputs() []Output {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]Output, len(e.outputs))
	copy(out, e.outputs)
	return out
}

func (e *Event) lookup(tag InputTag) (any, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	en, ok := e.products[productKey{label: tag.Label, instance: tag.Instance}]
	if !ok {
		return nil, false
	}
	if tag.Process != "" && tag.Process != en.process {
		return nil, false
	}
	return en.value, true
}

// Get retrieves the product under tag as a T.
func Get[T any](e *Event, tag InputTag) (T, error) {
	var zero T
	v, ok := e.lookup(tag)
	if !ok {
		return zero, &RetrievalError{Tag: tag, Err: ErrProductNotFound}
	}
	t, ok := v.(T)
	if !ok {
		return zero, &RetrievalError{Tag: tag, Err: fmt.Errorf("%w: have %T", ErrProductType, v)}
	}
	return t, nil
}
