package agent

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"resto/internal/realtime/event"

	"github.com/rs/zerolog/log"
)

// Fetcher returns the full filtered list an agent mirrors.
type Fetcher[T any] func(ctx context.Context) ([]T, error)

type Option func(*options)

type options struct {
	poll    time.Duration
	topics  []event.Topic
	refetch func(Event) bool
}

// WithPollInterval re-fetches on a timer as well, which repairs views after a missed broadcast.
func WithPollInterval(interval time.Duration) Option {
	return func(o *options) { o.poll = interval }
}

// WithTopics subscribes to extra topics. Their events reach observers but do not re-fetch
// unless the refetch filter says so.
func WithTopics(topics ...event.Topic) Option {
	return func(o *options) { o.topics = append(o.topics, topics...) }
}

// WithRefetchFilter decides which events trigger a re-fetch.
func WithRefetchFilter(filter func(Event) bool) Option {
	return func(o *options) { o.refetch = filter }
}

// Agent mirrors one server-side list. Every relevant event invalidates the local copy and
// a burst of events collapses into a single re-fetch.
type Agent[T any] struct {
	name  string
	topic event.Topic
	fetch Fetcher[T]
	opts  options

	mu        sync.RWMutex
	items     []T
	fetchedAt time.Time
	onChange  []func([]T)
	observers []func(Event)

	trigger chan struct{}
	fetches sync.WaitGroup
}

func New[T any](name string, topic event.Topic, fetch Fetcher[T], opts ...Option) *Agent[T] {
	agent := &Agent[T]{
		name:    name,
		topic:   topic,
		fetch:   fetch,
		trigger: make(chan struct{}, 1),
	}

	for _, opt := range opts {
		opt(&agent.opts)
	}

	if agent.opts.refetch == nil {
		agent.opts.refetch = func(ev Event) bool { return ev.Topic == topic }
	}

	return agent
}

// OnChange registers fn for every new snapshot. Register before Run.
func (a *Agent[T]) OnChange(fn func([]T)) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.onChange = append(a.onChange, fn)
}

// Observe registers fn for every event received, before any re-fetch. Register before Run.
func (a *Agent[T]) Observe(fn func(Event)) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.observers = append(a.observers, fn)
}

// Snapshot returns a copy of the latest list.
func (a *Agent[T]) Snapshot() []T {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return slices.Clone(a.items)
}

// FetchedAt is the time of the last successful fetch.
func (a *Agent[T]) FetchedAt() time.Time {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.fetchedAt
}

// Refresh asks for a re-fetch. Requests made while one is pending are merged.
func (a *Agent[T]) Refresh() {
	select {
	case a.trigger <- struct{}{}:
	default:
	}
}

// Run subscribes, loads the initial list and follows the stream until ctx ends or the
// stream closes. Subscribing first means no change between the load and the subscription
// goes unnoticed.
func (a *Agent[T]) Run(ctx context.Context, stream Stream) error {
	for _, topic := range append([]event.Topic{a.topic}, a.opts.topics...) {
		if err := stream.Subscribe(ctx, topic); err != nil {
			return fmt.Errorf("%s: failed to subscribe to %s: %w", a.name, topic, err)
		}
	}

	a.reload(ctx)

	ctx, cancel := context.WithCancel(ctx)

	a.fetches.Add(1)

	go a.refetchLoop(ctx)

	// The refetch loop only exits on cancel, so cancel must come first.
	defer func() {
		cancel()
		a.fetches.Wait()
	}()

	events := stream.Events()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return fmt.Errorf("%s: %w", a.name, ErrStreamClosed)
			}

			a.dispatch(ev)
		}
	}
}

func (a *Agent[T]) dispatch(ev Event) {
	a.mu.RLock()
	observers := slices.Clone(a.observers)
	a.mu.RUnlock()

	for _, observe := range observers {
		observe(ev)
	}

	if a.opts.refetch(ev) {
		a.Refresh()
	}
}

func (a *Agent[T]) refetchLoop(ctx context.Context) {
	defer a.fetches.Done()

	var tick <-chan time.Time

	if a.opts.poll > 0 {
		ticker := time.NewTicker(a.opts.poll)
		defer ticker.Stop()

		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-a.trigger:
			a.reload(ctx)
		case <-tick:
			a.reload(ctx)
		}
	}
}

// reload keeps the previous snapshot when the fetch fails.
func (a *Agent[T]) reload(ctx context.Context) {
	items, err := a.fetch(ctx)
	if err != nil {
		if ctx.Err() == nil {
			log.Warn().Err(err).Str("agent", a.name).Msg("re-fetch failed, keeping previous snapshot")
		}

		return
	}

	a.mu.Lock()
	a.items = items
	a.fetchedAt = time.Now()
	listeners := slices.Clone(a.onChange)
	a.mu.Unlock()

	for _, fn := range listeners {
		fn(slices.Clone(items))
	}
}
