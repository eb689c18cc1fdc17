// Package search debounces search-as-you-type queries against a Source.
package search

import (
	"context"
	"errors"
	"log/slog"
	"time"

	dErrors "formgate/pkg/domain-errors"
	"formgate/pkg/platform/debounce"
	"formgate/pkg/platform/sentinel"
	"formgate/pkg/platform/strings"
)

//go:generate mockgen -source=session.go -destination=mocks/mocks.go -package=mocks Source

const (
	DefaultDelay     = 300 * time.Millisecond
	DefaultMinLength = 2
)

// Result is one match returned by a Source.
type Result struct {
	ID    string
	Label string
}

// Source answers search terms, typically a remote lookup.
type Source interface {
	Search(ctx context.Context, term string) ([]Result, error)
}

// Session owns the debounce state for one search box. Close it when the box
// goes away.
type Session struct {
	source    Source
	minLength int
	delay     time.Duration
	logger    *slog.Logger
	deferred  *debounce.Deferred[string, []Result]
}

type Option func(*Session)

func WithDelay(d time.Duration) Option {
	return func(s *Session) {
		s.delay = d
	}
}

// WithMinLength sets the shortest term, in characters, sent to the source.
func WithMinLength(n int) Option {
	return func(s *Session) {
		s.minLength = n
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

func New(source Source, opts ...Option) (*Session, error) {
	if source == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "search source is required")
	}
	s := &Session{
		source:    source,
		minLength: DefaultMinLength,
		delay:     DefaultDelay,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.delay < 0 || s.minLength < 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "search delay and min length must not be negative")
	}
	s.deferred = debounce.NewDeferred(s.delay, s.search)
	return s, nil
}

// Query waits for the debounced search of term. Terms shorter than the
// minimum length return no results, and drop any pending query, without
// reaching the source. A query superseded by a later one returns
// sentinel.ErrCancelled.
func (s *Session) Query(ctx context.Context, term string) ([]Result, error) {
	term = strings.CollapseSpace(term)
	if strings.Len(term) < s.minLength {
		s.deferred.Cancel()
		return nil, nil
	}
	return s.deferred.Call(ctx, term)
}

// Close cancels any pending query. Later queries return sentinel.ErrDisposed.
func (s *Session) Close() {
	s.deferred.Close()
}

func (s *Session) search(ctx context.Context, term string) ([]Result, error) {
	results, err := s.source.Search(ctx, term)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		s.logger.WarnContext(ctx, "search source failed", "error", err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "search failed")
	}
	s.logger.DebugContext(ctx, "search completed", "results", len(results))
	return results, nil
}

// IsCancelled reports whether err means the query was superseded or dropped.
func IsCancelled(err error) bool {
	return errors.Is(err, sentinel.ErrCancelled) || errors.Is(err, sentinel.ErrDisposed)
}
