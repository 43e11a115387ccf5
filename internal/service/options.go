package service

import (
	"log/slog"
	"time"
)

// Option configures a service constructor.
type Option func(*options)

type options struct {
	now      func() time.Time
	loc      *time.Location
	logger   *slog.Logger
	observer UseCaseObserver
}

// WithClock overrides time.Now. Tests pass a fixed clock.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLocation sets the zone calendar dates are interpreted in.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.loc = loc
		}
	}
}

// WithLogger sets the logger used for best-effort side effects.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithObserver attaches a use-case observer.
func WithObserver(obs UseCaseObserver) Option {
	return func(o *options) {
		o.observer = useCaseObserverOrNoop([]UseCaseObserver{obs})
	}
}

func resolveOptions(opts []Option) options {
	o := options{
		now:      time.Now,
		loc:      time.Local,
		logger:   slog.New(slog.DiscardHandler),
		observer: NoopUseCaseObserver{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// clock returns the current time in the configured zone.
func (o options) clock() time.Time {
	return o.now().In(o.loc)
}
