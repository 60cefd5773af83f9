package retry

import (
	"context"
	"errors"
	"time"
)

type PermanentError struct {
	err error
}

func (e PermanentError) Error() string {
	return e.err.Error()
}

func (e PermanentError) Unwrap() error {
	return e.err
}

// NewPermanentError marks err as not worth retrying.
func NewPermanentError(err error) error {
	return PermanentError{err: err}
}

type DelayFunc func(attempt int, err error) time.Duration

type Option func(*Options)

type Options struct {
	ctx       context.Context
	retries   int
	delayFunc DelayFunc
}

// WithRetries sets how many times a failed call is retried. Zero means a single attempt.
func WithRetries(retries int) Option {
	return func(o *Options) {
		o.retries = max(retries, 0)
	}
}

func WithDelay(delay time.Duration) Option {
	return func(o *Options) {
		o.delayFunc = func(int, error) time.Duration {
			return delay
		}
	}
}

func WithDelayFunc(fn DelayFunc) Option {
	return func(o *Options) {
		o.delayFunc = fn
	}
}

// WithContext stops waiting between attempts when ctx is done.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		o.ctx = ctx
	}
}

func Do(f func() error, options ...Option) error {
	_, err := Do2(func() (struct{}, error) {
		return struct{}{}, f()
	}, options...)
	return err
}

func Do2[T any](f func() (T, error), options ...Option) (T, error) {
	opts := &Options{
		ctx:     context.Background(),
		retries: 3,
		delayFunc: func(int, error) time.Duration {
			return time.Second
		},
	}
	for _, o := range options {
		o(opts)
	}

	var zero T
	for attempt := 0; ; attempt++ {
		v, err := f()
		if err == nil {
			return v, nil
		}

		var perr PermanentError
		if errors.As(err, &perr) {
			return zero, perr.Unwrap()
		}

		if attempt >= opts.retries {
			return zero, err
		}

		timer := time.NewTimer(opts.delayFunc(attempt, err))
		select {
		case <-opts.ctx.Done():
			timer.Stop()
			return zero, errors.Join(err, opts.ctx.Err())
		case <-timer.C:
		}
	}
}
