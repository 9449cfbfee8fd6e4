package viewmodel

import (
	"go.uber.org/zap"

	"github.com/tinytelemetry/chuckle/internal/model"
)

type options struct {
	logger    *zap.Logger
	jokeCount int
}

func defaultOptions() options {
	return options{logger: zap.NewNop(), jokeCount: model.DefaultJokeCount}
}

// Option configures a view model.
type Option func(*options)

// WithLogger sets the view model logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithJokeCount sets how many jokes a category fetch cycle requests.
func WithJokeCount(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.jokeCount = n
		}
	}
}
