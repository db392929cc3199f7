package lexicon

import (
	"io"
	"log/slog"
)

// Option configures how a lexicon is read.
type Option func(*options)

type options struct {
	logger       *slog.Logger
	strictHeader bool
	maxLineSize  int
}

const defaultMaxLineSize = 1024 * 1024

func newOptions(opts []Option) options {
	o := options{
		maxLineSize: defaultMaxLineSize,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}

// WithLogger sets the logger used while loading and by queries on the
// resulting lexicon. Without it, nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStrictHeader makes the loader fail when the header line does not
// state the actual number of words and dimensions.
func WithStrictHeader() Option {
	return func(o *options) {
		o.strictHeader = true
	}
}

// WithMaxLineSize sets the longest line, in bytes, the text loader
// accepts.
func WithMaxLineSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxLineSize = n
		}
	}
}
