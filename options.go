package diskage

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Option configures an Estimator.
type Option func(*config)

type config struct {
	log    *zap.Logger
	onWarn func(Warning)
}

func defaultConfig() config {
	return config{log: defaultLogger()}
}

// WithLogger routes clamp warnings to the given logger instead of the
// default stderr logger. A nil logger silences the log channel.
func WithLogger(log *zap.Logger) Option {
	return func(cfg *config) {
		if log == nil {
			log = zap.NewNop()
		}
		cfg.log = log
	}
}

// WithWarningFunc registers a callback invoked once per clamped input, in
// addition to the log record. The callback receives the original value and
// the bound it was clamped to.
func WithWarningFunc(fn func(Warning)) Option {
	return func(cfg *config) {
		cfg.onWarn = fn
	}
}

func applyOptions(opts ...Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

var defaultLogger = sync.OnceValue(func() *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.Lock(os.Stderr),
		zapcore.WarnLevel,
	)
	return zap.New(core)
})
