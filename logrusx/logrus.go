package logrusx

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type (
	options struct {
		l      *logrus.Logger
		level  *logrus.Level
		format string
		out    io.Writer
		hooks  []logrus.Hook
	}
	Option func(*options)
)

// ForceLevel overrides the level read from the LOG_LEVEL environment variable.
func ForceLevel(level logrus.Level) Option {
	return func(o *options) {
		o.level = &level
	}
}

// ForceFormat selects the output format, either "json" or "text".
func ForceFormat(format string) Option {
	return func(o *options) {
		o.format = format
	}
}

func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.out = w
	}
}

func WithHook(hook logrus.Hook) Option {
	return func(o *options) {
		o.hooks = append(o.hooks, hook)
	}
}

// UseLogger reuses an existing logrus logger instead of creating one.
func UseLogger(l *logrus.Logger) Option {
	return func(o *options) {
		o.l = l
	}
}

func newLogger(o *options) *logrus.Logger {
	l := o.l
	if l == nil {
		l = logrus.New()
	}

	if o.level != nil {
		l.SetLevel(*o.level)
	} else if lvl, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		l.SetLevel(lvl)
	}

	format := o.format
	if format == "" {
		format = os.Getenv("LOG_FORMAT")
	}
	switch format {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{DisableQuote: true})
	}

	if o.out != nil {
		l.SetOutput(o.out)
	}

	for _, h := range o.hooks {
		l.AddHook(h)
	}

	return l
}

// New creates a logger tagged with the service name and version.
func New(name string, version string, opts ...Option) *Logger {
	o := new(options)
	for _, f := range opts {
		f(o)
	}

	return &Logger{
		name:    name,
		version: version,
		Entry: newLogger(o).WithFields(logrus.Fields{
			"service_name": name, "service_version": version,
		}),
	}
}

// NewDiscard returns a logger that writes nowhere, mostly useful in tests.
func NewDiscard() *Logger {
	return New("", "", WithOutput(io.Discard))
}
