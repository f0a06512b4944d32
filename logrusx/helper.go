package logrusx

import (
	"context"

	"github.com/clinia/arangoschema/errorx"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type Logger struct {
	*logrus.Entry
	name    string
	version string
}

func (l *Logger) Logrus() *logrus.Logger {
	return l.Entry.Logger
}

func (l *Logger) Name() string {
	return l.name
}

func (l *Logger) WithContext(ctx context.Context) *Logger {
	ll := *l
	ll.Entry = l.Entry.WithContext(ctx)
	return &ll
}

func (l *Logger) Logf(level logrus.Level, format string, args ...interface{}) {
	// Add traces information if available in context
	if l.Context != nil {
		spanCtx := trace.SpanContextFromContext(l.Context)
		if spanCtx.IsValid() {
			if spanCtx.HasTraceID() {
				l = l.WithField("TraceID", spanCtx.TraceID().String())
			}
			if spanCtx.HasSpanID() {
				l = l.WithField("SpanID", spanCtx.SpanID().String())
			}
		}
	}
	l.Entry.Logf(level, format, args...)
}

func (l *Logger) Tracef(format string, args ...interface{}) {
	l.Logf(logrus.TraceLevel, format, args...)
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.Logf(logrus.DebugLevel, format, args...)
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.Logf(logrus.InfoLevel, format, args...)
}

func (l *Logger) Printf(format string, args ...interface{}) {
	l.Infof(format, args...)
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.Logf(logrus.WarnLevel, format, args...)
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Logf(logrus.ErrorLevel, format, args...)
}

func (l *Logger) WithFields(f logrus.Fields) *Logger {
	ll := *l
	ll.Entry = l.Entry.WithFields(f)
	return &ll
}

func (l *Logger) WithField(key string, value interface{}) *Logger {
	ll := *l
	ll.Entry = l.Entry.WithField(key, value)
	return &ll
}

// WithAttributes converts otel attributes into log fields.
func (l *Logger) WithAttributes(kvs ...attribute.KeyValue) *Logger {
	if len(kvs) == 0 {
		return l
	}
	return l.WithFields(NewLogFields(kvs...))
}

// WithSpanStartOptions adds the attributes of the span start options as log fields.
func (l *Logger) WithSpanStartOptions(opts ...trace.SpanStartOption) *Logger {
	cfg := trace.NewSpanStartConfig(opts...)
	return l.WithAttributes(cfg.Attributes()...)
}

func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}

	if cErr, ok := errorx.IsCliniaError(err); ok {
		return l.WithField("error", cliniaErrorCtx(*cErr))
	}

	return l.WithField("error", map[string]interface{}{"message": err.Error()})
}

func cliniaErrorCtx(err errorx.CliniaError) map[string]interface{} {
	ctx := map[string]interface{}{"message": err.Error()}
	if len(err.Details) == 0 {
		return ctx
	}

	details := make([]map[string]interface{}, 0, len(err.Details))
	for _, d := range err.Details {
		details = append(details, cliniaErrorCtx(d))
	}
	ctx["details"] = details

	return ctx
}
