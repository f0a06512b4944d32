package logrusx

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/clinia/arangoschema/errorx"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

func newJSONLogger(t *testing.T) (*Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	l := New("schema", "test", ForceFormat("json"), ForceLevel(logrus.DebugLevel), WithOutput(&buf))
	return l, &buf
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew(t *testing.T) {
	t.Run("should tag entries with the service", func(t *testing.T) {
		l, buf := newJSONLogger(t)
		l.Infof("hello %s", "world")

		entry := decode(t, buf)
		assert.Equal(t, "hello world", entry["msg"])
		assert.Equal(t, "schema", entry["service_name"])
		assert.Equal(t, "test", entry["service_version"])
		assert.Equal(t, "schema", l.Name())
	})

	t.Run("should respect the forced level", func(t *testing.T) {
		var buf bytes.Buffer
		l := New("schema", "test", ForceLevel(logrus.WarnLevel), WithOutput(&buf))
		l.Infof("hidden")
		assert.Empty(t, buf.String())
	})
}

func TestWithAttributes(t *testing.T) {
	l, buf := newJSONLogger(t)
	l.WithAttributes(attribute.String("command.name", "create")).Debugf("routed")

	entry := decode(t, buf)
	assert.Equal(t, "create", entry["command__name"])
}

func TestWithSpanStartOptions(t *testing.T) {
	l, buf := newJSONLogger(t)
	l.WithSpanStartOptions(
		trace.WithAttributes(attribute.String("collection", "users"), attribute.Int("commands", 2)),
		trace.WithSpanKind(trace.SpanKindInternal),
	).Infof("build")

	entry := decode(t, buf)
	assert.Equal(t, "users", entry["collection"])
	assert.Equal(t, float64(2), entry["commands"])

	buf.Reset()
	l.WithSpanStartOptions().Infof("no attributes")
	assert.NotContains(t, decode(t, buf), "collection")
}

func TestCliniaErrorCtx(t *testing.T) {
	t.Run("should return error when no details", func(t *testing.T) {
		err := errorx.InvalidArgumentErrorf("invalid content")
		assert.Equal(t, map[string]interface{}{"message": "[INVALID_ARGUMENT] invalid content"}, cliniaErrorCtx(err))
	})

	t.Run("should return error with nested details", func(t *testing.T) {
		nested := errorx.InvalidArgumentErrorf("invalid field 'bar'").
			WithDetails(errorx.InvalidArgumentErrorf("missing field 'xyz'"))
		err := errorx.InvalidArgumentErrorf("invalid content").
			WithDetails(errorx.AlreadyExistsErrorf("field 'foo' already exists"), nested)

		assert.Equal(t, map[string]interface{}{
			"message": "[INVALID_ARGUMENT] invalid content",
			"details": []map[string]interface{}{
				{"message": "[ALREADY_EXISTS] field 'foo' already exists"},
				{
					"message": "[INVALID_ARGUMENT] invalid field 'bar'",
					"details": []map[string]interface{}{
						{"message": "[INVALID_ARGUMENT] missing field 'xyz'"},
					},
				},
			},
		}, cliniaErrorCtx(err))
	})

	t.Run("should log plain errors by message", func(t *testing.T) {
		l, buf := newJSONLogger(t)
		l.WithError(assert.AnError).Errorf("failed")

		entry := decode(t, buf)
		assert.Equal(t, map[string]interface{}{"message": assert.AnError.Error()}, entry["error"])
	})
}
