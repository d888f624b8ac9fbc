package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newCaptureLogger() (*zap.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	encoderConfig := zapcore.EncoderConfig{
		LevelKey:    "level",
		MessageKey:  "msg",
		EncodeLevel: zapcore.LowercaseLevelEncoder,
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(&buf),
		zapcore.DebugLevel,
	)
	return zap.New(core), &buf
}

func TestFromContext(t *testing.T) {
	logger := zap.NewNop()
	ctx := WithContext(context.Background(), logger)

	assert.Equal(t, logger, FromContext(ctx))
	assert.NotNil(t, FromContext(context.Background()))
}

func TestWithRequestID(t *testing.T) {
	logger, buf := newCaptureLogger()

	ctx, enriched := WithRequestID(context.Background(), logger, "req-123")

	assert.Equal(t, "req-123", GetRequestID(ctx))

	enriched.Info("hello")
	var output map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	assert.Equal(t, "req-123", output["request_id"])
}

func TestContextIDHelpers(t *testing.T) {
	logger := zap.NewNop()

	ctx, _ := WithUserID(context.Background(), logger, "user-1")
	ctx, _ = WithRetailerID(ctx, logger, "retailer-1")

	assert.Equal(t, "user-1", GetUserID(ctx))
	assert.Equal(t, "retailer-1", GetRetailerID(ctx))
	assert.Empty(t, GetRequestID(ctx))
}

func TestContextLoggerEnrichment(t *testing.T) {
	logger, buf := newCaptureLogger()

	ctx := WithContext(context.Background(), logger)
	ctx = context.WithValue(ctx, RequestIDKey, "req-9")
	ctx = context.WithValue(ctx, RetailerIDKey, "ret-7")

	L(ctx).Info("resolved catalogs", zap.Int("count", 3))

	var output map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	assert.Equal(t, "resolved catalogs", output["msg"])
	assert.Equal(t, "req-9", output["request_id"])
	assert.Equal(t, "ret-7", output["retailer_id"])
	assert.Equal(t, float64(3), output["count"])
}

func TestContextLoggerWithoutLogger(t *testing.T) {
	// Must not panic when the context carries no logger.
	L(context.Background()).Info("noop")
}
