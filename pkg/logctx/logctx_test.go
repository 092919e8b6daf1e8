package logctx

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFromCtx_PrefersStoredLogger(t *testing.T) {
	base := zap.NewNop().Sugar()
	scoped := zap.NewNop().Sugar().With("trace_id", "t-1")

	ctx := WithLogger(context.Background(), scoped)
	require.Same(t, scoped, FromCtx(ctx, base))
}

func TestFromCtx_FallsBackToBase(t *testing.T) {
	base := zap.NewNop().Sugar()
	require.Same(t, base, FromCtx(context.Background(), base))
	require.Same(t, base, FromCtx(nil, base)) //nolint:staticcheck
}

func TestTraceID_RoundTrip(t *testing.T) {
	ctx := WithTraceID(context.Background(), "abc")
	require.Equal(t, "abc", TraceID(ctx))
	require.Empty(t, TraceID(context.Background()))
}

func TestFromGin_UsesGinKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)
	base := zap.NewNop().Sugar()
	scoped := base.With("k", "v")

	require.Same(t, base, FromGin(c, base))
	c.Set(GinLoggerKey, scoped)
	require.Same(t, scoped, FromGin(c, base))
	require.Same(t, base, FromGin(nil, base))
}
