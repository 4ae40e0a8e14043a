package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/carlosfcruz/DevOpsProject/internal/core/cache"
	"github.com/carlosfcruz/DevOpsProject/internal/core/config"
)

func newSystemHandler(t *testing.T) (*SystemHandler, *miniredis.Miniredis) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	ch := cache.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = ch.Close() })

	cfg := &config.Config{App: config.App{Name: "platform", Env: "test", BuildSHA: "abc123"}}
	return NewSystemHandler(cfg, ch, zap.NewNop()), mr
}

func testContext(t *testing.T, target string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

func TestSlowWaitsThenResponds(t *testing.T) {
	h, _ := newSystemHandler(t)
	h.Delay = 10 * time.Millisecond

	c, w := testContext(t, "/slow")
	start := time.Now()
	h.Slow(c)

	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "That took a while!", body["message"])
}

func TestSlowHonorsCancellation(t *testing.T) {
	h, _ := newSystemHandler(t)
	h.Delay = time.Minute

	c, w := testContext(t, "/slow")
	ctx, cancel := context.WithCancel(c.Request.Context())
	cancel()
	c.Request = c.Request.WithContext(ctx)

	h.Slow(c)
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
}

// redis 没了 /version 也得正常：GetOrLoad 退化为直接回源
func TestVersionWithRedisDown(t *testing.T) {
	h, mr := newSystemHandler(t)
	mr.Close()

	c, w := testContext(t, "/version")
	h.Version(c)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, Version, body["version"])
	assert.Equal(t, "abc123", body["commit"])
	assert.Equal(t, "test", body["environment"])
}

func TestCrashReturns500(t *testing.T) {
	h, _ := newSystemHandler(t)

	c, w := testContext(t, "/crash")
	h.Crash(c)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
