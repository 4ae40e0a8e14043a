package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/carlosfcruz/DevOpsProject/internal/core/cache"
	"github.com/carlosfcruz/DevOpsProject/internal/core/config"
	"github.com/carlosfcruz/DevOpsProject/internal/core/database"
	"github.com/carlosfcruz/DevOpsProject/internal/core/health"
	"github.com/carlosfcruz/DevOpsProject/internal/feature/user"
)

type testEnv struct {
	engine *gin.Engine
	mr     *miniredis.Miniredis
	db     *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	dbo := database.Opts{
		Driver:       "sqlite",
		DSN:          "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared",
		MaxOpenConns: 4,
		MaxIdleConns: 2,
		LogLevel:     "silent",
	}
	db, err := database.NewGorm(dbo)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&user.UserModel{}))

	ch := cache.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = ch.Close() })

	cfg := &config.Config{
		App: config.App{Name: "platform", Env: "test", BuildSHA: "abc123"},
	}
	checker := health.NewChecker(dbo, mr.Addr(), "", 0, zap.NewNop())

	return &testEnv{
		engine: NewAPIEngine(zap.NewNop(), cfg, db, checker, ch),
		mr:     mr,
		db:     db,
	}
}

func (e *testEnv) do(t *testing.T, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	e.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func TestRoot(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	decode(t, w, &body)
	assert.Equal(t, "platform", body["app_name"])
	assert.Equal(t, "test", body["environment"])
	assert.Equal(t, "running", body["status"])
}

func TestHealthAllOK(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	decode(t, w, &body)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "ok", body["database"])
	assert.Equal(t, "ok", body["cache"])
	_, err := time.Parse(time.RFC3339Nano, body["timestamp"])
	assert.NoError(t, err)
}

// 依赖挂了 /health 本身也不报错：永远 200，降级写在 body 里
func TestHealthDegradedStillOK(t *testing.T) {
	env := newTestEnv(t)
	env.mr.Close()

	w := env.do(t, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	decode(t, w, &body)
	assert.Equal(t, "degraded", body["status"])
	assert.Equal(t, "ok", body["database"])
	assert.Equal(t, "error", body["cache"])
}

type userBody struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func TestCreateAndListUsers(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/users?name="+url.QueryEscape("João"))
	require.Equal(t, http.StatusOK, w.Code)
	var created userBody
	decode(t, w, &created)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "João", created.Name)

	w = env.do(t, http.MethodPost, "/users?name=Maria")
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/users")
	require.Equal(t, http.StatusOK, w.Code)
	var list []userBody
	decode(t, w, &list)
	require.Len(t, list, 2)
	assert.Equal(t, "João", list[0].Name)
	assert.Equal(t, "Maria", list[1].Name)
	assert.Greater(t, list[1].ID, list[0].ID)
}

func TestCreateUserFromForm(t *testing.T) {
	env := newTestEnv(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader("name=Ana"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	env.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var created userBody
	decode(t, w, &created)
	assert.Equal(t, "Ana", created.Name)
}

func TestCreateUserEmptyName(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/users?name=")
	require.Equal(t, http.StatusOK, w.Code)
	var created userBody
	decode(t, w, &created)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "", created.Name)
}

func TestCreateUserMissingName(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/users")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListUsersEmpty(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/users")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

// 表没了（等价于库不可用）：列表端点报 5xx，不吞错
func TestListUsersStoreFailure(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.db.Migrator().DropTable(&user.UserModel{}))

	w := env.do(t, http.MethodGet, "/users")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t)

	for i := 0; i < 2; i++ { // 第二次走缓存，负载一致
		w := env.do(t, http.MethodGet, "/version")
		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]string
		decode(t, w, &body)
		assert.Equal(t, "1.1.0", body["version"])
		assert.Equal(t, "abc123", body["commit"])
		assert.Equal(t, "test", body["environment"])
	}
}

func TestCrash(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/crash")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestMetricsExposed(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodGet, "/")
	w := env.do(t, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}
