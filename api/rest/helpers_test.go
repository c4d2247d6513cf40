package rest_test

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kasuganosora/memorybox/api/rest"
	"github.com/kasuganosora/memorybox/audit"
	"github.com/kasuganosora/memorybox/enrich"
	"github.com/kasuganosora/memorybox/hook"
	"github.com/kasuganosora/memorybox/imaging"
	"github.com/kasuganosora/memorybox/inventory"
	"github.com/kasuganosora/memorybox/kv/local"
	"github.com/kasuganosora/memorybox/session"
	"github.com/kasuganosora/memorybox/settings"
	"github.com/kasuganosora/memorybox/storage"
	"github.com/kasuganosora/memorybox/testutil"
	"github.com/kasuganosora/memorybox/transfer"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type env struct {
	r     *gin.Engine
	slots *local.LocalStore
	keys  storage.Keys
	audit *audit.Service
}

func newEnv(t *testing.T, quota int64) *env {
	t.Helper()
	logger := testutil.SetupTestLogger(t)
	slots := local.NewStore(local.Config{QuotaBytes: quota})
	keys := storage.NewKeys("")
	hooks := hook.NewCenter()

	db := testutil.SetupTestDB(t)
	auditSvc := audit.New(db, audit.Config{FlushInterval: time.Hour}, logger)
	auditSvc.Attach(hooks)
	t.Cleanup(auditSvc.Stop)

	store := inventory.NewSlotStore(slots, keys.Items, logger)
	svc := inventory.NewService(store, hooks, logger)
	flags := session.NewFlags(slots, keys.Intro, keys.SearchQuery)

	r := gin.New()
	rest.Register(r, rest.Handlers{
		Items:    rest.NewItemHandler(svc, flags, enrich.NewSimulator(rand.New(rand.NewSource(1))), logger),
		Settings: rest.NewSettingsHandler(settings.NewStore(slots, keys.Settings, logger), flags, logger),
		Images:   rest.NewImageHandler(imaging.New(imaging.DefaultMaxWidth, imaging.DefaultQuality), logger),
		Transfer: rest.NewTransferHandler(transfer.NewImporter(store, hooks, logger), time.UTC, logger),
		Activity: rest.NewActivityHandler(auditSvc, logger),
	})
	return &env{r: r, slots: slots, keys: keys, audit: auditSvc}
}

func (e *env) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var rd *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.r.ServeHTTP(w, req)
	return w
}

func (e *env) upload(t *testing.T, path string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mp := multipart.NewWriter(&buf)
	fw, err := mp.CreateFormFile("file", "upload.bin")
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mp.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mp.FormDataContentType())
	w := httptest.NewRecorder()
	e.r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func createItem(t *testing.T, e *env, name, category string) map[string]interface{} {
	t.Helper()
	w := e.do(http.MethodPost, "/api/items", map[string]interface{}{
		"name":     name,
		"location": "Kitchen",
		"category": category,
		"image":    testutil.TinyImage,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode(t, w)["item"].(map[string]interface{})
}
