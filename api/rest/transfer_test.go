package rest_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kasuganosora/memorybox/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExport_EmptyIsNotFound(t *testing.T) {
	e := newEnv(t, 0)
	w := e.do(http.MethodGet, "/api/export?format=json", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "no data to export", decode(t, w)["error"])
}

func TestExport_Formats(t *testing.T) {
	e := newEnv(t, 0)
	createItem(t, e, "Keys", "Home")

	cases := []struct {
		format, contentType, ext, contains string
	}{
		{"json", "application/json", ".json", `"name": "Keys"`},
		{"csv", "text/csv", ".csv", `"Name","Category","Location","Notes","Date"`},
		{"txt", "text/plain", ".txt", "Item: Keys\nLocation: Kitchen"},
	}
	for _, tc := range cases {
		w := e.do(http.MethodGet, "/api/export?format="+tc.format, nil)
		require.Equal(t, http.StatusOK, w.Code, tc.format)
		assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), tc.contentType), tc.format)
		disp := w.Header().Get("Content-Disposition")
		assert.Contains(t, disp, "attachment")
		assert.Contains(t, disp, "memorybox_backup_"+time.Now().UTC().Format("2006-01-02")+tc.ext)
		assert.Contains(t, w.Body.String(), tc.contains)
	}

	w := e.do(http.MethodGet, "/api/export?format=xml", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImport_RoundTrip(t *testing.T) {
	src := newEnv(t, 0)
	createItem(t, src, "Keys", "Home")
	createItem(t, src, "Laptop", "Electronics")
	backup := src.do(http.MethodGet, "/api/export", nil)
	require.Equal(t, http.StatusOK, backup.Code)

	dst := newEnv(t, 0)
	createItem(t, dst, "Old", "Misc")
	req := httptest.NewRequest(http.MethodPost, "/api/import", bytes.NewReader(backup.Body.Bytes()))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	dst.r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, float64(2), decode(t, w)["imported"])

	assert.JSONEq(t,
		src.do(http.MethodGet, "/api/items", nil).Body.String(),
		dst.do(http.MethodGet, "/api/items", nil).Body.String())
}

func TestImport_Multipart(t *testing.T) {
	e := newEnv(t, 0)
	w := e.upload(t, "/api/import", []byte(`[{"id":"a","name":"Keys","category":"Home","image":"data:image/png;base64,AA==","createdAt":5}]`))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = e.do(http.MethodGet, "/api/items/a", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, string(model.CategoryHome), decode(t, w)["item"].(map[string]interface{})["category"])
}

func TestImport_RejectsAndKeepsData(t *testing.T) {
	e := newEnv(t, 0)
	createItem(t, e, "Keys", "Home")

	for _, body := range []string{`{"items":[]}`, `not json`, `[1,2]`} {
		req := httptest.NewRequest(http.MethodPost, "/api/import", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		e.r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
	w := e.do(http.MethodGet, "/api/items", nil)
	assert.Len(t, decode(t, w)["items"], 1)
}
