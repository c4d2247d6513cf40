package rest_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_Defaults(t *testing.T) {
	e := newEnv(t, 0)
	w := e.do(http.MethodGet, "/api/settings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t,
		`{"settings":{"pushAlerts":true,"soundEffects":true,"sensitivity":"Medium"}}`,
		w.Body.String())
}

func TestSettings_PutPartialAndUnknownKeys(t *testing.T) {
	e := newEnv(t, 0)
	w := e.do(http.MethodPut, "/api/settings", map[string]interface{}{
		"soundEffects": false,
		"theme":        "dark",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = e.do(http.MethodGet, "/api/settings", nil)
	assert.JSONEq(t,
		`{"settings":{"pushAlerts":true,"soundEffects":false,"sensitivity":"Medium","theme":"dark"}}`,
		w.Body.String())
}

func TestSettings_PutInvalid(t *testing.T) {
	e := newEnv(t, 0)
	w := e.do(http.MethodPut, "/api/settings", map[string]interface{}{"sensitivity": "Extreme"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(http.MethodPut, "/api/settings", map[string]interface{}{"pushAlerts": "yes"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(http.MethodGet, "/api/settings", nil)
	assert.Equal(t, "Medium", decode(t, w)["settings"].(map[string]interface{})["sensitivity"])
}

func TestSession_FirstRun(t *testing.T) {
	e := newEnv(t, 0)
	w := e.do(http.MethodGet, "/api/session", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"firstTime":true,"lastQuery":""}`, w.Body.String())

	w = e.do(http.MethodPost, "/api/session/visited", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = e.do(http.MethodGet, "/api/session", nil)
	assert.Equal(t, false, decode(t, w)["firstTime"])
}
