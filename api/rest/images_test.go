package rest_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/kasuganosora/memorybox/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImages_UploadDownsizes(t *testing.T) {
	e := newEnv(t, 0)
	w := e.upload(t, "/api/images", testutil.PNG(t, 1000, 500))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.True(t, strings.HasPrefix(body["image"].(string), "data:image/jpeg;base64,"))
	assert.Equal(t, float64(800), body["width"])
	assert.Equal(t, float64(400), body["height"])
}

func TestImages_UploadRejectsGarbage(t *testing.T) {
	e := newEnv(t, 0)
	w := e.upload(t, "/api/images", []byte("definitely not an image"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImages_UploadRequiresFile(t *testing.T) {
	e := newEnv(t, 0)
	w := e.do(http.MethodPost, "/api/images", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImages_UploadRejectsHugeRaster(t *testing.T) {
	e := newEnv(t, 0)
	w := e.upload(t, "/api/images", testutil.PNGHeader(16000, 16000))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestImages_NormalizedUploadIsAccepted(t *testing.T) {
	e := newEnv(t, 0)
	w := e.upload(t, "/api/images", testutil.PNG(t, 1200, 300))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	uri := decode(t, w)["image"].(string)

	w = e.do(http.MethodPost, "/api/items", map[string]interface{}{"name": "Bike", "image": uri})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}
