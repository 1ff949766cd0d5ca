package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()

	JSON(w, http.StatusCreated, map[string]int{"id": 1})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":1}`, w.Body.String())
}

func TestText(t *testing.T) {
	w := httptest.NewRecorder()

	Text(w, http.StatusOK, "ok")

	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "ok", w.Body.String())
}

func TestStatus(t *testing.T) {
	w := httptest.NewRecorder()

	Status(w, http.StatusConflict)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Zero(t, w.Body.Len())
}
