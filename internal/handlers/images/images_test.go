package images

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	myErr "vehiql-main/internal/types/errors"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeStore struct {
	files map[string]string
	err   error
}

func (f *fakeStore) Upload(_ context.Context, _ string, _ io.Reader) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeStore) Open(_ context.Context, id string) (io.ReadCloser, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	data, ok := f.files[id]
	if !ok {
		return nil, "", myErr.ErrNotFound
	}
	return io.NopCloser(strings.NewReader(data)), id + ".png", nil
}

func (f *fakeStore) Delete(_ context.Context, _ string) error {
	return nil
}

func get(h *ImagesHandler, id string) *httptest.ResponseRecorder {
	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/images/"+id, nil), map[string]string{"id": id})
	w := httptest.NewRecorder()
	h.Get(w, req)
	return w
}

func TestImagesHandler_Get(t *testing.T) {
	store := &fakeStore{files: map[string]string{"abc": "png-bytes"}}
	h := NewImagesHandler(zap.NewNop().Sugar(), store)

	w := get(h, "abc")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "png-bytes", w.Body.String())

	w = get(h, "missing")
	assert.Equal(t, http.StatusNotFound, w.Code)

	store.err = myErr.ErrImageStore
	w = get(h, "abc")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
