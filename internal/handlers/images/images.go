package images

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path"

	"vehiql-main/internal/images"
	myErr "vehiql-main/internal/types/errors"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type ImagesHandler struct {
	Logger *zap.SugaredLogger
	Store  images.Store
}

func NewImagesHandler(l *zap.SugaredLogger, s images.Store) *ImagesHandler {
	return &ImagesHandler{
		Logger: l,
		Store:  s,
	}
}

// Get handles GET /api/images/{id}
func (h *ImagesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	rc, name, err := h.Store.Open(r.Context(), id)
	if err != nil {
		if errors.Is(err, myErr.ErrNotFound) {
			myErr.SendErrorTo(w, err, http.StatusNotFound, h.Logger)
			return
		}
		myErr.SendErrorTo(w, myErr.ErrImageStore, http.StatusInternalServerError, h.Logger)
		return
	}
	defer rc.Close() // nolint:errcheck

	contentType := mime.TypeByExtension(path.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Content-Type", contentType)
	// картинки неизменяемы: новая загрузка получает новый id
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.WriteHeader(http.StatusOK)

	if _, err = io.Copy(w, rc); err != nil {
		h.Logger.Warnf("image %s stream interrupted: %v", id, err)
	}
}
