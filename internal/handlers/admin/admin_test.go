package admin

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"vehiql-main/internal/car"
	"vehiql-main/internal/inventory"
	"vehiql-main/internal/mocks"
	types "vehiql-main/internal/types/car"
	myErr "vehiql-main/internal/types/errors"
	"vehiql-main/internal/user"

	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const id = "6f1c2b8e-3d4a-4c5b-8e9f-0a1b2c3d4e5f"

type fakeImages struct {
	uploaded []byte
	name     string
	err      error
}

func (f *fakeImages) Upload(_ context.Context, filename string, r io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.name = filename
	f.uploaded, _ = io.ReadAll(r) // nolint:errcheck
	return "http://localhost:8080/api/images/abc", nil
}

func (f *fakeImages) Open(_ context.Context, _ string) (io.ReadCloser, string, error) {
	return nil, "", myErr.ErrNotFound
}

func (f *fakeImages) Delete(_ context.Context, _ string) error {
	return nil
}

func newHandler(t *testing.T) (*AdminHandler, *mocks.MockCarRepo, *mocks.MockUserRepo, *fakeImages) {
	ctrl := gomock.NewController(t)
	l := zap.NewNop().Sugar()

	cars := mocks.NewMockCarRepo(ctrl)
	users := mocks.NewMockUserRepo(ctrl)
	imgs := &fakeImages{}

	inv := inventory.NewService(cars, imgs, nil, nil, l)

	return NewAdminHandler(l, inv, cars, users, imgs, 1<<20), cars, users, imgs
}

func withID(r *http.Request, v string) *http.Request {
	return mux.SetURLVars(r, map[string]string{"id": v})
}

func TestAdminHandler_CreateCar(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(cars *mocks.MockCarRepo)
		wantStatus int
		wantBody   string
	}{
		{
			name:       "invalid json",
			body:       "{",
			setup:      func(cars *mocks.MockCarRepo) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   myErr.ErrInvalidJSONPayload.Error(),
		},
		{
			name:       "no images",
			body:       `{"carData":{"make":"Kia"},"images":[]}`,
			setup:      func(cars *mocks.MockCarRepo) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   myErr.ErrNoImages.Error(),
		},
		{
			name:       "only invalid images",
			body:       `{"carData":{"make":"Kia"},"images":["not a url","ftp://x/y.png"]}`,
			setup:      func(cars *mocks.MockCarRepo) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   myErr.ErrNoValidImages.Error(),
		},
		{
			name: "created",
			body: `{"carData":{"make":"Kia","price":5000},"images":["bad","https://cdn.example.com/a.jpg"]}`,
			setup: func(cars *mocks.MockCarRepo) {
				cars.EXPECT().
					Create(gomock.Any(), gomock.Any(), types.CreateCar{Make: "Kia", Price: 5000}, []string{"https://cdn.example.com/a.jpg"}).
					Return(&car.Car{ID: id, Make: "Kia"}, nil)
			},
			wantStatus: http.StatusCreated,
			wantBody:   `"success":true`,
		},
		{
			name: "db error",
			body: `{"carData":{"make":"Kia"},"images":["https://cdn.example.com/a.jpg"]}`,
			setup: func(cars *mocks.MockCarRepo) {
				cars.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, myErr.ErrDBInternal)
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   myErr.ErrDBInternal.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, cars, _, _ := newHandler(t)
			tt.setup(cars)

			w := httptest.NewRecorder()
			h.CreateCar(w, httptest.NewRequest(http.MethodPost, "/api/admin/cars", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestAdminHandler_ListCars(t *testing.T) {
	h, cars, _, _ := newHandler(t)

	cars.EXPECT().ListAdmin(gomock.Any(), "civic").Return([]car.Car{{ID: id}}, nil)

	w := httptest.NewRecorder()
	h.ListCars(w, httptest.NewRequest(http.MethodGet, "/api/admin/cars?search=+civic+", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), id)
}

func TestAdminHandler_UpdateCar(t *testing.T) {
	h, cars, _, _ := newHandler(t)

	w := httptest.NewRecorder()
	h.UpdateCar(w, withID(httptest.NewRequest(http.MethodPut, "/api/admin/cars/x", strings.NewReader(`{}`)), "x"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	price := 9000.0
	cars.EXPECT().Update(gomock.Any(), id, types.UpdateCar{Price: &price}, nil).Return(nil, myErr.ErrNotFound)

	w = httptest.NewRecorder()
	h.UpdateCar(w, withID(httptest.NewRequest(http.MethodPut, "/api/admin/cars/"+id, strings.NewReader(`{"carData":{"price":9000}}`)), id))
	assert.Equal(t, http.StatusNotFound, w.Code)

	cars.EXPECT().Update(gomock.Any(), id, types.UpdateCar{Price: &price}, nil).Return(&car.Car{ID: id, Price: price}, nil)

	w = httptest.NewRecorder()
	h.UpdateCar(w, withID(httptest.NewRequest(http.MethodPut, "/api/admin/cars/"+id, strings.NewReader(`{"carData":{"price":9000},"images":[]}`)), id))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.UpdateCar(w, withID(httptest.NewRequest(http.MethodPut, "/api/admin/cars/"+id, strings.NewReader(`{"images":["not a url"]}`)), id))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), myErr.ErrNoValidImages.Error())
}

func TestAdminHandler_UpdateStatus(t *testing.T) {
	h, cars, _, _ := newHandler(t)

	w := httptest.NewRecorder()
	h.UpdateStatus(w, withID(httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"status":"GONE"}`)), id))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), myErr.ErrInvalidStatus.Error())

	sold := car.StatusSold
	cars.EXPECT().UpdateStatus(gomock.Any(), id, &sold, nil).Return(nil)

	w = httptest.NewRecorder()
	h.UpdateStatus(w, withID(httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"status":"SOLD"}`)), id))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminHandler_DeleteCar(t *testing.T) {
	h, cars, _, _ := newHandler(t)

	cars.EXPECT().GetImages(gomock.Any(), id).Return([]string{"http://localhost:8080/api/images/abc"}, nil)
	cars.EXPECT().Delete(gomock.Any(), id).Return(nil)

	w := httptest.NewRecorder()
	h.DeleteCar(w, withID(httptest.NewRequest(http.MethodDelete, "/", nil), id))
	assert.Equal(t, http.StatusOK, w.Code)

	cars.EXPECT().GetImages(gomock.Any(), id).Return(nil, myErr.ErrNotFound)

	w = httptest.NewRecorder()
	h.DeleteCar(w, withID(httptest.NewRequest(http.MethodDelete, "/", nil), id))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func multipartBody(t *testing.T, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="car.png"`)
	hdr.Set("Content-Type", contentType)

	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	return &buf, mw.FormDataContentType()
}

func TestAdminHandler_Upload(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		h, _, _, imgs := newHandler(t)

		body, ct := multipartBody(t, "image/png", []byte("png-bytes"))
		req := httptest.NewRequest(http.MethodPost, "/api/admin/upload", body)
		req.Header.Set("Content-Type", ct)

		w := httptest.NewRecorder()
		h.Upload(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"url":"http://localhost:8080/api/images/abc"}`, w.Body.String())
		assert.Equal(t, "car.png", imgs.name)
		assert.Equal(t, []byte("png-bytes"), imgs.uploaded)
	})

	t.Run("not an image", func(t *testing.T) {
		h, _, _, _ := newHandler(t)

		body, ct := multipartBody(t, "text/plain", []byte("hello"))
		req := httptest.NewRequest(http.MethodPost, "/api/admin/upload", body)
		req.Header.Set("Content-Type", ct)

		w := httptest.NewRecorder()
		h.Upload(w, req)
		assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	})

	t.Run("no file", func(t *testing.T) {
		h, _, _, _ := newHandler(t)

		w := httptest.NewRecorder()
		h.Upload(w, httptest.NewRequest(http.MethodPost, "/api/admin/upload", strings.NewReader("x")))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), myErr.ErrNoFile.Error())
	})

	t.Run("too large", func(t *testing.T) {
		h, _, _, _ := newHandler(t)
		h.MaxUploadBytes = 16

		body, ct := multipartBody(t, "image/png", bytes.Repeat([]byte("a"), 1024))
		req := httptest.NewRequest(http.MethodPost, "/api/admin/upload", body)
		req.Header.Set("Content-Type", ct)

		w := httptest.NewRecorder()
		h.Upload(w, req)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})

	t.Run("store error", func(t *testing.T) {
		h, _, _, imgs := newHandler(t)
		imgs.err = errors.New("gridfs down")

		body, ct := multipartBody(t, "image/jpeg", []byte("jpg"))
		req := httptest.NewRequest(http.MethodPost, "/api/admin/upload", body)
		req.Header.Set("Content-Type", ct)

		w := httptest.NewRecorder()
		h.Upload(w, req)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), myErr.ErrImageStore.Error())
	})
}

func TestAdminHandler_Dashboard(t *testing.T) {
	t.Run("stats", func(t *testing.T) {
		h, cars, _, _ := newHandler(t)

		cars.EXPECT().Stats(gomock.Any()).Return(&car.Stats{Total: 3, Available: 2, Sold: 1, Featured: 1}, nil)
		cars.EXPECT().Recent(gomock.Any(), RecentLimit).Return([]car.Car{{ID: id}}, nil)

		w := httptest.NewRecorder()
		h.Dashboard(w, httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"cars":{"total":3,"available":2,"sold":1,"unavailable":0,"featured":1}`)
		assert.Contains(t, w.Body.String(), id)
	})

	t.Run("store failure gives zeroed stats", func(t *testing.T) {
		h, cars, _, _ := newHandler(t)

		cars.EXPECT().Stats(gomock.Any()).Return(nil, myErr.ErrDBInternal)

		w := httptest.NewRecorder()
		h.Dashboard(w, httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true,"data":{
			"cars":{"total":0,"available":0,"sold":0,"unavailable":0,"featured":0},
			"recentCars":[]
		}}`, w.Body.String())
	})
}

func TestAdminHandler_Users(t *testing.T) {
	h, _, users, _ := newHandler(t)

	users.EXPECT().List(gomock.Any()).Return([]user.User{{ID: id, Email: "a@b.c"}}, nil)

	w := httptest.NewRecorder()
	h.ListUsers(w, httptest.NewRequest(http.MethodGet, "/api/admin/users", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "a@b.c")

	w = httptest.NewRecorder()
	h.UpdateUserRole(w, withID(httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"role":"ROOT"}`)), id))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	users.EXPECT().UpdateRole(gomock.Any(), id, user.RoleAdmin).Return(&user.User{ID: id, Role: user.RoleAdmin}, nil)

	w = httptest.NewRecorder()
	h.UpdateUserRole(w, withID(httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"role":"ADMIN"}`)), id))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"ADMIN"`)
}
