package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vehiql-main/internal/car"
	"vehiql-main/internal/catalog"
	"vehiql-main/internal/kafka"
	"vehiql-main/internal/middleware"
	"vehiql-main/internal/mocks"
	"vehiql-main/internal/session"
	"vehiql-main/internal/types/elastic"
	myErr "vehiql-main/internal/types/errors"

	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const carID = "0b5d1f7e-6c1a-4a55-9a0e-2f3a1d1c9e11"

type fakeSuggester struct {
	docs  []elastic.CarDoc
	err   error
	query string
	limit int
}

func (f *fakeSuggester) Suggest(_ context.Context, query string, limit int) ([]elastic.CarDoc, error) {
	f.query, f.limit = query, limit
	return f.docs, f.err
}

type deps struct {
	store  *mocks.MockStore
	cars   *mocks.MockCarRepo
	events *kafka.MockEventProducer
	sugg   *fakeSuggester
}

func newHandler(t *testing.T) (*CatalogHandler, deps) {
	ctrl := gomock.NewController(t)
	l := zap.NewNop().Sugar()

	d := deps{
		store:  mocks.NewMockStore(ctrl),
		cars:   mocks.NewMockCarRepo(ctrl),
		events: kafka.NewMockEventProducer(ctrl),
		sugg:   &fakeSuggester{},
	}

	h := NewCatalogHandler(l, catalog.NewEngine(d.store, l), catalog.NewDeriver(d.store, l), d.cars, d.sugg, d.events, 50, 3)
	return h, d
}

func row(id, mk string, price interface{}) car.Row {
	return car.Row{
		car.ColID:        id,
		car.ColMake:      mk,
		car.ColModel:     "Model",
		car.ColPrice:     price,
		car.ColStatus:    string(car.StatusAvailable),
		car.ColBodyType:  "Sedan",
		car.ColFuelType:  "Petrol",
		car.ColCreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func withUser(r *http.Request) *http.Request {
	return r.WithContext(middleware.ContextWithSession(r.Context(), &session.Session{ID: "s1", UserID: "u1"}))
}

func TestCatalogHandler_List(t *testing.T) {
	h, d := newHandler(t)

	d.store.EXPECT().Page(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, q car.Query) ([]car.Row, int, error) {
			assert.Equal(t, 6, q.Offset)
			assert.Equal(t, 6, q.Limit)
			return []car.Row{row("a", "Honda", "15000")}, 7, nil
		})

	req := httptest.NewRequest(http.MethodGet, "/api/cars?page=2&limit=6&minPrice=abc&sortBy=priceAsc", nil)
	w := httptest.NewRecorder()
	h.List(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var res catalog.Result
	require.NoError(t, json.NewDecoder(w.Body).Decode(&res))
	assert.True(t, res.Success)
	require.Len(t, res.Data, 1)
	assert.Equal(t, 15000.0, res.Data[0].Price)
	assert.Equal(t, catalog.Pagination{Total: 7, Page: 2, Limit: 6, Pages: 2}, *res.Pagination)
}

func TestCatalogHandler_List_CapsPageSize(t *testing.T) {
	h, d := newHandler(t)

	d.store.EXPECT().Page(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, q car.Query) ([]car.Row, int, error) {
			assert.Equal(t, 50, q.Limit)
			return []car.Row{}, 0, nil
		})

	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/api/cars?limit=100000", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":[],"pagination":{"total":0,"page":1,"limit":50,"pages":0}}`, w.Body.String())
}

func TestCatalogHandler_List_SearchEvent(t *testing.T) {
	h, d := newHandler(t)

	d.store.EXPECT().Page(gomock.Any(), gomock.Any()).
		Return([]car.Row{row("a", "Honda", 1000), row("b", "Kia", 2000)}, 2, nil)
	d.events.EXPECT().SendEvent(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e kafka.Event) error {
			assert.Equal(t, kafka.EventTypeSearch, e.Type)
			assert.Equal(t, "u1", e.UserID)
			assert.Equal(t, []string{"Honda", "Kia"}, e.Makes)
			assert.Equal(t, "civ", e.Query)
			return errors.New("broker down")
		})

	w := httptest.NewRecorder()
	h.List(w, withUser(httptest.NewRequest(http.MethodGet, "/api/cars?search=civ", nil)))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCatalogHandler_List_StoreFailure(t *testing.T) {
	h, d := newHandler(t)

	d.store.EXPECT().Page(gomock.Any(), gomock.Any()).Return(nil, 0, myErr.ErrDBInternal)

	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/api/cars", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"data":[],"error":"database internal error"}`, w.Body.String())
}

func TestCatalogHandler_Filters(t *testing.T) {
	h, d := newHandler(t)

	d.store.EXPECT().Select(gomock.Any(), gomock.Any()).
		Return([]car.Row{row("a", "Kia", 5000), row("b", "Audi", 9000)}, nil)

	w := httptest.NewRecorder()
	h.Filters(w, httptest.NewRequest(http.MethodGet, "/api/cars/filters", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{
		"makes":["Audi","Kia"],
		"bodyTypes":["Sedan"],
		"fuelTypes":["Petrol"],
		"transmissions":[],
		"priceRange":{"min":5000,"max":9000}
	}}`, w.Body.String())
}

func TestCatalogHandler_Filters_StoreFailure(t *testing.T) {
	h, d := newHandler(t)

	d.store.EXPECT().Select(gomock.Any(), gomock.Any()).Return(nil, myErr.ErrDBInternal)

	w := httptest.NewRecorder()
	h.Filters(w, httptest.NewRequest(http.MethodGet, "/api/cars/filters", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"data":null,"error":"database internal error"}`, w.Body.String())
}

func TestCatalogHandler_Featured(t *testing.T) {
	h, d := newHandler(t)

	d.cars.EXPECT().GetFeatured(gomock.Any(), 3).Return([]car.Car{{ID: "a", Featured: true}}, nil)

	w := httptest.NewRecorder()
	h.Featured(w, httptest.NewRequest(http.MethodGet, "/api/cars/featured", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"featured":true`)
}

func TestCatalogHandler_GetByID(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		setup      func(d deps)
		withUser   bool
		wantStatus int
	}{
		{
			name:       "bad id",
			id:         "not-a-uuid",
			setup:      func(d deps) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "not found",
			id:   carID,
			setup: func(d deps) {
				d.cars.EXPECT().GetByID(gomock.Any(), carID).Return(nil, myErr.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "db error",
			id:   carID,
			setup: func(d deps) {
				d.cars.EXPECT().GetByID(gomock.Any(), carID).Return(nil, myErr.ErrDBInternal)
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name: "anonymous view",
			id:   carID,
			setup: func(d deps) {
				d.cars.EXPECT().GetByID(gomock.Any(), carID).Return(&car.Car{ID: carID, Make: "BMW"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:     "view event",
			id:       carID,
			withUser: true,
			setup: func(d deps) {
				d.cars.EXPECT().GetByID(gomock.Any(), carID).Return(&car.Car{ID: carID, Make: "BMW"}, nil)
				d.events.EXPECT().SendEvent(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, e kafka.Event) error {
						assert.Equal(t, kafka.EventTypeView, e.Type)
						assert.Equal(t, carID, e.CarID)
						assert.Equal(t, []string{"BMW"}, e.Makes)
						return nil
					})
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, d := newHandler(t)
			tt.setup(d)

			req := httptest.NewRequest(http.MethodGet, "/api/cars/"+tt.id, nil)
			req = mux.SetURLVars(req, map[string]string{"id": tt.id})
			if tt.withUser {
				req = withUser(req)
			}

			w := httptest.NewRecorder()
			h.GetByID(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestCatalogHandler_Suggest(t *testing.T) {
	h, d := newHandler(t)
	d.sugg.docs = []elastic.CarDoc{{ID: "a", Title: "Honda Civic 2020"}}

	w := httptest.NewRecorder()
	h.Suggest(w, httptest.NewRequest(http.MethodGet, "/api/cars/suggest?q=+hon+&limit=2", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hon", d.sugg.query)
	assert.Equal(t, 2, d.sugg.limit)
	assert.Contains(t, w.Body.String(), "Honda Civic 2020")

	w = httptest.NewRecorder()
	h.Suggest(w, httptest.NewRequest(http.MethodGet, "/api/cars/suggest", nil))
	assert.JSONEq(t, `{"success":true,"data":[]}`, w.Body.String())

	d.sugg.err = errors.New("es down")
	w = httptest.NewRecorder()
	h.Suggest(w, httptest.NewRequest(http.MethodGet, "/api/cars/suggest?q=kia", nil))
	assert.Equal(t, http.StatusBadGateway, w.Code)
}
