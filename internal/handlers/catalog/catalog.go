package catalog

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"vehiql-main/internal/car"
	"vehiql-main/internal/catalog"
	"vehiql-main/internal/contextutil"
	"vehiql-main/internal/kafka"
	"vehiql-main/internal/types/elastic"
	myErr "vehiql-main/internal/types/errors"
	"vehiql-main/internal/types/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Suggester - поисковые подсказки по марке и модели
type Suggester interface {
	Suggest(ctx context.Context, query string, limit int) ([]elastic.CarDoc, error)
}

type CatalogHandler struct {
	Logger        *zap.SugaredLogger
	Engine        *catalog.Engine
	Facets        *catalog.Deriver
	CarRepo       car.CarRepo
	Suggester     Suggester
	EventProducer kafka.EventProducer
	MaxPageSize   int
	FeaturedLimit int
}

func NewCatalogHandler(
	l *zap.SugaredLogger,
	engine *catalog.Engine,
	facets *catalog.Deriver,
	cr car.CarRepo,
	s Suggester,
	ep kafka.EventProducer,
	maxPageSize int,
	featuredLimit int,
) *CatalogHandler {
	return &CatalogHandler{
		Logger:        l,
		Engine:        engine,
		Facets:        facets,
		CarRepo:       cr,
		Suggester:     s,
		EventProducer: ep,
		MaxPageSize:   maxPageSize,
		FeaturedLimit: featuredLimit,
	}
}

// Filters handles GET /api/cars/filters
func (h *CatalogHandler) Filters(w http.ResponseWriter, r *http.Request) {
	facets, err := h.Facets.Derive(r.Context())
	if err != nil {
		response.SendError(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	response.Send(w, facets, http.StatusOK, h.Logger)
}

// List handles GET /api/cars?search=&make=&bodyType=&fuelType=&transmission=&minPrice=&maxPrice=&sortBy=&page=&limit=
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	req := h.parseRequest(r)

	res := h.Engine.Query(r.Context(), req)
	if !res.Success {
		myErr.SendJSON(w, res, http.StatusInternalServerError, h.Logger)
		return
	}

	if req.Search != "" || req.Make != "" {
		makes := make([]string, 0, len(res.Data))
		for _, c := range res.Data {
			makes = append(makes, c.Make)
		}
		h.sendEvent(r, kafka.Event{Type: kafka.EventTypeSearch, Makes: makes, Query: req.Search})
	}

	myErr.SendJSON(w, res, http.StatusOK, h.Logger)
}

// Featured handles GET /api/cars/featured
func (h *CatalogHandler) Featured(w http.ResponseWriter, r *http.Request) {
	cars, err := h.CarRepo.GetFeatured(r.Context(), h.FeaturedLimit)
	if err != nil {
		response.SendError(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	response.Send(w, cars, http.StatusOK, h.Logger)
}

// GetByID handles GET /api/cars/{id}
func (h *CatalogHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, err := uuid.Parse(id); err != nil {
		response.SendError(w, myErr.ErrBadID, http.StatusBadRequest, h.Logger)
		return
	}

	c, err := h.CarRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, myErr.ErrNotFound) {
			response.SendError(w, err, http.StatusNotFound, h.Logger)
			return
		}
		response.SendError(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.sendEvent(r, kafka.Event{Type: kafka.EventTypeView, CarID: c.ID, Makes: []string{c.Make}})

	response.Send(w, c, http.StatusOK, h.Logger)
}

// Suggest handles GET /api/cars/suggest?q={query}
func (h *CatalogHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		response.Send(w, []elastic.CarDoc{}, http.StatusOK, h.Logger)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	docs, err := h.Suggester.Suggest(r.Context(), q, limit)
	if err != nil {
		response.SendError(w, myErr.ErrSearch, http.StatusBadGateway, h.Logger)
		return
	}

	response.Send(w, docs, http.StatusOK, h.Logger)
}

// parseRequest - параметры запроса в catalog.Request. Нечисловые значения игнорируются.
func (h *CatalogHandler) parseRequest(r *http.Request) catalog.Request {
	q := r.URL.Query()
	req := catalog.DefaultRequest()

	req.Search = strings.TrimSpace(q.Get("search"))
	req.Make = q.Get("make")
	req.Model = q.Get("model")
	req.BodyType = q.Get("bodyType")
	req.FuelType = q.Get("fuelType")
	req.Transmission = q.Get("transmission")

	if v := q.Get("sortBy"); v != "" {
		req.SortBy = catalog.Sort(v)
	}
	if v, err := strconv.ParseFloat(q.Get("minPrice"), 64); err == nil {
		req.MinPrice = v
	}
	if v, err := strconv.ParseFloat(q.Get("maxPrice"), 64); err == nil {
		req.MaxPrice = v
	}
	if v, err := strconv.Atoi(q.Get("page")); err == nil {
		req.Page = v
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		req.Limit = v
	}
	if h.MaxPageSize > 0 && req.Limit > h.MaxPageSize {
		req.Limit = h.MaxPageSize
	}

	return req
}

// sendEvent - аналитика только для залогиненных, ошибка брокера не влияет на ответ
func (h *CatalogHandler) sendEvent(r *http.Request, event kafka.Event) {
	if h.EventProducer == nil {
		return
	}

	userID, ok := contextutil.GetUserIDFromContext(r.Context())
	if !ok {
		return
	}

	event.UserID = userID
	event.Timestamp = time.Now()
	if err := h.EventProducer.SendEvent(r.Context(), event); err != nil {
		h.Logger.Warnf("failed to send %s event: %v", event.Type, err)
	}
}
