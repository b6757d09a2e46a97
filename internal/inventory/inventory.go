package inventory

import (
	"context"
	"errors"
	"sync"
	"time"

	"vehiql-main/internal/car"
	"vehiql-main/internal/images"
	"vehiql-main/internal/kafka"
	types "vehiql-main/internal/types/car"
	myErr "vehiql-main/internal/types/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Indexer - поисковый индекс, из которого убираются удаленные объявления
type Indexer interface {
	DeleteCar(ctx context.Context, id string) error
}

// Service - административные изменения объявлений.
// Index и Events необязательны: без них удаление из индекса и события пропускаются.
type Service struct {
	Cars   car.CarRepo
	Images images.Store
	Index  Indexer
	Events kafka.EventProducer
	Logger *zap.SugaredLogger
}

func NewService(
	cars car.CarRepo,
	imgs images.Store,
	index Indexer,
	events kafka.EventProducer,
	logger *zap.SugaredLogger,
) *Service {
	return &Service{
		Cars:   cars,
		Images: imgs,
		Index:  index,
		Events: events,
		Logger: logger,
	}
}

// AddCar - создает объявление. Нужна хотя бы одна валидная ссылка на картинку.
func (s *Service) AddCar(ctx context.Context, form types.CarForm) (*car.Car, error) {
	if len(form.Images) == 0 {
		return nil, myErr.ErrNoImages
	}

	valid := images.ValidURLs(form.Images)
	if len(valid) == 0 {
		s.Logger.Warnf("all %d image urls are invalid", len(form.Images))
		return nil, myErr.ErrNoValidImages
	}

	if form.CarData.Status != "" && !car.Status(form.CarData.Status).Valid() {
		return nil, myErr.ErrInvalidStatus
	}

	c, err := s.Cars.Create(ctx, uuid.NewString(), form.CarData, valid)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, kafka.EventTypeCarCreated, c)

	return c, nil
}

// UpdateCar - частичное обновление. Картинки заменяются, только если передан непустой список.
func (s *Service) UpdateCar(ctx context.Context, id string, form types.CarUpdateForm) (*car.Car, error) {
	var imgs []string
	if len(form.Images) > 0 {
		imgs = images.ValidURLs(form.Images)
		if len(imgs) == 0 {
			return nil, myErr.ErrNoValidImages
		}
	}

	if form.CarData.Status != nil && !car.Status(*form.CarData.Status).Valid() {
		return nil, myErr.ErrInvalidStatus
	}

	c, err := s.Cars.Update(ctx, id, form.CarData, imgs)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, kafka.EventTypeCarUpdated, c)

	return c, nil
}

// UpdateStatus - смена статуса и/или флага featured
func (s *Service) UpdateStatus(ctx context.Context, id string, form types.UpdateStatus) error {
	var status *car.Status
	if form.Status != nil {
		st := car.Status(*form.Status)
		if !st.Valid() {
			return myErr.ErrInvalidStatus
		}
		status = &st
	}

	if err := s.Cars.UpdateStatus(ctx, id, status, form.Featured); err != nil {
		return err
	}

	s.publish(ctx, kafka.EventTypeCarUpdated, &car.Car{ID: id})

	return nil
}

// DeleteCar - удаляет картинки (параллельно, ошибки только логируются), затем запись,
// затем документ из поискового индекса.
func (s *Service) DeleteCar(ctx context.Context, id string) error {
	urls, err := s.Cars.GetImages(ctx, id)
	if err != nil {
		return err
	}

	s.deleteImages(ctx, id, urls)

	if err = s.Cars.Delete(ctx, id); err != nil {
		return err
	}

	if s.Index != nil {
		if err = s.Index.DeleteCar(ctx, id); err != nil {
			s.Logger.Warnw("failed to remove car from search index", "car_id", id, zap.Error(err))
		}
	}

	s.publish(ctx, kafka.EventTypeCarDeleted, &car.Car{ID: id})

	return nil
}

func (s *Service) deleteImages(ctx context.Context, carID string, urls []string) {
	var wg sync.WaitGroup
	for _, u := range urls {
		publicID := images.PublicID(u)
		if publicID == "" {
			continue
		}

		wg.Add(1)
		go func(publicID string) {
			defer wg.Done()

			err := s.Images.Delete(ctx, publicID)
			if err != nil && !errors.Is(err, myErr.ErrNotFound) {
				s.Logger.Warnw("failed to delete car image", "car_id", carID, "image_id", publicID, zap.Error(err))
			}
		}(publicID)
	}
	wg.Wait()
}

func (s *Service) publish(ctx context.Context, t kafka.EventType, c *car.Car) {
	if s.Events == nil {
		return
	}

	event := kafka.Event{
		Type:      t,
		CarID:     c.ID,
		Timestamp: time.Now(),
	}
	if c.Make != "" {
		event.Makes = []string{c.Make}
	}

	if err := s.Events.SendEvent(ctx, event); err != nil {
		s.Logger.Warnw("failed to send car event", "type", t, "car_id", c.ID, zap.Error(err))
	}
}
