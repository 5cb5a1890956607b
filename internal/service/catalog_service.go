package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/barbershop_booking/internal/model"
	"go.uber.org/zap"
)

// CatalogService справочные данные салонов: адреса, кресла, услуги
type CatalogService struct {
	locations LocationStore
	seats     SeatStore
	offerings ServiceOfferingStore
	logger    *zap.Logger
}

func NewCatalogService(locations LocationStore, seats SeatStore, offerings ServiceOfferingStore, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		locations: locations,
		seats:     seats,
		offerings: offerings,
		logger:    logger,
	}
}

func (s *CatalogService) ListLocations(ctx context.Context) ([]*model.Location, error) {
	locations, err := s.locations.List(ctx)
	if err != nil {
		return nil, storeError("list locations", err)
	}
	return locations, nil
}

// ListSeats возвращает кресла салона. Клиентам показываются только активные.
func (s *CatalogService) ListSeats(ctx context.Context, locationID int64, activeOnly bool) ([]*model.Seat, error) {
	if err := s.ensureLocation(ctx, locationID); err != nil {
		return nil, err
	}

	seats, err := s.seats.ListByLocation(ctx, locationID, activeOnly)
	if err != nil {
		return nil, storeError("list seats", err)
	}
	return seats, nil
}

func (s *CatalogService) ListServices(ctx context.Context, locationID int64) ([]*model.ServiceOffering, error) {
	if err := s.ensureLocation(ctx, locationID); err != nil {
		return nil, err
	}

	offerings, err := s.offerings.ListByLocation(ctx, locationID)
	if err != nil {
		return nil, storeError("list service offerings", err)
	}
	return offerings, nil
}

// CreateSeat добавляет кресло в салон (только администратор)
func (s *CatalogService) CreateSeat(ctx context.Context, locationID int64, name string) (*model.Seat, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationError("seat name is required")
	}
	if err := s.ensureLocation(ctx, locationID); err != nil {
		return nil, err
	}

	seat := &model.Seat{
		LocationID: locationID,
		Name:       name,
		IsActive:   true,
	}
	if err := s.seats.Create(ctx, seat); err != nil {
		return nil, storeError("create seat", err)
	}

	s.logger.Info("Seat created",
		zap.Int64("seat_id", seat.ID),
		zap.Int64("location_id", locationID),
		zap.String("name", name),
	)

	return seat, nil
}

// SetSeatActive включает или выключает кресло. Существующие брони не трогаются.
func (s *CatalogService) SetSeatActive(ctx context.Context, seatID int64, active bool) (*model.Seat, error) {
	seat, err := s.seats.SetActive(ctx, seatID, active)
	if err != nil {
		return nil, storeError("set seat active", err)
	}
	if seat == nil {
		return nil, fmt.Errorf("seat %d: %w", seatID, model.ErrNotFound)
	}

	s.logger.Info("Seat status changed",
		zap.Int64("seat_id", seatID),
		zap.Bool("active", active),
	)

	return seat, nil
}

func (s *CatalogService) ensureLocation(ctx context.Context, locationID int64) error {
	if locationID <= 0 {
		return validationError("location id is required")
	}
	location, err := s.locations.GetByID(ctx, locationID)
	if err != nil {
		return storeError("get location", err)
	}
	if location == nil {
		return fmt.Errorf("location %d: %w", locationID, model.ErrNotFound)
	}
	return nil
}
