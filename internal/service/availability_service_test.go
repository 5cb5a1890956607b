package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Freeeeeet/barbershop_booking/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findSlot(t *testing.T, slots []model.TimeSlot, clock string) model.TimeSlot {
	t.Helper()
	for _, s := range slots {
		if s.Time == clock {
			return s
		}
	}
	require.FailNow(t, "slot not found", clock)
	return model.TimeSlot{}
}

func slotSeatIDs(slot model.TimeSlot) []int64 {
	ids := make([]int64, 0, len(slot.AvailableSeats))
	for _, s := range slot.AvailableSeats {
		ids = append(ids, s.ID)
	}
	return ids
}

func TestAvailabilityService_GetAvailability(t *testing.T) {
	f := newFixture()
	f.bookings.seed(1, at(testDate, "10:00"), 60)
	svc := f.availabilityService(testNow)

	slots, err := svc.GetAvailability(context.Background(), testDate, 1, []int64{3})

	require.NoError(t, err)
	require.Len(t, slots, 19)
	assert.Equal(t, "10:00", slots[0].Time)
	assert.Equal(t, "19:00", slots[18].Time)

	// кресло 3 выключено и не предлагается
	ten := findSlot(t, slots, "10:00")
	assert.True(t, ten.Available)
	assert.Equal(t, []int64{2}, slotSeatIDs(ten))

	half := findSlot(t, slots, "10:30")
	assert.Equal(t, []int64{2}, slotSeatIDs(half))

	eleven := findSlot(t, slots, "11:00")
	assert.Equal(t, []int64{1, 2}, slotSeatIDs(eleven))
}

func TestAvailabilityService_QueriesWholeCatalogWindow(t *testing.T) {
	f := newFixture()
	svc := f.availabilityService(testNow)

	_, err := svc.GetAvailability(context.Background(), testDate, 1, []int64{1, 2})
	require.NoError(t, err)

	require.Len(t, f.bookings.queries, 1)
	q := f.bookings.queries[0]
	assert.Equal(t, int64(1), q.LocationID)
	assert.Nil(t, q.SeatID)
	assert.Equal(t, at(testDate, "10:00"), q.From)
	assert.Equal(t, at(testDate, "19:45"), q.To)
}

func TestAvailabilityService_PreviousDaySpillIsBusy(t *testing.T) {
	f := newFixture()
	f.bookings.seed(1, at("2026-03-13", "22:00"), 13*60)
	f.bookings.seed(2, at("2026-03-13", "22:00"), 12*60+30)
	svc := f.availabilityService(testNow)

	slots, err := svc.GetAvailability(context.Background(), testDate, 1, []int64{1})

	require.NoError(t, err)
	assert.False(t, findSlot(t, slots, "10:00").Available)
	assert.Equal(t, []int64{2}, slotSeatIDs(findSlot(t, slots, "10:30")))
	assert.Equal(t, []int64{1, 2}, slotSeatIDs(findSlot(t, slots, "11:00")))
}

func TestAvailabilityService_PastSlotsTodayUnavailable(t *testing.T) {
	f := newFixture()
	now := at(testDate, "12:10")
	svc := f.availabilityService(now)

	slots, err := svc.GetAvailability(context.Background(), testDate, 1, []int64{1})

	require.NoError(t, err)
	for _, s := range slots {
		minute, _ := model.ParseClock(s.Time)
		if model.At(now, minute).Before(now) {
			assert.False(t, s.Available, s.Time)
			assert.NotNil(t, s.AvailableSeats)
			assert.Empty(t, s.AvailableSeats, s.Time)
		} else {
			assert.True(t, s.Available, s.Time)
		}
	}
	assert.False(t, findSlot(t, slots, "12:00").Available)
	assert.True(t, findSlot(t, slots, "12:30").Available)
}

func TestAvailabilityService_NoActiveSeats(t *testing.T) {
	f := newFixture()
	f.seats = newFakeSeatStore(&model.Seat{ID: 3, LocationID: 1, Name: "Кресло 3"})
	svc := f.availabilityService(testNow)

	slots, err := svc.GetAvailability(context.Background(), testDate, 1, []int64{1})

	require.NoError(t, err)
	for _, s := range slots {
		assert.False(t, s.Available)
		assert.Empty(t, s.AvailableSeats)
	}
}

func TestAvailabilityService_Errors(t *testing.T) {
	tests := []struct {
		name       string
		date       string
		locationID int64
		offerings  []int64
		setup      func(f *fixture)
		want       error
	}{
		{name: "bad date", date: "14/03/2026", locationID: 1, offerings: []int64{1}, want: model.ErrValidation},
		{name: "past date", date: "2026-03-12", locationID: 1, offerings: []int64{1}, want: model.ErrValidation},
		{name: "no location", date: testDate, locationID: 0, offerings: []int64{1}, want: model.ErrValidation},
		{name: "unknown location", date: testDate, locationID: 42, offerings: []int64{1}, want: model.ErrNotFound},
		{name: "no offerings", date: testDate, locationID: 1, want: model.ErrValidation},
		{name: "offering of other location", date: testDate, locationID: 1, offerings: []int64{5}, want: model.ErrValidation},
		{name: "zero duration", date: testDate, locationID: 1, offerings: []int64{6}, want: model.ErrValidation},
		{
			name: "location store down", date: testDate, locationID: 1, offerings: []int64{1},
			setup: func(f *fixture) { f.locations.err = errors.New("timeout") },
			want:  model.ErrStore,
		},
		{
			name: "booking store down", date: testDate, locationID: 1, offerings: []int64{1},
			setup: func(f *fixture) { f.bookings.queryErr = errors.New("timeout") },
			want:  model.ErrStore,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			if tt.setup != nil {
				tt.setup(f)
			}

			_, err := f.availabilityService(testNow).GetAvailability(context.Background(), tt.date, tt.locationID, tt.offerings)

			assert.ErrorIs(t, err, tt.want)
		})
	}
}
