package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/Freeeeeet/barbershop_booking/internal/availability"
	"github.com/Freeeeeet/barbershop_booking/internal/model"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	// "сейчас" во всех тестах сервиса
	testNow  = time.Date(2026, 3, 13, 9, 0, 0, 0, time.UTC)
	testDate = "2026-03-14"
)

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func at(date, clock string) time.Time {
	t, err := time.Parse(model.DateLayout+" "+model.ClockLayout, date+" "+clock)
	if err != nil {
		panic(err)
	}
	return t
}

// fakeBookingStore хранит брони в памяти и ведёт себя как таблица с EXCLUDE-ограничением
type fakeBookingStore struct {
	mu       sync.Mutex
	nextID   int64
	bookings map[int64]*model.Booking
	links    map[int64][]int64

	queryErr     error
	insertErr    error
	linkErr      error
	beforeInsert func()
	onLink       func()

	queries []model.BookingFilter
	inserts int
	deleted []int64
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{
		nextID:   100,
		bookings: make(map[int64]*model.Booking),
		links:    make(map[int64][]int64),
	}
}

// seed добавляет бронь в обход проверок
func (f *fakeBookingStore) seed(seatID int64, start time.Time, duration int) *model.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	b := &model.Booking{
		ID:                 f.nextID,
		Reference:          fmt.Sprintf("00000000-0000-4000-8000-%012d", f.nextID),
		LocationID:         1,
		SeatID:             seatID,
		CustomerName:       "Иван",
		CustomerEmail:      "ivan@example.com",
		CustomerPhone:      "+70000000000",
		StartTime:          start,
		Duration:           duration,
		ServiceOfferingIDs: []int64{1},
	}
	f.bookings[b.ID] = b
	f.links[b.ID] = []int64{1}
	return b
}

func (f *fakeBookingStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bookings)
}

func (f *fakeBookingStore) linksOf(id int64) []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int64(nil), f.links[id]...)
}

func matches(b *model.Booking, filter model.BookingFilter) bool {
	if filter.LocationID != 0 && b.LocationID != filter.LocationID {
		return false
	}
	if filter.SeatID != nil && b.SeatID != *filter.SeatID {
		return false
	}
	if filter.ExcludeID != 0 && b.ID == filter.ExcludeID {
		return false
	}
	return b.StartTime.Before(filter.To) && b.EndTime().After(filter.From)
}

func (f *fakeBookingStore) QueryBookings(ctx context.Context, filter model.BookingFilter) ([]*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.queries = append(f.queries, filter)
	if f.queryErr != nil {
		return nil, f.queryErr
	}

	var result []*model.Booking
	for _, b := range f.bookings {
		if matches(b, filter) {
			copied := *b
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartTime.Before(result[j].StartTime) })
	return result, nil
}

func (f *fakeBookingStore) overlapsLocked(b *model.Booking) bool {
	candidate := availability.NewInterval(b.StartTime, b.Duration)
	for _, other := range f.bookings {
		if other.ID == b.ID || other.SeatID != b.SeatID {
			continue
		}
		if candidate.Overlaps(availability.NewInterval(other.StartTime, other.Duration)) {
			return true
		}
	}
	return false
}

func (f *fakeBookingStore) InsertBooking(ctx context.Context, booking *model.Booking) error {
	if f.beforeInsert != nil {
		f.beforeInsert()
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.inserts++
	if f.insertErr != nil {
		return f.insertErr
	}
	if f.overlapsLocked(booking) {
		return fmt.Errorf("insert booking: %w", model.ErrConflict)
	}

	f.nextID++
	booking.ID = f.nextID
	booking.CreatedAt = testNow
	copied := *booking
	f.bookings[booking.ID] = &copied
	return nil
}

func (f *fakeBookingStore) InsertServiceLink(ctx context.Context, bookingID, serviceOfferingID int64) error {
	if f.onLink != nil {
		f.onLink()
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.linkErr != nil {
		return f.linkErr
	}
	if _, ok := f.bookings[bookingID]; !ok {
		return errors.New("booking does not exist")
	}
	f.links[bookingID] = append(f.links[bookingID], serviceOfferingID)
	return nil
}

func (f *fakeBookingStore) DeleteBooking(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.bookings[id]; !ok {
		return fmt.Errorf("delete booking %d: %w", id, model.ErrNotFound)
	}
	delete(f.bookings, id)
	delete(f.links, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeBookingStore) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	copied := *b
	copied.ServiceOfferingIDs = append([]int64(nil), f.links[id]...)
	return &copied, nil
}

func (f *fakeBookingStore) GetByReference(ctx context.Context, reference string) (*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, b := range f.bookings {
		if b.Reference == reference {
			copied := *b
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingStore) Reschedule(ctx context.Context, booking *model.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.bookings[booking.ID]; !ok {
		return fmt.Errorf("reschedule booking: %w", model.ErrNotFound)
	}
	if f.overlapsLocked(booking) {
		return fmt.Errorf("reschedule booking: %w", model.ErrConflict)
	}

	copied := *booking
	copied.ReminderSentAt = nil
	f.bookings[booking.ID] = &copied
	f.links[booking.ID] = append([]int64(nil), booking.ServiceOfferingIDs...)
	booking.ReminderSentAt = nil
	return nil
}

func (f *fakeBookingStore) ListDueReminders(ctx context.Context, from, to time.Time) ([]*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.queryErr != nil {
		return nil, f.queryErr
	}

	var result []*model.Booking
	for _, b := range f.bookings {
		if b.ReminderSentAt == nil && !b.StartTime.Before(from) && b.StartTime.Before(to) {
			copied := *b
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartTime.Before(result[j].StartTime) })
	return result, nil
}

func (f *fakeBookingStore) MarkReminded(ctx context.Context, id int64, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.bookings[id]
	if !ok {
		return fmt.Errorf("mark reminded %d: %w", id, model.ErrNotFound)
	}
	b.ReminderSentAt = &at
	return nil
}

type fakeSeatStore struct {
	mu     sync.Mutex
	nextID int64
	seats  map[int64]*model.Seat
	err    error
}

func newFakeSeatStore(seats ...*model.Seat) *fakeSeatStore {
	f := &fakeSeatStore{nextID: 10, seats: make(map[int64]*model.Seat)}
	for _, s := range seats {
		f.seats[s.ID] = s
	}
	return f
}

func (f *fakeSeatStore) GetByID(ctx context.Context, id int64) (*model.Seat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.seats[id]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSeatStore) ListByLocation(ctx context.Context, locationID int64, activeOnly bool) ([]*model.Seat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var result []*model.Seat
	for _, s := range f.seats {
		if s.LocationID == locationID && (!activeOnly || s.IsActive) {
			copied := *s
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeSeatStore) Create(ctx context.Context, seat *model.Seat) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.nextID++
	seat.ID = f.nextID
	copied := *seat
	f.seats[seat.ID] = &copied
	return nil
}

func (f *fakeSeatStore) SetActive(ctx context.Context, id int64, active bool) (*model.Seat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.seats[id]
	if !ok {
		return nil, nil
	}
	s.IsActive = active
	copied := *s
	return &copied, nil
}

type fakeOfferingStore struct {
	offerings map[int64]*model.ServiceOffering
}

func newFakeOfferingStore(offerings ...*model.ServiceOffering) *fakeOfferingStore {
	f := &fakeOfferingStore{offerings: make(map[int64]*model.ServiceOffering)}
	for _, o := range offerings {
		f.offerings[o.ID] = o
	}
	return f
}

func (f *fakeOfferingStore) GetByID(ctx context.Context, id int64) (*model.ServiceOffering, error) {
	o, ok := f.offerings[id]
	if !ok {
		return nil, nil
	}
	copied := *o
	return &copied, nil
}

func (f *fakeOfferingStore) ListByLocation(ctx context.Context, locationID int64) ([]*model.ServiceOffering, error) {
	var result []*model.ServiceOffering
	for _, o := range f.offerings {
		if o.LocationID == locationID && o.IsActive {
			result = append(result, o)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

type fakeLocationStore struct {
	locations map[int64]*model.Location
	err       error
}

func newFakeLocationStore(locations ...*model.Location) *fakeLocationStore {
	f := &fakeLocationStore{locations: make(map[int64]*model.Location)}
	for _, l := range locations {
		f.locations[l.ID] = l
	}
	return f
}

func (f *fakeLocationStore) GetByID(ctx context.Context, id int64) (*model.Location, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.locations[id], nil
}

func (f *fakeLocationStore) List(ctx context.Context) ([]*model.Location, error) {
	if f.err != nil {
		return nil, f.err
	}
	var result []*model.Location
	for _, l := range f.locations {
		result = append(result, l)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

type notifiedEvent struct {
	kind    string
	booking *model.Booking
}

// recordingNotifier складывает уведомления в канал, они приходят из горутин
type recordingNotifier struct {
	events chan notifiedEvent
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{events: make(chan notifiedEvent, 16)}
}

func (n *recordingNotifier) NotifyBookingCreated(ctx context.Context, b *model.Booking) {
	n.events <- notifiedEvent{kind: "created", booking: b}
}

func (n *recordingNotifier) NotifyBookingRescheduled(ctx context.Context, b *model.Booking) {
	n.events <- notifiedEvent{kind: "rescheduled", booking: b}
}

func (n *recordingNotifier) NotifyBookingDeleted(ctx context.Context, b *model.Booking) {
	n.events <- notifiedEvent{kind: "deleted", booking: b}
}

func (n *recordingNotifier) wait(t *testing.T) notifiedEvent {
	t.Helper()
	select {
	case e := <-n.events:
		return e
	case <-time.After(time.Second):
		require.FailNow(t, "notification was not sent")
		return notifiedEvent{}
	}
}

func (n *recordingNotifier) assertSilent(t *testing.T) {
	t.Helper()
	select {
	case e := <-n.events:
		require.FailNow(t, "unexpected notification", e.kind)
	case <-time.After(50 * time.Millisecond):
	}
}

// Стандартный салон для тестов: два активных кресла, одно выключенное, кресло другого салона
type fixture struct {
	bookings  *fakeBookingStore
	seats     *fakeSeatStore
	offerings *fakeOfferingStore
	locations *fakeLocationStore
	notifier  *recordingNotifier
	logger    *zap.Logger
}

func newFixture() *fixture {
	return &fixture{
		bookings: newFakeBookingStore(),
		seats: newFakeSeatStore(
			&model.Seat{ID: 1, LocationID: 1, Name: "Кресло 1", IsActive: true},
			&model.Seat{ID: 2, LocationID: 1, Name: "Кресло 2", IsActive: true},
			&model.Seat{ID: 3, LocationID: 1, Name: "Кресло 3", IsActive: false},
			&model.Seat{ID: 4, LocationID: 2, Name: "Кресло у реки", IsActive: true},
		),
		offerings: newFakeOfferingStore(
			&model.ServiceOffering{ID: 1, LocationID: 1, Name: "Стрижка", Price: 150000, Duration: 30, IsActive: true},
			&model.ServiceOffering{ID: 2, LocationID: 1, Name: "Борода", Price: 80000, Duration: 15, IsActive: true},
			&model.ServiceOffering{ID: 3, LocationID: 1, Name: "Комплекс", Price: 250000, Duration: 60, IsActive: true},
			&model.ServiceOffering{ID: 4, LocationID: 1, Name: "Архив", Price: 100000, Duration: 30, IsActive: false},
			&model.ServiceOffering{ID: 5, LocationID: 2, Name: "Стрижка у реки", Price: 170000, Duration: 30, IsActive: true},
			&model.ServiceOffering{ID: 6, LocationID: 1, Name: "Консультация", Price: 0, Duration: 0, IsActive: true},
			&model.ServiceOffering{ID: 7, LocationID: 1, Name: "Королевское бритьё", Price: 300000, Duration: 90, IsActive: true},
		),
		locations: newFakeLocationStore(
			&model.Location{ID: 1, Name: "Центр"},
			&model.Location{ID: 2, Name: "Набережная"},
		),
		notifier: newRecordingNotifier(),
		logger:   zap.NewNop(),
	}
}

func (f *fixture) bookingService() *BookingService {
	return NewBookingService(f.bookings, f.seats, f.offerings, f.notifier, fixedClock(testNow), f.logger)
}

func (f *fixture) availabilityService(now time.Time) *AvailabilityService {
	schedule, err := availability.NewSchedule("10:00", "19:00", 30)
	if err != nil {
		panic(err)
	}
	return NewAvailabilityService(f.locations, f.seats, f.offerings, f.bookings, schedule, fixedClock(now), f.logger)
}
