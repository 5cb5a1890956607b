package availability

import (
	"fmt"

	"github.com/Freeeeeet/barbershop_booking/internal/model"
)

// Schedule базовое расписание салона: слоты от Open до Close включительно с шагом Step
type Schedule struct {
	Open  int // минуты от начала суток
	Close int
	Step  int
}

// NewSchedule разбирает часы работы вида "10:00" - "19:00"
func NewSchedule(open, close string, stepMinutes int) (Schedule, error) {
	o, err := model.ParseClock(open)
	if err != nil {
		return Schedule{}, fmt.Errorf("parse open time: %w", err)
	}
	c, err := model.ParseClock(close)
	if err != nil {
		return Schedule{}, fmt.Errorf("parse close time: %w", err)
	}
	if stepMinutes <= 0 {
		return Schedule{}, fmt.Errorf("%w: slot step must be positive", model.ErrValidation)
	}
	if c < o {
		return Schedule{}, fmt.Errorf("%w: close time %s is before open time %s", model.ErrValidation, close, open)
	}
	return Schedule{Open: o, Close: c, Step: stepMinutes}, nil
}

// Starts возвращает упорядоченный каталог начал слотов в минутах от начала суток
func (s Schedule) Starts() []int {
	if s.Step <= 0 {
		return nil
	}
	starts := make([]int, 0, (s.Close-s.Open)/s.Step+1)
	for m := s.Open; m <= s.Close; m += s.Step {
		starts = append(starts, m)
	}
	return starts
}
