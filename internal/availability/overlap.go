// Package availability вычисляет свободные слоты и кресла по существующим броням.
// Все функции пакета чистые: без обращений к БД и без побочных эффектов.
package availability

import "time"

// Interval полуоткрытый интервал [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval строит интервал от start длиной durationMinutes.
// Интервал считается в абсолютном времени, поэтому может переходить через полночь.
func NewInterval(start time.Time, durationMinutes int) Interval {
	return Interval{
		Start: start,
		End:   start.Add(time.Duration(durationMinutes) * time.Minute),
	}
}

// Overlaps проверяет пересечение двух полуоткрытых интервалов.
// Соседние интервалы (a.End == b.Start) не пересекаются.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Overlaps проверяет пересечение [aStart, aStart+aDur) и [bStart, bStart+bDur).
// Длительности должны быть положительными, проверка делается на входе в сервис.
func Overlaps(aStart time.Time, aDuration int, bStart time.Time, bDuration int) bool {
	return NewInterval(aStart, aDuration).Overlaps(NewInterval(bStart, bDuration))
}
