package availability

import (
	"testing"

	"github.com/Freeeeeet/barbershop_booking/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSchedule_Starts(t *testing.T) {
	s, err := NewSchedule("10:00", "19:00", 30)
	require.NoError(t, err)

	starts := s.Starts()
	require.Len(t, starts, 19)
	assert.Equal(t, 10*60, starts[0])
	assert.Equal(t, 19*60, starts[len(starts)-1])
	for i := 1; i < len(starts); i++ {
		assert.Equal(t, 30, starts[i]-starts[i-1])
	}
}

func TestNewSchedule_Invalid(t *testing.T) {
	_, err := NewSchedule("10:00", "09:00", 30)
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = NewSchedule("10:00", "19:00", 0)
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = NewSchedule("ten", "19:00", 30)
	assert.ErrorIs(t, err, model.ErrValidation)
}
