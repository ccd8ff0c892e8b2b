package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resto/internal/models"
)

func pendingOrder() *models.Order {
	return &models.Order{ID: "ord-1", Status: models.StatusPending}
}

func TestAllowedTable(t *testing.T) {
	all := []models.OrderStatus{
		models.StatusPending,
		models.StatusProcessing,
		models.StatusCompleted,
		models.StatusCancelled,
	}

	legal := map[[2]models.OrderStatus]bool{
		{models.StatusPending, models.StatusProcessing}:   true,
		{models.StatusPending, models.StatusCompleted}:    true,
		{models.StatusPending, models.StatusCancelled}:    true,
		{models.StatusProcessing, models.StatusPending}:   true,
		{models.StatusProcessing, models.StatusCompleted}: true,
	}

	for _, from := range all {
		for _, to := range all {
			want := legal[[2]models.OrderStatus{from, to}]
			assert.Equalf(t, want, Allowed(from, to), "Allowed(%s, %s)", from, to)
		}
	}
}

func TestTerminalStatesAdmitNothing(t *testing.T) {
	all := []models.OrderStatus{
		models.StatusPending,
		models.StatusProcessing,
		models.StatusCompleted,
		models.StatusCancelled,
	}
	for _, to := range all {
		assert.Falsef(t, Allowed(models.StatusCompleted, to), "completed -> %s", to)
		assert.Falsef(t, Allowed(models.StatusCancelled, to), "cancelled -> %s", to)
	}
}

func TestSetStatus(t *testing.T) {
	o := pendingOrder()
	require.NoError(t, SetStatus(o, models.StatusProcessing))
	assert.Equal(t, models.StatusProcessing, o.Status)

	// Correction case: back to pending.
	require.NoError(t, SetStatus(o, models.StatusPending))
	assert.Equal(t, models.StatusPending, o.Status)

	require.NoError(t, SetStatus(o, models.StatusCompleted))

	// Applying the same transition again is rejected.
	err := SetStatus(o, models.StatusCompleted)
	require.Error(t, err)
	assert.True(t, IsIllegalTransition(err))
	assert.Equal(t, models.StatusCompleted, o.Status, "order must not change on rejected transition")
}

func TestSetStatusCannotReopenCompleted(t *testing.T) {
	o := &models.Order{ID: "ord-2", Status: models.StatusCompleted}

	err := SetStatus(o, models.StatusPending)
	var te *IllegalTransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, models.StatusCompleted, te.From)
	assert.Equal(t, models.StatusPending, te.To)
}

func TestMarkProcessed(t *testing.T) {
	t.Run("pending order moves to processing in one step", func(t *testing.T) {
		o := pendingOrder()
		require.NoError(t, MarkProcessed(o, true))
		assert.Equal(t, models.StatusProcessing, o.Status)
		assert.True(t, o.IsProcessed)
	})

	t.Run("processing order only sets the flag", func(t *testing.T) {
		o := &models.Order{Status: models.StatusProcessing}
		require.NoError(t, MarkProcessed(o, true))
		assert.Equal(t, models.StatusProcessing, o.Status)
		assert.True(t, o.IsProcessed)
	})

	t.Run("clearing the flag keeps the status", func(t *testing.T) {
		o := &models.Order{Status: models.StatusProcessing, IsProcessed: true}
		require.NoError(t, MarkProcessed(o, false))
		assert.Equal(t, models.StatusProcessing, o.Status)
		assert.False(t, o.IsProcessed)
	})

	t.Run("terminal orders are immutable", func(t *testing.T) {
		for _, s := range []models.OrderStatus{models.StatusCompleted, models.StatusCancelled} {
			o := &models.Order{Status: s}
			err := MarkProcessed(o, true)
			assert.True(t, IsIllegalTransition(err))
			assert.False(t, o.IsProcessed)
		}
	})
}

func TestCancel(t *testing.T) {
	t.Run("pending order cancels", func(t *testing.T) {
		o := pendingOrder()
		require.NoError(t, Cancel(o))
		assert.Equal(t, models.StatusCancelled, o.Status)
	})

	t.Run("processing order rejects with user-facing error", func(t *testing.T) {
		o := &models.Order{Status: models.StatusProcessing}
		err := Cancel(o)
		require.ErrorIs(t, err, ErrAlreadyInPreparation)
		assert.True(t, IsIllegalTransition(err))
		assert.Equal(t, models.StatusProcessing, o.Status)
	})

	t.Run("terminal orders reject", func(t *testing.T) {
		o := &models.Order{Status: models.StatusCompleted}
		assert.True(t, IsIllegalTransition(Cancel(o)))

		o = &models.Order{Status: models.StatusCancelled}
		assert.True(t, IsIllegalTransition(Cancel(o)))
	})
}

func TestMarkProcessedThenCancel(t *testing.T) {
	o := pendingOrder()
	require.NoError(t, MarkProcessed(o, true))

	err := Cancel(o)
	require.ErrorIs(t, err, ErrAlreadyInPreparation)
}

func TestComplete(t *testing.T) {
	// Direct completion from pending skips processing.
	o := pendingOrder()
	require.NoError(t, Complete(o))
	assert.Equal(t, models.StatusCompleted, o.Status)

	o = &models.Order{Status: models.StatusProcessing}
	require.NoError(t, Complete(o))
	assert.Equal(t, models.StatusCompleted, o.Status)
}
