package resize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/waabox/stageview/internal/resize"
)

func TestHub_NotifyReachesListenersInOrder(t *testing.T) {
	hub := resize.NewHub()
	var got []string
	hub.Subscribe(func(w int) { got = append(got, "a") })
	hub.Subscribe(func(w int) { got = append(got, "b") })

	hub.Notify(10)

	assert.Equal(t, []string{"a", "b"}, got)
}

func TestHub_CancelIsIdempotent(t *testing.T) {
	hub := resize.NewHub()
	calls := 0
	h := hub.Subscribe(func(int) { calls++ })

	h.Cancel()
	h.Cancel()
	hub.Notify(10)

	assert.Zero(t, calls)
	assert.Zero(t, hub.Len())
}

func TestHub_ListenerAddedDuringNotifyWaitsForNextSignal(t *testing.T) {
	hub := resize.NewHub()
	late := 0
	hub.Subscribe(func(int) {
		hub.Subscribe(func(int) { late++ })
	})

	hub.Notify(10)
	assert.Zero(t, late)

	hub.Notify(20)
	assert.Equal(t, 1, late)
}

func TestHub_ListenerCancelledDuringNotifyIsSkipped(t *testing.T) {
	hub := resize.NewHub()
	calls := 0
	var second *resize.Handle
	hub.Subscribe(func(int) { second.Cancel() })
	second = hub.Subscribe(func(int) { calls++ })

	hub.Notify(10)

	assert.Zero(t, calls)
	assert.Equal(t, 1, hub.Len())
}

func TestHub_ResubscribeCycleKeepsOnlyLiveListener(t *testing.T) {
	hub := resize.NewHub()
	var h *resize.Handle
	widths := []int{}
	for i := 0; i < 1000; i++ {
		h.Cancel()
		h = hub.Subscribe(func(w int) { widths = append(widths, w) })
	}
	hub.Subscribe(func(int) {}).Cancel()

	hub.Notify(42)

	assert.Equal(t, 1, hub.Len())
	assert.Equal(t, []int{42}, widths)
}
