package emitter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmitter_OnAndTrigger(t *testing.T) {
	e := New[int]()
	var got []int
	e.On("tick", func(v int) { got = append(got, v) })
	e.On("tick", func(v int) { got = append(got, v*10) })
	e.On("other", func(v int) { got = append(got, -1) })

	e.Trigger("tick", 2)
	require.Equal(t, []int{2, 20}, got)
}

func TestEmitter_ZeroValueUsable(t *testing.T) {
	var e Emitter[string]
	require.False(t, e.HasListener(""))
	e.Trigger("nothing", "x")

	called := false
	e.On("a", func(string) { called = true })
	e.Trigger("a", "x")
	require.True(t, called)
}

func TestEmitter_NilHandlerIgnored(t *testing.T) {
	e := New[int]()
	require.Zero(t, e.On("a", nil))
	require.Zero(t, e.Once("a", nil))
	require.False(t, e.HasListener("a"))
}

func TestEmitter_OnceFiresOnce(t *testing.T) {
	e := New[int]()
	count := 0
	e.Once("a", func(int) { count++ })
	require.True(t, e.HasListener("a"))

	e.Trigger("a", 0)
	e.Trigger("a", 0)
	require.Equal(t, 1, count)
	require.False(t, e.HasListener("a"))
}

func TestEmitter_OnceResubscribeDuringCallback(t *testing.T) {
	e := New[int]()
	calls := 0
	var handler Handler[int]
	handler = func(int) {
		calls++
		e.Once("a", handler)
	}
	e.Once("a", handler)

	e.Trigger("a", 0)
	require.Equal(t, 1, calls, "re-registered handler must not run in the same pass")
	require.True(t, e.HasListener("a"))

	e.Trigger("a", 0)
	require.Equal(t, 2, calls)
}

func TestEmitter_SnapshotIgnoresChangesDuringDispatch(t *testing.T) {
	e := New[int]()
	var order []string
	var secondID ListenerID

	e.On("a", func(int) {
		order = append(order, "first")
		e.Un("a", secondID)
		e.On("a", func(int) { order = append(order, "late") })
	})
	secondID = e.On("a", func(int) { order = append(order, "second") })

	e.Trigger("a", 0)
	require.Equal(t, []string{"first", "second"}, order)

	order = nil
	e.Trigger("a", 0)
	require.Equal(t, []string{"first", "late"}, order)
	require.Len(t, e.listeners["a"], 3)
}

func TestEmitter_Un(t *testing.T) {
	e := New[int]()
	count := 0
	id := e.On("a", func(int) { count++ })
	onceID := e.Once("a", func(int) { count += 100 })

	require.True(t, e.Un("a", onceID))
	require.True(t, e.Un("a", id))
	require.False(t, e.Un("a", id))
	require.False(t, e.Un("missing", 42))

	e.Trigger("a", 0)
	require.Zero(t, count)
	require.False(t, e.HasListener("a"))
}

func TestEmitter_HasListener(t *testing.T) {
	e := New[int]()
	require.False(t, e.HasListener(""))

	id := e.On("a", func(int) {})
	require.True(t, e.HasListener(""))
	require.True(t, e.HasListener("a"))
	require.False(t, e.HasListener("b"))

	e.Un("a", id)
	require.False(t, e.HasListener(""))
}

func TestEmitter_Clear(t *testing.T) {
	e := New[int]()
	e.On("a", func(int) {})
	e.Once("b", func(int) {})
	e.Clear()
	require.False(t, e.HasListener(""))
}

func TestEmitter_NestedTrigger(t *testing.T) {
	e := New[int]()
	var seen []int
	e.On("a", func(v int) {
		seen = append(seen, v)
		if v < 3 {
			e.Trigger("a", v+1)
		}
	})

	e.Trigger("a", 1)
	require.Equal(t, []int{1, 2, 3}, seen)
}
