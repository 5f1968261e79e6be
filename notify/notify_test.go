package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sender struct{ name string }

func TestEventInvokeOrderAndRemove(t *testing.T) {
	var ev Event[*sender, int]
	src := &sender{name: "thermostat"}
	var calls []string

	first := ev.Add(func(s *sender, v int) { calls = append(calls, "first") })
	ev.Add(func(s *sender, v int) {
		assert.Same(t, src, s)
		assert.Equal(t, 21, v)
		calls = append(calls, "second")
	})

	ev.Invoke(src, 21)
	assert.Equal(t, []string{"first", "second"}, calls)

	assert.True(t, ev.Remove(first))
	assert.False(t, ev.Remove(first), "second removal finds nothing")
	assert.Equal(t, 1, ev.Len())

	calls = nil
	ev.Invoke(src, 21)
	assert.Equal(t, []string{"second"}, calls)
}

func TestEventWithoutSubscribers(t *testing.T) {
	var ev Event[*sender, string]
	ev.Invoke(nil, "ignored")
	assert.Equal(t, 0, ev.Len())

	var nilEvent *Event[*sender, string]
	nilEvent.Invoke(nil, "ignored")
	assert.False(t, nilEvent.Remove(1))
	assert.Equal(t, 0, nilEvent.Len())
}

func TestHandlerMayUnsubscribeDuringInvoke(t *testing.T) {
	var sig Signal[int]
	var id ID
	count := 0
	id = sig.Add(func(int) {
		count++
		sig.Remove(id)
	})

	sig.Invoke(1)
	sig.Invoke(2)

	assert.Equal(t, 1, count)
}

func TestSignal(t *testing.T) {
	var sig Signal[string]
	var got []string
	id := sig.Add(func(v string) { got = append(got, v) })

	sig.Invoke("celsius")
	assert.True(t, sig.Remove(id))
	sig.Invoke("fahrenheit")

	assert.Equal(t, []string{"celsius"}, got)
}

func TestIDsAreUnique(t *testing.T) {
	var sig Signal[int]
	a := sig.Add(func(int) {})
	sig.Remove(a)
	b := sig.Add(func(int) {})
	assert.NotEqual(t, a, b)
}

func TestDiffers(t *testing.T) {
	assert.False(t, Differs([]int{1, 2}, []int{1, 2}))
	assert.True(t, Differs([]int{1, 2}, []int{2, 1}))
	assert.True(t, Differs(map[string]int{"a": 1}, nil))
	assert.False(t, Differs[[]int](nil, nil))
}
