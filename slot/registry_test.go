package slot_test

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/delaneyj/pipeparty/pipe"
	"github.com/delaneyj/pipeparty/slot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Person declares two observable string fields.
var (
	firstNameKey = slot.At[string](0)
	lastNameKey  = slot.At[string](1)
)

const personFieldCount = 2

type person struct {
	fields *slot.Registry
}

func newPerson() *person {
	return &person{fields: slot.New(personFieldCount)}
}

func recoverErr(f func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			var ok bool
			err, ok = r.(error)
			if !ok {
				err = fmt.Errorf("%v", r)
			}
		}
	}()
	f()
	return nil
}

func TestPersonScenario(t *testing.T) {
	p := newPerson()

	slot.Set(p.fields, firstNameKey, "Alan")
	assert.Equal(t, "Alan", slot.Get(p.fields, firstNameKey))
	assert.False(t, slot.Observed(p.fields, firstNameKey), "no channel before observe")

	var got []string
	ch := slot.Observe(p.fields, firstNameKey)
	sub, err := ch.Subscribe(func(v string) { got = append(got, v) }, nil, nil)
	require.NoError(t, err)
	defer sub.Unsubscribe()

	slot.Set(p.fields, firstNameKey, "Turing")
	assert.Equal(t, []string{"Turing"}, got)

	slot.Set(p.fields, firstNameKey, "Turing")
	assert.Equal(t, []string{"Turing"}, got, "equal value never notifies")
}

func TestEqualSetIsNoOp(t *testing.T) {
	p := newPerson()

	notifications := 0
	ch := slot.Observe(p.fields, lastNameKey)
	sub, err := ch.Subscribe(func(string) { notifications++ }, nil, nil)
	require.NoError(t, err)
	defer sub.Unsubscribe()

	slot.Set(p.fields, lastNameKey, "Hopper")
	slot.Set(p.fields, lastNameKey, "Hopper")
	assert.Equal(t, 1, notifications)
	assert.Equal(t, "Hopper", slot.Get(p.fields, lastNameKey))
}

func TestZeroValueBeforeFirstSet(t *testing.T) {
	r := slot.New(3)
	assert.Equal(t, "", slot.Get(r, slot.At[string](0)))
	assert.Equal(t, 0, slot.Get(r, slot.At[int](1)))
	assert.False(t, slot.Get(r, slot.At[bool](2)))
}

func TestSetDoesNotCreateChannel(t *testing.T) {
	p := newPerson()
	slot.Set(p.fields, firstNameKey, "Ada")
	slot.Set(p.fields, firstNameKey, "Grace")
	assert.False(t, slot.Observed(p.fields, firstNameKey))
}

func TestObserveReturnsSameChannel(t *testing.T) {
	p := newPerson()
	a := slot.Observe(p.fields, firstNameKey)
	b := slot.Observe(p.fields, firstNameKey)
	assert.Same(t, a, b)
	assert.True(t, slot.Observed(p.fields, firstNameKey))

	other := slot.Observe(p.fields, lastNameKey)
	assert.NotSame(t, a, other)
}

func TestMutationsBeforeObserveAreNotReplayed(t *testing.T) {
	p := newPerson()
	slot.Set(p.fields, firstNameKey, "Ada")

	var got []string
	sub, err := slot.Observe(p.fields, firstNameKey).
		Subscribe(func(v string) { got = append(got, v) }, nil, nil)
	require.NoError(t, err)
	defer sub.Unsubscribe()

	assert.Empty(t, got)
	slot.Set(p.fields, firstNameKey, "Grace")
	assert.Equal(t, []string{"Grace"}, got)
}

func TestInvalidSlotIndex(t *testing.T) {
	r := slot.New(1)
	bad := slot.At[int](5)

	err := recoverErr(func() { slot.Get(r, bad) })
	require.ErrorIs(t, err, slot.ErrInvalidSlot)

	err = recoverErr(func() { slot.Set(r, bad, 1) })
	require.ErrorIs(t, err, slot.ErrInvalidSlot)

	err = recoverErr(func() { slot.Observe(r, bad) })
	require.ErrorIs(t, err, slot.ErrInvalidSlot)

	err = recoverErr(func() { slot.At[int](-1) })
	require.ErrorIs(t, err, slot.ErrInvalidSlot)
}

func TestInvalidSlotTypeMismatch(t *testing.T) {
	r := slot.New(1)
	slot.Set(r, slot.At[string](0), "hello")

	err := recoverErr(func() { slot.Get(r, slot.At[int](0)) })
	require.ErrorIs(t, err, slot.ErrInvalidSlot)

	err = recoverErr(func() { slot.Set(r, slot.At[int](0), 1) })
	require.ErrorIs(t, err, slot.ErrInvalidSlot)
}

func TestObserveTypeMismatch(t *testing.T) {
	r := slot.New(1)
	slot.Observe(r, slot.At[string](0))

	err := recoverErr(func() { slot.Observe(r, slot.At[int](0)) })
	require.ErrorIs(t, err, slot.ErrInvalidSlot)
}

func TestCustomEquality(t *testing.T) {
	r := slot.New(1)
	name := slot.At[string](0).WithEquals(strings.EqualFold)

	notifications := 0
	sub, err := slot.Observe(r, name).
		Subscribe(func(string) { notifications++ }, nil, nil)
	require.NoError(t, err)
	defer sub.Unsubscribe()

	slot.Set(r, name, "ada")
	slot.Set(r, name, "ADA")
	assert.Equal(t, 1, notifications)
	assert.Equal(t, "ada", slot.Get(r, name))

	slot.Set(r, name, "grace")
	assert.Equal(t, 2, notifications)
}

func TestConcurrentObserveSingleCreation(t *testing.T) {
	r := slot.New(1)
	key := slot.At[int](0)

	const goroutines = 32
	channels := make([]*pipe.Source[int], goroutines)
	var start, done sync.WaitGroup
	start.Add(1)
	done.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func(i int) {
			defer done.Done()
			start.Wait()
			channels[i] = slot.Observe(r, key)
		}(i)
	}
	start.Done()
	done.Wait()

	for i := 1; i < goroutines; i++ {
		require.Same(t, channels[0], channels[i])
	}
}

func TestEqualSetDoesNotAllocate(t *testing.T) {
	r := slot.New(1)
	key := slot.At[string](0)
	slot.Set(r, key, "stable")

	allocs := testing.AllocsPerRun(100, func() {
		slot.Set(r, key, "stable")
	})
	assert.Zero(t, allocs)
}

func TestGetDoesNotAllocate(t *testing.T) {
	r := slot.New(1)
	key := slot.At[string](0)
	slot.Set(r, key, "stable")

	allocs := testing.AllocsPerRun(100, func() {
		_ = slot.Get(r, key)
	})
	assert.Zero(t, allocs)
}

func TestSlotFeedsPipeline(t *testing.T) {
	p := newPerson()

	upper := pipe.Map(
		pipe.Filter(
			pipe.From(slot.Observe(p.fields, firstNameKey)),
			func(v string) (bool, error) { return v != "", nil },
		),
		func(v string) (string, error) { return strings.ToUpper(v), nil },
	)

	var got []string
	sub, err := pipe.Subscribe(upper, func(v string) { got = append(got, v) }, nil, nil)
	require.NoError(t, err)
	defer sub.Unsubscribe()

	slot.Set(p.fields, firstNameKey, "Alan")
	slot.Set(p.fields, firstNameKey, "")
	slot.Set(p.fields, firstNameKey, "Grace")
	assert.Equal(t, []string{"ALAN", "GRACE"}, got)
}

func TestCombineTwoFields(t *testing.T) {
	p := newPerson()

	full, sub, err := pipe.Combine2(
		pipe.From(slot.Observe(p.fields, firstNameKey)),
		pipe.From(slot.Observe(p.fields, lastNameKey)),
		func(first, last string) (string, error) { return first + " " + last, nil },
	)
	require.NoError(t, err)
	defer sub.Unsubscribe()

	var got []string
	outSub, err := full.Subscribe(func(v string) { got = append(got, v) }, nil, nil)
	require.NoError(t, err)
	defer outSub.Unsubscribe()

	slot.Set(p.fields, firstNameKey, "Alan")
	slot.Set(p.fields, lastNameKey, "Turing")
	slot.Set(p.fields, firstNameKey, "Alonzo")
	assert.Equal(t, []string{"Alan Turing", "Alonzo Turing"}, got)
}
