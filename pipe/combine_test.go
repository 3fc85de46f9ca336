package pipe_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/delaneyj/pipeparty/pipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func joinName(first, last string) (string, error) {
	return first + " " + last, nil
}

func TestCombine2WaitsForAllInputs(t *testing.T) {
	first := pipe.NewSource[string]()
	last := pipe.NewSource[string]()

	full, sub, err := pipe.Combine2(pipe.From(first), pipe.From(last), joinName)
	require.NoError(t, err)
	defer sub.Unsubscribe()

	var got []string
	outSub, err := full.Subscribe(collector(&got), nil, nil)
	require.NoError(t, err)
	defer outSub.Unsubscribe()

	first.Next("Alan")
	assert.Empty(t, got, "nothing until every input has emitted")

	last.Next("Turing")
	first.Next("Alonzo")
	last.Next("Church")
	assert.Equal(t, []string{"Alan Turing", "Alonzo Turing", "Alonzo Church"}, got)
}

func TestCombine3LatestValues(t *testing.T) {
	a := pipe.NewSource[int]()
	b := pipe.NewSource[int]()
	c := pipe.NewSource[int]()

	sums, sub, err := pipe.Combine3(pipe.From(a), pipe.From(b), pipe.From(c),
		func(x, y, z int) (int, error) { return x + y + z, nil })
	require.NoError(t, err)
	defer sub.Unsubscribe()

	var got []int
	outSub, err := sums.Subscribe(collector(&got), nil, nil)
	require.NoError(t, err)
	defer outSub.Unsubscribe()

	a.Next(1)
	b.Next(10)
	c.Next(100)
	a.Next(2)
	assert.Equal(t, []int{111, 112}, got)
}

func TestCombine4OverStreams(t *testing.T) {
	a := pipe.NewSource[int]()
	b := pipe.NewSource[int]()
	c := pipe.NewSource[int]()
	d := pipe.NewSource[int]()

	// Inputs may themselves be chains, not just raw sources.
	doubled := pipe.Map(pipe.From(d), func(v int) (int, error) { return v * 2, nil })
	combined, sub, err := pipe.Combine4(pipe.From(a), pipe.From(b), pipe.From(c), doubled,
		func(w, x, y, z int) (string, error) {
			return fmt.Sprintf("%d-%d-%d-%d", w, x, y, z), nil
		})
	require.NoError(t, err)
	defer sub.Unsubscribe()

	var got []string
	outSub, err := combined.Subscribe(collector(&got), nil, nil)
	require.NoError(t, err)
	defer outSub.Unsubscribe()

	a.Next(1)
	b.Next(2)
	c.Next(3)
	d.Next(4)
	assert.Equal(t, []string{"1-2-3-8"}, got)
}

func TestCombineCompletesWhenAllInputsComplete(t *testing.T) {
	a := pipe.NewSource[int]()
	b := pipe.NewSource[int]()

	out, sub, err := pipe.Combine2(pipe.From(a), pipe.From(b),
		func(x, y int) (int, error) { return x + y, nil })
	require.NoError(t, err)
	defer sub.Unsubscribe()

	completed := false
	_, err = out.Subscribe(nil, nil, func() { completed = true })
	require.NoError(t, err)

	a.Complete()
	assert.False(t, completed, "one input still live")
	b.Complete()
	assert.True(t, completed)
}

func TestCombineFailsOnFirstInputError(t *testing.T) {
	a := pipe.NewSource[int]()
	b := pipe.NewSource[int]()

	out, sub, err := pipe.Combine2(pipe.From(a), pipe.From(b),
		func(x, y int) (int, error) { return x + y, nil })
	require.NoError(t, err)
	defer sub.Unsubscribe()

	boom := errors.New("boom")
	var gotErr error
	_, err = out.Subscribe(nil, func(err error) { gotErr = err }, nil)
	require.NoError(t, err)

	a.Error(boom)
	assert.Same(t, boom, gotErr)

	// The failed combine detached from the surviving input.
	b.Next(1)
}

func TestCombineFunctionErrorBecomesStageError(t *testing.T) {
	a := pipe.NewSource[int]()
	b := pipe.NewSource[int]()

	out, sub, err := pipe.Combine2(pipe.From(a), pipe.From(b),
		func(x, y int) (int, error) { return 0, errors.New("cannot combine") })
	require.NoError(t, err)
	defer sub.Unsubscribe()

	var gotErr error
	_, err = out.Subscribe(nil, func(err error) { gotErr = err }, nil)
	require.NoError(t, err)

	a.Next(1)
	b.Next(2)

	var stageErr *pipe.StageError
	require.ErrorAs(t, gotErr, &stageErr)
	assert.Equal(t, "combine", stageErr.Stage)
}

func TestCombineOnTerminatedInputFails(t *testing.T) {
	a := pipe.NewSource[int]()
	b := pipe.NewSource[int]()
	b.Complete()

	_, _, err := pipe.Combine2(pipe.From(a), pipe.From(b),
		func(x, y int) (int, error) { return x + y, nil })
	require.ErrorIs(t, err, pipe.ErrAlreadyTerminated)
}

func TestCombineUnsubscribeSilencesOutput(t *testing.T) {
	a := pipe.NewSource[int]()
	b := pipe.NewSource[int]()

	out, sub, err := pipe.Combine2(pipe.From(a), pipe.From(b),
		func(x, y int) (int, error) { return x + y, nil })
	require.NoError(t, err)

	var got []int
	outSub, err := out.Subscribe(collector(&got), nil, nil)
	require.NoError(t, err)
	defer outSub.Unsubscribe()

	a.Next(1)
	b.Next(2)
	sub.Unsubscribe()
	a.Next(10)

	assert.Equal(t, []int{3}, got)
}
