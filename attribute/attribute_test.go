package attribute

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterRejectsInvalidName(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Register(NewAttribute("1bad", Node, Int))
	require.ErrorIs(t, err, ErrInvalidName)
}

func TestRegisterRejectsDuplicate(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Register(NewAttribute("Label", Node, String))
	require.NoError(t, err)
	_, err = reg.Register(NewAttribute("Label", Node, String))
	require.ErrorIs(t, err, ErrDuplicate)
}

func TestNamesPreservesInsertionOrder(t *testing.T) {
	reg := NewRegistry()
	_, _ = reg.Register(NewAttribute("Zeta", Node, Int))
	_, _ = reg.Register(NewAttribute("Alpha", Node, Int))
	require.Equal(t, []string{"Zeta", "Alpha"}, reg.Names())
}

func TestRemoveThenReAddSameName(t *testing.T) {
	reg := NewRegistry()
	_, _ = reg.Register(NewAttribute("Degree", Node, Int))
	reg.Remove("Degree")
	_, err := reg.Get("Degree")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = reg.Register(NewAttribute("Degree", Node, Int))
	require.NoError(t, err)
}

func TestSharedValueRequiresFlagAndAgreement(t *testing.T) {
	reg := NewRegistry()
	values := map[uint32]Value{0: IntValue(5), 1: IntValue(5), 2: IntValue(7)}
	_, _ = reg.Register(NewAttribute("Weight", Edge, Int).
		WithValueFunc(func(id uint32) Value { return values[id] }).
		WithFlags(FindShared))

	_, ok := reg.SharedValue("Weight", []uint32{0, 1, 2})
	require.False(t, ok, "disagreeing values must not report shared")

	shared, ok := reg.SharedValue("Weight", []uint32{0, 1})
	require.True(t, ok)
	require.Equal(t, int64(5), shared.Int)
}

func TestComputeAutoRange(t *testing.T) {
	reg := NewRegistry()
	values := map[uint32]Value{0: FloatValue(1.5), 1: FloatValue(-2), 2: FloatValue(9)}
	_, _ = reg.Register(NewAttribute("Score", Node, Float).
		WithValueFunc(func(id uint32) Value { return values[id] }).
		WithFlags(AutoRange))

	r, err := reg.ComputeAutoRange("Score", []uint32{0, 1, 2})
	require.NoError(t, err)
	require.Equal(t, -2.0, r.Min)
	require.Equal(t, 9.0, r.Max)
}
