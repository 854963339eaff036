package craps

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiceMapping(t *testing.T) {
	d1, d2, err := Dice(0)
	require.NoError(t, err)
	require.Equal(t, uint8(1), d1)
	require.Equal(t, uint8(1), d2)

	d1, d2, err = Dice(7)
	require.NoError(t, err)
	require.Equal(t, uint8(2), d1)
	require.Equal(t, uint8(2), d2)

	d1, d2, err = Dice(9)
	require.NoError(t, err)
	require.Equal(t, uint8(2), d1)
	require.Equal(t, uint8(4), d2)

	d1, d2, err = Dice(35)
	require.NoError(t, err)
	require.Equal(t, uint8(6), d1)
	require.Equal(t, uint8(6), d2)

	_, _, err = Dice(36)
	require.Error(t, err)
}

func TestSumCoversBoard(t *testing.T) {
	counts := map[uint8]uint8{}
	for sq := uint8(0); sq < BoardSize; sq++ {
		sum, err := Sum(sq)
		require.NoError(t, err)
		require.GreaterOrEqual(t, sum, uint8(2))
		require.LessOrEqual(t, sum, uint8(12))
		counts[sum]++
	}
	// Ways must agree with the actual board distribution.
	for sum := uint8(2); sum <= 12; sum++ {
		require.Equal(t, Ways(sum), counts[sum], "sum %d", sum)
	}
	require.Equal(t, uint8(0), Ways(1))
	require.Equal(t, uint8(0), Ways(13))
}

func TestIsHardway(t *testing.T) {
	doubles := map[uint8]bool{0: true, 7: true, 14: true, 21: true, 28: true, 35: true}
	for sq := uint8(0); sq < BoardSize; sq++ {
		require.Equal(t, doubles[sq], IsHardway(sq), "square %d", sq)
	}
	require.False(t, IsHardway(36))
}

func TestPointIndexRoundTrip(t *testing.T) {
	for _, p := range []uint8{4, 5, 6, 8, 9, 10} {
		i, err := PointIndex(p)
		require.NoError(t, err)
		back, err := PointFromIndex(i)
		require.NoError(t, err)
		require.Equal(t, p, back)
	}
	_, err := PointIndex(7)
	require.Error(t, err)
	_, err = PointIndex(11)
	require.Error(t, err)
}

func TestHardwayIndexRoundTrip(t *testing.T) {
	for _, s := range []uint8{4, 6, 8, 10} {
		i, err := HardwayIndex(s)
		require.NoError(t, err)
		back, err := HardwayFromIndex(i)
		require.NoError(t, err)
		require.Equal(t, s, back)
	}
	_, err := HardwayIndex(5)
	require.Error(t, err)
}

func TestDoubleIndex(t *testing.T) {
	for pip := 0; pip < 6; pip++ {
		i, err := DoubleIndex(uint8(pip * 7))
		require.NoError(t, err)
		require.Equal(t, pip, i)
	}
	_, err := DoubleIndex(1)
	require.Error(t, err)
}

func TestPredicates(t *testing.T) {
	require.True(t, IsCraps(2))
	require.True(t, IsCraps(3))
	require.True(t, IsCraps(12))
	require.False(t, IsCraps(7))

	require.True(t, IsNatural(7))
	require.True(t, IsNatural(11))
	require.False(t, IsNatural(6))

	for _, s := range []uint8{4, 5, 6, 8, 9, 10} {
		require.True(t, IsPointNumber(s))
	}
	require.False(t, IsPointNumber(7))

	for _, s := range []uint8{2, 3, 4, 9, 10, 11, 12} {
		require.True(t, IsFieldWinner(s))
	}
	for _, s := range []uint8{5, 6, 7, 8} {
		require.False(t, IsFieldWinner(s))
	}
}
