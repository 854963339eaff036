package craps

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProfit(t *testing.T) {
	cases := []struct {
		stake uint64
		r     Ratio
		want  uint64
	}{
		{100, EvenMoney, 100},
		{60, Ratio{7, 6}, 70},   // place six
		{50, Ratio{9, 5}, 90},   // place four
		{100, Ratio{4, 1}, 400}, // any seven
		{100, Ratio{3, 2}, 150}, // odds on five
		{100, Ratio{6, 5}, 120}, // odds on six
		{100, Ratio{2, 3}, 66},  // laying odds, floored
		{7, Ratio{1, 2}, 3},     // floor division
	}
	for _, c := range cases {
		got, err := Profit(c.stake, c.r)
		require.NoError(t, err)
		require.Equal(t, c.want, got, "stake=%d ratio=%d:%d", c.stake, c.r.Num, c.r.Den)
	}
}

func TestProfitOverflow(t *testing.T) {
	_, err := Profit(^uint64(0), Ratio{2, 1})
	require.Error(t, err)

	_, err = Profit(10, Ratio{1, 0})
	require.Error(t, err)

	// Max stake at the steepest table ratio stays well inside 64 bits.
	got, err := Profit(MaxBetAmount, Ratio{1000, 1})
	require.NoError(t, err)
	require.Equal(t, MaxBetAmount*1000, got)
}

func TestWinAmount(t *testing.T) {
	got, err := WinAmount(60, Ratio{7, 6})
	require.NoError(t, err)
	require.Equal(t, uint64(130), got)

	_, err = WinAmount(^uint64(0), EvenMoney)
	require.Error(t, err)
}

func TestTrueOdds(t *testing.T) {
	for point, want := range map[uint8]Ratio{
		4: {2, 1}, 10: {2, 1},
		5: {3, 2}, 9: {3, 2},
		6: {6, 5}, 8: {6, 5},
	} {
		got, err := TrueOdds(point)
		require.NoError(t, err)
		require.Equal(t, want, got)

		dont, err := DontTrueOdds(point)
		require.NoError(t, err)
		require.Equal(t, Ratio{want.Den, want.Num}, dont)
	}
	_, err := TrueOdds(7)
	require.Error(t, err)
}

func TestPlaceAndHardwayRatios(t *testing.T) {
	for point, want := range map[uint8]Ratio{
		4: {9, 5}, 10: {9, 5},
		5: {7, 5}, 9: {7, 5},
		6: {7, 6}, 8: {7, 6},
	} {
		got, err := PlaceRatio(point)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	for sum, want := range map[uint8]Ratio{
		4: {7, 1}, 10: {7, 1},
		6: {9, 1}, 8: {9, 1},
	} {
		got, err := HardwayRatio(sum)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := HardwayRatio(5)
	require.Error(t, err)
}

func TestFieldRatio(t *testing.T) {
	require.Equal(t, Ratio{2, 1}, FieldRatio(2))
	require.Equal(t, Ratio{2, 1}, FieldRatio(12))
	require.Equal(t, EvenMoney, FieldRatio(3))
	require.Equal(t, EvenMoney, FieldRatio(11))
}

func TestYesNoNextRatios(t *testing.T) {
	y, err := YesRatio(6)
	require.NoError(t, err)
	require.Equal(t, Ratio{6, 5}, y)

	n, err := NoRatio(4)
	require.NoError(t, err)
	require.Equal(t, Ratio{3, 6}, n)

	nx, err := NextRatio(2)
	require.NoError(t, err)
	require.Equal(t, Ratio{35, 1}, nx)

	nx, err = NextRatio(7)
	require.NoError(t, err)
	require.Equal(t, Ratio{30, 6}, nx)

	_, err = YesRatio(7)
	require.Error(t, err)
	_, err = NoRatio(13)
	require.Error(t, err)
	_, err = NextRatio(1)
	require.Error(t, err)
}

func TestTieredRatios(t *testing.T) {
	r, ok := FireRatio(4)
	require.True(t, ok)
	require.Equal(t, Ratio{24, 1}, r)
	r, ok = FireRatio(6)
	require.True(t, ok)
	require.Equal(t, Ratio{999, 1}, r)
	_, ok = FireRatio(3)
	require.False(t, ok)

	r, ok = DoublesRatio(3)
	require.True(t, ok)
	require.Equal(t, Ratio{4, 1}, r)
	r, ok = DoublesRatio(6)
	require.True(t, ok)
	require.Equal(t, Ratio{100, 1}, r)
	_, ok = DoublesRatio(2)
	require.False(t, ok)

	r, ok = HotHandRatio(10)
	require.True(t, ok)
	require.Equal(t, Ratio{150, 1}, r)
	_, ok = HotHandRatio(8)
	require.False(t, ok)

	r, ok = RideRatio(3)
	require.True(t, ok)
	require.Equal(t, Ratio{2, 1}, r)
	r, ok = RideRatio(9)
	require.True(t, ok)
	require.Equal(t, Ratio{50, 1}, r)
	_, ok = RideRatio(2)
	require.False(t, ok)

	r, ok = ReplayRatio(5)
	require.True(t, ok)
	require.Equal(t, Ratio{1000, 1}, r)
	_, ok = ReplayRatio(2)
	require.False(t, ok)

	require.Equal(t, Ratio{2, 1}, MugsyRatio(false))
	require.Equal(t, Ratio{3, 1}, MugsyRatio(true))
}

func TestMaxRatioCoversEveryCategory(t *testing.T) {
	for b := BetType(0); b.Valid(); b++ {
		sel := uint8(0)
		switch b {
		case PassOdds, DontPassOdds, ComeOdds, DontComeOdds, Come, DontCome, Place:
			sel = 4
		case Hardway:
			sel = 10
		case Yes, No:
			sel = 6
		case Next:
			sel = 12
		case FieldersChoice:
			sel = 2
		}
		r, err := MaxRatio(b, sel)
		require.NoError(t, err, "bet %s", b)
		require.NotZero(t, r.Den, "bet %s", b)
	}
	_, err := MaxRatio(BetType(200), 0)
	require.Error(t, err)
}

// The don't-side odds reservation must never be smaller than the actual
// laying payout.
func TestDontOddsReservationCoversPayout(t *testing.T) {
	for _, point := range []uint8{4, 5, 6, 8, 9, 10} {
		reserve, err := MaxRatio(DontPassOdds, point)
		require.NoError(t, err)
		pay, err := DontTrueOdds(point)
		require.NoError(t, err)

		stake := uint64(300)
		reserved, err := WinAmount(stake, reserve)
		require.NoError(t, err)
		paid, err := WinAmount(stake, pay)
		require.NoError(t, err)
		require.GreaterOrEqual(t, reserved, paid, "point %d", point)
	}
}

// Every tiered family must reserve at its top tier, not at a lower rung.
func TestMaxRatioCoversTopTier(t *testing.T) {
	for bet, top := range map[BetType]Ratio{
		Fire:             {999, 1},
		Replay:           {1000, 1},
		RideTheLine:      {50, 1},
		HotHand:          {150, 1},
		DifferentDoubles: {100, 1},
		Mugsy:            {3, 1},
	} {
		r, err := MaxRatio(bet, 0)
		require.NoError(t, err, "bet %s", bet)
		require.Equal(t, top, r, "bet %s", bet)
	}
}

func TestMaxPayout(t *testing.T) {
	got, err := MaxPayout(PassLine, 0, 500)
	require.NoError(t, err)
	require.Equal(t, uint64(1000), got)

	got, err = MaxPayout(Field, 0, 100)
	require.NoError(t, err)
	require.Equal(t, uint64(300), got)

	got, err = MaxPayout(Replay, 0, 10)
	require.NoError(t, err)
	require.Equal(t, uint64(10010), got)

	got, err = MaxPayout(RideTheLine, 0, 10)
	require.NoError(t, err)
	require.Equal(t, uint64(510), got)
}
