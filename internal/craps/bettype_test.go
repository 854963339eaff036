package craps

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// The numeric values are the tx wire contract; renumbering is a consensus
// break.
func TestBetTypeWireValues(t *testing.T) {
	want := map[BetType]uint8{
		PassLine: 0, DontPass: 1, PassOdds: 2, DontPassOdds: 3,
		Come: 4, DontCome: 5, ComeOdds: 6, DontComeOdds: 7,
		Place: 8, Hardway: 9, Field: 10, AnySeven: 11, AnyCraps: 12,
		YoEleven: 13, Aces: 14, Twelve: 15,
		Small: 16, Tall: 17, All: 18, Fire: 19,
		DifferentDoubles: 20, RideTheLine: 21, Mugsy: 22, HotHand: 23,
		Replay: 24, FieldersChoice: 25, Yes: 26, No: 27, Next: 28,
	}
	for b, v := range want {
		require.Equal(t, v, uint8(b), "bet %s", b)
		require.True(t, b.Valid())
	}
	require.Len(t, want, int(numBetTypes))
	require.False(t, BetType(29).Valid())
}

func TestBetTypeString(t *testing.T) {
	require.Equal(t, "passLine", PassLine.String())
	require.Equal(t, "differentDoubles", DifferentDoubles.String())
	require.Equal(t, "next", Next.String())
	require.Equal(t, "betType(99)", BetType(99).String())
}

func TestSelectorRequirements(t *testing.T) {
	for _, b := range []BetType{Come, DontCome, ComeOdds, DontComeOdds, Place} {
		require.True(t, b.NeedsPoint(), "bet %s", b)
	}
	for _, b := range []BetType{Hardway, Yes, No, Next} {
		require.True(t, b.NeedsSum(), "bet %s", b)
	}
	require.False(t, PassLine.NeedsPoint())
	require.False(t, Field.NeedsSum())
}
