package craps

import (
	"fmt"
	"math/bits"
)

// MaxBetAmount is the largest stake accepted for a single wager, in minor
// units.
const MaxBetAmount uint64 = 100_000_000_000

// Ratio is a payout expressed as profit per stake, Num:Den.
type Ratio struct {
	Num uint64
	Den uint64
}

// Profit returns floor(stake * r.Num / r.Den) using a 128-bit intermediate.
func Profit(stake uint64, r Ratio) (uint64, error) {
	if r.Den == 0 {
		return 0, fmt.Errorf("zero payout denominator")
	}
	hi, lo := bits.Mul64(stake, r.Num)
	if hi >= r.Den {
		return 0, fmt.Errorf("payout overflow: stake=%d ratio=%d:%d", stake, r.Num, r.Den)
	}
	q, _ := bits.Div64(hi, lo, r.Den)
	return q, nil
}

// WinAmount returns stake plus profit, the full entitlement for a won bet.
func WinAmount(stake uint64, r Ratio) (uint64, error) {
	p, err := Profit(stake, r)
	if err != nil {
		return 0, err
	}
	if stake > ^uint64(0)-p {
		return 0, fmt.Errorf("win amount overflow: stake=%d profit=%d", stake, p)
	}
	return stake + p, nil
}

// Line and odds families.

var EvenMoney = Ratio{1, 1}

// TrueOdds is the zero-edge ratio for pass/come odds on a point.
func TrueOdds(point uint8) (Ratio, error) {
	switch point {
	case 4, 10:
		return Ratio{2, 1}, nil
	case 5, 9:
		return Ratio{3, 2}, nil
	case 6, 8:
		return Ratio{6, 5}, nil
	}
	return Ratio{}, fmt.Errorf("invalid point: %d", point)
}

// DontTrueOdds is the laying-odds inverse used by don't-side odds bets.
func DontTrueOdds(point uint8) (Ratio, error) {
	r, err := TrueOdds(point)
	if err != nil {
		return Ratio{}, err
	}
	return Ratio{r.Den, r.Num}, nil
}

func PlaceRatio(point uint8) (Ratio, error) {
	switch point {
	case 4, 10:
		return Ratio{9, 5}, nil
	case 5, 9:
		return Ratio{7, 5}, nil
	case 6, 8:
		return Ratio{7, 6}, nil
	}
	return Ratio{}, fmt.Errorf("invalid place number: %d", point)
}

func HardwayRatio(sum uint8) (Ratio, error) {
	switch sum {
	case 4, 10:
		return Ratio{7, 1}, nil
	case 6, 8:
		return Ratio{9, 1}, nil
	}
	return Ratio{}, fmt.Errorf("invalid hardway total: %d", sum)
}

// Single-roll families.

var (
	AnySevenRatio  = Ratio{4, 1}
	AnyCrapsRatio  = Ratio{7, 1}
	YoElevenRatio  = Ratio{15, 1}
	AcesRatio      = Ratio{30, 1}
	TwelveRatio    = Ratio{30, 1}
	FieldTwoTwelve = Ratio{2, 1}
)

// FieldRatio returns the payout for a winning field roll. Losing sums are
// the caller's concern.
func FieldRatio(sum uint8) Ratio {
	if sum == 2 || sum == 12 {
		return FieldTwoTwelve
	}
	return EvenMoney
}

// YesRatio pays true odds on the target total rolling before a 7.
func YesRatio(sum uint8) (Ratio, error) {
	w := Ways(sum)
	if w == 0 || sum == 7 {
		return Ratio{}, fmt.Errorf("invalid yes total: %d", sum)
	}
	return Ratio{6, uint64(w)}, nil
}

// NoRatio pays inverse true odds on a 7 rolling before the target total.
func NoRatio(sum uint8) (Ratio, error) {
	w := Ways(sum)
	if w == 0 || sum == 7 {
		return Ratio{}, fmt.Errorf("invalid no total: %d", sum)
	}
	return Ratio{uint64(w), 6}, nil
}

// NextRatio pays true odds on hopping the exact total on the next roll.
func NextRatio(sum uint8) (Ratio, error) {
	w := Ways(sum)
	if w == 0 {
		return Ratio{}, fmt.Errorf("invalid next total: %d", sum)
	}
	return Ratio{uint64(36 - w), uint64(w)}, nil
}

// FieldersChoiceRatio pays by selector group: 0 wins on 2/3/4, 1 wins on
// 9/10/11, 2 wins on 2/12 only.
func FieldersChoiceRatio(slot uint8) (Ratio, error) {
	switch slot {
	case 0, 1:
		return Ratio{2, 1}, nil
	case 2:
		return Ratio{5, 1}, nil
	}
	return Ratio{}, fmt.Errorf("invalid fielder's choice slot: %d", slot)
}

// FieldersChoiceWins reports whether the group wins on the given total.
func FieldersChoiceWins(slot, sum uint8) bool {
	switch slot {
	case 0:
		return sum >= 2 && sum <= 4
	case 1:
		return sum >= 9 && sum <= 11
	case 2:
		return sum == 2 || sum == 12
	}
	return false
}

// Bonus race and shooter-run families.

var (
	SmallRatio = Ratio{34, 1}
	TallRatio  = Ratio{34, 1}
	AllRatio   = Ratio{175, 1}
)

// FireRatio pays by the count of distinct points made across the epoch.
func FireRatio(points int) (Ratio, bool) {
	switch points {
	case 4:
		return Ratio{24, 1}, true
	case 5:
		return Ratio{249, 1}, true
	case 6:
		return Ratio{999, 1}, true
	}
	return Ratio{}, false
}

// DoublesRatio pays by the count of unique doubles rolled across the epoch.
func DoublesRatio(count int) (Ratio, bool) {
	switch count {
	case 3:
		return Ratio{4, 1}, true
	case 4:
		return Ratio{8, 1}, true
	case 5:
		return Ratio{15, 1}, true
	case 6:
		return Ratio{100, 1}, true
	}
	return Ratio{}, false
}

// HotHandRatio pays by the count of distinct non-7 totals rolled.
func HotHandRatio(count int) (Ratio, bool) {
	switch count {
	case 9:
		return Ratio{20, 1}, true
	case 10:
		return Ratio{150, 1}, true
	}
	return Ratio{}, false
}

// RideRatio pays by the count of line wins ridden across the epoch.
func RideRatio(wins int) (Ratio, bool) {
	switch {
	case wins >= 7:
		return Ratio{50, 1}, true
	case wins == 6:
		return Ratio{25, 1}, true
	case wins == 5:
		return Ratio{10, 1}, true
	case wins == 4:
		return Ratio{5, 1}, true
	case wins == 3:
		return Ratio{2, 1}, true
	}
	return Ratio{}, false
}

// ReplayRatio pays by the highest repeat count of a single point.
func ReplayRatio(count int) (Ratio, bool) {
	switch {
	case count >= 5:
		return Ratio{1000, 1}, true
	case count == 4:
		return Ratio{120, 1}, true
	case count == 3:
		return Ratio{70, 1}, true
	}
	return Ratio{}, false
}

// MugsyRatio pays on any 7; the ratio depends on the phase the bet's epoch
// is in when the 7 arrives.
func MugsyRatio(pointPhase bool) Ratio {
	if pointPhase {
		return Ratio{3, 1}
	}
	return Ratio{2, 1}
}

// MaxRatio is the worst-case payout ratio for a category, used to size the
// bankroll reservation at admission. For tiered families this is the top
// tier; for the field it is the 2/12 premium.
func MaxRatio(bet BetType, pointOrSum uint8) (Ratio, error) {
	switch bet {
	case PassLine, DontPass, Come, DontCome:
		return EvenMoney, nil
	case PassOdds, ComeOdds:
		return TrueOdds(pointOrSum)
	case DontPassOdds, DontComeOdds:
		// Reserved at straight true odds; the laying payout is strictly
		// smaller, so the reservation covers it.
		return TrueOdds(pointOrSum)
	case Place:
		return PlaceRatio(pointOrSum)
	case Hardway:
		return HardwayRatio(pointOrSum)
	case Field:
		return FieldTwoTwelve, nil
	case AnySeven:
		return AnySevenRatio, nil
	case AnyCraps:
		return AnyCrapsRatio, nil
	case YoEleven:
		return YoElevenRatio, nil
	case Aces:
		return AcesRatio, nil
	case Twelve:
		return TwelveRatio, nil
	case Small:
		return SmallRatio, nil
	case Tall:
		return TallRatio, nil
	case All:
		return AllRatio, nil
	case Fire:
		return Ratio{999, 1}, nil
	case DifferentDoubles:
		return Ratio{100, 1}, nil
	case Mugsy:
		return Ratio{3, 1}, nil
	case HotHand:
		return Ratio{150, 1}, nil
	case Replay:
		return Ratio{1000, 1}, nil
	case RideTheLine:
		return Ratio{50, 1}, nil
	case FieldersChoice:
		return FieldersChoiceRatio(pointOrSum)
	case Yes:
		return YesRatio(pointOrSum)
	case No:
		return NoRatio(pointOrSum)
	case Next:
		return NextRatio(pointOrSum)
	}
	return Ratio{}, fmt.Errorf("invalid bet type: %d", uint8(bet))
}

// MaxPayout is the full worst-case entitlement (stake included) reserved
// against the bankroll at admission.
func MaxPayout(bet BetType, pointOrSum uint8, stake uint64) (uint64, error) {
	r, err := MaxRatio(bet, pointOrSum)
	if err != nil {
		return 0, err
	}
	return WinAmount(stake, r)
}
