package app

import (
	"fmt"
	"math/bits"

	abci "github.com/cometbft/cometbft/abci/types"

	"github.com/happybigmtn/gitcraps/internal/craps"
	"github.com/happybigmtn/gitcraps/internal/state"
)

// settleTally accumulates one settlement pass. Every resolved bet adds its
// reservation to released; wins add the full entitlement (stake + profit)
// to totalWin and the profit portion to totalProfit; losses add the stake
// to totalLost. Nothing touches the ledgers until the pass is complete.
type settleTally struct {
	totalWin    uint64
	totalProfit uint64
	totalLost   uint64
	released    uint64
}

func (t *settleTally) win(stake uint64, r craps.Ratio) error {
	profit, err := craps.Profit(stake, r)
	if err != nil {
		return err
	}
	if t.totalProfit > ^uint64(0)-profit {
		return fmt.Errorf("settlement profit overflow")
	}
	t.totalProfit += profit
	entitlement := stake + profit
	if stake > ^uint64(0)-profit {
		return fmt.Errorf("settlement entitlement overflow")
	}
	if t.totalWin > ^uint64(0)-entitlement {
		return fmt.Errorf("settlement winnings overflow")
	}
	t.totalWin += entitlement
	return nil
}

// push returns the stake with no profit (don't-pass on 12, refunds).
func (t *settleTally) push(stake uint64) error {
	if t.totalWin > ^uint64(0)-stake {
		return fmt.Errorf("settlement winnings overflow")
	}
	t.totalWin += stake
	return nil
}

func (t *settleTally) lose(stake uint64) error {
	if t.totalLost > ^uint64(0)-stake {
		return fmt.Errorf("settlement losses overflow")
	}
	t.totalLost += stake
	return nil
}

// release frees the exact reservation admission added for this bet.
func (t *settleTally) release(bet craps.BetType, sel uint8, stake uint64) error {
	mp, err := craps.MaxPayout(bet, sel, stake)
	if err != nil {
		return err
	}
	if t.released > ^uint64(0)-mp {
		return fmt.Errorf("reservation release overflow")
	}
	t.released += mp
	return nil
}

// settlePosition resolves every outstanding bet for one player against the
// current round's winning square and advances the line-bet phase machine.
func settlePosition(st *state.State, player string, height int64) (*abci.ExecTxResult, error) {
	if player == "" {
		return nil, fmt.Errorf("missing player")
	}
	round := st.Round
	if round == nil {
		return nil, fmt.Errorf("no active round")
	}
	if height > round.ExpiresAt {
		return nil, fmt.Errorf("round expired: expiresAt=%d height=%d", round.ExpiresAt, height)
	}

	g := st.Game
	pos := st.Position(player)

	// A position abandoned in a previous epoch is refunded wholesale, reset
	// into the current epoch, and settles nothing this round.
	if pos.EpochID != g.EpochID {
		if err := refundStalePosition(g, pos); err != nil {
			return nil, err
		}
		pos.LastSettledRound = round.ID
		return okEvent("PositionRefunded", map[string]string{
			"player":  player,
			"roundId": fmt.Sprintf("%d", round.ID),
			"epochId": fmt.Sprintf("%d", g.EpochID),
			"pending": fmt.Sprintf("%d", pos.PendingWinnings),
		}), nil
	}

	if pos.LastSettledRound >= round.ID {
		return nil, fmt.Errorf("already settled: round %d", round.ID)
	}

	if !pos.HasActiveBets() {
		pos.LastSettledRound = round.ID
		return okEvent("PositionSettled", map[string]string{
			"player":  player,
			"roundId": fmt.Sprintf("%d", round.ID),
			"won":     "0",
			"lost":    "0",
		}), nil
	}

	sum, err := craps.Sum(round.WinningSquare)
	if err != nil {
		return nil, err
	}
	isDouble := craps.IsHardway(round.WinningSquare)

	// First settlement of this round freezes the pre-roll phase.
	if g.PhaseRound != round.ID {
		g.PhaseRound = round.ID
		g.PhasePoint = g.Point
		g.PhaseComeOut = g.IsComeOut
	}

	var t settleTally

	if err := settleSingleRoll(pos, sum, &t); err != nil {
		return nil, err
	}
	if err := settleBonusRace(pos, round.WinningSquare, sum, isDouble, &t); err != nil {
		return nil, err
	}
	if err := settleHardways(pos, sum, isDouble, &t); err != nil {
		return nil, err
	}
	if err := settlePlace(pos, sum, &t); err != nil {
		return nil, err
	}
	if err := settleYesNo(pos, sum, &t); err != nil {
		return nil, err
	}
	if err := settleComeFamily(pos, sum, &t); err != nil {
		return nil, err
	}
	sevenOut, err := settleLineBets(g, pos, sum, &t)
	if err != nil {
		return nil, err
	}

	if sevenOut {
		// Whatever survived resolution (non-working place bets) is refunded
		// before the epoch reset wipes it.
		rem, err := pos.TotalActiveStakes()
		if err != nil {
			return nil, err
		}
		if rem > 0 {
			if err := t.push(rem); err != nil {
				return nil, err
			}
		}
		// The position resets entirely, so the full tracked reservation
		// comes off the ledger.
		t.released = pos.ReservedTotal
	}

	g.ReleaseReserved(t.released)
	if t.released > pos.ReservedTotal {
		pos.ReservedTotal = 0
	} else {
		pos.ReservedTotal -= t.released
	}

	if pos.TotalWon > ^uint64(0)-t.totalWin {
		return nil, fmt.Errorf("total won overflow")
	}
	pos.TotalWon += t.totalWin
	if pos.TotalLost > ^uint64(0)-t.totalLost {
		return nil, fmt.Errorf("total lost overflow")
	}
	pos.TotalLost += t.totalLost
	if g.TotalPaid > ^uint64(0)-t.totalWin {
		return nil, fmt.Errorf("total paid overflow")
	}
	g.TotalPaid += t.totalWin
	if g.TotalCollected > ^uint64(0)-t.totalLost {
		return nil, fmt.Errorf("total collected overflow")
	}
	g.TotalCollected += t.totalLost

	// Net bankroll adjustment. If the house cannot cover the net profit it
	// pays what exists, zeroes out, and books the shortfall as debt;
	// settlement never fails on bankroll shortage.
	pendingAdd := t.totalWin
	if t.totalProfit > t.totalLost {
		deficit := t.totalProfit - t.totalLost
		if g.Bankroll >= deficit {
			g.Bankroll -= deficit
		} else {
			shortfall := deficit - g.Bankroll
			g.Bankroll = 0
			pendingAdd = t.totalWin - shortfall
			if pos.UnpaidDebt > ^uint64(0)-shortfall {
				return nil, fmt.Errorf("unpaid debt overflow")
			}
			pos.UnpaidDebt += shortfall
		}
	} else {
		gain := t.totalLost - t.totalProfit
		if g.Bankroll > ^uint64(0)-gain {
			return nil, fmt.Errorf("bankroll overflow on settlement gain")
		}
		g.Bankroll += gain
	}
	if pos.PendingWinnings > ^uint64(0)-pendingAdd {
		return nil, fmt.Errorf("pending winnings overflow")
	}
	pos.PendingWinnings += pendingAdd
	pos.LastSettledRound = round.ID

	if sevenOut {
		if err := g.StartNewEpoch(round.ID); err != nil {
			return nil, err
		}
		pos.ResetForEpoch(g.EpochID)
	}

	return okEvent("PositionSettled", map[string]string{
		"player":  player,
		"roundId": fmt.Sprintf("%d", round.ID),
		"square":  fmt.Sprintf("%d", round.WinningSquare),
		"sum":     fmt.Sprintf("%d", sum),
		"won":     fmt.Sprintf("%d", t.totalWin),
		"lost":    fmt.Sprintf("%d", t.totalLost),
		"pending": fmt.Sprintf("%d", pos.PendingWinnings),
		"debt":    fmt.Sprintf("%d", pos.UnpaidDebt),
		"epochId": fmt.Sprintf("%d", g.EpochID),
		"point":   fmt.Sprintf("%d", g.Point),
	}), nil
}

// settleSingleRoll resolves the bets that live and die on every roll.
func settleSingleRoll(pos *state.Position, sum uint8, t *settleTally) error {
	type singleBet struct {
		bet   craps.BetType
		slot  *uint64
		wins  bool
		ratio craps.Ratio
	}
	singles := []singleBet{
		{craps.Field, &pos.FieldBet, craps.IsFieldWinner(sum), craps.FieldRatio(sum)},
		{craps.AnySeven, &pos.AnySeven, sum == 7, craps.AnySevenRatio},
		{craps.AnyCraps, &pos.AnyCraps, craps.IsCraps(sum), craps.AnyCrapsRatio},
		{craps.YoEleven, &pos.YoEleven, sum == 11, craps.YoElevenRatio},
		{craps.Aces, &pos.Aces, sum == 2, craps.AcesRatio},
		{craps.Twelve, &pos.Twelve, sum == 12, craps.TwelveRatio},
	}
	for _, s := range singles {
		stake := *s.slot
		if stake == 0 {
			continue
		}
		if s.wins {
			if err := t.win(stake, s.ratio); err != nil {
				return err
			}
		} else if err := t.lose(stake); err != nil {
			return err
		}
		if err := t.release(s.bet, 0, stake); err != nil {
			return err
		}
		*s.slot = 0
	}

	for slot := uint8(0); slot < craps.FieldersChoiceSlots; slot++ {
		stake := pos.FieldersChoice[slot]
		if stake == 0 {
			continue
		}
		if craps.FieldersChoiceWins(slot, sum) {
			r, err := craps.FieldersChoiceRatio(slot)
			if err != nil {
				return err
			}
			if err := t.win(stake, r); err != nil {
				return err
			}
		} else if err := t.lose(stake); err != nil {
			return err
		}
		if err := t.release(craps.FieldersChoice, slot, stake); err != nil {
			return err
		}
		pos.FieldersChoice[slot] = 0
	}

	for i := 0; i < 11; i++ {
		stake := pos.NextBets[i]
		if stake == 0 {
			continue
		}
		target := uint8(i + 2)
		if target == sum {
			r, err := craps.NextRatio(target)
			if err != nil {
				return err
			}
			if err := t.win(stake, r); err != nil {
				return err
			}
		} else if err := t.lose(stake); err != nil {
			return err
		}
		if err := t.release(craps.Next, target, stake); err != nil {
			return err
		}
		pos.NextBets[i] = 0
	}
	return nil
}

// settleBonusRace updates the epoch hit trackers and resolves the race and
// streak bets that settle on any 7 or on instant completion.
func settleBonusRace(pos *state.Position, square, sum uint8, isDouble bool, t *settleTally) error {
	if sum == 7 {
		races := []struct {
			bet  craps.BetType
			slot *uint64
		}{
			{craps.Small, &pos.Small},
			{craps.Tall, &pos.Tall},
			{craps.All, &pos.All},
		}
		for _, r := range races {
			stake := *r.slot
			if stake == 0 {
				continue
			}
			if err := t.lose(stake); err != nil {
				return err
			}
			if err := t.release(r.bet, 0, stake); err != nil {
				return err
			}
			*r.slot = 0
		}
		pos.BonusHits = 0

		if pos.Doubles > 0 {
			if r, ok := craps.DoublesRatio(bits.OnesCount8(pos.DoublesMask)); ok {
				if err := t.win(pos.Doubles, r); err != nil {
					return err
				}
			} else if err := t.lose(pos.Doubles); err != nil {
				return err
			}
			if err := t.release(craps.DifferentDoubles, 0, pos.Doubles); err != nil {
				return err
			}
			pos.Doubles = 0
		}
		pos.DoublesMask = 0

		if pos.HotHand > 0 {
			if r, ok := craps.HotHandRatio(bits.OnesCount16(pos.HotHandMask)); ok {
				if err := t.win(pos.HotHand, r); err != nil {
					return err
				}
			} else if err := t.lose(pos.HotHand); err != nil {
				return err
			}
			if err := t.release(craps.HotHand, 0, pos.HotHand); err != nil {
				return err
			}
			pos.HotHand = 0
		}
		pos.HotHandMask = 0

		if pos.Mugsy > 0 {
			if err := t.win(pos.Mugsy, craps.MugsyRatio(pos.MugsyPointPhase)); err != nil {
				return err
			}
			if err := t.release(craps.Mugsy, 0, pos.Mugsy); err != nil {
				return err
			}
			pos.Mugsy = 0
			pos.MugsyPointPhase = false
		}
		return nil
	}

	// Non-7 roll: accumulate trackers, pay instant completions.
	if bit, ok := state.BonusBit(sum); ok {
		pos.BonusHits |= 1 << bit
		pos.HotHandMask |= 1 << bit
	}
	if isDouble {
		di, err := craps.DoubleIndex(square)
		if err != nil {
			return err
		}
		pos.DoublesMask |= 1 << uint(di)
	}

	if pos.Small > 0 && pos.BonusHits&state.BonusSmallMask == state.BonusSmallMask {
		if err := t.win(pos.Small, craps.SmallRatio); err != nil {
			return err
		}
		if err := t.release(craps.Small, 0, pos.Small); err != nil {
			return err
		}
		pos.Small = 0
	}
	if pos.Tall > 0 && pos.BonusHits&state.BonusTallMask == state.BonusTallMask {
		if err := t.win(pos.Tall, craps.TallRatio); err != nil {
			return err
		}
		if err := t.release(craps.Tall, 0, pos.Tall); err != nil {
			return err
		}
		pos.Tall = 0
	}
	if pos.All > 0 && pos.BonusHits == state.BonusAllMask {
		if err := t.win(pos.All, craps.AllRatio); err != nil {
			return err
		}
		if err := t.release(craps.All, 0, pos.All); err != nil {
			return err
		}
		pos.All = 0
	}
	if pos.Doubles > 0 && bits.OnesCount8(pos.DoublesMask) == 6 {
		r, _ := craps.DoublesRatio(6)
		if err := t.win(pos.Doubles, r); err != nil {
			return err
		}
		if err := t.release(craps.DifferentDoubles, 0, pos.Doubles); err != nil {
			return err
		}
		pos.Doubles = 0
		pos.DoublesMask = 0
	}
	if pos.HotHand > 0 && pos.HotHandMask == state.BonusAllMask {
		r, _ := craps.HotHandRatio(10)
		if err := t.win(pos.HotHand, r); err != nil {
			return err
		}
		if err := t.release(craps.HotHand, 0, pos.HotHand); err != nil {
			return err
		}
		pos.HotHand = 0
		pos.HotHandMask = 0
	}
	return nil
}

func settleHardways(pos *state.Position, sum uint8, isDouble bool, t *settleTally) error {
	for i := 0; i < 4; i++ {
		stake := pos.Hardways[i]
		if stake == 0 {
			continue
		}
		target, err := craps.HardwayFromIndex(i)
		if err != nil {
			return err
		}
		switch {
		case sum == target && isDouble:
			r, err := craps.HardwayRatio(target)
			if err != nil {
				return err
			}
			if err := t.win(stake, r); err != nil {
				return err
			}
		case sum == target || sum == 7:
			// Easy way or seven-out.
			if err := t.lose(stake); err != nil {
				return err
			}
		default:
			continue
		}
		if err := t.release(craps.Hardway, target, stake); err != nil {
			return err
		}
		pos.Hardways[i] = 0
	}
	return nil
}

func settlePlace(pos *state.Position, sum uint8, t *settleTally) error {
	for i := 0; i < 6; i++ {
		stake := pos.Place[i]
		if stake == 0 || !pos.PlaceWorking[i] {
			continue
		}
		target, err := craps.PointFromIndex(i)
		if err != nil {
			return err
		}
		switch {
		case sum == target:
			r, err := craps.PlaceRatio(target)
			if err != nil {
				return err
			}
			if err := t.win(stake, r); err != nil {
				return err
			}
		case sum == 7:
			if err := t.lose(stake); err != nil {
				return err
			}
		default:
			continue
		}
		if err := t.release(craps.Place, target, stake); err != nil {
			return err
		}
		pos.Place[i] = 0
		pos.PlaceWorking[i] = false
	}
	return nil
}

func settleYesNo(pos *state.Position, sum uint8, t *settleTally) error {
	for i := 0; i < 11; i++ {
		target := uint8(i + 2)
		if target == 7 {
			continue
		}
		if stake := pos.YesBets[i]; stake > 0 {
			switch {
			case sum == target:
				r, err := craps.YesRatio(target)
				if err != nil {
					return err
				}
				if err := t.win(stake, r); err != nil {
					return err
				}
			case sum == 7:
				if err := t.lose(stake); err != nil {
					return err
				}
			default:
				goto no
			}
			if err := t.release(craps.Yes, target, stake); err != nil {
				return err
			}
			pos.YesBets[i] = 0
		}
	no:
		if stake := pos.NoBets[i]; stake > 0 {
			switch {
			case sum == 7:
				r, err := craps.NoRatio(target)
				if err != nil {
					return err
				}
				if err := t.win(stake, r); err != nil {
					return err
				}
			case sum == target:
				if err := t.lose(stake); err != nil {
					return err
				}
			default:
				continue
			}
			if err := t.release(craps.No, target, stake); err != nil {
				return err
			}
			pos.NoBets[i] = 0
		}
	}
	return nil
}

// settleComeFamily resolves travelling bets per point, exactly like line
// bets scoped to their own point.
func settleComeFamily(pos *state.Position, sum uint8, t *settleTally) error {
	for i := 0; i < 6; i++ {
		target, err := craps.PointFromIndex(i)
		if err != nil {
			return err
		}

		if stake := pos.Come[i]; stake > 0 {
			odds := pos.ComeOdds[i]
			switch sum {
			case target:
				if err := t.win(stake, craps.EvenMoney); err != nil {
					return err
				}
				if odds > 0 {
					r, err := craps.TrueOdds(target)
					if err != nil {
						return err
					}
					if err := t.win(odds, r); err != nil {
						return err
					}
				}
			case 7:
				if err := t.lose(stake); err != nil {
					return err
				}
				if odds > 0 {
					if err := t.lose(odds); err != nil {
						return err
					}
				}
			default:
				goto dontCome
			}
			if err := t.release(craps.Come, target, stake); err != nil {
				return err
			}
			if odds > 0 {
				if err := t.release(craps.ComeOdds, target, odds); err != nil {
					return err
				}
			}
			pos.Come[i] = 0
			pos.ComeOdds[i] = 0
		}

	dontCome:
		if stake := pos.DontCome[i]; stake > 0 {
			odds := pos.DontComeOdds[i]
			switch sum {
			case 7:
				if err := t.win(stake, craps.EvenMoney); err != nil {
					return err
				}
				if odds > 0 {
					r, err := craps.DontTrueOdds(target)
					if err != nil {
						return err
					}
					if err := t.win(odds, r); err != nil {
						return err
					}
				}
			case target:
				if err := t.lose(stake); err != nil {
					return err
				}
				if odds > 0 {
					if err := t.lose(odds); err != nil {
						return err
					}
				}
			default:
				continue
			}
			if err := t.release(craps.DontCome, target, stake); err != nil {
				return err
			}
			if odds > 0 {
				if err := t.release(craps.DontComeOdds, target, odds); err != nil {
					return err
				}
			}
			pos.DontCome[i] = 0
			pos.DontComeOdds[i] = 0
		}
	}
	return nil
}

// settleLineBets runs the come-out/point phase machine for pass and don't
// pass, updates the shooter-run trackers, and resolves the epoch-end bets
// on a seven-out. Returns whether the roll ended the epoch.
func settleLineBets(g *state.GameLedger, pos *state.Position, sum uint8, t *settleTally) (bool, error) {
	if g.PhaseComeOut {
		switch {
		case craps.IsNatural(sum):
			if pos.RideWins < ^uint8(0) {
				pos.RideWins++
			}
			if pos.PassLine > 0 {
				if err := t.win(pos.PassLine, craps.EvenMoney); err != nil {
					return false, err
				}
				if err := t.release(craps.PassLine, 0, pos.PassLine); err != nil {
					return false, err
				}
				pos.PassLine = 0
			}
			if pos.DontPass > 0 {
				if err := t.lose(pos.DontPass); err != nil {
					return false, err
				}
				if err := t.release(craps.DontPass, 0, pos.DontPass); err != nil {
					return false, err
				}
				pos.DontPass = 0
			}

		case craps.IsCraps(sum):
			if pos.PassLine > 0 {
				if err := t.lose(pos.PassLine); err != nil {
					return false, err
				}
				if err := t.release(craps.PassLine, 0, pos.PassLine); err != nil {
					return false, err
				}
				pos.PassLine = 0
			}
			if pos.DontPass > 0 {
				if sum == 12 {
					// Bar the twelve: don't pass pushes.
					if err := t.push(pos.DontPass); err != nil {
						return false, err
					}
				} else if err := t.win(pos.DontPass, craps.EvenMoney); err != nil {
					return false, err
				}
				if err := t.release(craps.DontPass, 0, pos.DontPass); err != nil {
					return false, err
				}
				pos.DontPass = 0
			}

		case craps.IsPointNumber(sum):
			g.SetPoint(sum)
			pos.MugsyPointPhase = true
		}
		return false, nil
	}

	// Point phase.
	point := g.PhasePoint
	switch sum {
	case point:
		if pos.PassLine > 0 {
			if err := t.win(pos.PassLine, craps.EvenMoney); err != nil {
				return false, err
			}
			if err := t.release(craps.PassLine, 0, pos.PassLine); err != nil {
				return false, err
			}
			pos.PassLine = 0
			if odds := pos.PassOdds; odds > 0 {
				r, err := craps.TrueOdds(point)
				if err != nil {
					return false, err
				}
				if err := t.win(odds, r); err != nil {
					return false, err
				}
				if err := t.release(craps.PassOdds, point, odds); err != nil {
					return false, err
				}
				pos.PassOdds = 0
			}
		}
		if pos.DontPass > 0 {
			if err := t.lose(pos.DontPass); err != nil {
				return false, err
			}
			if err := t.release(craps.DontPass, 0, pos.DontPass); err != nil {
				return false, err
			}
			pos.DontPass = 0
			if odds := pos.DontPassOdds; odds > 0 {
				if err := t.lose(odds); err != nil {
					return false, err
				}
				if err := t.release(craps.DontPassOdds, point, odds); err != nil {
					return false, err
				}
				pos.DontPassOdds = 0
			}
		}

		// Point made: same shooter keeps rolling from come-out.
		g.ClearPoint()
		pos.MugsyPointPhase = false
		idx, err := craps.PointIndex(point)
		if err != nil {
			return false, err
		}
		pos.FirePoints |= 1 << uint(idx)
		if pos.ReplayCounts[idx] < ^uint8(0) {
			pos.ReplayCounts[idx]++
		}
		if pos.RideWins < ^uint8(0) {
			pos.RideWins++
		}
		if pos.Fire > 0 && bits.OnesCount8(pos.FirePoints) == 6 {
			r, _ := craps.FireRatio(6)
			if err := t.win(pos.Fire, r); err != nil {
				return false, err
			}
			if err := t.release(craps.Fire, 0, pos.Fire); err != nil {
				return false, err
			}
			pos.Fire = 0
		}
		return false, nil

	case 7:
		// Seven-out.
		if pos.PassLine > 0 {
			if err := t.lose(pos.PassLine); err != nil {
				return false, err
			}
			if err := t.release(craps.PassLine, 0, pos.PassLine); err != nil {
				return false, err
			}
			pos.PassLine = 0
			if odds := pos.PassOdds; odds > 0 {
				if err := t.lose(odds); err != nil {
					return false, err
				}
				if err := t.release(craps.PassOdds, point, odds); err != nil {
					return false, err
				}
				pos.PassOdds = 0
			}
		}
		if pos.DontPass > 0 {
			if err := t.win(pos.DontPass, craps.EvenMoney); err != nil {
				return false, err
			}
			if err := t.release(craps.DontPass, 0, pos.DontPass); err != nil {
				return false, err
			}
			pos.DontPass = 0
			if odds := pos.DontPassOdds; odds > 0 {
				r, err := craps.DontTrueOdds(point)
				if err != nil {
					return false, err
				}
				if err := t.win(odds, r); err != nil {
					return false, err
				}
				if err := t.release(craps.DontPassOdds, point, odds); err != nil {
					return false, err
				}
				pos.DontPassOdds = 0
			}
		}

		// Epoch-end shooter-run bets settle against their trackers.
		if pos.Fire > 0 {
			if r, ok := craps.FireRatio(bits.OnesCount8(pos.FirePoints)); ok {
				if err := t.win(pos.Fire, r); err != nil {
					return false, err
				}
			} else if err := t.lose(pos.Fire); err != nil {
				return false, err
			}
			if err := t.release(craps.Fire, 0, pos.Fire); err != nil {
				return false, err
			}
			pos.Fire = 0
		}
		if pos.Replay > 0 {
			best := 0
			for _, c := range pos.ReplayCounts {
				if int(c) > best {
					best = int(c)
				}
			}
			if r, ok := craps.ReplayRatio(best); ok {
				if err := t.win(pos.Replay, r); err != nil {
					return false, err
				}
			} else if err := t.lose(pos.Replay); err != nil {
				return false, err
			}
			if err := t.release(craps.Replay, 0, pos.Replay); err != nil {
				return false, err
			}
			pos.Replay = 0
		}
		if pos.RideTheLine > 0 {
			if r, ok := craps.RideRatio(int(pos.RideWins)); ok {
				if err := t.win(pos.RideTheLine, r); err != nil {
					return false, err
				}
			} else if err := t.lose(pos.RideTheLine); err != nil {
				return false, err
			}
			if err := t.release(craps.RideTheLine, 0, pos.RideTheLine); err != nil {
				return false, err
			}
			pos.RideTheLine = 0
		}
		return true, nil
	}

	return false, nil
}
