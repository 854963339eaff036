package app

import (
	"fmt"

	abci "github.com/cometbft/cometbft/abci/types"

	"github.com/happybigmtn/gitcraps/internal/codec"
	"github.com/happybigmtn/gitcraps/internal/craps"
	"github.com/happybigmtn/gitcraps/internal/state"
)

// betTarget is the admission-time resolution of a wager: the stake slot it
// accumulates into and the selector the payout table sizes it with.
type betTarget struct {
	slot *uint64
	sel  uint8
}

// resolveBetTarget validates phase and selector rules for a category and
// locates its stake slot.
func resolveBetTarget(g *state.GameLedger, pos *state.Position, bet craps.BetType, sel uint8) (betTarget, error) {
	noSelector := func() error {
		if sel != 0 {
			return fmt.Errorf("%s takes no point/sum selector, got %d", bet, sel)
		}
		return nil
	}
	comeOutOnly := func() error {
		if !g.IsComeOut {
			return fmt.Errorf("%s only allowed during come-out", bet)
		}
		return nil
	}

	switch bet {
	case craps.PassLine:
		if err := noSelector(); err != nil {
			return betTarget{}, err
		}
		if err := comeOutOnly(); err != nil {
			return betTarget{}, err
		}
		return betTarget{&pos.PassLine, 0}, nil

	case craps.DontPass:
		if err := noSelector(); err != nil {
			return betTarget{}, err
		}
		if err := comeOutOnly(); err != nil {
			return betTarget{}, err
		}
		return betTarget{&pos.DontPass, 0}, nil

	case craps.PassOdds:
		if err := noSelector(); err != nil {
			return betTarget{}, err
		}
		if g.IsComeOut || g.Point == 0 {
			return betTarget{}, fmt.Errorf("passOdds requires an established point")
		}
		if pos.PassLine == 0 {
			return betTarget{}, fmt.Errorf("passOdds requires a pass line bet")
		}
		return betTarget{&pos.PassOdds, g.Point}, nil

	case craps.DontPassOdds:
		if err := noSelector(); err != nil {
			return betTarget{}, err
		}
		if g.IsComeOut || g.Point == 0 {
			return betTarget{}, fmt.Errorf("dontPassOdds requires an established point")
		}
		if pos.DontPass == 0 {
			return betTarget{}, fmt.Errorf("dontPassOdds requires a don't pass bet")
		}
		return betTarget{&pos.DontPassOdds, g.Point}, nil

	case craps.Come, craps.DontCome:
		i, err := craps.PointIndex(sel)
		if err != nil {
			return betTarget{}, err
		}
		if g.IsComeOut {
			return betTarget{}, fmt.Errorf("%s only allowed after a point is established", bet)
		}
		if bet == craps.Come {
			return betTarget{&pos.Come[i], sel}, nil
		}
		return betTarget{&pos.DontCome[i], sel}, nil

	case craps.ComeOdds:
		i, err := craps.PointIndex(sel)
		if err != nil {
			return betTarget{}, err
		}
		if pos.Come[i] == 0 {
			return betTarget{}, fmt.Errorf("comeOdds requires a come bet on %d", sel)
		}
		return betTarget{&pos.ComeOdds[i], sel}, nil

	case craps.DontComeOdds:
		i, err := craps.PointIndex(sel)
		if err != nil {
			return betTarget{}, err
		}
		if pos.DontCome[i] == 0 {
			return betTarget{}, fmt.Errorf("dontComeOdds requires a don't come bet on %d", sel)
		}
		return betTarget{&pos.DontComeOdds[i], sel}, nil

	case craps.Place:
		i, err := craps.PointIndex(sel)
		if err != nil {
			return betTarget{}, err
		}
		return betTarget{&pos.Place[i], sel}, nil

	case craps.Hardway:
		i, err := craps.HardwayIndex(sel)
		if err != nil {
			return betTarget{}, err
		}
		return betTarget{&pos.Hardways[i], sel}, nil

	case craps.Field:
		if err := noSelector(); err != nil {
			return betTarget{}, err
		}
		return betTarget{&pos.FieldBet, 0}, nil
	case craps.AnySeven:
		if err := noSelector(); err != nil {
			return betTarget{}, err
		}
		return betTarget{&pos.AnySeven, 0}, nil
	case craps.AnyCraps:
		if err := noSelector(); err != nil {
			return betTarget{}, err
		}
		return betTarget{&pos.AnyCraps, 0}, nil
	case craps.YoEleven:
		if err := noSelector(); err != nil {
			return betTarget{}, err
		}
		return betTarget{&pos.YoEleven, 0}, nil
	case craps.Aces:
		if err := noSelector(); err != nil {
			return betTarget{}, err
		}
		return betTarget{&pos.Aces, 0}, nil
	case craps.Twelve:
		if err := noSelector(); err != nil {
			return betTarget{}, err
		}
		return betTarget{&pos.Twelve, 0}, nil

	case craps.FieldersChoice:
		if sel >= craps.FieldersChoiceSlots {
			return betTarget{}, fmt.Errorf("invalid fielder's choice slot: %d", sel)
		}
		return betTarget{&pos.FieldersChoice[sel], sel}, nil

	case craps.Yes, craps.No:
		if sel < 2 || sel > 12 || sel == 7 {
			return betTarget{}, fmt.Errorf("%s total must be 2..12 excluding 7, got %d", bet, sel)
		}
		i, _ := craps.SumIndex(sel)
		if bet == craps.Yes {
			return betTarget{&pos.YesBets[i], sel}, nil
		}
		return betTarget{&pos.NoBets[i], sel}, nil

	case craps.Next:
		if sel < 2 || sel > 12 {
			return betTarget{}, fmt.Errorf("next total must be 2..12, got %d", sel)
		}
		i, _ := craps.SumIndex(sel)
		return betTarget{&pos.NextBets[i], sel}, nil

	// Bonus race and shooter-run bets ride a whole epoch; they are only
	// accepted while the table is coming out so the trackers start clean.
	case craps.Small:
		if err := noSelector(); err != nil {
			return betTarget{}, err
		}
		if err := comeOutOnly(); err != nil {
			return betTarget{}, err
		}
		return betTarget{&pos.Small, 0}, nil
	case craps.Tall:
		if err := noSelector(); err != nil {
			return betTarget{}, err
		}
		if err := comeOutOnly(); err != nil {
			return betTarget{}, err
		}
		return betTarget{&pos.Tall, 0}, nil
	case craps.All:
		if err := noSelector(); err != nil {
			return betTarget{}, err
		}
		if err := comeOutOnly(); err != nil {
			return betTarget{}, err
		}
		return betTarget{&pos.All, 0}, nil
	case craps.Fire:
		if err := noSelector(); err != nil {
			return betTarget{}, err
		}
		if err := comeOutOnly(); err != nil {
			return betTarget{}, err
		}
		return betTarget{&pos.Fire, 0}, nil
	case craps.DifferentDoubles:
		if err := noSelector(); err != nil {
			return betTarget{}, err
		}
		if err := comeOutOnly(); err != nil {
			return betTarget{}, err
		}
		return betTarget{&pos.Doubles, 0}, nil
	case craps.RideTheLine:
		if err := noSelector(); err != nil {
			return betTarget{}, err
		}
		if err := comeOutOnly(); err != nil {
			return betTarget{}, err
		}
		return betTarget{&pos.RideTheLine, 0}, nil
	case craps.Mugsy:
		if err := noSelector(); err != nil {
			return betTarget{}, err
		}
		if err := comeOutOnly(); err != nil {
			return betTarget{}, err
		}
		return betTarget{&pos.Mugsy, 0}, nil
	case craps.HotHand:
		if err := noSelector(); err != nil {
			return betTarget{}, err
		}
		if err := comeOutOnly(); err != nil {
			return betTarget{}, err
		}
		return betTarget{&pos.HotHand, 0}, nil
	case craps.Replay:
		if err := noSelector(); err != nil {
			return betTarget{}, err
		}
		if err := comeOutOnly(); err != nil {
			return betTarget{}, err
		}
		return betTarget{&pos.Replay, 0}, nil
	}

	return betTarget{}, fmt.Errorf("invalid bet type: %d", uint8(bet))
}

// placeBet admits a wager: it validates phase and selector, reserves the
// worst-case payout against the bankroll, and records the stake.
func placeBet(st *state.State, msg codec.CrapsPlaceBetTx) (*abci.ExecTxResult, error) {
	if msg.Player == "" {
		return nil, fmt.Errorf("missing player")
	}
	if msg.Amount == 0 {
		return nil, fmt.Errorf("invalid bet amount: 0")
	}
	if msg.Amount > craps.MaxBetAmount {
		return nil, fmt.Errorf("bet too large: %d > %d", msg.Amount, craps.MaxBetAmount)
	}
	bet := craps.BetType(msg.Category)
	if !bet.Valid() {
		return nil, fmt.Errorf("invalid bet type: %d", msg.Category)
	}

	g := st.Game
	pos := st.Position(msg.Player)

	// A position left over from a previous shooter is refunded and reset
	// before the new wager is recorded, mirroring settle's refund-on-touch.
	if pos.EpochID != g.EpochID {
		if err := refundStalePosition(g, pos); err != nil {
			return nil, err
		}
	}

	target, err := resolveBetTarget(g, pos, bet, msg.PointOrSum)
	if err != nil {
		return nil, err
	}

	maxPayout, err := craps.MaxPayout(bet, target.sel, msg.Amount)
	if err != nil {
		return nil, err
	}

	// Admission control: the worst case payout must fit in what is left of
	// the bankroll after standing reservations.
	if g.ReservedPayouts > g.Bankroll {
		return nil, fmt.Errorf("insufficient bankroll: reserved=%d exceeds bankroll=%d", g.ReservedPayouts, g.Bankroll)
	}
	available := g.Bankroll - g.ReservedPayouts
	if maxPayout > available {
		return nil, fmt.Errorf("insufficient bankroll: maxPayout=%d available=%d", maxPayout, available)
	}

	if *target.slot > ^uint64(0)-msg.Amount {
		return nil, fmt.Errorf("bet overflow: have=%d add=%d", *target.slot, msg.Amount)
	}
	if g.ReservedPayouts > ^uint64(0)-maxPayout {
		return nil, fmt.Errorf("reserved payout overflow")
	}
	if pos.ReservedTotal > ^uint64(0)-maxPayout {
		return nil, fmt.Errorf("position reservation overflow")
	}
	if g.Bankroll > ^uint64(0)-msg.Amount {
		return nil, fmt.Errorf("bankroll overflow: have=%d add=%d", g.Bankroll, msg.Amount)
	}
	if pos.TotalWagered > ^uint64(0)-msg.Amount {
		return nil, fmt.Errorf("total wagered overflow")
	}

	if err := st.Debit(msg.Player, msg.Amount); err != nil {
		return nil, err
	}

	*target.slot += msg.Amount
	if bet == craps.Place {
		i, _ := craps.PointIndex(target.sel)
		pos.PlaceWorking[i] = true
	}
	g.ReservedPayouts += maxPayout
	pos.ReservedTotal += maxPayout
	g.Bankroll += msg.Amount
	pos.TotalWagered += msg.Amount

	return okEvent("BetPlaced", map[string]string{
		"player":     msg.Player,
		"bet":        bet.String(),
		"pointOrSum": fmt.Sprintf("%d", msg.PointOrSum),
		"amount":     fmt.Sprintf("%d", msg.Amount),
		"reserved":   fmt.Sprintf("%d", maxPayout),
		"epochId":    fmt.Sprintf("%d", pos.EpochID),
	}), nil
}

// refundStalePosition returns all outstanding stakes of a prior-epoch
// position into pending winnings, releases its reservation, and resets it
// into the current epoch.
func refundStalePosition(g *state.GameLedger, pos *state.Position) error {
	stakes, err := pos.TotalActiveStakes()
	if err != nil {
		return err
	}
	if pos.PendingWinnings > ^uint64(0)-stakes {
		return fmt.Errorf("pending winnings overflow on stale refund")
	}
	pos.PendingWinnings += stakes
	g.ReleaseReserved(pos.ReservedTotal)
	pos.ResetForEpoch(g.EpochID)
	return nil
}
