package app

import (
	"fmt"

	abci "github.com/cometbft/cometbft/abci/types"

	"github.com/happybigmtn/gitcraps/internal/codec"
	"github.com/happybigmtn/gitcraps/internal/state"
)

// claimWinnings pays out pending winnings. If the bankroll cannot cover the
// full amount the player receives what exists and the remainder converts to
// unpaid debt, claimable later via claimDebt once the house is refunded.
func claimWinnings(st *state.State, player string) (*abci.ExecTxResult, error) {
	if player == "" {
		return nil, fmt.Errorf("missing player")
	}
	pos, ok := st.Positions[player]
	if !ok {
		return nil, fmt.Errorf("no position for %q", player)
	}
	amount := pos.PendingWinnings
	if amount == 0 {
		return nil, fmt.Errorf("no pending winnings")
	}

	g := st.Game
	pay := amount
	if pay > g.Bankroll {
		pay = g.Bankroll
	}
	shortfall := amount - pay

	// Zero before transfer so a failed credit cannot be replayed.
	pos.PendingWinnings = 0
	if shortfall > 0 {
		if pos.UnpaidDebt > ^uint64(0)-shortfall {
			return nil, fmt.Errorf("unpaid debt overflow")
		}
		pos.UnpaidDebt += shortfall
	}
	if pay > 0 {
		g.Bankroll -= pay
		if err := st.Credit(player, pay); err != nil {
			return nil, err
		}
	}

	return okEvent("WinningsClaimed", map[string]string{
		"player":    player,
		"paid":      fmt.Sprintf("%d", pay),
		"shortfall": fmt.Sprintf("%d", shortfall),
		"debt":      fmt.Sprintf("%d", pos.UnpaidDebt),
		"bankroll":  fmt.Sprintf("%d", g.Bankroll),
	}), nil
}

// claimDebt retries payment of previously recorded shortfalls. Partial
// payment is fine; whatever the bankroll covers goes out and the rest stays
// booked.
func claimDebt(st *state.State, player string) (*abci.ExecTxResult, error) {
	if player == "" {
		return nil, fmt.Errorf("missing player")
	}
	pos, ok := st.Positions[player]
	if !ok {
		return nil, fmt.Errorf("no position for %q", player)
	}
	if pos.UnpaidDebt == 0 {
		return nil, fmt.Errorf("no unpaid debt")
	}

	g := st.Game
	pay := pos.UnpaidDebt
	if pay > g.Bankroll {
		pay = g.Bankroll
	}
	if pay > 0 {
		pos.UnpaidDebt -= pay
		g.Bankroll -= pay
		if err := st.Credit(player, pay); err != nil {
			return nil, err
		}
	}

	return okEvent("DebtClaimed", map[string]string{
		"player":   player,
		"paid":     fmt.Sprintf("%d", pay),
		"debt":     fmt.Sprintf("%d", pos.UnpaidDebt),
		"bankroll": fmt.Sprintf("%d", g.Bankroll),
	}), nil
}

// forceSettle lets anyone clean up a position whose owner never settled an
// expired round: the outstanding stakes are forfeited to the house and the
// reservation is released. Pending winnings and debt are untouched.
func forceSettle(st *state.State, msg codec.CrapsForceSettleTx, height int64) (*abci.ExecTxResult, error) {
	if msg.Player == "" {
		return nil, fmt.Errorf("missing player")
	}
	round := st.Round
	if round == nil {
		return nil, fmt.Errorf("no active round")
	}
	if height <= round.ExpiresAt {
		return nil, fmt.Errorf("round not expired: expiresAt=%d height=%d", round.ExpiresAt, height)
	}

	pos, ok := st.Positions[msg.Player]
	if !ok {
		return nil, fmt.Errorf("no position for %q", msg.Player)
	}
	if pos.LastSettledRound >= round.ID {
		return nil, fmt.Errorf("already settled: round %d", round.ID)
	}

	g := st.Game

	// Stale positions are refunded, not forfeited; expiry is not a reason to
	// confiscate stakes the epoch reset already orphaned.
	if pos.EpochID != g.EpochID {
		if err := refundStalePosition(g, pos); err != nil {
			return nil, err
		}
		pos.LastSettledRound = round.ID
		return okEvent("PositionRefunded", map[string]string{
			"player":  msg.Player,
			"roundId": fmt.Sprintf("%d", round.ID),
			"epochId": fmt.Sprintf("%d", g.EpochID),
			"pending": fmt.Sprintf("%d", pos.PendingWinnings),
		}), nil
	}

	forfeited, err := pos.TotalActiveStakes()
	if err != nil {
		return nil, err
	}
	if forfeited == 0 {
		return nil, fmt.Errorf("nothing to force settle")
	}

	if pos.TotalLost > ^uint64(0)-forfeited {
		return nil, fmt.Errorf("total lost overflow")
	}
	if g.TotalCollected > ^uint64(0)-forfeited {
		return nil, fmt.Errorf("total collected overflow")
	}
	if g.Bankroll > ^uint64(0)-forfeited {
		return nil, fmt.Errorf("bankroll overflow on forfeit")
	}
	pos.TotalLost += forfeited
	g.TotalCollected += forfeited
	g.Bankroll += forfeited
	g.ReleaseReserved(pos.ReservedTotal)
	pos.ResetForEpoch(g.EpochID)
	pos.LastSettledRound = round.ID

	return okEvent("PositionForceSettled", map[string]string{
		"caller":    msg.Caller,
		"player":    msg.Player,
		"roundId":   fmt.Sprintf("%d", round.ID),
		"forfeited": fmt.Sprintf("%d", forfeited),
	}), nil
}
