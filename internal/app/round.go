package app

import (
	"fmt"

	abci "github.com/cometbft/cometbft/abci/types"

	"github.com/happybigmtn/gitcraps/internal/codec"
	"github.com/happybigmtn/gitcraps/internal/craps"
	"github.com/happybigmtn/gitcraps/internal/state"
)

// startRound posts a finalized round record: a monotonic id, the winning
// square derived from the round's entropy, and the height after which only
// forceSettle may touch positions for it.
func startRound(st *state.State, signer string, msg codec.CrapsStartRoundTx, height int64) (*abci.ExecTxResult, error) {
	if msg.RoundID == 0 {
		return nil, fmt.Errorf("missing roundId")
	}
	if msg.WinningSquare >= craps.BoardSize {
		return nil, fmt.Errorf("invalid winning square: %d", msg.WinningSquare)
	}
	if msg.ExpiresAt <= height {
		return nil, fmt.Errorf("round already expired: expiresAt=%d height=%d", msg.ExpiresAt, height)
	}
	if st.Round != nil && msg.RoundID <= st.Round.ID {
		return nil, fmt.Errorf("round id must increase: got %d, have %d", msg.RoundID, st.Round.ID)
	}

	if st.Oracle == "" {
		st.Oracle = signer
	}
	st.Round = &state.Round{
		ID:            msg.RoundID,
		WinningSquare: msg.WinningSquare,
		StartHeight:   height,
		ExpiresAt:     msg.ExpiresAt,
	}

	sum, _ := craps.Sum(msg.WinningSquare)
	return okEvent("RoundStarted", map[string]string{
		"roundId":   fmt.Sprintf("%d", msg.RoundID),
		"square":    fmt.Sprintf("%d", msg.WinningSquare),
		"sum":       fmt.Sprintf("%d", sum),
		"expiresAt": fmt.Sprintf("%d", msg.ExpiresAt),
	}), nil
}
