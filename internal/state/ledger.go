package state

import "fmt"

// GameLedger is the singleton house record. It is created once and never
// destroyed; epochs advance in place.
type GameLedger struct {
	EpochID         uint64 `json:"epochId"`
	Point           uint8  `json:"point"` // 0 during come-out
	IsComeOut       bool   `json:"isComeOut"`
	EpochStartRound uint64 `json:"epochStartRound"`

	// Pre-roll phase snapshot for the round being settled. The first
	// settlement of a round freezes the phase here so every settler of that
	// round resolves against the same table, regardless of how earlier
	// settlers advanced it.
	PhaseRound   uint64 `json:"phaseRound,omitempty"`
	PhasePoint   uint8  `json:"phasePoint,omitempty"`
	PhaseComeOut bool   `json:"phaseComeOut,omitempty"`

	Bankroll        uint64 `json:"bankroll"`
	ReservedPayouts uint64 `json:"reservedPayouts"`
	TotalPaid       uint64 `json:"totalPaid"`
	TotalCollected  uint64 `json:"totalCollected"`
}

func NewGameLedger() *GameLedger {
	return &GameLedger{
		EpochID:   1,
		IsComeOut: true,
	}
}

func (g *GameLedger) SetPoint(point uint8) {
	g.Point = point
	g.IsComeOut = false
}

func (g *GameLedger) ClearPoint() {
	g.Point = 0
	g.IsComeOut = true
}

// StartNewEpoch advances the shooter turn after a seven-out.
func (g *GameLedger) StartNewEpoch(roundID uint64) error {
	if g.EpochID == ^uint64(0) {
		return fmt.Errorf("epoch id overflow")
	}
	g.EpochID++
	g.EpochStartRound = roundID
	g.ClearPoint()
	return nil
}

// ReleaseReserved clamps at zero rather than underflowing; the admission
// path only ever reserves what it adds, so hitting the clamp means a prior
// accounting bug, not an invalid state.
func (g *GameLedger) ReleaseReserved(amount uint64) {
	if amount > g.ReservedPayouts {
		g.ReservedPayouts = 0
		return
	}
	g.ReservedPayouts -= amount
}

// Round is the finalized randomness record settlement resolves against.
type Round struct {
	ID            uint64 `json:"id"`
	WinningSquare uint8  `json:"winningSquare"` // 0..35
	StartHeight   int64  `json:"startHeight"`
	ExpiresAt     int64  `json:"expiresAt"` // block height; forceSettle requires height > ExpiresAt
}

// Position is the per-player wager record. One position per player, reset
// (not destroyed) on seven-out or stale-epoch detection.
type Position struct {
	EpochID uint64 `json:"epochId"`

	// Line bets.
	PassLine     uint64 `json:"passLine,omitempty"`
	PassOdds     uint64 `json:"passOdds,omitempty"`
	DontPass     uint64 `json:"dontPass,omitempty"`
	DontPassOdds uint64 `json:"dontPassOdds,omitempty"`

	// Travelling bets, indexed by point (4,5,6,8,9,10 -> 0..5).
	Come         [6]uint64 `json:"come,omitempty"`
	ComeOdds     [6]uint64 `json:"comeOdds,omitempty"`
	DontCome     [6]uint64 `json:"dontCome,omitempty"`
	DontComeOdds [6]uint64 `json:"dontComeOdds,omitempty"`

	Place        [6]uint64 `json:"place,omitempty"`
	PlaceWorking [6]bool   `json:"placeWorking,omitempty"`

	// Indexed by dice total (2..12 -> 0..10).
	YesBets  [11]uint64 `json:"yesBets,omitempty"`
	NoBets   [11]uint64 `json:"noBets,omitempty"`
	NextBets [11]uint64 `json:"nextBets,omitempty"`

	// Indexed by hardway total (4,6,8,10 -> 0..3).
	Hardways [4]uint64 `json:"hardways,omitempty"`

	// Single-roll bets.
	FieldBet       uint64    `json:"fieldBet,omitempty"`
	AnySeven       uint64    `json:"anySeven,omitempty"`
	AnyCraps       uint64    `json:"anyCraps,omitempty"`
	YoEleven       uint64    `json:"yoEleven,omitempty"`
	Aces           uint64    `json:"aces,omitempty"`
	Twelve         uint64    `json:"twelve,omitempty"`
	FieldersChoice [3]uint64 `json:"fieldersChoice,omitempty"`

	// Bonus race bets. BonusHits tracks totals 2..6,8..12 as bits 0..9.
	Small     uint64 `json:"small,omitempty"`
	Tall      uint64 `json:"tall,omitempty"`
	All       uint64 `json:"all,omitempty"`
	BonusHits uint16 `json:"bonusHits,omitempty"`

	// Shooter-run bets, settled at epoch end.
	Fire            uint64   `json:"fire,omitempty"`
	FirePoints      uint8    `json:"firePoints,omitempty"` // bits by point index
	Doubles         uint64   `json:"doubles,omitempty"`
	DoublesMask     uint8    `json:"doublesMask,omitempty"` // bits by pip value
	RideTheLine     uint64   `json:"rideTheLine,omitempty"`
	RideWins        uint8    `json:"rideWins,omitempty"`
	Mugsy           uint64   `json:"mugsy,omitempty"`
	MugsyPointPhase bool     `json:"mugsyPointPhase,omitempty"`
	HotHand         uint64   `json:"hotHand,omitempty"`
	HotHandMask     uint16   `json:"hotHandMask,omitempty"` // bits 0..9 = totals 2..6,8..12
	Replay          uint64   `json:"replay,omitempty"`
	ReplayCounts    [6]uint8 `json:"replayCounts,omitempty"` // times each point was made

	// Accounting.
	PendingWinnings  uint64 `json:"pendingWinnings,omitempty"`
	TotalWagered     uint64 `json:"totalWagered,omitempty"`
	TotalWon         uint64 `json:"totalWon,omitempty"`
	TotalLost        uint64 `json:"totalLost,omitempty"`
	LastSettledRound uint64 `json:"lastSettledRound,omitempty"`
	UnpaidDebt       uint64 `json:"unpaidDebt,omitempty"`

	// ReservedTotal mirrors the exact worst-case payout this position holds
	// inside the game ledger's reservedPayouts.
	ReservedTotal uint64 `json:"reservedTotal,omitempty"`
}

func NewPosition(epochID uint64) *Position {
	return &Position{EpochID: epochID}
}

// ResetForEpoch clears all stakes and per-epoch trackers while preserving
// the lifetime accounting fields.
func (p *Position) ResetForEpoch(epochID uint64) {
	pending := p.PendingWinnings
	wagered := p.TotalWagered
	won := p.TotalWon
	lost := p.TotalLost
	lastRound := p.LastSettledRound
	debt := p.UnpaidDebt

	*p = Position{EpochID: epochID}

	p.PendingWinnings = pending
	p.TotalWagered = wagered
	p.TotalWon = won
	p.TotalLost = lost
	p.LastSettledRound = lastRound
	p.UnpaidDebt = debt
}

// TotalActiveStakes sums every outstanding wager with overflow checking.
func (p *Position) TotalActiveStakes() (uint64, error) {
	var total uint64
	add := func(v uint64) error {
		if total > ^uint64(0)-v {
			return fmt.Errorf("active stake overflow")
		}
		total += v
		return nil
	}

	singles := []uint64{
		p.PassLine, p.PassOdds, p.DontPass, p.DontPassOdds,
		p.FieldBet, p.AnySeven, p.AnyCraps, p.YoEleven, p.Aces, p.Twelve,
		p.Small, p.Tall, p.All,
		p.Fire, p.Doubles, p.RideTheLine, p.Mugsy, p.HotHand, p.Replay,
	}
	for _, v := range singles {
		if err := add(v); err != nil {
			return 0, err
		}
	}
	for i := 0; i < 6; i++ {
		for _, v := range []uint64{p.Come[i], p.ComeOdds[i], p.DontCome[i], p.DontComeOdds[i], p.Place[i]} {
			if err := add(v); err != nil {
				return 0, err
			}
		}
	}
	for i := 0; i < 11; i++ {
		for _, v := range []uint64{p.YesBets[i], p.NoBets[i], p.NextBets[i]} {
			if err := add(v); err != nil {
				return 0, err
			}
		}
	}
	for i := 0; i < 4; i++ {
		if err := add(p.Hardways[i]); err != nil {
			return 0, err
		}
	}
	for i := 0; i < 3; i++ {
		if err := add(p.FieldersChoice[i]); err != nil {
			return 0, err
		}
	}
	return total, nil
}

// HasActiveBets reports whether any wager is outstanding.
func (p *Position) HasActiveBets() bool {
	total, err := p.TotalActiveStakes()
	if err != nil {
		// Overflow implies stakes are present.
		return true
	}
	return total > 0
}

// BonusBit maps totals 2..6,8..12 to bit positions 0..9 for the bonus and
// hot-hand masks. Returns false for 7 and out-of-range totals.
func BonusBit(sum uint8) (uint, bool) {
	switch {
	case sum >= 2 && sum <= 6:
		return uint(sum - 2), true
	case sum >= 8 && sum <= 12:
		return uint(sum - 3), true
	}
	return 0, false
}

const (
	// BonusSmallMask covers totals 2..6, BonusTallMask totals 8..12.
	BonusSmallMask uint16 = 0x001f
	BonusTallMask  uint16 = 0x03e0
	BonusAllMask   uint16 = 0x03ff
)
