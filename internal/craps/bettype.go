package craps

import "fmt"

// BetType is the wire encoding of a wager category. The numeric values are
// part of the tx format; never renumber.
type BetType uint8

const (
	PassLine BetType = iota
	DontPass
	PassOdds
	DontPassOdds
	Come
	DontCome
	ComeOdds
	DontComeOdds
	Place
	Hardway
	Field
	AnySeven
	AnyCraps
	YoEleven
	Aces
	Twelve
	Small
	Tall
	All
	Fire
	DifferentDoubles
	RideTheLine
	Mugsy
	HotHand
	Replay
	FieldersChoice
	Yes
	No
	Next

	numBetTypes
)

func (b BetType) Valid() bool {
	return b < numBetTypes
}

func (b BetType) String() string {
	names := [...]string{
		"passLine", "dontPass", "passOdds", "dontPassOdds",
		"come", "dontCome", "comeOdds", "dontComeOdds",
		"place", "hardway", "field", "anySeven", "anyCraps",
		"yoEleven", "aces", "twelve",
		"small", "tall", "all",
		"fire", "differentDoubles", "rideTheLine", "mugsy",
		"hotHand", "replay", "fieldersChoice",
		"yes", "no", "next",
	}
	if int(b) < len(names) {
		return names[b]
	}
	return fmt.Sprintf("betType(%d)", uint8(b))
}

// NeedsPoint reports whether placeBet requires a point-number selector
// (4,5,6,8,9,10) for this category.
func (b BetType) NeedsPoint() bool {
	switch b {
	case Come, DontCome, ComeOdds, DontComeOdds, Place:
		return true
	}
	return false
}

// NeedsSum reports whether placeBet requires a dice-total selector.
func (b BetType) NeedsSum() bool {
	switch b {
	case Hardway, Yes, No, Next:
		return true
	}
	return false
}

// FieldersChoiceSlots is the number of fielder's choice groups. The
// placeBet selector picks the group.
const FieldersChoiceSlots = 3
