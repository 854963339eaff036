package app

import (
	"testing"

	"github.com/happybigmtn/gitcraps/internal/codec"
)

func TestOracleFirstWriterWins(t *testing.T) {
	h := newHarness(t)
	h.register("imposter")

	h.roll(9) // "oracle" becomes the oracle
	if got := h.app.st.Oracle; got != "oracle" {
		t.Fatalf("oracle = %q", got)
	}

	res := h.deliver(h.signedTx("craps/start_round", codec.CrapsStartRoundTx{
		RoundID:       2,
		WinningSquare: 9,
		ExpiresAt:     h.height + 1000,
	}, "imposter"))
	h.mustFail(res, "not the round oracle")
}

func TestRoundIDMustIncrease(t *testing.T) {
	h := newHarness(t)
	h.roll(9)

	res := h.deliver(h.signedTx("craps/start_round", codec.CrapsStartRoundTx{
		RoundID:       1,
		WinningSquare: 9,
		ExpiresAt:     h.height + 1000,
	}, "oracle"))
	h.mustFail(res, "round id must increase")

	res = h.deliver(h.signedTx("craps/start_round", codec.CrapsStartRoundTx{
		RoundID:       0,
		WinningSquare: 9,
		ExpiresAt:     h.height + 1000,
	}, "oracle"))
	h.mustFail(res, "missing roundId")
}

func TestRoundRejectsPastExpiry(t *testing.T) {
	h := newHarness(t)
	res := h.deliver(h.signedTx("craps/start_round", codec.CrapsStartRoundTx{
		RoundID:       1,
		WinningSquare: 9,
		ExpiresAt:     h.height, // delivery height will be h.height+1
	}, "oracle"))
	h.mustFail(res, "round already expired")
}

func TestRoundRejectsInvalidSquare(t *testing.T) {
	h := newHarness(t)
	res := h.deliver(h.signedTx("craps/start_round", codec.CrapsStartRoundTx{
		RoundID:       1,
		WinningSquare: 36,
		ExpiresAt:     h.height + 1000,
	}, "oracle"))
	h.mustFail(res, "invalid winning square")
}

func TestRoundEventCarriesSum(t *testing.T) {
	h := newHarness(t)
	h.roundID++
	res := h.mustOk(h.deliver(h.signedTx("craps/start_round", codec.CrapsStartRoundTx{
		RoundID:       h.roundID,
		WinningSquare: 15, // (3,4)
		ExpiresAt:     h.height + 1000,
	}, "oracle")))
	ev := findEvent(res, "RoundStarted")
	if ev == nil {
		t.Fatal("missing RoundStarted event")
	}
	if got := attr(ev, "sum"); got != "7" {
		t.Fatalf("sum attr = %q", got)
	}
}
