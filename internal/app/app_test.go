package app

import (
	"context"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	abci "github.com/cometbft/cometbft/abci/types"

	"github.com/happybigmtn/gitcraps/internal/codec"
	"github.com/happybigmtn/gitcraps/internal/craps"
	"github.com/happybigmtn/gitcraps/internal/state"
)

// testKey derives a deterministic ed25519 key per account name.
func testKey(name string) ed25519.PrivateKey {
	seed := sha256.Sum256([]byte("gitcraps-test-" + name))
	return ed25519.NewKeyFromSeed(seed[:])
}

func mustMarshal(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return b
}

// harness drives the app through FinalizeBlock one tx at a time, tracking
// heights, nonces, and round ids the way a devnet client would.
type harness struct {
	t       *testing.T
	app     *CrapsApp
	height  int64
	roundID uint64
	nonces  map[string]uint64
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	a, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	h := &harness{t: t, app: a, nonces: map[string]uint64{}}
	h.register("oracle")
	return h
}

func (h *harness) unsignedTx(typ string, value any) []byte {
	env := codec.TxEnvelope{Type: typ, Value: mustMarshal(h.t, value)}
	return mustMarshal(h.t, env)
}

func (h *harness) signedTxNonce(typ string, value any, signer, nonce string) []byte {
	raw := mustMarshal(h.t, value)
	sig := ed25519.Sign(testKey(signer), txAuthSignBytesV0(typ, raw, nonce, signer))
	env := codec.TxEnvelope{Type: typ, Value: raw, Nonce: nonce, Signer: signer, Sig: sig}
	return mustMarshal(h.t, env)
}

func (h *harness) signedTx(typ string, value any, signer string) []byte {
	h.nonces[signer]++
	return h.signedTxNonce(typ, value, signer, strconv.FormatUint(h.nonces[signer], 10))
}

func (h *harness) deliverAt(height int64, tx []byte) *abci.ExecTxResult {
	h.t.Helper()
	res, err := h.app.FinalizeBlock(context.Background(), &abci.FinalizeBlockRequest{
		Height: height,
		Txs:    [][]byte{tx},
	})
	if err != nil {
		h.t.Fatalf("finalize block: %v", err)
	}
	if height > h.height {
		h.height = height
	}
	return res.TxResults[0]
}

func (h *harness) deliver(tx []byte) *abci.ExecTxResult {
	h.t.Helper()
	return h.deliverAt(h.height+1, tx)
}

func (h *harness) mustOk(res *abci.ExecTxResult) *abci.ExecTxResult {
	h.t.Helper()
	if res.Code != 0 {
		h.t.Fatalf("tx failed: code=%d log=%q", res.Code, res.Log)
	}
	return res
}

func (h *harness) mustFail(res *abci.ExecTxResult, substr string) {
	h.t.Helper()
	if res.Code == 0 {
		h.t.Fatalf("tx unexpectedly succeeded")
	}
	if !strings.Contains(res.Log, substr) {
		h.t.Fatalf("log %q does not contain %q", res.Log, substr)
	}
}

func (h *harness) register(name string) {
	h.t.Helper()
	pub := testKey(name).Public().(ed25519.PublicKey)
	h.mustOk(h.deliver(h.signedTx("auth/register_account", codec.AuthRegisterAccountTx{
		Account: name,
		PubKey:  pub,
	}, name)))
}

func (h *harness) mint(to string, amount uint64) {
	h.t.Helper()
	h.mustOk(h.deliver(h.unsignedTx("bank/mint", codec.BankMintTx{To: to, Amount: amount})))
}

func (h *harness) setupPlayer(name string, funds uint64) {
	h.t.Helper()
	h.register(name)
	h.mint(name, funds)
}

func (h *harness) fundHouse(from string, amount uint64) {
	h.t.Helper()
	h.mustOk(h.deliver(h.signedTx("craps/fund_house", codec.CrapsFundHouseTx{
		From:   from,
		Amount: amount,
	}, from)))
}

// roll posts the next round with the given winning square.
func (h *harness) roll(square uint8) {
	h.t.Helper()
	h.roundID++
	h.mustOk(h.deliver(h.signedTx("craps/start_round", codec.CrapsStartRoundTx{
		RoundID:       h.roundID,
		WinningSquare: square,
		ExpiresAt:     h.height + 1000,
	}, "oracle")))
}

func (h *harness) bet(player string, cat craps.BetType, sel uint8, amount uint64) *abci.ExecTxResult {
	h.t.Helper()
	return h.deliver(h.signedTx("craps/place_bet", codec.CrapsPlaceBetTx{
		Player:     player,
		Category:   uint8(cat),
		PointOrSum: sel,
		Amount:     amount,
	}, player))
}

func (h *harness) settle(player string) *abci.ExecTxResult {
	h.t.Helper()
	return h.deliver(h.signedTx("craps/settle", codec.CrapsSettleTx{Player: player}, player))
}

func (h *harness) game() *state.GameLedger           { return h.app.st.Game }
func (h *harness) pos(player string) *state.Position { return h.app.st.Position(player) }
func (h *harness) balance(addr string) uint64        { return h.app.st.Balance(addr) }

func findEvent(res *abci.ExecTxResult, typ string) *abci.Event {
	for i := range res.Events {
		if res.Events[i].Type == typ {
			return &res.Events[i]
		}
	}
	return nil
}

func attr(ev *abci.Event, key string) string {
	for _, a := range ev.Attributes {
		if a.Key == key {
			return a.Value
		}
	}
	return ""
}

func TestBankMintAndSend(t *testing.T) {
	h := newHarness(t)
	h.setupPlayer("alice", 100)
	if got := h.balance("alice"); got != 100 {
		t.Fatalf("balance = %d", got)
	}

	h.register("bob")
	h.mustOk(h.deliver(h.signedTx("bank/send", codec.BankSendTx{From: "alice", To: "bob", Amount: 40}, "alice")))
	if got := h.balance("alice"); got != 60 {
		t.Fatalf("alice balance = %d", got)
	}
	if got := h.balance("bob"); got != 40 {
		t.Fatalf("bob balance = %d", got)
	}

	res := h.deliver(h.signedTx("bank/send", codec.BankSendTx{From: "alice", To: "bob", Amount: 1000}, "alice"))
	h.mustFail(res, "insufficient funds")
}

func TestSendRequiresRegisteredKey(t *testing.T) {
	h := newHarness(t)
	h.mint("ghost", 100)
	res := h.deliver(h.signedTx("bank/send", codec.BankSendTx{From: "ghost", To: "oracle", Amount: 1}, "ghost"))
	h.mustFail(res, "missing pubKey")
}

func TestFundHouse(t *testing.T) {
	h := newHarness(t)
	h.setupPlayer("whale", 5_000)
	h.fundHouse("whale", 3_000)
	if got := h.game().Bankroll; got != 3_000 {
		t.Fatalf("bankroll = %d", got)
	}
	if got := h.balance("whale"); got != 2_000 {
		t.Fatalf("whale balance = %d", got)
	}

	res := h.deliver(h.signedTx("craps/fund_house", codec.CrapsFundHouseTx{From: "whale", Amount: 0}, "whale"))
	h.mustFail(res, "invalid amount")
}

func TestUnknownTxType(t *testing.T) {
	h := newHarness(t)
	res := h.deliver(h.unsignedTx("craps/bogus", struct{}{}))
	h.mustFail(res, "unknown tx type")
}

func TestQueryPaths(t *testing.T) {
	h := newHarness(t)
	h.setupPlayer("alice", 500)
	h.fundHouse("alice", 200)

	q, err := h.app.Query(context.Background(), &abci.QueryRequest{Path: "/game"})
	if err != nil || q.Code != 0 {
		t.Fatalf("query /game: err=%v code=%d", err, q.Code)
	}
	var g state.GameLedger
	if err := json.Unmarshal(q.Value, &g); err != nil {
		t.Fatalf("decode game: %v", err)
	}
	if g.Bankroll != 200 {
		t.Fatalf("bankroll = %d", g.Bankroll)
	}

	q, _ = h.app.Query(context.Background(), &abci.QueryRequest{Path: "/account/alice"})
	if q.Code != 0 || !strings.Contains(string(q.Value), "300") {
		t.Fatalf("query /account/alice: code=%d value=%s", q.Code, q.Value)
	}

	q, _ = h.app.Query(context.Background(), &abci.QueryRequest{Path: "/round"})
	if q.Code == 0 {
		t.Fatal("expected no active round")
	}

	q, _ = h.app.Query(context.Background(), &abci.QueryRequest{Path: "/position/nobody"})
	if q.Code == 0 {
		t.Fatal("expected missing position")
	}

	q, _ = h.app.Query(context.Background(), &abci.QueryRequest{Path: "/bogus"})
	if q.Code == 0 {
		t.Fatal("expected unknown path error")
	}
}
