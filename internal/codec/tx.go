package codec

import (
	"encoding/json"
	"fmt"
)

// TxEnvelope is the v0 transaction container.
//
// CometBFT transactions are opaque bytes. For v0 localnet we use JSON-encoded
// txs to move fast; this is NOT the final protocol encoding.
type TxEnvelope struct {
	// Basic routing.
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`

	// v0 tx auth:
	// - Nonce: included in the signed message for replay protection (must increase per signer).
	// - Signer: logical signer id (account address).
	// - Sig: Ed25519 signature over (type, nonce, signer, sha256(value)).
	Nonce  string `json:"nonce,omitempty"`
	Signer string `json:"signer,omitempty"`
	Sig    []byte `json:"sig,omitempty"`
}

func DecodeTxEnvelope(txBytes []byte) (TxEnvelope, error) {
	var env TxEnvelope
	if err := json.Unmarshal(txBytes, &env); err != nil {
		return TxEnvelope{}, fmt.Errorf("invalid tx json: %w", err)
	}
	if env.Type == "" {
		return TxEnvelope{}, fmt.Errorf("missing tx.type")
	}
	return env, nil
}

// ---- Bank ----

type BankMintTx struct {
	To     string `json:"to"`
	Amount uint64 `json:"amount"`
}

type BankSendTx struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount uint64 `json:"amount"`
}

// ---- Auth (v0) ----

// v0: account pubkey registration for tx authentication.
type AuthRegisterAccountTx struct {
	Account string `json:"account"`
	PubKey  []byte `json:"pubKey"` // base64 (32 bytes)
}

// ---- Craps ----

// CrapsFundHouseTx moves tokens from a player account into the house
// bankroll. Permissionless.
type CrapsFundHouseTx struct {
	From   string `json:"from"`
	Amount uint64 `json:"amount"`
}

// CrapsStartRoundTx posts a finalized round. Signed by the oracle.
type CrapsStartRoundTx struct {
	RoundID       uint64 `json:"roundId"`
	WinningSquare uint8  `json:"winningSquare"` // 0..35
	ExpiresAt     int64  `json:"expiresAt"`     // block height
}

type CrapsPlaceBetTx struct {
	Player     string `json:"player"`
	Category   uint8  `json:"category"`
	PointOrSum uint8  `json:"pointOrSum,omitempty"`
	Amount     uint64 `json:"amount"`
}

type CrapsSettleTx struct {
	Player string `json:"player"`
}

type CrapsClaimWinningsTx struct {
	Player string `json:"player"`
}

type CrapsClaimDebtTx struct {
	Player string `json:"player"`
}

// CrapsForceSettleTx forfeits an expired position. Any account may call it;
// the target is the position owner.
type CrapsForceSettleTx struct {
	Caller string `json:"caller"`
	Player string `json:"player"`
}
