package app

import (
	"fmt"

	abci "github.com/cometbft/cometbft/abci/types"

	"github.com/happybigmtn/gitcraps/internal/codec"
	"github.com/happybigmtn/gitcraps/internal/state"
)

func bankMint(st *state.State, msg codec.BankMintTx) (*abci.ExecTxResult, error) {
	if msg.To == "" || msg.Amount == 0 {
		return nil, fmt.Errorf("missing to/amount")
	}
	if err := st.Credit(msg.To, msg.Amount); err != nil {
		return nil, err
	}
	return okEvent("BankMinted", map[string]string{
		"to":     msg.To,
		"amount": fmt.Sprintf("%d", msg.Amount),
	}), nil
}

func bankSend(st *state.State, msg codec.BankSendTx) (*abci.ExecTxResult, error) {
	if msg.From == "" || msg.To == "" || msg.Amount == 0 {
		return nil, fmt.Errorf("missing from/to/amount")
	}
	if err := st.Debit(msg.From, msg.Amount); err != nil {
		return nil, err
	}
	if err := st.Credit(msg.To, msg.Amount); err != nil {
		return nil, err
	}
	return okEvent("BankSent", map[string]string{
		"from":   msg.From,
		"to":     msg.To,
		"amount": fmt.Sprintf("%d", msg.Amount),
	}), nil
}

func registerAccount(st *state.State, msg codec.AuthRegisterAccountTx) (*abci.ExecTxResult, error) {
	if existing, ok := st.AccountKeys[msg.Account]; ok && string(existing) != string(msg.PubKey) {
		return nil, fmt.Errorf("account %q already registered with a different key", msg.Account)
	}
	st.AccountKeys[msg.Account] = msg.PubKey
	return okEvent("AccountRegistered", map[string]string{
		"account": msg.Account,
	}), nil
}

// fundHouse is permissionless: anyone may top up the bankroll.
func fundHouse(st *state.State, msg codec.CrapsFundHouseTx) (*abci.ExecTxResult, error) {
	if msg.From == "" {
		return nil, fmt.Errorf("missing from")
	}
	if msg.Amount == 0 {
		return nil, fmt.Errorf("invalid amount: 0")
	}
	g := st.Game
	if g.Bankroll > ^uint64(0)-msg.Amount {
		return nil, fmt.Errorf("bankroll overflow: have=%d add=%d", g.Bankroll, msg.Amount)
	}
	if err := st.Debit(msg.From, msg.Amount); err != nil {
		return nil, err
	}
	g.Bankroll += msg.Amount
	return okEvent("HouseFunded", map[string]string{
		"from":     msg.From,
		"amount":   fmt.Sprintf("%d", msg.Amount),
		"bankroll": fmt.Sprintf("%d", g.Bankroll),
	}), nil
}
