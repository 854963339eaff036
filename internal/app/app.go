package app

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	abci "github.com/cometbft/cometbft/abci/types"

	"github.com/happybigmtn/gitcraps/internal/codec"
	"github.com/happybigmtn/gitcraps/internal/state"
)

const (
	AppVersion uint64 = 1
)

type CrapsApp struct {
	*abci.BaseApplication

	home string

	mu       sync.Mutex
	st       *state.State
	lastHash []byte
}

func New(home string) (*CrapsApp, error) {
	appHome := filepath.Join(home, "app")
	st, err := state.Load(appHome)
	if err != nil {
		return nil, err
	}
	a := &CrapsApp{
		BaseApplication: abci.NewBaseApplication(),
		home:            home,
		st:              st,
		lastHash:        st.AppHash(),
	}
	return a, nil
}

func (a *CrapsApp) Info(_ context.Context, _ *abci.InfoRequest) (*abci.InfoResponse, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return &abci.InfoResponse{
		Data:             "gitcraps (v0)",
		Version:          "v0",
		AppVersion:       AppVersion,
		LastBlockHeight:  a.st.Height,
		LastBlockAppHash: a.lastHash,
	}, nil
}

func (a *CrapsApp) CheckTx(_ context.Context, req *abci.CheckTxRequest) (*abci.CheckTxResponse, error) {
	_, err := codec.DecodeTxEnvelope(req.Tx)
	if err != nil {
		return &abci.CheckTxResponse{Code: 1, Log: err.Error()}, nil
	}
	// v0: only structural validation; signatures/auth are checked at delivery.
	return &abci.CheckTxResponse{Code: 0}, nil
}

func (a *CrapsApp) InitChain(_ context.Context, _ *abci.InitChainRequest) (*abci.InitChainResponse, error) {
	// v0: no special genesis handling.
	return &abci.InitChainResponse{}, nil
}

func (a *CrapsApp) FinalizeBlock(_ context.Context, req *abci.FinalizeBlockRequest) (*abci.FinalizeBlockResponse, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.st.Height = req.Height

	txResults := make([]*abci.ExecTxResult, 0, len(req.Txs))
	for _, txBytes := range req.Txs {
		res := a.deliverTx(txBytes, req.Height)
		txResults = append(txResults, res)
	}

	a.lastHash = a.st.AppHash()

	return &abci.FinalizeBlockResponse{
		TxResults: txResults,
		AppHash:   a.lastHash,
	}, nil
}

func (a *CrapsApp) Commit(_ context.Context, _ *abci.CommitRequest) (*abci.CommitResponse, error) {
	// Persist after each block for devnet durability.
	appHome := filepath.Join(a.home, "app")
	if err := a.st.Save(appHome); err != nil {
		// CometBFT expects Commit to not crash; return error so node halts loudly.
		return nil, err
	}
	return &abci.CommitResponse{}, nil
}

func (a *CrapsApp) Query(_ context.Context, req *abci.QueryRequest) (*abci.QueryResponse, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Paths:
	// - /account/<addr>
	// - /position/<addr>
	// - /game
	// - /round
	path := strings.TrimSpace(req.Path)
	switch {
	case path == "/game":
		b, _ := json.Marshal(a.st.Game)
		return &abci.QueryResponse{Code: 0, Value: b, Height: a.st.Height}, nil
	case path == "/round":
		if a.st.Round == nil {
			return &abci.QueryResponse{Code: 1, Log: "no active round", Height: a.st.Height}, nil
		}
		b, _ := json.Marshal(a.st.Round)
		return &abci.QueryResponse{Code: 0, Value: b, Height: a.st.Height}, nil
	case strings.HasPrefix(path, "/account/"):
		addr := strings.TrimPrefix(path, "/account/")
		bal := a.st.Balance(addr)
		b, _ := json.Marshal(map[string]any{"addr": addr, "balance": bal})
		return &abci.QueryResponse{Code: 0, Value: b, Height: a.st.Height}, nil
	case strings.HasPrefix(path, "/position/"):
		addr := strings.TrimPrefix(path, "/position/")
		pos, ok := a.st.Positions[addr]
		if !ok {
			return &abci.QueryResponse{Code: 1, Log: "position not found", Height: a.st.Height}, nil
		}
		b, _ := json.Marshal(pos)
		return &abci.QueryResponse{Code: 0, Value: b, Height: a.st.Height}, nil
	default:
		return &abci.QueryResponse{Code: 1, Log: "unknown query path", Height: a.st.Height}, nil
	}
}

// deliverTx stages the tx against a clone and swaps it in only on success,
// so a failing tx can never leave partial effects behind.
func (a *CrapsApp) deliverTx(txBytes []byte, height int64) *abci.ExecTxResult {
	env, err := codec.DecodeTxEnvelope(txBytes)
	if err != nil {
		return &abci.ExecTxResult{Code: 1, Log: err.Error()}
	}

	staged, err := a.st.Clone()
	if err != nil {
		return &abci.ExecTxResult{Code: 1, Log: err.Error()}
	}

	res := applyTx(staged, env, height)
	if res.Code != 0 {
		return res
	}
	a.st = staged
	return res
}

// consumeNonce enforces strictly-increasing numeric nonces per signer.
func consumeNonce(st *state.State, env codec.TxEnvelope) error {
	n, err := strconv.ParseUint(env.Nonce, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid tx.nonce: %q", env.Nonce)
	}
	if last, ok := st.NonceMax[env.Signer]; ok && n <= last {
		return fmt.Errorf("replayed tx.nonce: got %d, last %d", n, last)
	}
	st.NonceMax[env.Signer] = n
	return nil
}

func applyTx(st *state.State, env codec.TxEnvelope, height int64) *abci.ExecTxResult {
	switch env.Type {
	case "bank/mint":
		// Devnet faucet; unauthenticated.
		var msg codec.BankMintTx
		if err := json.Unmarshal(env.Value, &msg); err != nil {
			return &abci.ExecTxResult{Code: 1, Log: "bad bank/mint value"}
		}
		return errResult(bankMint(st, msg))

	case "bank/send":
		var msg codec.BankSendTx
		if err := json.Unmarshal(env.Value, &msg); err != nil {
			return &abci.ExecTxResult{Code: 1, Log: "bad bank/send value"}
		}
		if err := requireAccountAuth(st, env, msg.From); err != nil {
			return &abci.ExecTxResult{Code: 1, Log: err.Error()}
		}
		if err := consumeNonce(st, env); err != nil {
			return &abci.ExecTxResult{Code: 1, Log: err.Error()}
		}
		return errResult(bankSend(st, msg))

	case "auth/register_account":
		var msg codec.AuthRegisterAccountTx
		if err := json.Unmarshal(env.Value, &msg); err != nil {
			return &abci.ExecTxResult{Code: 1, Log: "bad auth/register_account value"}
		}
		if err := requireRegisterAccountAuth(env, msg); err != nil {
			return &abci.ExecTxResult{Code: 1, Log: err.Error()}
		}
		if err := consumeNonce(st, env); err != nil {
			return &abci.ExecTxResult{Code: 1, Log: err.Error()}
		}
		return errResult(registerAccount(st, msg))

	case "craps/fund_house":
		var msg codec.CrapsFundHouseTx
		if err := json.Unmarshal(env.Value, &msg); err != nil {
			return &abci.ExecTxResult{Code: 1, Log: "bad craps/fund_house value"}
		}
		if err := requireAccountAuth(st, env, msg.From); err != nil {
			return &abci.ExecTxResult{Code: 1, Log: err.Error()}
		}
		if err := consumeNonce(st, env); err != nil {
			return &abci.ExecTxResult{Code: 1, Log: err.Error()}
		}
		return errResult(fundHouse(st, msg))

	case "craps/start_round":
		var msg codec.CrapsStartRoundTx
		if err := json.Unmarshal(env.Value, &msg); err != nil {
			return &abci.ExecTxResult{Code: 1, Log: "bad craps/start_round value"}
		}
		if err := requireOracleAuth(st, env); err != nil {
			return &abci.ExecTxResult{Code: 1, Log: err.Error()}
		}
		if err := consumeNonce(st, env); err != nil {
			return &abci.ExecTxResult{Code: 1, Log: err.Error()}
		}
		return errResult(startRound(st, env.Signer, msg, height))

	case "craps/place_bet":
		var msg codec.CrapsPlaceBetTx
		if err := json.Unmarshal(env.Value, &msg); err != nil {
			return &abci.ExecTxResult{Code: 1, Log: "bad craps/place_bet value"}
		}
		if err := requireAccountAuth(st, env, msg.Player); err != nil {
			return &abci.ExecTxResult{Code: 1, Log: err.Error()}
		}
		if err := consumeNonce(st, env); err != nil {
			return &abci.ExecTxResult{Code: 1, Log: err.Error()}
		}
		return errResult(placeBet(st, msg))

	case "craps/settle":
		var msg codec.CrapsSettleTx
		if err := json.Unmarshal(env.Value, &msg); err != nil {
			return &abci.ExecTxResult{Code: 1, Log: "bad craps/settle value"}
		}
		if err := requireAccountAuth(st, env, msg.Player); err != nil {
			return &abci.ExecTxResult{Code: 1, Log: err.Error()}
		}
		if err := consumeNonce(st, env); err != nil {
			return &abci.ExecTxResult{Code: 1, Log: err.Error()}
		}
		return errResult(settlePosition(st, msg.Player, height))

	case "craps/claim_winnings":
		var msg codec.CrapsClaimWinningsTx
		if err := json.Unmarshal(env.Value, &msg); err != nil {
			return &abci.ExecTxResult{Code: 1, Log: "bad craps/claim_winnings value"}
		}
		if err := requireAccountAuth(st, env, msg.Player); err != nil {
			return &abci.ExecTxResult{Code: 1, Log: err.Error()}
		}
		if err := consumeNonce(st, env); err != nil {
			return &abci.ExecTxResult{Code: 1, Log: err.Error()}
		}
		return errResult(claimWinnings(st, msg.Player))

	case "craps/claim_debt":
		var msg codec.CrapsClaimDebtTx
		if err := json.Unmarshal(env.Value, &msg); err != nil {
			return &abci.ExecTxResult{Code: 1, Log: "bad craps/claim_debt value"}
		}
		if err := requireAccountAuth(st, env, msg.Player); err != nil {
			return &abci.ExecTxResult{Code: 1, Log: err.Error()}
		}
		if err := consumeNonce(st, env); err != nil {
			return &abci.ExecTxResult{Code: 1, Log: err.Error()}
		}
		return errResult(claimDebt(st, msg.Player))

	case "craps/force_settle":
		var msg codec.CrapsForceSettleTx
		if err := json.Unmarshal(env.Value, &msg); err != nil {
			return &abci.ExecTxResult{Code: 1, Log: "bad craps/force_settle value"}
		}
		if err := requireAccountAuth(st, env, msg.Caller); err != nil {
			return &abci.ExecTxResult{Code: 1, Log: err.Error()}
		}
		if err := consumeNonce(st, env); err != nil {
			return &abci.ExecTxResult{Code: 1, Log: err.Error()}
		}
		return errResult(forceSettle(st, msg, height))

	default:
		return &abci.ExecTxResult{Code: 1, Log: "unknown tx type: " + env.Type}
	}
}

func errResult(res *abci.ExecTxResult, err error) *abci.ExecTxResult {
	if err != nil {
		return &abci.ExecTxResult{Code: 1, Log: err.Error()}
	}
	return res
}

func okEvent(typ string, attrs map[string]string) *abci.ExecTxResult {
	ev := abci.Event{Type: typ}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		ev.Attributes = append(ev.Attributes, abci.EventAttribute{Key: k, Value: attrs[k], Index: true})
	}
	return &abci.ExecTxResult{
		Code:   0,
		Events: []abci.Event{ev},
	}
}
