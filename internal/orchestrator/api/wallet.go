package api

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/shardwallet/shardwallet/internal/chain"
	"github.com/shardwallet/shardwallet/internal/orchestrator/authn"
	"github.com/shardwallet/shardwallet/internal/orchestrator/ceremony"
	"github.com/shardwallet/shardwallet/internal/orchestrator/db"
	"github.com/shardwallet/shardwallet/proto/mpc"
)

func chainFromString(s string) (db.Chain, mpc.Chain, bool) {
	switch s {
	case "ethereum":
		return db.ChainEthereum, mpc.Chain_ETHEREUM, true
	case "bitcoin":
		return db.ChainBitcoin, mpc.Chain_BITCOIN, true
	default:
		return 0, 0, false
	}
}

// CreateWallet implements spec.md section 4.1.1: insert the Wallet row,
// run the keygen ceremony across every participant, and commit only if
// all of them succeeded. A mid-ceremony participant failure rolls the
// insert back, leaving no orphan wallet row (spec.md section 8
// scenario 2).
func (s *Server) CreateWallet(w http.ResponseWriter, r *http.Request) {
	claims, ok := authn.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusUnprocessableEntity)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	dbChain, mpcChain, ok := chainFromString(req.Chain)
	if !ok {
		http.Error(w, "unsupported chain", http.StatusUnprocessableEntity)
		return
	}

	var wallet db.Wallet
	execID := ceremony.NewExecutionID()
	ceremonyStarted := false

	err := s.db.WithContext(r.Context()).Transaction(func(tx *gorm.DB) error {
		wallet = db.Wallet{UserID: claims.UserID, Name: req.Name, Chain: dbChain}
		if err := s.wallets.WithTx(tx).Create(r.Context(), &wallet); err != nil {
			return err
		}

		ceremonyStarted = true
		result, err := ceremony.CreateWallet(r.Context(), s.participants, int32(wallet.ID), mpcChain, execID)
		if err != nil {
			return err
		}
		wallet.PublicKey = result.PublicKey
		return tx.WithContext(r.Context()).Model(&wallet).Update("public_key", result.PublicKey).Error
	})
	if err != nil {
		s.log.Errorf("create wallet ceremony %x: %v", execID, err)
		if ceremonyStarted {
			// Some participants may already hold a share for this
			// wallet id; queue it for orphan-share cleanup.
			s.reconcile.Push(int32(wallet.ID), execID)
		}
		http.Error(w, "wallet creation failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, wallet)
}

// DeleteWallet implements spec.md section 4.1.2: ownership check,
// fan out DeleteWallet to every participant, and only then delete the
// row. A participant that fails to drop its share is queued for
// bounded retry (internal/orchestrator/reconcile) rather than blocking
// the caller's request indefinitely.
func (s *Server) DeleteWallet(w http.ResponseWriter, r *http.Request) {
	claims, ok := authn.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "invalid wallet id", http.StatusUnprocessableEntity)
		return
	}

	wallet, err := s.wallets.ByIDForUser(r.Context(), id, claims.UserID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		s.log.Errorf("looking up wallet %d: %v", id, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	execID := ceremony.NewExecutionID()
	if err := ceremony.DeleteWallet(r.Context(), s.participants, int32(wallet.ID)); err != nil {
		s.log.Warnf("delete wallet %d ceremony %x incomplete, queuing reconciliation: %v", wallet.ID, execID, err)
		s.reconcile.Push(int32(wallet.ID), execID)
	}

	if err := s.wallets.Delete(r.Context(), wallet.ID); err != nil {
		s.log.Errorf("deleting wallet %d row: %v", wallet.ID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SignTx implements spec.md section 4.1.3: insert the Transaction row,
// build the chain-specific unsigned bytes, run the signing ceremony
// against a t-of-n coalition, and commit the row before submitting to
// the chain provider — a failed submission after a successful
// ceremony still leaves an auditable Transaction row (spec.md section
// 8 scenario 5).
func (s *Server) SignTx(w http.ResponseWriter, r *http.Request) {
	claims, ok := authn.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	walletID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "invalid wallet id", http.StatusUnprocessableEntity)
		return
	}

	var req SignTxRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusUnprocessableEntity)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	wallet, err := s.wallets.ByIDForUser(r.Context(), walletID, claims.UserID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		s.log.Errorf("looking up wallet %d: %v", walletID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	builder, ok := s.builders[wallet.Chain]
	if !ok {
		http.Error(w, "unsupported chain", http.StatusInternalServerError)
		return
	}

	var toAddr [20]byte
	toBytes, err := decodeHexAddress(req.To)
	if err != nil {
		http.Error(w, "invalid to address", http.StatusUnprocessableEntity)
		return
	}
	copy(toAddr[:], toBytes)

	unsigned := chain.UnsignedTx{To: toAddr, Value: req.Value}
	unsignedBytes, err := builder.Unsigned(unsigned)
	if err != nil {
		s.log.Errorf("building unsigned tx for wallet %d: %v", wallet.ID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	mpcChain := mpc.Chain_ETHEREUM
	if wallet.Chain == db.ChainBitcoin {
		mpcChain = mpc.Chain_BITCOIN
	}

	var txn db.Transaction
	var sigResult *ceremony.SignTxResult
	execID := ceremony.NewExecutionID()

	err = s.db.WithContext(r.Context()).Transaction(func(tx *gorm.DB) error {
		txn = db.Transaction{UserID: claims.UserID, WalletID: wallet.ID}
		if err := s.txs.WithTx(tx).Create(r.Context(), &txn); err != nil {
			return err
		}

		signers := ceremony.SelectSigners(s.participants.N(), s.threshold)
		result, err := ceremony.SignTx(r.Context(), s.participants, signers, int32(txn.ID), int32(wallet.ID), mpcChain, execID, unsignedBytes)
		if err != nil {
			return err
		}
		sigResult = result
		return nil
	})
	if err != nil {
		s.log.Errorf("sign tx ceremony %x for wallet %d: %v", execID, wallet.ID, err)
		http.Error(w, "signing failed", http.StatusInternalServerError)
		return
	}

	sig := chain.Signature{R: sigResult.R, S: sigResult.S, V: byte(sigResult.V)}

	digest := sha256.Sum256(unsignedBytes)
	if err := chain.VerifySignature(wallet.PublicKey, digest, sig); err != nil {
		s.log.Errorf("sign tx ceremony %x produced a signature that fails verification for wallet %d: %v", execID, wallet.ID, err)
		http.Error(w, "signing failed", http.StatusInternalServerError)
		return
	}

	signedBytes, err := builder.Signed(unsigned, sig)
	if err != nil {
		s.log.Errorf("assembling signed tx %d: %v", txn.ID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	provider, ok := s.providers[wallet.Chain]
	if !ok {
		http.Error(w, "unsupported chain", http.StatusInternalServerError)
		return
	}
	txHash, err := provider.Submit(r.Context(), signedBytes)
	if err != nil {
		// The ceremony already succeeded and is committed; the caller
		// can retry submission out of band using the recorded tx id.
		s.log.Errorf("submitting tx %d: %v", txn.ID, err)
		writeJSON(w, http.StatusAccepted, struct {
			TransactionID int64  `json:"transaction_id"`
			Error         string `json:"submit_error"`
		}{TransactionID: txn.ID, Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, struct {
		TransactionID int64  `json:"transaction_id"`
		TxHash        string `json:"tx_hash"`
	}{TransactionID: txn.ID, TxHash: hexEncode(txHash[:])})
}
