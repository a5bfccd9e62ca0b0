// Package mpc defines the wire types for the Participant RPC surface
// described in mpc.proto. The module does not invoke protoc, so the
// message types below are plain structs rather than protoc-gen-go output;
// the wire codec defined in codec.go carries them over gRPC using JSON
// instead of the binary protobuf encoding protoc would otherwise produce.
// mpc.proto remains the source of truth for the schema and is what a
// protoc run would compile against in a production build.
package mpc

// Chain identifies the target blockchain for a wallet or a signing
// ceremony. The curve used for threshold-ECDSA is secp256k1 for both
// values in the current build.
type Chain int32

const (
	Chain_ETHEREUM Chain = 0
	Chain_BITCOIN  Chain = 1
)

func (c Chain) String() string {
	switch c {
	case Chain_ETHEREUM:
		return "ETHEREUM"
	case Chain_BITCOIN:
		return "BITCOIN"
	default:
		return "UNKNOWN"
	}
}

type Empty struct{}

type CreateWalletMessage struct {
	WalletId    int32  `json:"wallet_id"`
	Chain       Chain  `json:"chain"`
	ExecutionId []byte `json:"execution_id"`
}

type DeleteWalletMessage struct {
	WalletId int32 `json:"wallet_id"`
}

type SignMessage struct {
	TxId        int32   `json:"tx_id"`
	WalletId    int32   `json:"wallet_id"`
	ExecutionId []byte  `json:"execution_id"`
	Chain       Chain   `json:"chain"`
	Data        []byte  `json:"data"`
	Signers     []int32 `json:"signers"` // party indices forming this ceremony's signing coalition (spec.md section 9 redesign: no longer hardcoded to [0, 1])
}

type SignatureMessage struct {
	R         []byte `json:"r"`
	S         []byte `json:"s"`
	V         uint32 `json:"v"`
	PublicKey []byte `json:"public_key"`
}

type KeyShareInfo struct {
	PublicKey []byte `json:"public_key"`
}
