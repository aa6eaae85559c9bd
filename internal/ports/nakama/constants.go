package nakama

const (
	// RpcStartRun is the Nakama RPC id clients call to open a new dungeon run.
	RpcStartRun = "start_run"

	// RpcVerifyReceipt checks a signed run receipt.
	RpcVerifyReceipt = "verify_receipt"

	// MatchNameScoundrel is the authoritative match handler name registered with Nakama.
	MatchNameScoundrel = "scoundrel_run"

	// EnvReceiptSecret names the runtime env entry holding the receipt signing key.
	EnvReceiptSecret = "scoundrel_receipt_secret"

	// ConfigPath is the game configuration file relative to the Nakama data directory.
	ConfigPath = "data/scoundrel.yaml"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpDrawInitial int64 = 1
	OpPlayCard    int64 = 2
	OpFight       int64 = 3
	OpCancelFight int64 = 4
	OpSkip        int64 = 5
	OpRestart     int64 = 6

	// Server -> Client
	OpState    int64 = 100 // full snapshot
	OpEvent    int64 = 101
	OpRunEnded int64 = 102 // final score and receipt
	OpError    int64 = 103 // sent privately
)

// Error codes carried in OpError bodies.
const (
	ErrCodeRejected  = 400
	ErrCodeForbidden = 403
	ErrCodeInternal  = 500
)
