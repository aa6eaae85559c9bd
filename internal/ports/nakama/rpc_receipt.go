package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"scoundrel/internal/app"

	"github.com/heroiclabs/nakama-common/runtime"
)

// receiptService is configured by InitModule when a signing secret is available.
var receiptService *app.ReceiptService

type verifyReceiptRequest struct {
	Token string `json:"token"`
}

// RpcVerifyReceiptHandler checks a run receipt issued at the end of a match.
// Payload: {"token": "..."}
// Returns: the verified receipt as JSON.
func RpcVerifyReceiptHandler(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	if receiptService == nil {
		return "", runtime.NewError("Receipts are not configured", 9) // FAILED_PRECONDITION
	}

	var req verifyReceiptRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil || req.Token == "" {
		return "", runtime.NewError("Invalid payload", 3) // INVALID_ARGUMENT
	}

	receipt, err := receiptService.Verify(req.Token)
	if err != nil {
		logger.Warn("RpcVerifyReceipt: Rejected receipt: %v", err)
		return "", runtime.NewError("Invalid receipt", 3)
	}

	b, err := json.Marshal(receipt)
	if err != nil {
		logger.Error("RpcVerifyReceipt: Failed to marshal receipt: %v", err)
		return "", runtime.NewError("Internal error", 13)
	}
	return string(b), nil
}
