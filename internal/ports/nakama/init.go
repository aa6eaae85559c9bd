package nakama

import (
	"context"
	"database/sql"

	"scoundrel/internal/app"
	"scoundrel/internal/config"
	"scoundrel/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule wires RPCs, hooks and match handlers for Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	if err := config.Load(ConfigPath); err != nil {
		logger.Warn("InitModule: Using default game config: %v", err)
	}
	cfg := config.Get()

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if secret := env[EnvReceiptSecret]; secret != "" {
		receiptService = app.NewReceiptService(secret, cfg.Receipts.Issuer, cfg.ReceiptTTL())
	} else {
		logger.Warn("InitModule: %s not set, run receipts are disabled.", EnvReceiptSecret)
	}

	var leaderboard ports.LeaderboardPort
	if cfg.Leaderboard.Enabled {
		if err := EnsureLeaderboard(ctx, nk, cfg.Leaderboard); err != nil {
			logger.Error("InitModule: %v", err)
			return err
		}
		leaderboard = NewNakamaLeaderboardAdapter(nk, cfg.Leaderboard.ID)
	}

	if err := RegisterRPCs(initializer); err != nil {
		return err
	}

	if err := initializer.RegisterMatch(MatchNameScoundrel, func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
		return newMatchHandler(cfg, leaderboard, receiptService), nil
	}); err != nil {
		return err
	}

	if err := initializer.RegisterAfterAuthenticateDevice(AfterAuthenticateDevice); err != nil {
		return err
	}

	logger.Info("Scoundrel Go module loaded.")
	return nil
}

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	if err := initializer.RegisterRpc(RpcStartRun, RpcStartRunHandler); err != nil {
		return err
	}
	return initializer.RegisterRpc(RpcVerifyReceipt, RpcVerifyReceiptHandler)
}
