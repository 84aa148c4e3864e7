package economy

import (
	"context"
	"log/slog"

	"github.com/ellavondegurechaff/goaura/goaura/database/repositories"
)

// markActive refreshes the wallet's activity timestamp after a successful
// earning. Best-effort: a failure is logged and the earning stands.
func markActive(ctx context.Context, accounts repositories.AccountRepository, wallet string) {
	if err := accounts.TouchLastActive(ctx, wallet); err != nil {
		slog.Warn("Failed to update last active timestamp",
			slog.String("wallet", wallet),
			slog.Any("error", err))
	}
}
