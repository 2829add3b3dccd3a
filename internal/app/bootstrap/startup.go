// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	eventstore "github.com/ycyw/humanitieshub/internal/app/store/events"
	userstore "github.com/ycyw/humanitieshub/internal/app/store/users"
	"github.com/ycyw/humanitieshub/internal/app/system/authutil"
	"go.uber.org/zap"
)

// Startup runs one-time initialization after DB connections and schema
// setup are complete, but before the HTTP handler is built: seeding the
// fixed department calendar and the super-admin account.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	seeded, err := eventstore.New(deps.MongoDatabase).SeedIfEmpty(ctx, DefaultCalendar())
	if err != nil {
		return fmt.Errorf("seed calendar: %w", err)
	}
	if seeded {
		logger.Info("department calendar seeded")
	}

	if appCfg.SuperAdminEmail != "" && appCfg.SuperAdminPassword != "" {
		hash, err := authutil.HashPassword(appCfg.SuperAdminPassword)
		if err != nil {
			return fmt.Errorf("hash super-admin password: %w", err)
		}
		created, err := userstore.New(deps.MongoDatabase).
			EnsureAdmin(ctx, appCfg.SuperAdminEmail, appCfg.SuperAdminName, hash)
		if err != nil {
			return fmt.Errorf("ensure super-admin: %w", err)
		}
		if created {
			logger.Info("super-admin account created",
				zap.String("email", appCfg.SuperAdminEmail))
		}
	}

	return nil
}
