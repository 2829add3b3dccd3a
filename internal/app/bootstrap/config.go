// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/ycyw/humanitieshub/internal/app/features/resources"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for Humanities Hub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: HUMHUB_MONGO_URI, HUMHUB_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "humanities_hub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "humanitieshub-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	{Name: "email_domain", Default: "hk.ycef.com", Desc: "Institutional email domain allowed to sign up and log in"},

	{Name: "superadmin_email", Default: "", Desc: "Email of the super-admin account (seeded on startup)"},
	{Name: "superadmin_name", Default: "Administrator", Desc: "Display name of the super-admin account"},
	{Name: "superadmin_password", Default: "", Desc: "Initial password for the super-admin account"},

	{Name: "publish_policy", Default: resources.PolicyModerated, Desc: "Resource publish policy: 'moderated' or 'instant'"},

	{Name: "assistant_api_key", Default: "", Desc: "API key for the lesson assistant endpoint"},
	{Name: "assistant_model", Default: "gemini-2.0-flash", Desc: "Model name for the lesson assistant"},
	{Name: "assistant_base_url", Default: "", Desc: "Override for the assistant endpoint base URL"},

	{Name: "google_client_id", Default: "", Desc: "Google OAuth2 client ID"},
	{Name: "google_client_secret", Default: "", Desc: "Google OAuth2 client secret"},

	{Name: "base_url", Default: "http://localhost:3000", Desc: "Base URL for OAuth callbacks"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// environment variables (WAFFLE_* for core, HUMHUB_* for app), and flags,
// merging with precedence: flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "HUMHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),

		EmailDomain: appValues.String("email_domain"),

		SuperAdminEmail:    appValues.String("superadmin_email"),
		SuperAdminName:     appValues.String("superadmin_name"),
		SuperAdminPassword: appValues.String("superadmin_password"),

		PublishPolicy: appValues.String("publish_policy"),

		AssistantAPIKey:  appValues.String("assistant_api_key"),
		AssistantModel:   appValues.String("assistant_model"),
		AssistantBaseURL: appValues.String("assistant_base_url"),

		GoogleClientID:     appValues.String("google_client_id"),
		GoogleClientSecret: appValues.String("google_client_secret"),

		BaseURL: appValues.String("base_url"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation before any
// backend connections are attempted.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.EmailDomain == "" {
		return fmt.Errorf("email_domain must be set")
	}

	if p := appCfg.PublishPolicy; p != resources.PolicyModerated && p != resources.PolicyInstant {
		return fmt.Errorf("publish_policy must be %q or %q, got %q",
			resources.PolicyModerated, resources.PolicyInstant, p)
	}

	if coreCfg.Env == "prod" && appCfg.SessionKey == "dev-only-change-me-please-0123456789ABCDEF" {
		return fmt.Errorf("session_key must be changed for production")
	}

	return nil
}
