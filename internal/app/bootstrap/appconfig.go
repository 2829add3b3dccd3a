// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles
// framework-level settings (ports, TLS, logging); AppConfig is everything
// specific to this application.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string // secret key for signing session cookies
	SessionName   string // cookie name
	SessionDomain string // cookie domain (blank means current host)

	// Institutional access control
	EmailDomain string // the one email domain allowed to sign up and log in

	// Super-admin bootstrap account
	SuperAdminEmail    string
	SuperAdminName     string
	SuperAdminPassword string // initial password, hashed on first seed

	// Resource moderation: "moderated" (default) or "instant"
	PublishPolicy string

	// Lesson assistant (Gemini-style completion endpoint)
	AssistantAPIKey  string
	AssistantModel   string
	AssistantBaseURL string

	// Google OAuth sign-in (optional)
	GoogleClientID     string
	GoogleClientSecret string

	// Base URL for OAuth callbacks
	BaseURL string
}
