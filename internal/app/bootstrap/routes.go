// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	aboutfeature "github.com/ycyw/humanitieshub/internal/app/features/about"
	adminfeature "github.com/ycyw/humanitieshub/internal/app/features/admin"
	assistantfeature "github.com/ycyw/humanitieshub/internal/app/features/assistant"
	authgooglefeature "github.com/ycyw/humanitieshub/internal/app/features/authgoogle"
	calendarfeature "github.com/ycyw/humanitieshub/internal/app/features/calendar"
	dashboardfeature "github.com/ycyw/humanitieshub/internal/app/features/dashboard"
	errorsfeature "github.com/ycyw/humanitieshub/internal/app/features/errors"
	forumfeature "github.com/ycyw/humanitieshub/internal/app/features/forum"
	healthfeature "github.com/ycyw/humanitieshub/internal/app/features/health"
	homefeature "github.com/ycyw/humanitieshub/internal/app/features/home"
	inboxfeature "github.com/ycyw/humanitieshub/internal/app/features/inbox"
	loginfeature "github.com/ycyw/humanitieshub/internal/app/features/login"
	logoutfeature "github.com/ycyw/humanitieshub/internal/app/features/logout"
	pdfeature "github.com/ycyw/humanitieshub/internal/app/features/pd"
	profilefeature "github.com/ycyw/humanitieshub/internal/app/features/profile"
	resourcesfeature "github.com/ycyw/humanitieshub/internal/app/features/resources"
	userinfofeature "github.com/ycyw/humanitieshub/internal/app/features/userinfo"
	userstore "github.com/ycyw/humanitieshub/internal/app/store/users"
	"github.com/ycyw/humanitieshub/internal/app/notify"
	"github.com/ycyw/humanitieshub/internal/app/system/auth"

	// Registers the shared template partials (navbar).
	_ "github.com/ycyw/humanitieshub/internal/app/features/shared"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connection, schema setup, and
// the Startup hook have completed. It creates the session manager, boots
// the template engine, and mounts every feature router.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Fetch fresh user data per request so approvals, role changes, and
	// super-admin status take effect immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(deps.MongoDatabase, appCfg.SuperAdminEmail))

	// Boot the template engine once at startup. Dev mode reloads templates.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	db := deps.MongoDatabase
	errLog := errorsfeature.NewErrorLogger(logger)
	notifier := notify.NewService(userstore.New(db), logger)

	r := chi.NewRouter()

	// Global auth middleware: loads the SessionUser into context.
	r.Use(sessionMgr.LoadSessionUser)

	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Unmatched paths fall through the "/" mount, so the friendly 404 page
	// hangs off the home router as well as the root.
	errorsHandler := errorsfeature.NewHandler()

	homeHandler := homefeature.NewHandler(db, logger)
	homeRouter := homefeature.Routes(homeHandler)
	homeRouter.NotFound(errorsHandler.NotFound)
	r.Mount("/", homeRouter)

	aboutHandler := aboutfeature.NewHandler(db, logger)
	r.Mount("/about", aboutfeature.Routes(aboutHandler))

	// Authentication
	googleEnabled := appCfg.GoogleClientID != "" && appCfg.GoogleClientSecret != ""
	loginHandler := loginfeature.NewHandler(db, sessionMgr, errLog,
		appCfg.EmailDomain, appCfg.SuperAdminEmail, googleEnabled, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler, sessionMgr))

	googleHandler := authgooglefeature.NewHandler(db, sessionMgr, errLog,
		appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL,
		appCfg.EmailDomain, appCfg.SuperAdminEmail, logger)
	r.Mount("/auth/google", authgooglefeature.Routes(googleHandler))

	// Session identity as JSON for page scripts
	userinfofeature.MountRoutes(r, userinfofeature.NewHandler())

	// Error pages
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)
	r.NotFound(errorsHandler.NotFound)

	// Application areas
	dashboardHandler := dashboardfeature.NewHandler(db, errLog, logger)
	r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler, sessionMgr))

	resourcesHandler := resourcesfeature.NewHandler(db, errLog, notifier, appCfg.PublishPolicy, logger)
	r.Mount("/resources", resourcesfeature.Routes(resourcesHandler, sessionMgr))

	pdHandler := pdfeature.NewHandler(db, errLog, logger)
	r.Mount("/pd", pdfeature.Routes(pdHandler, sessionMgr))

	forumHandler := forumfeature.NewHandler(db, errLog, notifier, logger)
	r.Mount("/forum", forumfeature.Routes(forumHandler, sessionMgr))

	calendarHandler := calendarfeature.NewHandler(db, errLog, logger)
	r.Mount("/calendar", calendarfeature.Routes(calendarHandler, sessionMgr))

	inboxHandler := inboxfeature.NewHandler(db, errLog, logger)
	r.Mount("/inbox", inboxfeature.Routes(inboxHandler, sessionMgr))

	profileHandler := profilefeature.NewHandler(db, errLog, logger)
	r.Mount("/profile", profilefeature.Routes(profileHandler, sessionMgr))

	adminHandler := adminfeature.NewHandler(db, errLog, logger)
	r.Mount("/admin", adminfeature.Routes(adminHandler, sessionMgr))

	assistantClient := assistantfeature.NewClient(appCfg.AssistantBaseURL, appCfg.AssistantAPIKey, appCfg.AssistantModel)
	assistantHandler := assistantfeature.NewHandler(db, errLog, assistantClient, logger)
	r.Mount("/assistant", assistantfeature.Routes(assistantHandler, sessionMgr))

	return r, nil
}
