// internal/app/features/login/handler.go
package login

import (
	"context"
	"net/http"
	"strings"

	uierrors "github.com/ycyw/humanitieshub/internal/app/features/errors"
	userstore "github.com/ycyw/humanitieshub/internal/app/store/users"
	"github.com/ycyw/humanitieshub/internal/app/system/auth"
	"github.com/ycyw/humanitieshub/internal/app/system/authutil"
	"github.com/ycyw/humanitieshub/internal/app/system/normalize"
	"github.com/ycyw/humanitieshub/internal/app/system/ratelimit"
	"github.com/ycyw/humanitieshub/internal/app/system/timeouts"
	"github.com/ycyw/humanitieshub/internal/app/system/viewdata"
	"github.com/ycyw/humanitieshub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB         *mongo.Database
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	Users      *userstore.Store

	// EmailDomain restricts signups and logins to institutional addresses.
	// Empty disables the restriction. The super-admin email bypasses it.
	EmailDomain     string
	SuperAdminEmail string
	GoogleEnabled   bool

	// Limits throttles password guessing per IP and per email.
	Limits *ratelimit.LoginLimiter
}

/*─────────────────────────────────────────────────────────────────────────────*
| Template-data                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

type loginFormData struct {
	viewdata.BaseVM
	Error         string
	Notice        string
	Email         string
	ReturnURL     string
	GoogleEnabled bool
}

type signupFormData struct {
	viewdata.BaseVM
	Error         string
	Name          string
	Email         string
	School        string
	Schools       []string
	PasswordRules string
}

func NewHandler(
	db *mongo.Database,
	sessionMgr *auth.SessionManager,
	errLog *uierrors.ErrorLogger,
	emailDomain string,
	superAdminEmail string,
	googleEnabled bool,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		DB:              db,
		Log:             logger,
		SessionMgr:      sessionMgr,
		ErrLog:          errLog,
		Users:           userstore.New(db),
		EmailDomain:     emailDomain,
		SuperAdminEmail: superAdminEmail,
		GoogleEnabled:   googleEnabled,
		Limits:          ratelimit.NewLoginLimiter(),
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	notice := ""
	if query.Get(r, "signup") == "1" {
		notice = "Account request submitted. You can sign in once an administrator approves it."
	}

	templates.Render(w, r, "login", loginFormData{
		BaseVM:        viewdata.NewBaseVM(r, h.DB, "Sign In", "/"),
		Notice:        notice,
		ReturnURL:     query.Get(r, "return"),
		GoogleEnabled: h.GoogleEnabled,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/login")
		return
	}

	email := normalize.Email(r.FormValue("email"))
	password := r.FormValue("password")
	if email == "" {
		h.renderFormWithError(w, r, "Please enter your school email address.", email)
		return
	}
	if password == "" {
		h.renderFormWithError(w, r, "Please enter your password.", email)
		return
	}

	if allowed, reason := h.Limits.Check(r, email); !allowed {
		h.Log.Warn("login throttled",
			zap.String("ip", ratelimit.ClientIP(r)),
			zap.String("email", email))
		h.renderFormWithError(w, r, reason, email)
		return
	}

	// The super-admin account is exempt from the domain restriction.
	if !h.isSuperAdmin(email) {
		if err := authutil.ValidateInstitutionalEmail(email, h.EmailDomain); err != nil {
			h.renderFormWithError(w, r, "Please use your school email address.", email)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, email)
	switch err {
	case mongo.ErrNoDocuments:
		h.renderFormWithError(w, r, "No account found for that email address.", email)
		return
	case nil:
		// found, continue
	default:
		h.ErrLog.LogServerError(w, r, "DB find user", err, "A server error occurred.", "/login")
		return
	}

	if !u.IsApproved {
		h.renderFormWithError(w, r,
			"Your account is awaiting administrator approval.", email)
		return
	}

	if u.PasswordHash == "" || !authutil.CheckPassword(password, u.PasswordHash) {
		h.renderFormWithError(w, r, "Incorrect email or password.", email)
		return
	}

	h.Limits.ResetEmail(email)
	h.createSessionAndRedirect(w, r, u, r.FormValue("return"))
}

// createSessionAndRedirect creates an authenticated session and redirects to the destination.
func (h *Handler) createSessionAndRedirect(w http.ResponseWriter, r *http.Request, u *models.User, returnURL string) {
	su := &auth.SessionUser{
		ID:           u.ID.Hex(),
		Name:         u.Name,
		Email:        u.Email,
		Role:         normalize.Role(u.Role),
		IsSuperAdmin: h.isSuperAdmin(u.Email),
	}

	if err := h.SessionMgr.SignIn(w, r, su); err != nil {
		h.Log.Error("save session failed", zap.Error(err), zap.String("email", u.Email))
		h.renderFormWithError(w, r, "Unable to create session. Please try again.", u.Email)
		return
	}

	h.Log.Info("user signed in",
		zap.String("user_id", u.ID.Hex()),
		zap.String("role", su.Role))

	dest := urlutil.SafeReturn(returnURL, "", "/dashboard")
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

func (h *Handler) isSuperAdmin(email string) bool {
	return h.SuperAdminEmail != "" && strings.EqualFold(email, h.SuperAdminEmail)
}

/*─────────────────────────────────────────────────────────────────────────────*
| helper: render the form with an error                                       |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, msg, email string) {
	ret := strings.TrimSpace(r.FormValue("return"))
	if ret == "" {
		ret = query.Get(r, "return")
	}

	templates.Render(w, r, "login", loginFormData{
		BaseVM:        viewdata.NewBaseVM(r, h.DB, "Sign In", "/"),
		Error:         msg,
		Email:         email,
		ReturnURL:     ret,
		GoogleEnabled: h.GoogleEnabled,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login/signup                                                           |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeSignup(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "login_signup", signupFormData{
		BaseVM:        viewdata.NewBaseVM(r, h.DB, "Request an Account", "/login"),
		Schools:       models.Schools,
		PasswordRules: authutil.PasswordRules(),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login/signup                                                          |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleSignupPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/login/signup")
		return
	}

	name := normalize.Name(r.FormValue("name"))
	email := normalize.Email(r.FormValue("email"))
	school := strings.TrimSpace(r.FormValue("school"))
	password := r.FormValue("password")
	confirm := r.FormValue("confirm_password")

	renderError := func(msg string) {
		templates.Render(w, r, "login_signup", signupFormData{
			BaseVM:        viewdata.NewBaseVM(r, h.DB, "Request an Account", "/login"),
			Error:         msg,
			Name:          name,
			Email:         email,
			School:        school,
			Schools:       models.Schools,
			PasswordRules: authutil.PasswordRules(),
		})
	}

	if name == "" {
		renderError("Please enter your name.")
		return
	}
	if err := authutil.ValidateInstitutionalEmail(email, h.EmailDomain); err != nil {
		renderError("Please use your school email address.")
		return
	}
	if school != "" && !models.IsValidSchool(school) {
		renderError("Please choose a school from the list.")
		return
	}
	if password != confirm {
		renderError("Passwords do not match.")
		return
	}
	if err := authutil.ValidatePassword(password); err != nil {
		renderError(err.Error())
		return
	}

	hash, err := authutil.HashPassword(password)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "hash password failed", err, "A server error occurred.", "/login/signup")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	_, err = h.Users.Create(ctx, models.User{
		Name:         name,
		Email:        email,
		School:       school,
		PasswordHash: hash,
	})
	if err == userstore.ErrDuplicateEmail {
		renderError("An account with this email already exists.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create signup", err, "A server error occurred.", "/login/signup")
		return
	}

	h.Log.Info("signup submitted", zap.String("email", email))
	http.Redirect(w, r, "/login?signup=1", http.StatusSeeOther)
}
