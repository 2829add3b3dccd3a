// internal/app/features/assistant/handler.go

// Package assistant serves the lesson-idea helper. It wraps one opaque
// completion endpoint; every call is a single request with a static fallback
// message on failure. The single in-flight guard lives client-side in the
// page script, so the server treats each request independently.
package assistant

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/ycyw/humanitieshub/internal/app/features/errors"
	"github.com/ycyw/humanitieshub/internal/app/system/htmlsanitize"
	"github.com/ycyw/humanitieshub/internal/app/system/normalize"
	"github.com/ycyw/humanitieshub/internal/app/system/timeouts"
	"github.com/ycyw/humanitieshub/internal/app/system/viewdata"
	"github.com/ycyw/humanitieshub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"html/template"
)

// Fallback messages shown when the completion call fails for any reason.
const (
	IdeaFallback   = "Sorry, I couldn't generate an idea at this moment."
	SearchFallback = "Search currently unavailable."
)

type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
	Client *Client
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, client *Client, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Log:    logger,
		ErrLog: errLog,
		Client: client,
	}
}

type assistantVM struct {
	viewdata.BaseVM
	YearGroups []string
	Subjects   []string

	Topic     string
	YearGroup string
	Subject   string
	Query     string

	Idea         template.HTML
	SearchResult template.HTML
	Sources      []Source
	Failed       bool
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /assistant                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeAssistant(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, assistantVM{})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, vm assistantVM) {
	vm.BaseVM = viewdata.NewBaseVM(r, h.DB, "Lesson Assistant", "/dashboard")
	vm.YearGroups = models.YearGroups
	vm.Subjects = models.Subjects
	templates.Render(w, r, "assistant", vm)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /assistant/idea                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleIdea(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/assistant")
		return
	}

	topic := normalize.QueryParam(r.FormValue("topic"))
	yearGroup := normalize.QueryParam(r.FormValue("year_group"))
	subject := normalize.QueryParam(r.FormValue("subject"))

	vm := assistantVM{Topic: topic, YearGroup: yearGroup, Subject: subject}
	if topic == "" {
		h.render(w, r, vm)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	prompt := buildIdeaPrompt(topic, yearGroup, subject)
	text, err := h.Client.Complete(ctx, prompt)
	if err != nil {
		h.Log.Warn("idea completion failed", zap.Error(err))
		vm.Idea = template.HTML(template.HTMLEscapeString(IdeaFallback))
		vm.Failed = true
		h.render(w, r, vm)
		return
	}

	vm.Idea = htmlsanitize.PrepareForDisplay(text)
	h.render(w, r, vm)
}

func buildIdeaPrompt(topic, yearGroup, subject string) string {
	var b strings.Builder
	b.WriteString("Suggest a single classroom lesson idea")
	if subject != "" {
		b.WriteString(" for " + subject)
	}
	if yearGroup != "" {
		b.WriteString(" (" + yearGroup + ")")
	}
	b.WriteString(" on the topic: " + topic)
	b.WriteString(". Include a starter, a main activity, and a plenary.")
	return b.String()
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /assistant/search                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/assistant")
		return
	}

	query := normalize.QueryParam(r.FormValue("q"))
	vm := assistantVM{Query: query}
	if query == "" {
		h.render(w, r, vm)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	prompt := "Answer the following teaching question with sourced, factual " +
		"information suitable for secondary school Humanities staff: " + query
	text, sources, err := h.Client.SearchGrounded(ctx, prompt)
	if err != nil {
		h.Log.Warn("grounded search failed", zap.Error(err))
		vm.SearchResult = template.HTML(template.HTMLEscapeString(SearchFallback))
		vm.Failed = true
		h.render(w, r, vm)
		return
	}

	vm.SearchResult = htmlsanitize.PrepareForDisplay(text)
	vm.Sources = sources
	h.render(w, r, vm)
}
