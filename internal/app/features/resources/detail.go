// internal/app/features/resources/detail.go
package resources

import (
	"context"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/google/uuid"
	"github.com/ycyw/humanitieshub/internal/app/policy/resourcepolicy"
	"github.com/ycyw/humanitieshub/internal/app/system/authz"
	"github.com/ycyw/humanitieshub/internal/app/system/htmlsanitize"
	"github.com/ycyw/humanitieshub/internal/app/system/timeouts"
	"github.com/ycyw/humanitieshub/internal/app/system/viewdata"
	"github.com/ycyw/humanitieshub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type commentVM struct {
	Author     string
	Content    template.HTML
	IsQuestion bool
	Date       time.Time
}

type detailVM struct {
	viewdata.BaseVM
	Resource    models.Resource
	Description template.HTML
	Comments    []commentVM
	TypeLabel   string
	CanApprove  bool
	CanDelete   bool
	CanAddFiles bool
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /resources/{id}                                                         |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := h.resourceID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	res, err := h.Store.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		h.ErrLog.LogNotFound(w, r, "resource not found", "That resource does not exist.", "/resources")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "DB get resource", err, "Could not load the resource.", "/resources")
		return
	}

	role, name, _, _ := authz.UserCtx(r)

	// Pending resources are visible only in the queue and to their author.
	if res.IsPending() && role != models.RoleAdmin && !strings.EqualFold(name, res.Author) {
		h.ErrLog.LogNotFound(w, r, "pending resource hidden", "That resource does not exist.", "/resources")
		return
	}

	comments := make([]commentVM, 0, len(res.Comments))
	for _, c := range res.Comments {
		comments = append(comments, commentVM{
			Author:     c.Author,
			Content:    htmlsanitize.PrepareForDisplay(c.Content),
			IsQuestion: c.IsQuestion,
			Date:       c.Date,
		})
	}

	isAuthor := strings.EqualFold(name, res.Author)
	templates.Render(w, r, "resource_detail", detailVM{
		BaseVM:      viewdata.NewBaseVM(r, h.DB, res.Title, "/resources"),
		Resource:    res,
		Description: htmlsanitize.PrepareForDisplay(res.Description),
		Comments:    comments,
		TypeLabel:   models.TypeLabels[res.Type],
		CanApprove:  res.IsPending() && resourcepolicy.CanApprove(role),
		CanDelete:   resourcepolicy.CanDelete(role, name, res.Author),
		CanAddFiles: role == models.RoleAdmin || isAuthor,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /resources/{id}/comments                                               |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleComment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.resourceID(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/resources")
		return
	}

	_, name, _, signedIn := authz.UserCtx(r)
	if !signedIn {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	content := strings.TrimSpace(r.FormValue("content"))
	if content == "" {
		http.Redirect(w, r, "/resources/"+id.Hex(), http.StatusSeeOther)
		return
	}

	comment := models.ResourceComment{
		ID:         uuid.NewString(),
		Author:     name,
		Content:    htmlsanitize.Sanitize(content),
		IsQuestion: r.FormValue("is_question") != "",
		Date:       time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	res, err := h.Store.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		h.ErrLog.LogNotFound(w, r, "resource not found", "That resource does not exist.", "/resources")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "DB get resource", err, "Could not save your comment.", "/resources")
		return
	}

	if err := h.Store.AddComment(ctx, id, comment); err != nil {
		h.ErrLog.LogServerError(w, r, "DB add comment", err, "Could not save your comment.", "/resources/"+id.Hex())
		return
	}

	if err := h.Notify.CommentAdded(ctx, res, comment); err != nil {
		h.Log.Warn("comment notification failed", zap.Error(err))
	}

	http.Redirect(w, r, "/resources/"+id.Hex(), http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /resources/{id}/files – attach file metadata                           |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleAddFiles(w http.ResponseWriter, r *http.Request) {
	id, ok := h.resourceID(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/resources")
		return
	}

	role, name, _, signedIn := authz.UserCtx(r)
	if !signedIn {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	res, err := h.Store.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		h.ErrLog.LogNotFound(w, r, "resource not found", "That resource does not exist.", "/resources")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "DB get resource", err, "Could not attach the file.", "/resources")
		return
	}

	// Only the author or an admin may attach files. Denied requests no-op.
	if role != models.RoleAdmin && !strings.EqualFold(name, res.Author) {
		http.Redirect(w, r, "/resources/"+id.Hex(), http.StatusSeeOther)
		return
	}

	fileName := strings.TrimSpace(r.FormValue("file_name"))
	if fileName == "" {
		http.Redirect(w, r, "/resources/"+id.Hex(), http.StatusSeeOther)
		return
	}
	kind := strings.TrimSpace(r.FormValue("kind"))
	if kind != "presentation" {
		kind = "document"
	}

	file := models.ResourceFile{
		ID:   uuid.NewString(),
		Name: fileName,
		Size: strings.TrimSpace(r.FormValue("size")),
		Kind: kind,
	}

	if err := h.Store.AddFiles(ctx, id, []models.ResourceFile{file}); err != nil {
		h.ErrLog.LogServerError(w, r, "DB add file", err, "Could not attach the file.", "/resources/"+id.Hex())
		return
	}

	http.Redirect(w, r, "/resources/"+id.Hex(), http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /resources/{id}/download – record a download                           |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	id, ok := h.resourceID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Store.IncrementDownloads(ctx, id); err != nil {
		h.Log.Warn("download counter failed", zap.String("resource_id", id.Hex()), zap.Error(err))
	}

	http.Redirect(w, r, "/resources/"+id.Hex(), http.StatusSeeOther)
}
