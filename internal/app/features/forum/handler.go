// internal/app/features/forum/handler.go
package forum

import (
	"context"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	uierrors "github.com/ycyw/humanitieshub/internal/app/features/errors"
	"github.com/ycyw/humanitieshub/internal/app/notify"
	forumstore "github.com/ycyw/humanitieshub/internal/app/store/forum"
	"github.com/ycyw/humanitieshub/internal/app/system/authz"
	"github.com/ycyw/humanitieshub/internal/app/system/htmlsanitize"
	"github.com/ycyw/humanitieshub/internal/app/system/normalize"
	"github.com/ycyw/humanitieshub/internal/app/system/paging"
	"github.com/ycyw/humanitieshub/internal/app/system/timeouts"
	"github.com/ycyw/humanitieshub/internal/app/system/viewdata"
	"github.com/ycyw/humanitieshub/internal/app/visibility"
	"github.com/ycyw/humanitieshub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the discussion forum: threaded posts with append-only
// replies, browsable by year-group and subject tabs.
type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
	Store  *forumstore.Store
	Notify *notify.Service
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, notifier *notify.Service, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Log:    logger,
		ErrLog: errLog,
		Store:  forumstore.New(db),
		Notify: notifier,
	}
}

func (h *Handler) postID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "invalid post id", err, "That discussion does not exist.", "/forum")
		return primitive.NilObjectID, false
	}
	return id, true
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /forum                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

type listVM struct {
	viewdata.BaseVM
	Posts      []models.ForumPost
	Pager      paging.Page
	Tab        string
	Query      string
	YearGroups []string
	Subjects   []string
}

func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	tab := normalize.QueryParam(query.Get(r, "tab"))
	q := normalize.QueryParam(query.Get(r, "q"))

	posts, err := h.Store.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "DB list posts", err, "Could not load the forum.", "/dashboard")
		return
	}

	shown, pager := paging.Window(visibility.FilterPosts(posts, tab, q), paging.ParseStart(r))

	templates.Render(w, r, "forum_list", listVM{
		BaseVM:     viewdata.NewBaseVM(r, h.DB, "Forum", "/dashboard"),
		Posts:      shown,
		Pager:      pager,
		Tab:        tab,
		Query:      q,
		YearGroups: models.YearGroups,
		Subjects:   models.Subjects,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /forum/new · POST /forum                                                |
*─────────────────────────────────────────────────────────────────────────────*/

type newPostVM struct {
	viewdata.BaseVM
	Error      string
	FormTitle  string
	Content    string
	Context    string
	YearGroups []string
	Subjects   []string
}

func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	h.renderNewForm(w, r, newPostVM{})
}

func (h *Handler) renderNewForm(w http.ResponseWriter, r *http.Request, vm newPostVM) {
	vm.BaseVM = viewdata.NewBaseVM(r, h.DB, "Start a Discussion", "/forum")
	vm.YearGroups = models.YearGroups
	vm.Subjects = models.Subjects
	templates.Render(w, r, "forum_new", vm)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/forum")
		return
	}

	_, name, _, signedIn := authz.UserCtx(r)
	if !signedIn {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	content := strings.TrimSpace(r.FormValue("content"))
	tabContext := strings.TrimSpace(r.FormValue("context"))

	reRender := func(msg string) {
		h.renderNewForm(w, r, newPostVM{
			Error:     msg,
			FormTitle: title,
			Content:   content,
			Context:   tabContext,
		})
	}

	if title == "" {
		reRender("A title is required.")
		return
	}
	if content == "" {
		reRender("Write something to start the discussion.")
		return
	}
	if tabContext != "" && !models.IsValidYearGroup(tabContext) && !models.IsValidSubject(tabContext) {
		reRender("Choose a valid year group or subject, or leave it blank.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	post, err := h.Store.Create(ctx, models.ForumPost{
		Title:   title,
		Content: htmlsanitize.Sanitize(content),
		Author:  name,
		Context: tabContext,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "DB create post", err, "Could not create the discussion.", "/forum")
		return
	}

	h.Log.Info("forum post created",
		zap.String("post_id", post.ID.Hex()),
		zap.String("author", name))
	http.Redirect(w, r, "/forum/"+post.ID.Hex(), http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /forum/{id}                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

type replyVM struct {
	Author  string
	Content template.HTML
	Date    time.Time
}

type detailVM struct {
	viewdata.BaseVM
	Post    models.ForumPost
	Content template.HTML
	Replies []replyVM
}

func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := h.postID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	post, err := h.Store.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		h.ErrLog.LogNotFound(w, r, "post not found", "That discussion does not exist.", "/forum")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "DB get post", err, "Could not load the discussion.", "/forum")
		return
	}

	replies := make([]replyVM, 0, len(post.Replies))
	for _, rep := range post.Replies {
		replies = append(replies, replyVM{
			Author:  rep.Author,
			Content: htmlsanitize.PrepareForDisplay(rep.Content),
			Date:    rep.Date,
		})
	}

	templates.Render(w, r, "forum_detail", detailVM{
		BaseVM:  viewdata.NewBaseVM(r, h.DB, post.Title, "/forum"),
		Post:    post,
		Content: htmlsanitize.PrepareForDisplay(post.Content),
		Replies: replies,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /forum/{id}/reply                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleReply(w http.ResponseWriter, r *http.Request) {
	id, ok := h.postID(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/forum")
		return
	}

	_, name, _, signedIn := authz.UserCtx(r)
	if !signedIn {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	content := strings.TrimSpace(r.FormValue("content"))
	if content == "" {
		http.Redirect(w, r, "/forum/"+id.Hex(), http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	post, err := h.Store.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		h.ErrLog.LogNotFound(w, r, "post not found", "That discussion does not exist.", "/forum")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "DB get post", err, "Could not add the reply.", "/forum")
		return
	}

	reply := models.ForumReply{
		ID:      uuid.NewString(),
		Author:  name,
		Content: htmlsanitize.Sanitize(content),
		Date:    time.Now().UTC(),
	}
	if err := h.Store.AddReply(ctx, id, reply); err != nil {
		h.ErrLog.LogServerError(w, r, "DB add reply", err, "Could not add the reply.", "/forum")
		return
	}

	if err := h.Notify.ReplyAdded(ctx, post, reply); err != nil {
		h.Log.Warn("reply notification failed",
			zap.String("post_id", id.Hex()),
			zap.Error(err))
	}

	http.Redirect(w, r, "/forum/"+id.Hex(), http.StatusSeeOther)
}
