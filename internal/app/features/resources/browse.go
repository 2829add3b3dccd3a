// internal/app/features/resources/browse.go
package resources

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/ycyw/humanitieshub/internal/app/system/authz"
	"github.com/ycyw/humanitieshub/internal/app/system/normalize"
	"github.com/ycyw/humanitieshub/internal/app/system/paging"
	"github.com/ycyw/humanitieshub/internal/app/system/timeouts"
	"github.com/ycyw/humanitieshub/internal/app/system/viewdata"
	"github.com/ycyw/humanitieshub/internal/app/visibility"
	"github.com/ycyw/humanitieshub/internal/domain/models"
)

type browseVM struct {
	viewdata.BaseVM
	Resources  []models.Resource
	Pager      paging.Page
	Tab        string
	Curriculum string
	Type       string
	Query      string
	YearGroups []string
	Subjects   []string
	Curricula  []models.Curriculum
	TypeLabels map[string]string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /resources – library browse                                             |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeBrowse(w http.ResponseWriter, r *http.Request) {
	filter := visibility.ResourceFilter{
		Tab:        normalize.QueryParam(query.Get(r, "tab")),
		Curriculum: models.Curriculum(normalize.QueryParam(query.Get(r, "curriculum"))),
		Type:       normalize.QueryParam(query.Get(r, "type")),
		Query:      normalize.QueryParam(query.Get(r, "q")),
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	all, err := h.Store.ListApproved(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "DB list resources", err, "Could not load the resource library.", "/dashboard")
		return
	}

	shown, pager := paging.Window(visibility.Browse(all, filter), paging.ParseStart(r))

	templates.Render(w, r, "resources_browse", browseVM{
		BaseVM:     viewdata.NewBaseVM(r, h.DB, "Resource Library", "/dashboard"),
		Resources:  shown,
		Pager:      pager,
		Tab:        filter.Tab,
		Curriculum: string(filter.Curriculum),
		Type:       filter.Type,
		Query:      filter.Query,
		YearGroups: models.YearGroups,
		Subjects:   models.Subjects,
		Curricula:  models.Curricula,
		TypeLabels: models.TypeLabels,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /resources/mine – the current user's uploads, any status                |
*─────────────────────────────────────────────────────────────────────────────*/

type mineVM struct {
	viewdata.BaseVM
	Resources  []models.Resource
	TypeLabels map[string]string
}

func (h *Handler) ServeMine(w http.ResponseWriter, r *http.Request) {
	_, name, _, ok := authz.UserCtx(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	mine, err := h.Store.ListByAuthor(ctx, name)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "DB list own resources", err, "Could not load your uploads.", "/resources")
		return
	}

	templates.Render(w, r, "resources_mine", mineVM{
		BaseVM:     viewdata.NewBaseVM(r, h.DB, "My Uploads", "/resources"),
		Resources:  visibility.Mine(mine, name),
		TypeLabels: models.TypeLabels,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /resources/queue – admin moderation queue                               |
*─────────────────────────────────────────────────────────────────────────────*/

type queueVM struct {
	viewdata.BaseVM
	Resources  []models.Resource
	TypeLabels map[string]string
}

func (h *Handler) ServeQueue(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	pending, err := h.Store.ListPending(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "DB list pending resources", err, "Could not load the moderation queue.", "/resources")
		return
	}

	templates.Render(w, r, "resources_queue", queueVM{
		BaseVM:     viewdata.NewBaseVM(r, h.DB, "Moderation Queue", "/resources"),
		Resources:  visibility.Queue(pending),
		TypeLabels: models.TypeLabels,
	})
}
