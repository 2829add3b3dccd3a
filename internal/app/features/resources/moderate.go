// internal/app/features/resources/moderate.go
package resources

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/ycyw/humanitieshub/internal/app/policy/resourcepolicy"
	"github.com/ycyw/humanitieshub/internal/app/system/authz"
	"github.com/ycyw/humanitieshub/internal/app/system/timeouts"
	"github.com/ycyw/humanitieshub/internal/app/system/viewdata"
	"github.com/ycyw/humanitieshub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| POST /resources/{id}/approve                                                |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleApprove publishes a pending resource. A request from a non-admin is
// a silent no-op: the policy is re-checked here regardless of what the UI
// showed, and denial just redirects without acting.
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	id, ok := h.resourceID(w, r)
	if !ok {
		return
	}

	role, _, _, _ := authz.UserCtx(r)
	if !resourcepolicy.CanApprove(role) {
		http.Redirect(w, r, "/resources", http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	transitioned, err := h.Store.Approve(ctx, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "DB approve resource", err, "Could not approve the resource.", "/resources/queue")
		return
	}

	// Fan out only on a real pending→approved transition so a double-submit
	// cannot notify subscribers twice.
	if transitioned {
		res, err := h.Store.GetByID(ctx, id)
		if err != nil {
			h.Log.Warn("approved resource reload failed", zap.String("resource_id", id.Hex()), zap.Error(err))
		} else {
			if err := h.Notify.ResourcePublished(ctx, res); err != nil {
				h.Log.Warn("resource fan-out failed", zap.Error(err))
			}
		}
		h.Log.Info("resource approved", zap.String("resource_id", id.Hex()))
	}

	http.Redirect(w, r, "/resources/queue", http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /resources/{id}/delete – confirmation page                              |
*─────────────────────────────────────────────────────────────────────────────*/

type deleteConfirmVM struct {
	viewdata.BaseVM
	Resource models.Resource
}

func (h *Handler) ServeDeleteConfirm(w http.ResponseWriter, r *http.Request) {
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
	if !resourcepolicy.CanDelete(role, name, res.Author) {
		http.Redirect(w, r, "/resources/"+id.Hex(), http.StatusSeeOther)
		return
	}

	templates.Render(w, r, "resource_delete_confirm", deleteConfirmVM{
		BaseVM:   viewdata.NewBaseVM(r, h.DB, "Delete Resource", "/resources/"+id.Hex()),
		Resource: res,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /resources/{id}/delete                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleDelete permanently removes a resource. Only an admin or the author
// may delete; anyone else gets a silent no-op redirect. Deletion always
// redirects away from the deleted resource's page.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.resourceID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	res, err := h.Store.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		// Already gone; deleting is idempotent from the user's view.
		http.Redirect(w, r, "/resources", http.StatusSeeOther)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "DB get resource", err, "Could not delete the resource.", "/resources")
		return
	}

	role, name, _, _ := authz.UserCtx(r)
	if !resourcepolicy.CanDelete(role, name, res.Author) {
		http.Redirect(w, r, "/resources/"+id.Hex(), http.StatusSeeOther)
		return
	}

	if _, err := h.Store.Delete(ctx, id); err != nil {
		h.ErrLog.LogServerError(w, r, "DB delete resource", err, "Could not delete the resource.", "/resources")
		return
	}

	h.Log.Info("resource deleted",
		zap.String("resource_id", id.Hex()),
		zap.String("deleted_by", name))

	http.Redirect(w, r, "/resources", http.StatusSeeOther)
}
