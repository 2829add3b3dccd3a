// internal/app/features/pd/handler.go
package pd

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/ycyw/humanitieshub/internal/app/features/errors"
	eventstore "github.com/ycyw/humanitieshub/internal/app/store/events"
	resourcestore "github.com/ycyw/humanitieshub/internal/app/store/resources"
	"github.com/ycyw/humanitieshub/internal/app/system/timeouts"
	"github.com/ycyw/humanitieshub/internal/app/system/viewdata"
	"github.com/ycyw/humanitieshub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Handler serves the professional development hub: PD-typed resources plus
// the upcoming PD sessions from the calendar.
type Handler struct {
	DB        *mongo.Database
	Log       *zap.Logger
	ErrLog    *uierrors.ErrorLogger
	Resources *resourcestore.Store
	Events    *eventstore.Store
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:        db,
		Log:       logger,
		ErrLog:    errLog,
		Resources: resourcestore.New(db),
		Events:    eventstore.New(db),
	}
}

type hubVM struct {
	viewdata.BaseVM
	Resources []models.Resource
	Sessions  []models.CalendarEvent
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /pd                                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeHub(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	pdResources, err := h.Resources.Find(ctx, bson.M{
		"status": models.StatusApproved,
		"type":   models.TypeProfessionalDevelopment,
	}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "DB list PD resources", err, "Could not load the PD hub.", "/dashboard")
		return
	}

	events, err := h.Events.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "DB list events", err, "Could not load the PD hub.", "/dashboard")
		return
	}
	var sessions []models.CalendarEvent
	for _, e := range events {
		if e.Type == models.EventPD {
			sessions = append(sessions, e)
		}
	}

	templates.Render(w, r, "pd_hub", hubVM{
		BaseVM:    viewdata.NewBaseVM(r, h.DB, "Professional Development", "/dashboard"),
		Resources: pdResources,
		Sessions:  sessions,
	})
}
