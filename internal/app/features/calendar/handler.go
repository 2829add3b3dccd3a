// internal/app/features/calendar/handler.go

// Package calendar serves the read-only department calendar. Events are
// seeded at startup; staff can browse by month but never edit.
package calendar

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/ycyw/humanitieshub/internal/app/features/errors"
	eventstore "github.com/ycyw/humanitieshub/internal/app/store/events"
	"github.com/ycyw/humanitieshub/internal/app/system/timeouts"
	"github.com/ycyw/humanitieshub/internal/app/system/viewdata"
	"github.com/ycyw/humanitieshub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
	Events *eventstore.Store
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Log:    logger,
		ErrLog: errLog,
		Events: eventstore.New(db),
	}
}

var monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

type calendarVM struct {
	viewdata.BaseVM
	Events    []models.CalendarEvent
	Month     string
	MonthName string
	PrevMonth string
	NextMonth string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /calendar                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	month := query.Get(r, "month")
	if !monthPattern.MatchString(month) {
		month = time.Now().UTC().Format("2006-01")
	}

	events, err := h.Events.ListMonth(ctx, month)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "DB list events", err, "Could not load the calendar.", "/dashboard")
		return
	}

	anchor, _ := time.Parse("2006-01", month)
	templates.Render(w, r, "calendar", calendarVM{
		BaseVM:    viewdata.NewBaseVM(r, h.DB, "Calendar", "/dashboard"),
		Events:    events,
		Month:     month,
		MonthName: anchor.Format("January 2006"),
		PrevMonth: anchor.AddDate(0, -1, 0).Format("2006-01"),
		NextMonth: anchor.AddDate(0, 1, 0).Format("2006-01"),
	})
}
