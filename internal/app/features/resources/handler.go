// internal/app/features/resources/handler.go
package resources

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	uierrors "github.com/ycyw/humanitieshub/internal/app/features/errors"
	"github.com/ycyw/humanitieshub/internal/app/notify"
	resourcestore "github.com/ycyw/humanitieshub/internal/app/store/resources"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Publish policies. Moderated uploads wait in the queue for an admin;
// instant publishing skips the queue entirely.
const (
	PolicyModerated = "moderated"
	PolicyInstant   = "instant"
)

// Handler owns the resource library handlers: browse, upload, detail,
// comments, file metadata, moderation, and the per-author views.
type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
	Store  *resourcestore.Store
	Notify *notify.Service

	// PublishPolicy decides the status of new uploads. One key decides;
	// nothing else is blended in.
	PublishPolicy string
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, notifier *notify.Service, publishPolicy string, logger *zap.Logger) *Handler {
	if publishPolicy != PolicyInstant {
		publishPolicy = PolicyModerated
	}
	return &Handler{
		DB:            db,
		Log:           logger,
		ErrLog:        errLog,
		Store:         resourcestore.New(db),
		Notify:        notifier,
		PublishPolicy: publishPolicy,
	}
}

// resourceID extracts and parses the {id} URL parameter. On failure it
// renders a bad-request page and returns false.
func (h *Handler) resourceID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad resource id", err, "That resource does not exist.", "/resources")
		return primitive.NilObjectID, false
	}
	return id, true
}
