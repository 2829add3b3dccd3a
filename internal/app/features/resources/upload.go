// internal/app/features/resources/upload.go
package resources

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/google/uuid"
	resourcestore "github.com/ycyw/humanitieshub/internal/app/store/resources"
	"github.com/ycyw/humanitieshub/internal/app/system/authz"
	"github.com/ycyw/humanitieshub/internal/app/system/htmlsanitize"
	"github.com/ycyw/humanitieshub/internal/app/system/normalize"
	"github.com/ycyw/humanitieshub/internal/app/system/timeouts"
	"github.com/ycyw/humanitieshub/internal/app/system/viewdata"
	"github.com/ycyw/humanitieshub/internal/domain/models"
	"go.uber.org/zap"
)

// uploadFileRows is how many file-metadata rows the form renders.
const uploadFileRows = 3

type fileRowVM struct {
	Name string
	Size string
	Kind string
}

type uploadFormVM struct {
	viewdata.BaseVM
	Error       string
	FormTitle   string
	Description string
	YearGroup   string
	Subject     string
	Type        string
	Curriculum  string
	ExamPaper   string
	Tags        string
	FileRows    []fileRowVM
	YearGroups  []string
	Subjects    []string
	Curricula   []models.Curriculum
	Types       []string
	TypeLabels  map[string]string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /resources/new                                                          |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	h.renderUploadForm(w, r, uploadFormVM{Type: models.DefaultResourceType})
}

func (h *Handler) renderUploadForm(w http.ResponseWriter, r *http.Request, vm uploadFormVM) {
	vm.BaseVM = viewdata.NewBaseVM(r, h.DB, "Share a Resource", "/resources")
	for len(vm.FileRows) < uploadFileRows {
		vm.FileRows = append(vm.FileRows, fileRowVM{})
	}
	vm.YearGroups = models.YearGroups
	vm.Subjects = models.Subjects
	vm.Curricula = models.Curricula
	vm.Types = models.ResourceTypes
	vm.TypeLabels = models.TypeLabels
	templates.Render(w, r, "resource_new", vm)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /resources                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/resources")
		return
	}

	_, name, _, ok := authz.UserCtx(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	title := normalize.Name(r.FormValue("title"))
	description := strings.TrimSpace(r.FormValue("description"))
	yearGroup := strings.TrimSpace(r.FormValue("year_group"))
	subject := strings.TrimSpace(r.FormValue("subject"))
	typeValue := strings.TrimSpace(r.FormValue("type"))
	curriculum := models.Curriculum(strings.TrimSpace(r.FormValue("curriculum")))
	examPaper := strings.TrimSpace(r.FormValue("exam_paper"))
	tagsRaw := r.FormValue("tags")
	fileRows, files := collectFiles(r)

	if typeValue == "" {
		typeValue = models.DefaultResourceType
	}

	reRender := func(msg string) {
		h.renderUploadForm(w, r, uploadFormVM{
			Error:       msg,
			FormTitle:   title,
			Description: description,
			YearGroup:   yearGroup,
			Subject:     subject,
			Type:        typeValue,
			Curriculum:  string(curriculum),
			ExamPaper:   examPaper,
			Tags:        tagsRaw,
			FileRows:    fileRows,
		})
	}

	if title == "" {
		reRender("Please give the resource a title.")
		return
	}
	if !models.IsValidResourceType(typeValue) {
		reRender("Type is invalid.")
		return
	}
	if yearGroup != "" && !models.IsValidYearGroup(yearGroup) {
		reRender("Please choose a year group from the list.")
		return
	}
	if subject != "" && !models.IsValidSubject(subject) {
		reRender("Please choose a subject from the list.")
		return
	}
	if !models.IsValidCurriculum(curriculum) {
		reRender("Curriculum is invalid.")
		return
	}
	if len(files) == 0 {
		reRender("Please attach at least one file.")
		return
	}

	status := models.StatusPending
	if h.PublishPolicy == PolicyInstant {
		status = models.StatusApproved
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Store.Create(ctx, models.Resource{
		Title:       title,
		Description: htmlsanitize.Sanitize(description),
		Author:      name,
		YearGroup:   yearGroup,
		Subject:     subject,
		Type:        typeValue,
		Curriculum:  curriculum,
		Status:      status,
		ExamPaper:   examPaper,
		Tags:        splitTags(tagsRaw),
		Files:       files,
	})
	if err == resourcestore.ErrDuplicateTitle {
		reRender("A resource with that title already exists.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "DB create resource", err, "Could not save the resource.", "/resources")
		return
	}

	h.Log.Info("resource submitted",
		zap.String("resource_id", created.ID.Hex()),
		zap.String("status", created.Status))

	// Instantly published uploads notify subscribers right away; moderated
	// ones notify when an admin approves.
	if created.IsApproved() {
		if err := h.Notify.ResourcePublished(ctx, created); err != nil {
			h.Log.Warn("resource fan-out failed", zap.Error(err))
		}
		http.Redirect(w, r, "/resources/"+created.ID.Hex(), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/resources/mine", http.StatusSeeOther)
}

// collectFiles reads the parallel file_name/file_size/file_kind rows. Rows
// with a blank name are kept for re-rendering but produce no file record.
func collectFiles(r *http.Request) ([]fileRowVM, []models.ResourceFile) {
	names := r.Form["file_name"]
	sizes := r.Form["file_size"]
	kinds := r.Form["file_kind"]

	var rows []fileRowVM
	var files []models.ResourceFile
	for i, n := range names {
		row := fileRowVM{Name: strings.TrimSpace(n)}
		if i < len(sizes) {
			row.Size = strings.TrimSpace(sizes[i])
		}
		if i < len(kinds) {
			row.Kind = strings.TrimSpace(kinds[i])
		}
		rows = append(rows, row)

		if row.Name == "" {
			continue
		}
		kind := row.Kind
		if kind != "presentation" {
			kind = "document"
		}
		files = append(files, models.ResourceFile{
			ID:   uuid.NewString(),
			Name: row.Name,
			Size: row.Size,
			Kind: kind,
		})
	}
	return rows, files
}

func splitTags(raw string) []string {
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
