// Package visibility filters resources and forum posts for display.
//
// The filter is pure: callers load candidate documents from the stores and
// pass them through here, so every view applies identical rules.
//
// Precedence:
//  1. Moderation status decides the candidate set (browse: approved only;
//     moderation queue: pending only; "my uploads": any status by author).
//  2. Tab (year group or subject), curriculum, and type filters AND together.
//  3. Case-insensitive substring search ANDs last.
package visibility

import (
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/ycyw/humanitieshub/internal/domain/models"
)

// ResourceFilter narrows the browse view. Zero values are wildcards.
type ResourceFilter struct {
	Tab        string            // year-group or subject tab
	Curriculum models.Curriculum // CurriculumAny matches everything
	Type       string
	Query      string // substring over title/description/tags
}

// Browse returns the approved resources matching the filter, preserving input
// order. Pending resources never appear here regardless of the filter.
func Browse(resources []models.Resource, f ResourceFilter) []models.Resource {
	var out []models.Resource
	for _, r := range resources {
		if !r.IsApproved() {
			continue
		}
		if matchesResource(r, f) {
			out = append(out, r)
		}
	}
	return out
}

// Queue returns only pending resources, for the admin moderation queue.
func Queue(resources []models.Resource) []models.Resource {
	var out []models.Resource
	for _, r := range resources {
		if r.IsPending() {
			out = append(out, r)
		}
	}
	return out
}

// Mine returns every resource by the given author, regardless of status, so
// uploaders can see their own pending submissions.
func Mine(resources []models.Resource, author string) []models.Resource {
	var out []models.Resource
	for _, r := range resources {
		if strings.EqualFold(r.Author, author) {
			out = append(out, r)
		}
	}
	return out
}

func matchesResource(r models.Resource, f ResourceFilter) bool {
	if f.Tab != "" && r.YearGroup != f.Tab && r.Subject != f.Tab {
		return false
	}
	if !r.Curriculum.Matches(f.Curriculum) {
		return false
	}
	if f.Type != "" && r.Type != f.Type {
		return false
	}
	if f.Query != "" && !resourceContains(r, f.Query) {
		return false
	}
	return true
}

func resourceContains(r models.Resource, query string) bool {
	q := text.Fold(query)
	if strings.Contains(text.Fold(r.Title), q) {
		return true
	}
	if strings.Contains(text.Fold(r.Description), q) {
		return true
	}
	for _, tag := range r.Tags {
		if strings.Contains(text.Fold(tag), q) {
			return true
		}
	}
	return false
}

// FilterPosts returns the posts visible in the given tab, optionally narrowed
// by a case-insensitive substring search over title and content. A tab admits
// only posts whose context tag equals it; untagged posts appear only in the
// global view (no tab selected).
func FilterPosts(posts []models.ForumPost, tab, query string) []models.ForumPost {
	var out []models.ForumPost
	for _, p := range posts {
		if tab != "" && p.Context != tab {
			continue
		}
		if query != "" && !postContains(p, query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func postContains(p models.ForumPost, query string) bool {
	q := text.Fold(query)
	return strings.Contains(text.Fold(p.Title), q) ||
		strings.Contains(text.Fold(p.Content), q)
}
