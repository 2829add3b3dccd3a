package visibility_test

import (
	"testing"

	"github.com/ycyw/humanitieshub/internal/app/visibility"
	"github.com/ycyw/humanitieshub/internal/domain/models"
)

func approved(title, author, yearGroup, subject string) models.Resource {
	return models.Resource{
		Title:     title,
		Author:    author,
		YearGroup: yearGroup,
		Subject:   subject,
		Status:    models.StatusApproved,
	}
}

func pending(title, author string) models.Resource {
	return models.Resource{
		Title:  title,
		Author: author,
		Status: models.StatusPending,
	}
}

func titles(rs []models.Resource) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Title)
	}
	return out
}

func TestBrowse_ApprovedOnly(t *testing.T) {
	all := []models.Resource{
		approved("Published Pack", "Ms. Thompson", "Year 9", "History"),
		pending("Pending Pack", "Mr. Davies"),
	}

	got := visibility.Browse(all, visibility.ResourceFilter{})
	if len(got) != 1 || got[0].Title != "Published Pack" {
		t.Errorf("Browse: got %v, want only the approved resource", titles(got))
	}
}

func TestBrowse_TabMatchesYearGroupOrSubject(t *testing.T) {
	all := []models.Resource{
		approved("History Y9", "A", "Year 9", "History"),
		approved("Geography Y9", "A", "Year 9", "Geography"),
		approved("History IGCSE", "A", "IGCSE", "History"),
	}

	byYear := visibility.Browse(all, visibility.ResourceFilter{Tab: "Year 9"})
	if len(byYear) != 2 {
		t.Errorf("Tab=Year 9: got %v, want 2", titles(byYear))
	}

	bySubject := visibility.Browse(all, visibility.ResourceFilter{Tab: "History"})
	if len(bySubject) != 2 {
		t.Errorf("Tab=History: got %v, want 2", titles(bySubject))
	}
}

func TestBrowse_CurriculumWildcard(t *testing.T) {
	ib := approved("IB Guide", "A", "IB/A-Level", "History")
	ib.Curriculum = models.CurriculumIB
	dse := approved("DSE Guide", "A", "IB/A-Level", "History")
	dse.Curriculum = models.CurriculumDSE
	untagged := approved("General Guide", "A", "IB/A-Level", "History")

	all := []models.Resource{ib, dse, untagged}

	// No curriculum filter: everything shows
	got := visibility.Browse(all, visibility.ResourceFilter{})
	if len(got) != 3 {
		t.Errorf("no filter: got %v, want 3", titles(got))
	}

	// IB filter: IB resources plus curriculum-less resources
	got = visibility.Browse(all, visibility.ResourceFilter{Curriculum: models.CurriculumIB})
	if len(got) != 2 {
		t.Errorf("IB filter: got %v, want IB + untagged", titles(got))
	}
	for _, r := range got {
		if r.Curriculum == models.CurriculumDSE {
			t.Error("DSE resource must not match an IB filter")
		}
	}
}

func TestBrowse_FiltersAnd(t *testing.T) {
	ws := approved("Map Skills Worksheet", "A", "Year 7", "Geography")
	ws.Type = models.TypeWorksheet
	sow := approved("Geography Scheme", "A", "Year 7", "Geography")
	sow.Type = models.TypeSchemeOfWork

	all := []models.Resource{ws, sow}

	got := visibility.Browse(all, visibility.ResourceFilter{
		Tab:  "Year 7",
		Type: models.TypeWorksheet,
	})
	if len(got) != 1 || got[0].Title != "Map Skills Worksheet" {
		t.Errorf("combined filter: got %v", titles(got))
	}
}

func TestBrowse_SearchCaseInsensitive(t *testing.T) {
	r1 := approved("Industrial Revolution Pack", "A", "Year 9", "History")
	r1.Description = "Primary sources on factory conditions"
	r2 := approved("Cold War Overview", "A", "Year 9", "History")
	r2.Tags = []string{"Revolution Comparisons"}
	r3 := approved("Weather Systems", "A", "Year 7", "Geography")

	all := []models.Resource{r1, r2, r3}

	got := visibility.Browse(all, visibility.ResourceFilter{Query: "revolution"})
	if len(got) != 2 {
		t.Errorf("search: got %v, want title and tag matches", titles(got))
	}

	got = visibility.Browse(all, visibility.ResourceFilter{Query: "FACTORY"})
	if len(got) != 1 || got[0].Title != "Industrial Revolution Pack" {
		t.Errorf("description search: got %v", titles(got))
	}
}

func TestQueue_PendingOnly(t *testing.T) {
	all := []models.Resource{
		approved("Published", "Ms. Thompson", "Year 9", "History"),
		pending("Waiting One", "Mr. Davies"),
		pending("Waiting Two", "Ms. Thompson"),
	}

	got := visibility.Queue(all)
	if len(got) != 2 {
		t.Errorf("Queue: got %v, want the 2 pending resources", titles(got))
	}
}

func TestMine_AnyStatusByAuthor(t *testing.T) {
	all := []models.Resource{
		approved("My Published", "Ms. Thompson", "Year 9", "History"),
		pending("My Pending", "Ms. Thompson"),
		pending("Not Mine", "Mr. Davies"),
	}

	got := visibility.Mine(all, "ms. thompson")
	if len(got) != 2 {
		t.Errorf("Mine: got %v, want both of the author's resources", titles(got))
	}
}

func TestFilterPosts_TabAdmitsOnlyMatchingContext(t *testing.T) {
	posts := []models.ForumPost{
		{Title: "History chat", Author: "A", Context: "History"},
		{Title: "Geography chat", Author: "A", Context: "Geography"},
		{Title: "Department notice", Author: "A"},
	}

	got := visibility.FilterPosts(posts, "History", "")
	if len(got) != 1 || got[0].Title != "History chat" {
		t.Fatalf("tab filter: got %v, want only the History post", postTitles(got))
	}

	// No tab: everything shows, untagged included
	got = visibility.FilterPosts(posts, "", "")
	if len(got) != 3 {
		t.Errorf("no tab: got %d posts, want 3", len(got))
	}
}

func TestFilterPosts_UntaggedHiddenUnderTab(t *testing.T) {
	posts := []models.ForumPost{
		{Title: "Year 9 fieldwork", Author: "A", Context: "Year 9"},
		{Title: "Staffroom notice", Author: "A"},
	}

	for _, p := range visibility.FilterPosts(posts, "Year 9", "") {
		if p.Context == "" {
			t.Errorf("untagged post %q must not appear under the Year 9 tab", p.Title)
		}
	}

	got := visibility.FilterPosts(posts, "", "")
	if len(got) != 2 {
		t.Errorf("global view: got %d posts, want both", len(got))
	}
}

func postTitles(posts []models.ForumPost) []string {
	var out []string
	for _, p := range posts {
		out = append(out, p.Title)
	}
	return out
}

func TestFilterPosts_Search(t *testing.T) {
	posts := []models.ForumPost{
		{Title: "Moderation queue question", Content: "How long does approval take?", Author: "A"},
		{Title: "Fieldwork ideas", Content: "River studies for Year 8", Author: "A"},
	}

	got := visibility.FilterPosts(posts, "", "APPROVAL")
	if len(got) != 1 || got[0].Title != "Moderation queue question" {
		t.Errorf("content search: got %d posts", len(got))
	}
}
