package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sakif/codesplit/internal/apperror"
	"github.com/sakif/codesplit/internal/model"
)

func newProjectService(repo *fakeProjectRepo) *ProjectService {
	return NewProjectService(repo, newTestLogger())
}

func TestSave_CreatesPrivateProject(t *testing.T) {
	repo := newFakeProjectRepo()
	svc := newProjectService(repo)

	id, err := svc.Save(context.Background(), "alice", SaveInput{
		Title: "My Pen", HTML: "<h1>hi</h1>", CSS: "h1{color:red}", JS: "",
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if id == "" {
		t.Fatal("Save() returned empty id")
	}

	p, err := svc.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if p.OwnerID != "alice" {
		t.Errorf("OwnerID = %q, want alice", p.OwnerID)
	}
	if p.IsPublic {
		t.Error("new project must start private")
	}
}

func TestSave_UpdatePreservesCommunityFields(t *testing.T) {
	repo := newFakeProjectRepo()
	svc := newProjectService(repo)
	ctx := context.Background()

	id, _ := svc.Save(ctx, "alice", SaveInput{Title: "Pen"})
	if err := repo.Publish(ctx, id, "a demo", []string{"css"}); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	if _, err := svc.Save(ctx, "alice", SaveInput{ID: id, Title: "Pen v2", HTML: "<p>new</p>"}); err != nil {
		t.Fatalf("Save() update error = %v", err)
	}

	p, _ := svc.GetByID(ctx, id)
	if !p.IsPublic {
		t.Error("editor save must not unpublish the project")
	}
	if p.Description != "a demo" || len(p.Tags) != 1 {
		t.Errorf("community metadata wiped: desc=%q tags=%v", p.Description, p.Tags)
	}
	if p.Title != "Pen v2" || p.HTML != "<p>new</p>" {
		t.Errorf("content not updated: title=%q html=%q", p.Title, p.HTML)
	}
}

func TestSave_RejectsForeignProject(t *testing.T) {
	repo := newFakeProjectRepo()
	svc := newProjectService(repo)
	ctx := context.Background()

	id, _ := svc.Save(ctx, "alice", SaveInput{Title: "Pen"})

	_, err := svc.Save(ctx, "mallory", SaveInput{ID: id, Title: "Stolen"})
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("error = %v, want ErrForbidden", err)
	}
}

func TestSave_Validation(t *testing.T) {
	svc := newProjectService(newFakeProjectRepo())
	ctx := context.Background()

	tests := []struct {
		name    string
		ownerID string
		input   SaveInput
	}{
		{"missing owner", "", SaveInput{Title: "x"}},
		{"title too long", "alice", SaveInput{Title: strings.Repeat("a", MaxTitleLength+1)}},
		{"document too long", "alice", SaveInput{HTML: strings.Repeat("x", MaxDocumentLength+1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Save(ctx, tt.ownerID, tt.input)
			if !errors.Is(err, apperror.ErrValidation) {
				t.Errorf("error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestListByOwner_SortsByUpdatedAtDesc(t *testing.T) {
	repo := newFakeProjectRepo()
	svc := newProjectService(repo)
	ctx := context.Background()

	base := time.Now()
	for i, title := range []string{"old", "newest", "middle"} {
		p := &model.Project{OwnerID: "alice", Title: title}
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		// Stamp distinct times out of creation order.
		offsets := []time.Duration{0, 2 * time.Hour, time.Hour}
		repo.mu.Lock()
		stored := repo.projects[p.ID]
		stored.UpdatedAt = base.Add(offsets[i])
		repo.projects[p.ID] = stored
		repo.mu.Unlock()
	}

	projects, err := svc.ListByOwner(ctx, "alice")
	if err != nil {
		t.Fatalf("ListByOwner() error = %v", err)
	}
	got := make([]string, len(projects))
	for i, p := range projects {
		got[i] = p.Title
	}
	want := []string{"newest", "middle", "old"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestListFeatured(t *testing.T) {
	repo := newFakeProjectRepo()
	svc := newProjectService(repo)
	ctx := context.Background()

	a, _ := svc.Save(ctx, "alice", SaveInput{Title: "starred"})
	if _, err := svc.Save(ctx, "alice", SaveInput{Title: "plain"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := svc.SetFeatured(ctx, a, "alice", true); err != nil {
		t.Fatalf("SetFeatured() error = %v", err)
	}

	featured, err := svc.ListFeatured(ctx, "alice")
	if err != nil {
		t.Fatalf("ListFeatured() error = %v", err)
	}
	if len(featured) != 1 || featured[0].Title != "starred" {
		t.Errorf("featured = %v, want just the starred project", featured)
	}
}

func TestDelete_OwnerOnly(t *testing.T) {
	repo := newFakeProjectRepo()
	svc := newProjectService(repo)
	ctx := context.Background()

	id, _ := svc.Save(ctx, "alice", SaveInput{Title: "Pen"})

	if err := svc.Delete(ctx, id, "mallory"); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("foreign delete error = %v, want ErrForbidden", err)
	}
	if err := svc.Delete(ctx, id, "alice"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := svc.GetByID(ctx, id); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("after delete, GetByID error = %v, want ErrNotFound", err)
	}
}

func TestDuplicate(t *testing.T) {
	repo := newFakeProjectRepo()
	svc := newProjectService(repo)
	ctx := context.Background()

	srcID, _ := svc.Save(ctx, "alice", SaveInput{
		Title: "Gradient Card", HTML: "<div/>", CSS: ".c{}", JS: "x()",
	})
	if err := repo.Publish(ctx, srcID, "desc", []string{"ui"}); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	// Anyone can duplicate; the copy belongs to the duplicator.
	copyID, err := svc.Duplicate(ctx, srcID, "bob")
	if err != nil {
		t.Fatalf("Duplicate() error = %v", err)
	}

	cp, _ := svc.GetByID(ctx, copyID)
	if cp.Title != "Copy of Gradient Card" {
		t.Errorf("Title = %q, want %q", cp.Title, "Copy of Gradient Card")
	}
	if cp.OwnerID != "bob" {
		t.Errorf("OwnerID = %q, want bob", cp.OwnerID)
	}
	if cp.HTML != "<div/>" || cp.CSS != ".c{}" || cp.JS != "x()" {
		t.Error("documents not copied")
	}
	if cp.IsPublic || cp.PublishedAt != nil || cp.Likes != 0 || cp.Views != 0 {
		t.Error("copy must start private with fresh counters")
	}
}

func TestDuplicate_UntitledFallback(t *testing.T) {
	svc := newProjectService(newFakeProjectRepo())
	ctx := context.Background()

	srcID, _ := svc.Save(ctx, "alice", SaveInput{Title: ""})
	copyID, err := svc.Duplicate(ctx, srcID, "alice")
	if err != nil {
		t.Fatalf("Duplicate() error = %v", err)
	}

	cp, _ := svc.GetByID(ctx, copyID)
	if cp.Title != "Copy of Untitled Project" {
		t.Errorf("Title = %q, want %q", cp.Title, "Copy of Untitled Project")
	}
}

func TestForkTemplate(t *testing.T) {
	svc := newProjectService(newFakeProjectRepo())
	ctx := context.Background()

	id, err := svc.ForkTemplate(ctx, "landing-page", "alice")
	if err != nil {
		t.Fatalf("ForkTemplate() error = %v", err)
	}

	p, _ := svc.GetByID(ctx, id)
	if p.OwnerID != "alice" {
		t.Errorf("OwnerID = %q, want alice", p.OwnerID)
	}
	if p.HTML == "" || p.CSS == "" {
		t.Error("template documents not copied into the fork")
	}
	if p.IsPublic {
		t.Error("fork must start private")
	}
}

func TestForkTemplate_UnknownID(t *testing.T) {
	svc := newProjectService(newFakeProjectRepo())

	_, err := svc.ForkTemplate(context.Background(), "no-such-template", "alice")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestRename(t *testing.T) {
	svc := newProjectService(newFakeProjectRepo())
	ctx := context.Background()

	id, _ := svc.Save(ctx, "alice", SaveInput{Title: "before"})
	if err := svc.Rename(ctx, id, "alice", "after"); err != nil {
		t.Fatalf("Rename() error = %v", err)
	}
	p, _ := svc.GetByID(ctx, id)
	if p.Title != "after" {
		t.Errorf("Title = %q, want after", p.Title)
	}

	if err := svc.Rename(ctx, id, "mallory", "stolen"); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("foreign rename error = %v, want ErrForbidden", err)
	}
}

func TestSetVisibility(t *testing.T) {
	svc := newProjectService(newFakeProjectRepo())
	ctx := context.Background()

	id, _ := svc.Save(ctx, "alice", SaveInput{Title: "Pen"})
	if err := svc.SetVisibility(ctx, id, "alice", true); err != nil {
		t.Fatalf("SetVisibility() error = %v", err)
	}
	p, _ := svc.GetByID(ctx, id)
	if !p.IsPublic {
		t.Error("IsPublic not set")
	}
}
