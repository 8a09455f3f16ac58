package template

import (
	"errors"
	"testing"

	"github.com/sakif/codesplit/internal/apperror"
)

func TestGet(t *testing.T) {
	tpl, err := Get("landing-page")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if tpl.Title != "Landing Page" {
		t.Errorf("Title = %q, want %q", tpl.Title, "Landing Page")
	}
	if tpl.HTML == "" || tpl.CSS == "" || tpl.JS == "" {
		t.Error("template documents must not be empty")
	}
}

func TestGet_UnknownID(t *testing.T) {
	_, err := Get("no-such-template")
	if err == nil {
		t.Fatal("Get() should error on unknown id")
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestList_AllWellFormed(t *testing.T) {
	templates := List()
	if len(templates) == 0 {
		t.Fatal("List() returned no templates")
	}

	seen := make(map[string]bool)
	for _, tpl := range templates {
		if tpl.ID == "" || tpl.Title == "" {
			t.Errorf("template %q missing id or title", tpl.ID)
		}
		if seen[tpl.ID] {
			t.Errorf("duplicate template id %q", tpl.ID)
		}
		seen[tpl.ID] = true
		if len(tpl.Tags) == 0 {
			t.Errorf("template %q has no tags", tpl.ID)
		}
	}

	if !seen["landing-page"] {
		t.Error("landing-page template must exist")
	}
}
