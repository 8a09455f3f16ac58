package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sakif/codesplit/internal/apperror"
	"github.com/sakif/codesplit/internal/model"
	"github.com/sakif/codesplit/internal/repository"
)

type communityFixture struct {
	projects *fakeProjectRepo
	likes    *fakeLikeRepo
	users    *fakeUserRepo
	svc      *CommunityService
}

func newCommunityFixture() *communityFixture {
	projects := newFakeProjectRepo()
	likes := newFakeLikeRepo(projects)
	users := newFakeUserRepo()
	return &communityFixture{
		projects: projects,
		likes:    likes,
		users:    users,
		svc:      NewCommunityService(projects, likes, users, newTestLogger()),
	}
}

func (f *communityFixture) seedProject(t *testing.T, ownerID, title string) string {
	t.Helper()
	p := &model.Project{OwnerID: ownerID, Title: title, HTML: "<div/>", CSS: "div{}"}
	if err := f.projects.Create(context.Background(), p); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return p.ID
}

func (f *communityFixture) publish(t *testing.T, id, ownerID string) {
	t.Helper()
	if err := f.svc.Publish(context.Background(), id, ownerID, PublishInput{Description: "d"}); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
}

func TestPublish(t *testing.T) {
	f := newCommunityFixture()
	ctx := context.Background()
	id := f.seedProject(t, "alice", "Pen")

	err := f.svc.Publish(ctx, id, "alice", PublishInput{
		Description: "my first pen", Tags: []string{"css", "animation"},
	})
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	p, _ := f.projects.GetByID(ctx, id)
	if !p.IsPublic {
		t.Error("IsPublic = false after publish")
	}
	if p.PublishedAt == nil {
		t.Error("PublishedAt not set")
	}
	if p.Description != "my first pen" || len(p.Tags) != 2 {
		t.Errorf("metadata = %q/%v", p.Description, p.Tags)
	}
}

func TestPublish_OwnershipAndValidation(t *testing.T) {
	f := newCommunityFixture()
	ctx := context.Background()
	id := f.seedProject(t, "alice", "Pen")

	if err := f.svc.Publish(ctx, id, "mallory", PublishInput{}); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("foreign publish error = %v, want ErrForbidden", err)
	}
	if err := f.svc.Publish(ctx, "missing", "alice", PublishInput{}); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("missing project error = %v, want ErrNotFound", err)
	}

	long := strings.Repeat("d", MaxDescriptionLength+1)
	if err := f.svc.Publish(ctx, id, "alice", PublishInput{Description: long}); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("oversized description error = %v, want ErrValidation", err)
	}
	manyTags := make([]string, MaxTags+1)
	for i := range manyTags {
		manyTags[i] = "t"
	}
	if err := f.svc.Publish(ctx, id, "alice", PublishInput{Tags: manyTags}); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("too many tags error = %v, want ErrValidation", err)
	}
}

func TestPublish_RepublishKeepsDate(t *testing.T) {
	f := newCommunityFixture()
	ctx := context.Background()
	id := f.seedProject(t, "alice", "Pen")

	f.publish(t, id, "alice")
	p1, _ := f.projects.GetByID(ctx, id)
	first := *p1.PublishedAt

	time.Sleep(5 * time.Millisecond)
	if err := f.svc.Publish(ctx, id, "alice", PublishInput{Description: "updated"}); err != nil {
		t.Fatalf("re-Publish() error = %v", err)
	}

	p2, _ := f.projects.GetByID(ctx, id)
	if !p2.PublishedAt.Equal(first) {
		t.Errorf("PublishedAt moved on re-publish: %v -> %v", first, *p2.PublishedAt)
	}
	if p2.Description != "updated" {
		t.Errorf("Description = %q, metadata should refresh", p2.Description)
	}
}

func TestUnpublish(t *testing.T) {
	f := newCommunityFixture()
	ctx := context.Background()
	id := f.seedProject(t, "alice", "Pen")
	f.publish(t, id, "alice")

	if _, err := f.svc.ToggleLike(ctx, id, "fan"); err != nil {
		t.Fatalf("ToggleLike() error = %v", err)
	}

	if err := f.svc.Unpublish(ctx, id, "mallory"); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("foreign unpublish error = %v, want ErrForbidden", err)
	}
	if err := f.svc.Unpublish(ctx, id, "alice"); err != nil {
		t.Fatalf("Unpublish() error = %v", err)
	}

	p, _ := f.projects.GetByID(ctx, id)
	if p.IsPublic || p.PublishedAt != nil {
		t.Error("unpublish must clear isPublic and publishedAt")
	}
	if p.Likes != 1 {
		t.Errorf("Likes = %d, counters must survive unpublish", p.Likes)
	}
}

func TestUpdatePublished_PartialPatch(t *testing.T) {
	f := newCommunityFixture()
	ctx := context.Background()
	id := f.seedProject(t, "alice", "Pen")
	f.publish(t, id, "alice")

	desc := "new description"
	if err := f.svc.UpdatePublished(ctx, id, "alice", repository.PublishedFields{Description: &desc}); err != nil {
		t.Fatalf("UpdatePublished() error = %v", err)
	}

	p, _ := f.projects.GetByID(ctx, id)
	if p.Description != "new description" {
		t.Errorf("Description = %q", p.Description)
	}
	if p.Title != "Pen" {
		t.Errorf("Title = %q, unpatched field changed", p.Title)
	}
}

func TestList_FiltersAndDecorates(t *testing.T) {
	f := newCommunityFixture()
	ctx := context.Background()

	f.users.addUser(model.User{ID: "alice", DisplayName: "Alice", PhotoURL: "https://a.example/pic", Username: "alice_dev"})

	pub := f.seedProject(t, "alice", "public pen")
	f.publish(t, pub, "alice")
	f.seedProject(t, "alice", "private pen")
	orphan := f.seedProject(t, "ghost", "orphan pen")
	f.publish(t, orphan, "ghost")

	feed, err := f.svc.List(ctx, FilterNewest)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(feed) != 2 {
		t.Fatalf("len(feed) = %d, want 2 (private excluded)", len(feed))
	}

	byTitle := map[string]model.CommunityProject{}
	for _, cp := range feed {
		byTitle[cp.Title] = cp
	}
	if _, ok := byTitle["private pen"]; ok {
		t.Error("private project leaked into the feed")
	}
	if got := byTitle["public pen"].OwnerName; got != "Alice" {
		t.Errorf("OwnerName = %q, want Alice", got)
	}
	if got := byTitle["public pen"].OwnerUsername; got != "alice_dev" {
		t.Errorf("OwnerUsername = %q", got)
	}
	if got := byTitle["orphan pen"].OwnerName; got != "Anonymous" {
		t.Errorf("missing profile OwnerName = %q, want Anonymous", got)
	}

	// Hues derive from document sizes, bounded to the color wheel.
	cp := byTitle["public pen"]
	if cp.GradientHue1 != (len(cp.HTML)*7)%360 || cp.GradientHue2 != (len(cp.CSS)*11+60)%360 {
		t.Errorf("gradient hues = %d/%d, not derived from content", cp.GradientHue1, cp.GradientHue2)
	}
}

func TestList_TrendingOrdersByLikes(t *testing.T) {
	f := newCommunityFixture()
	ctx := context.Background()

	cold := f.seedProject(t, "alice", "cold")
	hot := f.seedProject(t, "alice", "hot")
	f.publish(t, cold, "alice")
	f.publish(t, hot, "alice")
	for _, fan := range []string{"f1", "f2", "f3"} {
		if _, err := f.svc.ToggleLike(ctx, hot, fan); err != nil {
			t.Fatalf("ToggleLike() error = %v", err)
		}
	}

	feed, err := f.svc.List(ctx, FilterTrending)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(feed) != 2 || feed[0].Title != "hot" {
		t.Errorf("trending order wrong: %v", titles(feed))
	}
}

func TestList_TruncatesToPageSize(t *testing.T) {
	f := newCommunityFixture()
	ctx := context.Background()

	for i := 0; i < feedSize+5; i++ {
		id := f.seedProject(t, "alice", "pen")
		f.publish(t, id, "alice")
	}

	feed, err := f.svc.List(ctx, FilterNewest)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(feed) != feedSize {
		t.Errorf("len(feed) = %d, want %d", len(feed), feedSize)
	}
}

func TestListByUser_OnlyPublicNewestFirst(t *testing.T) {
	f := newCommunityFixture()
	ctx := context.Background()

	first := f.seedProject(t, "alice", "first")
	second := f.seedProject(t, "alice", "second")
	f.seedProject(t, "alice", "private")
	other := f.seedProject(t, "bob", "other")

	f.publish(t, first, "alice")
	time.Sleep(5 * time.Millisecond)
	f.publish(t, second, "alice")
	f.publish(t, other, "bob")

	feed, err := f.svc.ListByUser(ctx, "alice")
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	got := titles(feed)
	if len(got) != 2 || got[0] != "second" || got[1] != "first" {
		t.Errorf("feed = %v, want [second first]", got)
	}
}

func titles(feed []model.CommunityProject) []string {
	out := make([]string, len(feed))
	for i, cp := range feed {
		out[i] = cp.Title
	}
	return out
}

func TestToggleLike(t *testing.T) {
	f := newCommunityFixture()
	ctx := context.Background()
	id := f.seedProject(t, "alice", "Pen")
	f.publish(t, id, "alice")

	res, err := f.svc.ToggleLike(ctx, id, "fan")
	if err != nil {
		t.Fatalf("ToggleLike() error = %v", err)
	}
	if !res.Liked || res.LikeCount != 1 {
		t.Errorf("first toggle = %+v, want liked with count 1", res)
	}

	liked, _ := f.svc.HasLiked(ctx, id, "fan")
	if !liked {
		t.Error("HasLiked() = false after like")
	}

	res, err = f.svc.ToggleLike(ctx, id, "fan")
	if err != nil {
		t.Fatalf("second ToggleLike() error = %v", err)
	}
	if res.Liked || res.LikeCount != 0 {
		t.Errorf("second toggle = %+v, want unliked with count 0", res)
	}

	if _, err := f.svc.ToggleLike(ctx, "missing", "fan"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("missing project error = %v, want ErrNotFound", err)
	}
}

func TestToggleLike_TwoUsersIndependent(t *testing.T) {
	f := newCommunityFixture()
	ctx := context.Background()
	id := f.seedProject(t, "alice", "Pen")

	if _, err := f.svc.ToggleLike(ctx, id, "fan1"); err != nil {
		t.Fatalf("ToggleLike() error = %v", err)
	}
	res, err := f.svc.ToggleLike(ctx, id, "fan2")
	if err != nil {
		t.Fatalf("ToggleLike() error = %v", err)
	}
	if res.LikeCount != 2 {
		t.Errorf("LikeCount = %d, want 2", res.LikeCount)
	}

	// fan1 unliking must not clear fan2's record.
	if _, err := f.svc.ToggleLike(ctx, id, "fan1"); err != nil {
		t.Fatalf("ToggleLike() error = %v", err)
	}
	liked, _ := f.svc.HasLiked(ctx, id, "fan2")
	if !liked {
		t.Error("fan2's like lost when fan1 unliked")
	}
}

func TestIncrementViews_BestEffort(t *testing.T) {
	f := newCommunityFixture()
	ctx := context.Background()
	id := f.seedProject(t, "alice", "Pen")

	f.svc.IncrementViews(ctx, id)
	f.svc.IncrementViews(ctx, id)

	p, _ := f.projects.GetByID(ctx, id)
	if p.Views != 2 {
		t.Errorf("Views = %d, want 2", p.Views)
	}

	// A bogus id logs and moves on; no panic, no error surfaced.
	f.svc.IncrementViews(ctx, "missing")
}
