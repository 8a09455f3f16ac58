package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/sakif/codesplit/internal/apperror"
	"github.com/sakif/codesplit/internal/model"
	"github.com/sakif/codesplit/internal/repository"
)

// Feed filters. Newest orders by publish date, trending by like count.
const (
	FilterNewest   = "newest"
	FilterTrending = "trending"
)

const (
	// feedFetchLimit is how many rows the feed pulls before filtering out
	// private projects; feedSize is what actually ships to the client. The
	// gap absorbs unpublished rows sitting in the ordered superset.
	feedFetchLimit = 50
	feedSize       = 20

	MaxDescriptionLength = 1000
	MaxTags              = 10
	MaxTagLength         = 30
)

// PublishInput carries the community metadata attached when publishing.
type PublishInput struct {
	Description string
	Tags        []string
}

// CommunityService owns the public feed: publishing, likes and view counts.
type CommunityService struct {
	projects repository.ProjectRepository
	likes    repository.LikeRepository
	users    repository.UserRepository
	logger   *slog.Logger
}

func NewCommunityService(
	projects repository.ProjectRepository,
	likes repository.LikeRepository,
	users repository.UserRepository,
	logger *slog.Logger,
) *CommunityService {
	return &CommunityService{projects: projects, likes: likes, users: users, logger: logger}
}

// Publish puts a project on the community feed with its metadata.
// Re-publishing updates description and tags but keeps the original
// publish date, so a project can't game the newest feed.
func (s *CommunityService) Publish(ctx context.Context, projectID, userID string, input PublishInput) error {
	if err := validateMetadata(input.Description, input.Tags); err != nil {
		return err
	}
	if err := s.requireOwner(ctx, projectID, userID); err != nil {
		return err
	}
	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}
	if err := s.projects.Publish(ctx, projectID, input.Description, tags); err != nil {
		return fmt.Errorf("publishing project: %w", err)
	}

	s.logger.Info("project published",
		slog.String("projectID", projectID),
		slog.String("userID", userID),
	)
	return nil
}

// UpdatePublished patches title/description/tags on an already-published
// project. Nil fields are left alone.
func (s *CommunityService) UpdatePublished(ctx context.Context, projectID, userID string, fields repository.PublishedFields) error {
	if fields.Description != nil || fields.Tags != nil {
		desc := ""
		if fields.Description != nil {
			desc = *fields.Description
		}
		var tags []string
		if fields.Tags != nil {
			tags = *fields.Tags
		}
		if err := validateMetadata(desc, tags); err != nil {
			return err
		}
	}
	if fields.Title != nil && len(*fields.Title) > MaxTitleLength {
		return apperror.ValidationFailed("title",
			fmt.Sprintf("title must be %d characters or less", MaxTitleLength))
	}
	if err := s.requireOwner(ctx, projectID, userID); err != nil {
		return err
	}
	return s.projects.UpdatePublished(ctx, projectID, fields)
}

// Unpublish pulls the project off the feed and clears its publish date.
// Likes and views stick around in case it comes back.
func (s *CommunityService) Unpublish(ctx context.Context, projectID, userID string) error {
	if err := s.requireOwner(ctx, projectID, userID); err != nil {
		return err
	}
	if err := s.projects.Unpublish(ctx, projectID); err != nil {
		return err
	}
	s.logger.Info("project unpublished", slog.String("projectID", projectID))
	return nil
}

func validateMetadata(description string, tags []string) error {
	if len(description) > MaxDescriptionLength {
		return apperror.ValidationFailed("description",
			fmt.Sprintf("description must be %d characters or less", MaxDescriptionLength))
	}
	if len(tags) > MaxTags {
		return apperror.ValidationFailed("tags",
			fmt.Sprintf("at most %d tags allowed", MaxTags))
	}
	for _, tag := range tags {
		if tag == "" || len(tag) > MaxTagLength {
			return apperror.ValidationFailed("tags",
				fmt.Sprintf("each tag must be 1-%d characters", MaxTagLength))
		}
	}
	return nil
}

// List returns the community feed for the given filter.
//
// The store orders by one indexed field at a time, so this fetches an
// ordered superset, drops private rows here, re-sorts so the page boundary
// holds after the filter, and truncates to the page size. Owner profiles are
// joined per project; a missing profile renders as "Anonymous" rather than
// failing the whole feed.
func (s *CommunityService) List(ctx context.Context, filter string) ([]model.CommunityProject, error) {
	orderBy := repository.OrderByPublishedAt
	if filter == FilterTrending {
		orderBy = repository.OrderByLikes
	}

	projects, err := s.projects.ListOrdered(ctx, orderBy, feedFetchLimit)
	if err != nil {
		s.logger.Error("failed to load community feed",
			slog.String("filter", filter),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("loading community feed: %w", err)
	}

	feed := make([]model.CommunityProject, 0, len(projects))
	owners := make(map[string]*model.User)
	for _, p := range projects {
		if !p.IsPublic {
			continue
		}
		feed = append(feed, s.decorate(ctx, p, owners))
	}

	if orderBy == repository.OrderByLikes {
		sort.SliceStable(feed, func(i, j int) bool {
			return feed[i].Likes > feed[j].Likes
		})
	} else {
		sort.SliceStable(feed, func(i, j int) bool {
			return publishedTime(feed[i].PublishedAt).After(publishedTime(feed[j].PublishedAt))
		})
	}

	if len(feed) > feedSize {
		feed = feed[:feedSize]
	}
	return feed, nil
}

// ListByUser returns one user's published projects, newest first. This
// backs the public profile page, so private projects never leak.
func (s *CommunityService) ListByUser(ctx context.Context, userID string) ([]model.CommunityProject, error) {
	projects, err := s.projects.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading user's published projects: %w", err)
	}

	owners := make(map[string]*model.User)
	feed := make([]model.CommunityProject, 0, len(projects))
	for _, p := range projects {
		if !p.IsPublic {
			continue
		}
		feed = append(feed, s.decorate(ctx, p, owners))
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return publishedTime(feed[i].PublishedAt).After(publishedTime(feed[j].PublishedAt))
	})
	return feed, nil
}

func publishedTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

// decorate attaches owner info and preview gradient hues to a project.
// owners caches profile lookups across one feed build.
func (s *CommunityService) decorate(ctx context.Context, p model.Project, owners map[string]*model.User) model.CommunityProject {
	owner, ok := owners[p.OwnerID]
	if !ok {
		var err error
		owner, err = s.users.GetUserByID(ctx, p.OwnerID)
		if err != nil {
			owner = nil
		}
		owners[p.OwnerID] = owner
	}

	cp := model.CommunityProject{
		Project:   p,
		OwnerName: "Anonymous",
	}
	if owner != nil {
		if owner.DisplayName != "" {
			cp.OwnerName = owner.DisplayName
		}
		cp.OwnerPhotoURL = owner.PhotoURL
		cp.OwnerUsername = owner.Username
	}

	// Deterministic per-project preview colors derived from document sizes:
	// the card gradient stays stable across reloads without storing it.
	cp.GradientHue1 = (len(p.HTML) * 7) % 360
	cp.GradientHue2 = (len(p.CSS)*11 + 60) % 360
	return cp
}

// HasLiked reports whether userID has a like record on the project.
func (s *CommunityService) HasLiked(ctx context.Context, projectID, userID string) (bool, error) {
	return s.likes.HasLiked(ctx, projectID, userID)
}

// ToggleLike flips the caller's like on a project and returns the new state
// with the resulting counter.
//
// The like record and the counter move in two steps: the record write
// settles membership, then the counter moves through its atomic adjust. A
// user double-toggling in two tabs can momentarily skew the count by one;
// the per-user record stays correct and the drift heals on the next toggle.
func (s *CommunityService) ToggleLike(ctx context.Context, projectID, userID string) (model.LikeResult, error) {
	// Surface NotFound before touching like state.
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return model.LikeResult{}, err
	}

	hasLiked, err := s.likes.HasLiked(ctx, projectID, userID)
	if err != nil {
		return model.LikeResult{}, fmt.Errorf("checking like state: %w", err)
	}

	if hasLiked {
		if err := s.likes.RemoveLike(ctx, projectID, userID); err != nil {
			return model.LikeResult{}, fmt.Errorf("removing like: %w", err)
		}
		count, err := s.likes.AdjustLikes(ctx, projectID, -1)
		if err != nil {
			return model.LikeResult{}, fmt.Errorf("decrementing likes: %w", err)
		}
		return model.LikeResult{Liked: false, LikeCount: count}, nil
	}

	if err := s.likes.AddLike(ctx, projectID, userID); err != nil {
		return model.LikeResult{}, fmt.Errorf("adding like: %w", err)
	}
	count, err := s.likes.AdjustLikes(ctx, projectID, 1)
	if err != nil {
		return model.LikeResult{}, fmt.Errorf("incrementing likes: %w", err)
	}
	return model.LikeResult{Liked: true, LikeCount: count}, nil
}

// IncrementViews bumps the project's view counter. Views are best-effort:
// failures are logged, never surfaced, because a broken counter should not
// break viewing.
func (s *CommunityService) IncrementViews(ctx context.Context, projectID string) {
	if _, err := s.likes.IncrementViews(ctx, projectID); err != nil {
		s.logger.Warn("failed to increment views",
			slog.String("projectID", projectID),
			slog.String("error", err.Error()),
		)
	}
}

func (s *CommunityService) requireOwner(ctx context.Context, projectID, userID string) error {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if p.OwnerID != userID {
		return apperror.Forbidden("you don't have permission to modify this project")
	}
	return nil
}
