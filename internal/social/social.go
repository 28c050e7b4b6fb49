// SPDX-License-Identifier: AGPL-3.0-only

// Package social implements the follow graph and feed composition on top of
// the relational store. Pair uniqueness (follows, likes) is enforced by the
// database constraints; concurrent duplicate inserts lose with a domain error
// instead of producing a second row.
package social

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/natterhq/natter/internal/database"
)

type Service struct {
	DB *database.Queries
}

func NewService(db *database.Queries) *Service {
	return &Service{DB: db}
}

// Page is a window over a fixed ordering.
type Page struct {
	Limit  int32
	Offset int32
}

func (s *Service) Follow(ctx context.Context, follower, followee uuid.UUID) error {
	if follower == followee {
		return ErrSelfFollow
	}

	if _, err := s.DB.GetProfileByID(ctx, followee); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	err := s.DB.CreateFollow(ctx, database.CreateFollowParams{
		FollowerID: follower,
		FolloweeID: followee,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyFollowing
		}
		if isCheckViolation(err) {
			return ErrSelfFollow
		}
		return err
	}
	return nil
}

func (s *Service) Unfollow(ctx context.Context, follower, followee uuid.UUID) error {
	rows, err := s.DB.DeleteFollow(ctx, database.DeleteFollowParams{
		FollowerID: follower,
		FolloweeID: followee,
	})
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFollowing
	}
	return nil
}

func (s *Service) Followers(ctx context.Context, profile uuid.UUID, page Page) ([]database.Profile, error) {
	return s.DB.ListFollowers(ctx, database.ListFollowersParams{
		FolloweeID: profile,
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
}

func (s *Service) Following(ctx context.Context, profile uuid.UUID, page Page) ([]database.Profile, error) {
	return s.DB.ListFollowing(ctx, database.ListFollowingParams{
		FollowerID: profile,
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
}

// ComposeFeed returns the posts authored by profiles the viewer follows,
// newest first, ties broken by post id. Unpublished scheduled posts are
// excluded by the query predicate. An empty result is not an error.
func (s *Service) ComposeFeed(ctx context.Context, viewer uuid.UUID, page Page) ([]database.ListFeedPostsRow, error) {
	return s.DB.ListFeedPosts(ctx, database.ListFeedPostsParams{
		FollowerID: viewer,
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
}

// ToggleLike likes the post when no like exists and unlikes it otherwise.
// Unpublished posts are treated as not found. A concurrent duplicate insert
// resolves to the liked state. Self-likes are not rejected.
func (s *Service) ToggleLike(ctx context.Context, profile, post uuid.UUID) (liked bool, count int64, err error) {
	p, err := s.DB.GetPost(ctx, post)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, 0, ErrNotFound
		}
		return false, 0, err
	}
	if !p.Published {
		return false, 0, ErrNotFound
	}

	rows, err := s.DB.DeleteLike(ctx, database.DeleteLikeParams{
		ProfileID: profile,
		PostID:    post,
	})
	if err != nil {
		return false, 0, err
	}

	if rows == 0 {
		err = s.DB.CreateLike(ctx, database.CreateLikeParams{
			ProfileID: profile,
			PostID:    post,
			CreatedAt: time.Now(),
		})
		if err != nil && !isUniqueViolation(err) {
			return false, 0, err
		}
		liked = true
	}

	count, err = s.DB.CountPostLikes(ctx, post)
	if err != nil {
		return liked, 0, err
	}
	return liked, count, nil
}

// DispatchDue publishes every post whose scheduled time has arrived. The
// predicate skips posts already published, so overlapping invocations mark
// each post exactly once.
func (s *Service) DispatchDue(ctx context.Context, now time.Time) (int64, error) {
	return s.DB.PublishDuePosts(ctx, sql.NullTime{Time: now, Valid: true})
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func isCheckViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23514"
}
