// SPDX-License-Identifier: AGPL-3.0-only
package stats

import (
	"context"

	"github.com/google/uuid"

	"github.com/natterhq/natter/internal/database"
)

type ActivityPoint struct {
	Date  string `json:"date"`
	Posts int64  `json:"posts"`
	Likes int64  `json:"likes"`
}

type ProfileStats struct {
	ProfileID      uuid.UUID       `json:"profile_id"`
	PostCount      int64           `json:"post_count"`
	FollowerCount  int64           `json:"follower_count"`
	FollowingCount int64           `json:"following_count"`
	Weekly         []ActivityPoint `json:"weekly"`
}

// GetProfileStats aggregates a profile's published activity, bucketed by ISO
// week.
func GetProfileStats(ctx context.Context, dbQueries *database.Queries, profileID uuid.UUID) (ProfileStats, error) {

	result := ProfileStats{ProfileID: profileID, Weekly: []ActivityPoint{}}

	postCount, err := dbQueries.CountPostsByAuthor(ctx, profileID)
	if err != nil {
		return result, err
	}
	result.PostCount = postCount

	followerCount, err := dbQueries.CountFollowers(ctx, profileID)
	if err != nil {
		return result, err
	}
	result.FollowerCount = followerCount

	followingCount, err := dbQueries.CountFollowing(ctx, profileID)
	if err != nil {
		return result, err
	}
	result.FollowingCount = followingCount

	weekly, err := dbQueries.GetWeeklyPostStats(ctx, profileID)
	if err != nil {
		return result, err
	}

	for _, row := range weekly {
		result.Weekly = append(result.Weekly, ActivityPoint{
			Date:  row.YearWeek,
			Posts: row.Posts,
			Likes: row.Likes,
		})
	}

	return result, nil
}
