// SPDX-License-Identifier: AGPL-3.0-only
package exports

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/natterhq/natter/internal/database"
)

// WritePostsCSV streams every post the profile has authored, scheduled ones
// included, as CSV.
func WritePostsCSV(ctx context.Context, dbQueries *database.Queries, profileID uuid.UUID, w io.Writer) error {

	posts, err := dbQueries.ListAllPostsByAuthor(ctx, profileID)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{
		"id",
		"created_at",
		"title",
		"content",
		"published",
		"publish_at",
		"likes",
		"comments",
	}); err != nil {
		return err
	}

	for _, r := range posts {

		publishAt := ""
		if r.PublishAt.Valid {
			publishAt = r.PublishAt.Time.Format(time.RFC3339)
		}

		record := []string{
			r.ID.String(),
			r.CreatedAt.Format(time.RFC3339),
			r.Title,
			r.Content,
			strconv.FormatBool(r.Published),
			publishAt,
			strconv.FormatInt(r.LikeCount, 10),
			strconv.FormatInt(r.CommentCount, 10),
		}

		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return writer.Error()
}
