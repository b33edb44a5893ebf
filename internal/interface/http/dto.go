package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/screenlog/movie-catalog-api/internal/domain/entity"
)

const dateLayout = "2006-01-02"

func userJSON(u *entity.User) gin.H {
	return gin.H{
		"id":          u.ID,
		"email":       u.Email,
		"first_name":  u.FirstName,
		"last_name":   u.LastName,
		"is_verified": u.IsVerified,
		"created_at":  u.CreatedAt,
	}
}

func movieJSON(m *entity.Movie) gin.H {
	return gin.H{
		"id":           m.ID,
		"title":        m.Title,
		"description":  m.Description,
		"duration":     m.Duration,
		"release_date": m.ReleaseDate.Format(dateLayout),
		"poster_url":   m.PosterURL,
		"owner_id":     m.OwnerID,
		"created_at":   m.CreatedAt,
		"updated_at":   m.UpdatedAt,
	}
}

func moviesJSON(ms []*entity.Movie) []gin.H {
	out := make([]gin.H, 0, len(ms))
	for _, m := range ms {
		out = append(out, movieJSON(m))
	}
	return out
}

func ratingJSON(r *entity.Rating) gin.H {
	return gin.H{
		"id":         r.ID,
		"score":      r.Score,
		"review":     r.Review,
		"movie_id":   r.MovieID,
		"user_id":    r.UserID,
		"created_at": r.CreatedAt,
		"updated_at": r.UpdatedAt,
	}
}

func ratingsJSON(rs []*entity.Rating) []gin.H {
	out := make([]gin.H, 0, len(rs))
	for _, r := range rs {
		out = append(out, ratingJSON(r))
	}
	return out
}

func commentJSON(c *entity.Comment) gin.H {
	out := gin.H{
		"id":         c.ID,
		"content":    c.Content,
		"user_id":    c.UserID,
		"created_at": c.CreatedAt,
		"updated_at": c.UpdatedAt,
	}
	if c.MovieID != nil {
		out["movie_id"] = *c.MovieID
	}
	if c.ParentCommentID != nil {
		out["parent_comment_id"] = *c.ParentCommentID
	}
	if c.Replies != nil {
		out["replies"] = commentsJSON(c.Replies)
	}
	return out
}

func commentsJSON(cs []*entity.Comment) []gin.H {
	out := make([]gin.H, 0, len(cs))
	for _, c := range cs {
		out = append(out, commentJSON(c))
	}
	return out
}

// parseDate parses a yyyy-mm-dd value.
func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}
