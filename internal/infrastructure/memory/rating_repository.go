package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/screenlog/movie-catalog-api/internal/domain/entity"
	"github.com/screenlog/movie-catalog-api/internal/domain/repository"
)

type RatingRepository struct {
	mu      sync.RWMutex
	seq     idSeq
	ratings map[string]*entity.Rating
}

func NewRatingRepository() *RatingRepository {
	return &RatingRepository{ratings: map[string]*entity.Rating{}}
}

func copyRating(rt *entity.Rating) *entity.Rating {
	cp := *rt
	return &cp
}

func (r *RatingRepository) Upsert(_ context.Context, rt *entity.Rating) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.ratings {
		if existing.UserID == rt.UserID && existing.MovieID == rt.MovieID {
			existing.Score = rt.Score
			existing.Review = rt.Review
			existing.UpdatedAt = now()
			*rt = *existing
			return nil
		}
	}
	rt.ID = r.seq.next("rating")
	rt.CreatedAt = now()
	rt.UpdatedAt = rt.CreatedAt
	r.ratings[rt.ID] = copyRating(rt)
	return nil
}

func (r *RatingRepository) ListByMovie(_ context.Context, movieID string, skip, limit int, score *int) ([]*entity.Rating, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*entity.Rating{}
	for _, rt := range r.ratings {
		if rt.MovieID != movieID {
			continue
		}
		if score != nil && rt.Score != *score {
			continue
		}
		out = append(out, copyRating(rt))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })

	if skip >= len(out) {
		return []*entity.Rating{}, nil
	}
	out = out[skip:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *RatingRepository) AverageScore(_ context.Context, movieID string) (*float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sum, n := 0, 0
	for _, rt := range r.ratings {
		if rt.MovieID == movieID {
			sum += rt.Score
			n++
		}
	}
	if n == 0 {
		return nil, nil
	}
	avg := math.Round(float64(sum)/float64(n)*100) / 100
	return &avg, nil
}

var _ repository.RatingRepository = (*RatingRepository)(nil)
