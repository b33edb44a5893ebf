package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/screenlog/movie-catalog-api/internal/domain/entity"
	"github.com/screenlog/movie-catalog-api/internal/domain/repository"
)

type MovieRepository struct {
	mu     sync.RWMutex
	seq    idSeq
	movies map[string]*entity.Movie

	// ratings feeds the rating-based sort modes when both repositories
	// share a store; may be nil.
	ratings *RatingRepository
}

func NewMovieRepository() *MovieRepository {
	return &MovieRepository{movies: map[string]*entity.Movie{}}
}

// WithRatings links a rating repository so List can sort by average score.
func (r *MovieRepository) WithRatings(ratings *RatingRepository) *MovieRepository {
	r.ratings = ratings
	return r
}

func copyMovie(m *entity.Movie) *entity.Movie {
	cp := *m
	return &cp
}

func (r *MovieRepository) Create(_ context.Context, m *entity.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.movies {
		if existing.Title == m.Title && existing.ReleaseDate.Equal(m.ReleaseDate) {
			return ErrConflict
		}
	}
	m.ID = r.seq.next("movie")
	m.CreatedAt = now()
	m.UpdatedAt = m.CreatedAt
	r.movies[m.ID] = copyMovie(m)
	return nil
}

func (r *MovieRepository) GetByID(_ context.Context, id string) (*entity.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.movies[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyMovie(m), nil
}

func (r *MovieRepository) List(ctx context.Context, p repository.MovieListParams) ([]*entity.Movie, error) {
	r.mu.RLock()
	all := make([]*entity.Movie, 0, len(r.movies))
	for _, m := range r.movies {
		if p.Search != "" {
			s := strings.ToLower(p.Search)
			if !strings.Contains(strings.ToLower(m.Title), s) &&
				!strings.Contains(strings.ToLower(m.Description), s) {
				continue
			}
		}
		all = append(all, copyMovie(m))
	}
	r.mu.RUnlock()

	avg := func(id string) float64 {
		if r.ratings == nil {
			return -1
		}
		a, _ := r.ratings.AverageScore(ctx, id)
		if a == nil {
			return -1
		}
		return *a
	}

	switch p.SortBy {
	case repository.SortMostRecent:
		sort.SliceStable(all, func(i, j int) bool { return all[i].ReleaseDate.After(all[j].ReleaseDate) })
	case repository.SortMostRated:
		sort.SliceStable(all, func(i, j int) bool { return avg(all[i].ID) > avg(all[j].ID) })
	case repository.SortMostRatedAndRecent:
		sort.SliceStable(all, func(i, j int) bool {
			ai, aj := avg(all[i].ID), avg(all[j].ID)
			if ai != aj {
				return ai > aj
			}
			return all[i].ReleaseDate.After(all[j].ReleaseDate)
		})
	default:
		sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	}

	if p.Skip >= len(all) {
		return []*entity.Movie{}, nil
	}
	all = all[p.Skip:]
	if p.Limit > 0 && p.Limit < len(all) {
		all = all[:p.Limit]
	}
	return all, nil
}

func (r *MovieRepository) Update(_ context.Context, m *entity.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.movies[m.ID]; !ok {
		return ErrNotFound
	}
	for id, existing := range r.movies {
		if id != m.ID && existing.Title == m.Title && existing.ReleaseDate.Equal(m.ReleaseDate) {
			return ErrConflict
		}
	}
	m.UpdatedAt = now()
	r.movies[m.ID] = copyMovie(m)
	return nil
}

func (r *MovieRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.movies[id]; !ok {
		return ErrNotFound
	}
	delete(r.movies, id)
	return nil
}

var _ repository.MovieRepository = (*MovieRepository)(nil)
