package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/screenlog/movie-catalog-api/internal/domain/entity"
	"github.com/screenlog/movie-catalog-api/internal/domain/repository"
	"github.com/screenlog/movie-catalog-api/pkg/helpers"
)

// ErrStorageUnavailable is returned when an operation needs object storage
// and none is configured.
var ErrStorageUnavailable = errors.New("object storage not configured")

// MovieService owns the movie catalog: CRUD with ownership checks, poster
// uploads to GCS, and the Elasticsearch search index.
type MovieService struct {
	Movies        repository.MovieRepository
	Logger        *logrus.Logger
	GCS           *storage.Client
	GCSBucket     string
	ES            *elasticsearch.Client
	ESMoviesIndex string
}

func NewMovieService(movies repository.MovieRepository, logger *logrus.Logger, gcs *storage.Client, gcsBucket string, es *elasticsearch.Client, esMoviesIndex string) *MovieService {
	return &MovieService{
		Movies:        movies,
		Logger:        logger,
		GCS:           gcs,
		GCSBucket:     gcsBucket,
		ES:            es,
		ESMoviesIndex: esMoviesIndex,
	}
}

// MovieUpdate carries the mutable fields of an update request. Nil means
// "leave unchanged". Title, duration and release date are fixed at
// creation time.
type MovieUpdate struct {
	Description *string
	PosterURL   *string
}

// Create stores a new movie owned by ownerID. Duplicate title+release date
// pairs are rejected.
func (s *MovieService) Create(ctx context.Context, m *entity.Movie, ownerID string) (*entity.Movie, error) {
	m.OwnerID = ownerID
	if err := s.Movies.Create(ctx, m); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrDuplicateMovie
		}
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{"movie_id": m.ID, "owner_id": ownerID}).Info("movie created")
	_ = s.indexMovie(ctx, m)
	return m, nil
}

func (s *MovieService) Get(ctx context.Context, id string) (*entity.Movie, error) {
	m, err := s.Movies.GetByID(ctx, id)
	if err != nil || m == nil {
		return nil, ErrMovieNotFound
	}
	return m, nil
}

func (s *MovieService) List(ctx context.Context, params repository.MovieListParams) ([]*entity.Movie, error) {
	return s.Movies.List(ctx, params)
}

// Update applies partial changes to a movie. A missing movie and a movie
// owned by someone else are indistinguishable to the caller.
func (s *MovieService) Update(ctx context.Context, id string, upd MovieUpdate, requesterID string) (*entity.Movie, error) {
	m, err := s.Movies.GetByID(ctx, id)
	if err != nil || m == nil || m.OwnerID != requesterID {
		return nil, ErrMovieNotFound
	}
	if upd.Description != nil {
		m.Description = *upd.Description
	}
	if upd.PosterURL != nil {
		m.PosterURL = *upd.PosterURL
	}
	if err := s.Movies.Update(ctx, m); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	_ = s.indexMovie(ctx, m)
	return m, nil
}

// Delete removes a movie the requester owns. Ratings and comments go with
// it via the schema's cascades.
func (s *MovieService) Delete(ctx context.Context, id, requesterID string) error {
	m, err := s.Movies.GetByID(ctx, id)
	if err != nil || m == nil || m.OwnerID != requesterID {
		return ErrMovieNotFound
	}
	if err := s.Movies.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMovieNotFound
		}
		return err
	}
	s.Logger.WithField("movie_id", id).Info("movie deleted")
	s.deleteMovieIndex(ctx, id)
	return nil
}

// UploadPoster stores a poster image in GCS and records its public URL on
// the movie. Only the owner may replace a poster.
func (s *MovieService) UploadPoster(ctx context.Context, movieID, requesterID string, r io.Reader, filename, contentType string) (string, error) {
	m, err := s.Movies.GetByID(ctx, movieID)
	if err != nil || m == nil || m.OwnerID != requesterID {
		return "", ErrMovieNotFound
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return "", ErrStorageUnavailable
	}
	id := uuid.NewString()
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("posters", movieID, id+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		s.Logger.WithError(err).WithField("movie_id", movieID).Error("poster upload failed")
		return "", err
	}
	m.PosterURL = url
	if err := s.Movies.Update(ctx, m); err != nil {
		return "", err
	}
	_ = s.indexMovie(ctx, m)
	return url, nil
}

func (s *MovieService) indexMovie(ctx context.Context, m *entity.Movie) error {
	if s.ES == nil || s.ESMoviesIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":           m.ID,
		"title":        m.Title,
		"description":  m.Description,
		"duration":     m.Duration,
		"release_date": m.ReleaseDate.Format("2006-01-02"),
		"poster_url":   m.PosterURL,
		"owner_id":     m.OwnerID,
		"created_at":   m.CreatedAt.Format(time.RFC3339Nano),
		"updated_at":   m.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESMoviesIndex, DocumentID: m.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("movie_id", m.ID).Warn("es index failed")
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		s.Logger.WithField("status", res.Status()).WithField("movie_id", m.ID).Warn("es index response error")
	}
	return nil
}

func (s *MovieService) deleteMovieIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESMoviesIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESMoviesIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("movie_id", id).Warn("es delete failed")
		return
	}
	_ = res.Body.Close()
}

// Search performs a multi_match query against the movie index.
func (s *MovieService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESMoviesIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "description"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESMoviesIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
