// Package memory provides in-memory repository implementations backed by
// maps. They mirror the Postgres repositories' behavior, including the
// uniqueness constraints, and exist for tests and local experimentation.
package memory

import (
	"strconv"
	"sync"
	"time"

	"github.com/screenlog/movie-catalog-api/internal/domain/repository"
)

var (
	ErrNotFound = repository.ErrNotFound
	ErrConflict = repository.ErrConflict
)

// idSeq hands out process-unique string IDs.
type idSeq struct {
	mu sync.Mutex
	n  int
}

func (s *idSeq) next(prefix string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return prefix + "-" + strconv.Itoa(s.n)
}

func now() time.Time {
	return time.Now().UTC()
}
