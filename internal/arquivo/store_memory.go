package arquivo

import (
	"context"
	"sort"
	"sync"
	"time"

	"recadastro/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu       sync.RWMutex
	nextID   int64
	arquivos map[int64]Arquivo
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{nextID: 1, arquivos: make(map[int64]Arquivo)}
}

func (s *InMemoryStore) Save(_ context.Context, a *Arquivo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = s.nextID
	s.nextID++
	s.arquivos[a.ID] = *a
	return nil
}

func (s *InMemoryStore) GetByID(_ context.Context, id int64) (*Arquivo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.arquivos[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &a, nil
}

func (s *InMemoryStore) ListByEscolaAndPeriod(_ context.Context, codigoEscola int64, start, end time.Time) ([]Arquivo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matches := make([]Arquivo, 0)
	for _, a := range s.arquivos {
		if a.CodigoEscola != codigoEscola {
			continue
		}
		if a.DataUpload.Before(start) || a.DataUpload.After(end) {
			continue
		}
		matches = append(matches, a)
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].DataUpload.Before(matches[j].DataUpload) })
	return matches, nil
}
