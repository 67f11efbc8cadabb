package infra

import (
	"context"
	"sync"
	"time"

	"crpt-client/client/dispatch/domain"
)

type Counters struct {
	OK          int64
	Failed      int64
	NotAdmitted int64
}

// MemoryStatsStore é uma implementação simples em memória.
// Útil para testes e desenvolvimento.
//
// Não faz expiração e não é indicada para produção.
type MemoryStatsStore struct {
	mu        sync.Mutex
	total     Counters
	byDocType map[string]Counters

	maxWait time.Duration
}

func NewMemoryStatsStore() *MemoryStatsStore {
	return &MemoryStatsStore{
		byDocType: make(map[string]Counters),
	}
}

func (s *MemoryStatsStore) Record(_ context.Context, ev domain.CallEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bump := func(c *Counters) {
		switch {
		case !ev.Admitted:
			c.NotAdmitted++
		case ev.OK:
			c.OK++
		default:
			c.Failed++
		}
	}

	bump(&s.total)
	if ev.DocType != "" {
		c := s.byDocType[ev.DocType]
		bump(&c)
		s.byDocType[ev.DocType] = c
	}

	if ev.Waited > s.maxWait {
		s.maxWait = ev.Waited
	}
	return nil
}

func (s *MemoryStatsStore) Total() Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

func (s *MemoryStatsStore) ByDocType() map[string]Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Counters, len(s.byDocType))
	for k, v := range s.byDocType {
		out[k] = v
	}
	return out
}

// MaxWait retorna a maior espera por permit observada até agora.
func (s *MemoryStatsStore) MaxWait() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxWait
}
