package agent

import (
	"sync"

	"github.com/volquant/crypto-vol-agent/pkg/types"
)

// session remembers the most recent analysis so follow-up commands can refer
// to "the last token" without refetching. It lives for one agent instance.
type session struct {
	mu   sync.RWMutex
	last types.VolatilitySeries
	set  bool
}

func newSession() *session {
	return &session{}
}

func (s *session) rememberAnalysis(vol types.VolatilitySeries) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = vol
	s.set = true
}

func (s *session) lastAnalyzed() (types.VolatilitySeries, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last, s.set
}
