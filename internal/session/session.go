// Package session keeps the per-user dialogue state of in-progress flows.
// Sessions live only in process memory: a restart drops every in-flight
// dialogue, which is accepted behavior.
package session

import (
	"sync"
	"time"

	"grana/internal/core"
)

// Step is the position inside a multi-step flow. The *Select steps are
// menu positions that only advance on button presses; free text arriving
// there gets the fallback prompt without changing the step.
type Step string

const (
	StepNone            Step = ""
	StepCategorySelect  Step = "categoria_transacao"
	StepSubcategory     Step = "subcategoria_transacao"
	StepAmount          Step = "valor_transacao"
	StepDateSelect      Step = "data_transacao"
	StepManualDate      Step = "data_manual_transacao"
	StepDescription     Step = "descricao_transacao"
	StepBudgetCategory  Step = "categoria_orcamento"
	StepBudgetAmount    Step = "valor_orcamento"
	StepEditField       Step = "editar_campo_transacao"
	StepEditAmount      Step = "editar_valor_transacao"
	StepEditDescription Step = "editar_descricao_transacao"
	StepEditCategory    Step = "editar_categoria_transacao"
)

// Valid reports whether s is a known step; anything else is treated as
// "no active flow".
func (s Step) Valid() bool {
	switch s {
	case StepNone, StepCategorySelect, StepSubcategory, StepAmount,
		StepDateSelect, StepManualDate, StepDescription,
		StepBudgetCategory, StepBudgetAmount,
		StepEditField, StepEditAmount, StepEditDescription, StepEditCategory:
		return true
	}
	return false
}

// Key scopes a session to one user in one chat.
type Key struct {
	UserID int64
	ChatID int64
}

// Session accumulates the partial fields of the active flow plus the id
// of the prompt message being edited across turns.
type Session struct {
	Step Step

	Kind           core.Kind
	Category       string
	ParentCategory string
	Amount         core.Money
	TxDate         time.Time
	EntryDate      time.Time

	BudgetCategory string
	EditTxID       int64

	LastMessageID int

	touched time.Time
}

// Reset clears every accumulated field and returns the session to
// StepNone. The prompt-message id is dropped too.
func (s *Session) Reset() {
	*s = Session{touched: s.touched}
}

// Store maps session keys to sessions. Access is serialized with a
// mutex; a zero TTL disables expiry.
type Store struct {
	mu  sync.Mutex
	m   map[Key]*Session
	ttl time.Duration
	now func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		m:   make(map[Key]*Session),
		ttl: ttl,
		now: time.Now,
	}
}

// Get returns the session for key, creating it lazily. A session idle
// longer than the TTL is replaced by a fresh one.
func (st *Store) Get(key Key) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	s, ok := st.m[key]
	if ok && st.ttl > 0 && now.Sub(s.touched) > st.ttl {
		ok = false
	}
	if !ok {
		s = &Session{}
		st.m[key] = s
	}
	s.touched = now
	return s
}

// Clear resets the session for key without removing the map entry.
func (st *Store) Clear(key Key) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.m[key]; ok {
		s.Reset()
	}
}

// Sweep removes sessions idle longer than the TTL and reports how many
// were evicted. No-op when expiry is disabled.
func (st *Store) Sweep() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.ttl <= 0 {
		return 0
	}
	now := st.now()
	evicted := 0
	for key, s := range st.m {
		if now.Sub(s.touched) > st.ttl {
			delete(st.m, key)
			evicted++
		}
	}
	return evicted
}

// Len returns the number of tracked sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.m)
}
