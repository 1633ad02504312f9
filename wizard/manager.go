package wizard

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"attestflow/cases"
)

// ErrSessionNotFound is returned for unknown or already-confirmed sessions.
var ErrSessionNotFound = errors.New("wizard: session not found")

// CaseCreator is the slice of the cases service the wizard needs.
type CaseCreator interface {
	Create(ctx context.Context, params cases.CreateParams) (cases.Case, error)
}

// Manager tracks in-flight wizard sessions by id. Each client session gets
// its own wizard; confirmation hands the constructed case to the store and
// discards the session with no resume-after-submit state.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	cases CaseCreator
	log   *zap.Logger
	newID func() string
}

func NewManager(creator CaseCreator, log *zap.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		cases:    creator,
		log:      log,
		newID:    uuid.NewString,
	}
}

// WithIDGenerator overrides session id generation.
func (m *Manager) WithIDGenerator(gen func() string) *Manager {
	m.newID = gen
	return m
}

// Start opens a fresh session at step 1.
func (m *Manager) Start() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	session := newSession(m.newID())
	m.sessions[session.ID] = session
	return session
}

// Get returns the live session for id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Confirm finalizes the session: the accumulated input becomes a new case in
// the store and the session is discarded. A gate failure keeps the session
// alive so the user can fix it and retry.
func (m *Manager) Confirm(ctx context.Context, sessionID string) (cases.Case, error) {
	m.mu.Lock()
	session, ok := m.sessions[sessionID]
	m.mu.Unlock()
	if !ok {
		return cases.Case{}, ErrSessionNotFound
	}

	params, err := session.createParams()
	if err != nil {
		return cases.Case{}, err
	}

	created, err := m.cases.Create(ctx, params)
	if err != nil {
		return cases.Case{}, err
	}

	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()

	m.log.Info("wizard session confirmed",
		zap.String("session_id", sessionID),
		zap.String("case_id", created.ID),
	)

	return created, nil
}

// Discard drops a session without confirming it.
func (m *Manager) Discard(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}
