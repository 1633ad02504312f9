// Package assistant simulates the portal's chat assistant. Replies are
// canned and arrive after a configurable delay, modeled as cancellable
// tasks keyed to their session so a closed session never receives a late
// write.
package assistant

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"attestflow/i18n"
)

// ErrSessionNotFound is returned for unknown or closed sessions.
var ErrSessionNotFound = errors.New("assistant: session not found")

// ErrEmptyMessage rejects blank user input.
var ErrEmptyMessage = errors.New("assistant: empty message")

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one chat entry.
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type session struct {
	id     string
	cancel context.CancelFunc
	ctx    context.Context

	mu       sync.Mutex
	messages []Message

	pending sync.WaitGroup
}

// Service manages chat sessions. Each session starts with a greeting; every
// user message schedules one deferred assistant reply.
type Service struct {
	mu       sync.Mutex
	sessions map[string]*session

	translate i18n.Translator
	delay     time.Duration
	log       *zap.Logger
	newID     func() string
	now       func() time.Time
}

func NewService(translate i18n.Translator, delay time.Duration, log *zap.Logger) *Service {
	if translate == nil {
		translate = i18n.Default()
	}
	return &Service{
		sessions:  make(map[string]*session),
		translate: translate,
		delay:     delay,
		log:       log,
		newID:     uuid.NewString,
		now:       time.Now,
	}
}

// WithClock overrides the service clock.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Start opens a session seeded with the greeting and returns its id.
func (s *Service) Start() string {
	ctx, cancel := context.WithCancel(context.Background())
	sess := &session{
		id:     s.newID(),
		ctx:    ctx,
		cancel: cancel,
		messages: []Message{{
			ID:        s.newID(),
			Role:      RoleAssistant,
			Content:   s.translate("assistant.greeting"),
			Timestamp: s.now().UTC(),
		}},
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	return sess.id
}

// Messages returns a snapshot of the session's chat log.
func (s *Service) Messages(sessionID string) ([]Message, error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	out := make([]Message, len(sess.messages))
	copy(out, sess.messages)
	return out, nil
}

// Send appends the user message and schedules the deferred assistant reply.
// The reply task is cancelled if the session closes before it fires.
func (s *Service) Send(sessionID, content string) (Message, error) {
	if strings.TrimSpace(content) == "" {
		return Message{}, ErrEmptyMessage
	}

	sess, err := s.get(sessionID)
	if err != nil {
		return Message{}, err
	}

	userMessage := Message{
		ID:        s.newID(),
		Role:      RoleUser,
		Content:   content,
		Timestamp: s.now().UTC(),
	}

	sess.mu.Lock()
	sess.messages = append(sess.messages, userMessage)
	sess.mu.Unlock()

	sess.pending.Add(1)
	go s.replyLater(sess)

	return userMessage, nil
}

// Close tears the session down, cancelling any reply still pending.
func (s *Service) Close(sessionID string) {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if ok {
		delete(s.sessions, sessionID)
	}
	s.mu.Unlock()

	if ok {
		sess.cancel()
		sess.pending.Wait()
	}
}

func (s *Service) replyLater(sess *session) {
	defer sess.pending.Done()

	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-sess.ctx.Done():
		return
	case <-timer.C:
	}
	// The timer and cancellation can be ready simultaneously; never write
	// into a closed session.
	if sess.ctx.Err() != nil {
		return
	}

	reply := Message{
		ID:        s.newID(),
		Role:      RoleAssistant,
		Content:   s.translate("assistant.reply"),
		Timestamp: s.now().UTC(),
	}

	sess.mu.Lock()
	sess.messages = append(sess.messages, reply)
	sess.mu.Unlock()
}

func (s *Service) get(sessionID string) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}
