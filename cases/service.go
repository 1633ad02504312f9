package cases

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"attestflow/docstore"
	"attestflow/i18n"
)

// casesKey addresses the full case collection in the document store.
const casesKey = "cases"

// FilterAll disables status filtering in Search.
const FilterAll = "all"

var (
	// ErrCaseNotFound is returned on a lookup miss. Absence is a normal,
	// expected outcome; callers surface it as an empty view.
	ErrCaseNotFound = errors.New("cases: not found")
	// ErrCaseCompleted signals an attempt to advance past the final stage.
	ErrCaseCompleted = errors.New("cases: already completed")
)

// Service owns the case collection. It is purely functional over the
// document store: every read re-fetches, every write rewrites the whole
// collection, and nothing is cached between calls.
type Service struct {
	store     docstore.Store
	log       *zap.Logger
	translate i18n.Translator
	ids       *IDGenerator
	now       func() time.Time
}

func NewService(store docstore.Store, log *zap.Logger, translate i18n.Translator) *Service {
	if translate == nil {
		translate = i18n.Default()
	}
	return &Service{
		store:     store,
		log:       log,
		translate: translate,
		ids:       NewIDGenerator(),
		now:       time.Now,
	}
}

// WithClock overrides the service clock.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	s.ids.WithClock(now)
	return s
}

// WithIDGenerator overrides the case-id generator.
func (s *Service) WithIDGenerator(gen *IDGenerator) *Service {
	s.ids = gen
	return s
}

// List returns all known cases, newest-created first. An absent cases
// document bootstraps from the seed set; an unreadable one is logged and
// falls back to the seed set instead of failing the session.
func (s *Service) List(ctx context.Context) ([]Case, error) {
	raw, ok, err := s.store.Get(ctx, casesKey)
	if err != nil {
		return nil, fmt.Errorf("cases: read collection: %w", err)
	}
	if !ok {
		return SeedCases(), nil
	}

	var all []Case
	if err := json.Unmarshal(raw, &all); err != nil {
		s.log.Warn("cases document corrupt, falling back to seed data", zap.Error(err))
		return SeedCases(), nil
	}
	return all, nil
}

// Get looks up a case by exact id.
func (s *Service) Get(ctx context.Context, id string) (Case, error) {
	all, err := s.List(ctx)
	if err != nil {
		return Case{}, err
	}
	for _, c := range all {
		if c.ID == id {
			return c, nil
		}
	}
	return Case{}, ErrCaseNotFound
}

// Save upserts a case by id: an existing case is replaced in place, a new
// one is prepended. This is the sole mutation entry point, so it is also the
// single invariant-checking point for the record.
func (s *Service) Save(ctx context.Context, c Case) error {
	if err := validate(c); err != nil {
		return err
	}

	all, err := s.List(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range all {
		if all[i].ID == c.ID {
			all[i] = c
			replaced = true
			break
		}
	}
	if !replaced {
		all = append([]Case{c}, all...)
	}

	return s.writeAll(ctx, all)
}

// CreateParams carries the wizard's accumulated input into case creation.
type CreateParams struct {
	Category  Category
	Documents []string
}

// Create constructs and persists a new case in its initial state: status
// submitted, flat fee, timeline seeded with a single localized submission
// event. The id is generated fresh and re-rolled on collision.
func (s *Service) Create(ctx context.Context, params CreateParams) (Case, error) {
	if !ValidCategory(params.Category) {
		return Case{}, fmt.Errorf("cases: invalid category %q", params.Category)
	}
	if len(params.Documents) == 0 {
		return Case{}, fmt.Errorf("cases: at least one document required")
	}

	all, err := s.List(ctx)
	if err != nil {
		return Case{}, err
	}
	taken := make(map[string]struct{}, len(all))
	for _, c := range all {
		taken[c.ID] = struct{}{}
	}

	id, err := s.ids.Generate(taken)
	if err != nil {
		return Case{}, err
	}

	now := s.now().UTC()
	c := Case{
		ID:        id,
		Category:  params.Category,
		Status:    StatusSubmitted,
		CreatedAt: now,
		UpdatedAt: now,
		Documents: params.Documents,
		Fees:      FeeFor(params.Category),
		Timeline: []TimelineEvent{
			{
				Date:        now,
				Status:      s.translate(StatusSubmitted.Meta().LabelKey),
				Description: s.translate("attestation.submitted"),
			},
		},
	}

	if err := s.Save(ctx, c); err != nil {
		return Case{}, err
	}

	s.log.Info("case submitted",
		zap.String("case_id", c.ID),
		zap.String("category", string(c.Category)),
		zap.Int("documents", len(c.Documents)),
	)

	return c, nil
}

// Advance moves a case to its next stage, appending the human-readable
// timeline event and bumping updatedAt in the same write. Status, timeline
// and updatedAt never change independently of each other.
func (s *Service) Advance(ctx context.Context, id, description string) (Case, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return Case{}, err
	}

	next, ok := c.Status.Next()
	if !ok {
		return Case{}, ErrCaseCompleted
	}

	now := s.now().UTC()
	c.Status = next
	c.UpdatedAt = now
	c.Timeline = append(c.Timeline, TimelineEvent{
		Date:        now,
		Status:      s.translate(next.Meta().LabelKey),
		Description: description,
	})

	if err := s.Save(ctx, c); err != nil {
		return Case{}, err
	}
	return c, nil
}

// Search returns cases whose id contains the query as a case-insensitive
// substring AND whose status matches the filter (unless the filter is
// FilterAll). Both predicates are conjunctive.
func (s *Service) Search(ctx context.Context, query, statusFilter string) ([]Case, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	matched := []Case{}
	for _, c := range all {
		if !strings.Contains(strings.ToLower(c.ID), needle) {
			continue
		}
		if statusFilter != FilterAll && c.Status != Status(statusFilter) {
			continue
		}
		matched = append(matched, c)
	}
	return matched, nil
}

// Summary holds the dashboard projections. They are recomputed from the
// collection on every call and never stored, so they cannot drift.
type Summary struct {
	InProgress      int `json:"inProgress"`
	AwaitingPayment int `json:"awaitingPayment"`
	Resolved        int `json:"resolved"`
}

// Summarize recomputes the dashboard aggregation from the live collection.
func (s *Service) Summarize(ctx context.Context) (Summary, error) {
	all, err := s.List(ctx)
	if err != nil {
		return Summary{}, err
	}

	var summary Summary
	for _, c := range all {
		switch c.Status {
		case StatusSubmitted, StatusReview:
			summary.InProgress++
		case StatusPayment:
			summary.AwaitingPayment++
		case StatusCompleted, StatusReady:
			summary.Resolved++
		}
	}
	return summary, nil
}

func (s *Service) writeAll(ctx context.Context, all []Case) error {
	raw, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("cases: marshal collection: %w", err)
	}
	if err := s.store.Set(ctx, casesKey, raw); err != nil {
		return fmt.Errorf("cases: write collection: %w", err)
	}
	return nil
}

func validate(c Case) error {
	if c.ID == "" {
		return fmt.Errorf("cases: missing id")
	}
	if !ValidCategory(c.Category) {
		return fmt.Errorf("cases: invalid category %q", c.Category)
	}
	if !c.Status.Valid() {
		return fmt.Errorf("cases: invalid status %q", c.Status)
	}
	if len(c.Documents) == 0 {
		return fmt.Errorf("cases: documents required")
	}
	if len(c.Timeline) == 0 {
		return fmt.Errorf("cases: timeline must not be empty")
	}
	if c.UpdatedAt.Before(c.CreatedAt) {
		return fmt.Errorf("cases: updatedAt precedes createdAt")
	}
	return nil
}
