// Package wizard implements the four-step gated intake flow that collects a
// category and document descriptors and, on confirmation, produces a new
// case in its initial state.
package wizard

import (
	"strings"

	"attestflow/cases"
)

// Step numbers. Forward navigation is gated; backward navigation is free.
const (
	StepCategory     = 1
	StepRequirements = 2
	StepUpload       = 3
	StepReview       = 4

	totalSteps = 4
)

// MaxFileSize is the per-file upload ceiling: 10 MiB.
const MaxFileSize = 10 * 1024 * 1024

// ValidationError is a recoverable gate or upload failure. Key addresses the
// user-facing message through the translator; session state is untouched so
// the user can retry.
type ValidationError struct {
	Key string
}

func (e *ValidationError) Error() string {
	return "wizard: " + e.Key
}

var (
	// ErrCategoryRequired gates step 1: no category chosen.
	ErrCategoryRequired = &ValidationError{Key: "attestation.selectionRequired"}
	// ErrUploadRequired gates step 3: no accumulated documents.
	ErrUploadRequired = &ValidationError{Key: "attestation.uploadRequired"}
	// ErrFileType rejects a candidate file that is neither PDF nor image.
	ErrFileType = &ValidationError{Key: "attestation.invalidFileType"}
	// ErrFileSize rejects a candidate file over MaxFileSize.
	ErrFileSize = &ValidationError{Key: "attestation.fileTooLarge"}
	// ErrNotAtReview rejects confirmation from any step but the last.
	ErrNotAtReview = &ValidationError{Key: "attestation.reviewRequired"}
)

// FileUpload is a candidate document descriptor. Binary content never enters
// the core; only the metadata needed for validation does.
type FileUpload struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// Rejection records one file that failed validation and why.
type Rejection struct {
	Name   string
	Reason *ValidationError
}

// AcceptFile applies the two upload predicates independently: accepted kind
// (PDF or any image type) and accepted size. Nil means the file passes both.
func AcceptFile(f FileUpload) *ValidationError {
	if f.ContentType != "application/pdf" && !strings.HasPrefix(f.ContentType, "image/") {
		return ErrFileType
	}
	if f.Size > MaxFileSize {
		return ErrFileSize
	}
	return nil
}

// Requirements returns the step-2 content keys for a category. Academic
// submissions carry one extra authentication requirement.
func Requirements(category cases.Category) []string {
	keys := []string{"requirements.originalDoc", "requirements.validID"}
	if category == cases.CategoryAcademic {
		keys = append(keys, "requirements.authenticate")
	}
	return keys
}

// Session is one in-flight intake wizard. It accumulates user input across
// steps and is discarded after confirmation. A session has exactly one
// logical writer; the Manager serializes access across sessions.
type Session struct {
	ID string

	step     int
	category cases.Category
	files    []FileUpload
}

func newSession(id string) *Session {
	return &Session{ID: id, step: StepCategory}
}

// Step returns the current step, always within [1, 4].
func (s *Session) Step() int { return s.step }

// Category returns the selected category, empty until step 1 is answered.
func (s *Session) Category() cases.Category { return s.category }

// Files returns the accumulated accepted documents.
func (s *Session) Files() []FileUpload {
	out := make([]FileUpload, len(s.files))
	copy(out, s.files)
	return out
}

// SelectCategory records the step-1 choice.
func (s *Session) SelectCategory(category cases.Category) error {
	if !cases.ValidCategory(category) {
		return ErrCategoryRequired
	}
	s.category = category
	return nil
}

// Next advances one step if the current step's gate holds. A gate failure
// leaves the step unchanged and reports the validation message; moving past
// the last step is a no-op.
func (s *Session) Next() error {
	if s.step == StepCategory && s.category == "" {
		return ErrCategoryRequired
	}
	if s.step == StepUpload && len(s.files) == 0 {
		return ErrUploadRequired
	}
	if s.step < totalSteps {
		s.step++
	}
	return nil
}

// Previous moves one step back. It never re-validates already-entered data
// and is a no-op on the first step.
func (s *Session) Previous() {
	if s.step > StepCategory {
		s.step--
	}
}

// AddFiles validates each candidate independently and appends the passing
// ones to the accumulated set. Uploads are additive: earlier accepted files
// are never displaced. Failing files come back as individual rejections.
func (s *Session) AddFiles(candidates ...FileUpload) (accepted []FileUpload, rejected []Rejection) {
	for _, f := range candidates {
		if reason := AcceptFile(f); reason != nil {
			rejected = append(rejected, Rejection{Name: f.Name, Reason: reason})
			continue
		}
		s.files = append(s.files, f)
		accepted = append(accepted, f)
	}
	return accepted, rejected
}

// RemoveFile drops a previously accepted file by index. Out-of-range indexes
// are a no-op: the file is already gone from the caller's point of view.
func (s *Session) RemoveFile(index int) {
	if index < 0 || index >= len(s.files) {
		return
	}
	s.files = append(s.files[:index], s.files[index+1:]...)
}

// TotalFee returns the fee shown on the review step.
func (s *Session) TotalFee() int {
	return cases.FeeFor(s.category)
}

// createParams snapshots the session for case construction. Confirmation is
// only permitted from the review step with a complete session.
func (s *Session) createParams() (cases.CreateParams, error) {
	if s.step != StepReview {
		return cases.CreateParams{}, ErrNotAtReview
	}
	if s.category == "" {
		return cases.CreateParams{}, ErrCategoryRequired
	}
	if len(s.files) == 0 {
		return cases.CreateParams{}, ErrUploadRequired
	}

	documents := make([]string, len(s.files))
	for i, f := range s.files {
		documents[i] = f.Name
	}
	return cases.CreateParams{Category: s.category, Documents: documents}, nil
}
