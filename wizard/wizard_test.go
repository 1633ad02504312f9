package wizard

import (
	"errors"
	"testing"

	"attestflow/cases"
)

func TestNext_GatesCategorySelection(t *testing.T) {
	s := newSession("w1")

	err := s.Next()
	if !errors.Is(err, ErrCategoryRequired) {
		t.Fatalf("expected ErrCategoryRequired, got %v", err)
	}
	if s.Step() != StepCategory {
		t.Fatalf("gate failure must not move the step, got %d", s.Step())
	}

	if err := s.SelectCategory(cases.CategoryAcademic); err != nil {
		t.Fatalf("select category: %v", err)
	}
	if err := s.Next(); err != nil {
		t.Fatalf("next: %v", err)
	}
	if s.Step() != StepRequirements {
		t.Fatalf("expected step 2, got %d", s.Step())
	}
}

func TestNext_GatesUpload(t *testing.T) {
	s := newSession("w1")
	_ = s.SelectCategory(cases.CategoryMedical)
	_ = s.Next() // -> requirements
	_ = s.Next() // -> upload, always passable

	if err := s.Next(); !errors.Is(err, ErrUploadRequired) {
		t.Fatalf("expected ErrUploadRequired, got %v", err)
	}
	if s.Step() != StepUpload {
		t.Fatalf("gate failure must not move the step, got %d", s.Step())
	}

	s.AddFiles(FileUpload{Name: "report.pdf", ContentType: "application/pdf", Size: 1024})
	if err := s.Next(); err != nil {
		t.Fatalf("next: %v", err)
	}
	if s.Step() != StepReview {
		t.Fatalf("expected step 4, got %d", s.Step())
	}
}

func TestStepBounds(t *testing.T) {
	s := newSession("w1")

	s.Previous()
	if s.Step() != StepCategory {
		t.Fatalf("previous below step 1 must be a no-op, got %d", s.Step())
	}

	_ = s.SelectCategory(cases.CategoryMedical)
	s.AddFiles(FileUpload{Name: "scan.png", ContentType: "image/png", Size: 10})
	for i := 0; i < 10; i++ {
		if err := s.Next(); err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
	}
	if s.Step() != StepReview {
		t.Fatalf("next above step 4 must be a no-op, got %d", s.Step())
	}
}

func TestPrevious_NeverRevalidates(t *testing.T) {
	s := newSession("w1")
	_ = s.SelectCategory(cases.CategoryAcademic)
	_ = s.Next()
	_ = s.Next()
	s.AddFiles(FileUpload{Name: "degree.pdf", ContentType: "application/pdf", Size: 2048})
	_ = s.Next()

	// Walk all the way back; entered data survives.
	s.Previous()
	s.Previous()
	s.Previous()
	if s.Step() != StepCategory {
		t.Fatalf("expected step 1, got %d", s.Step())
	}
	if s.Category() != cases.CategoryAcademic {
		t.Fatal("category lost on backward navigation")
	}
	if len(s.Files()) != 1 {
		t.Fatal("files lost on backward navigation")
	}
}

func TestAcceptFile(t *testing.T) {
	fiveMiB := int64(5 * 1024 * 1024)
	fifteenMiB := int64(15 * 1024 * 1024)

	if reason := AcceptFile(FileUpload{Name: "a.pdf", ContentType: "application/pdf", Size: fiveMiB}); reason != nil {
		t.Fatalf("5 MiB PDF must be accepted, got %v", reason)
	}
	if reason := AcceptFile(FileUpload{Name: "b.pdf", ContentType: "application/pdf", Size: fifteenMiB}); reason != ErrFileSize {
		t.Fatalf("15 MiB PDF must be rejected for size, got %v", reason)
	}
	if reason := AcceptFile(FileUpload{Name: "c.txt", ContentType: "text/plain", Size: 10}); reason != ErrFileType {
		t.Fatalf("txt must be rejected for kind, got %v", reason)
	}
	if reason := AcceptFile(FileUpload{Name: "d.jpg", ContentType: "image/jpeg", Size: MaxFileSize}); reason != nil {
		t.Fatalf("image at the exact limit must be accepted, got %v", reason)
	}
}

func TestAddFiles_AccumulatesAcrossUploads(t *testing.T) {
	s := newSession("w1")

	accepted, rejected := s.AddFiles(
		FileUpload{Name: "degree.pdf", ContentType: "application/pdf", Size: 100},
		FileUpload{Name: "huge.pdf", ContentType: "application/pdf", Size: MaxFileSize + 1},
		FileUpload{Name: "notes.txt", ContentType: "text/plain", Size: 100},
	)
	if len(accepted) != 1 || accepted[0].Name != "degree.pdf" {
		t.Fatalf("unexpected accepted set: %+v", accepted)
	}
	if len(rejected) != 2 {
		t.Fatalf("expected 2 rejections, got %d", len(rejected))
	}
	if rejected[0].Reason != ErrFileSize || rejected[1].Reason != ErrFileType {
		t.Fatalf("distinct reason per predicate expected, got %+v", rejected)
	}

	// Second upload is additive, not a replacement.
	s.AddFiles(FileUpload{Name: "transcript.pdf", ContentType: "application/pdf", Size: 100})
	files := s.Files()
	if len(files) != 2 {
		t.Fatalf("expected 2 accumulated files, got %d", len(files))
	}
	if files[0].Name != "degree.pdf" || files[1].Name != "transcript.pdf" {
		t.Fatalf("unexpected accumulation order: %+v", files)
	}
}

func TestRemoveFile(t *testing.T) {
	s := newSession("w1")
	s.AddFiles(
		FileUpload{Name: "one.pdf", ContentType: "application/pdf", Size: 1},
		FileUpload{Name: "two.pdf", ContentType: "application/pdf", Size: 2},
	)

	s.RemoveFile(0)
	files := s.Files()
	if len(files) != 1 || files[0].Name != "two.pdf" {
		t.Fatalf("unexpected files after removal: %+v", files)
	}

	// Out-of-range removals are no-ops.
	s.RemoveFile(5)
	s.RemoveFile(-1)
	if len(s.Files()) != 1 {
		t.Fatal("out-of-range removal must not change the set")
	}
}

func TestRequirements(t *testing.T) {
	academic := Requirements(cases.CategoryAcademic)
	medical := Requirements(cases.CategoryMedical)

	if len(academic) != len(medical)+1 {
		t.Fatalf("academic must carry one extra requirement: %d vs %d", len(academic), len(medical))
	}
	if academic[len(academic)-1] != "requirements.authenticate" {
		t.Fatalf("unexpected academic extra: %v", academic)
	}
}
