package cases

import "time"

// Category is the closed set of attestation categories.
type Category string

const (
	CategoryAcademic Category = "academic"
	CategoryMedical  Category = "medical"
)

// FlatFee is the current single fee tier in QAR. Both categories resolve to
// it; see FeeFor.
const FlatFee = 100

// Case is one attestation request tracked from submission to completion.
// JSON names match the persisted layout shared with the portal frontend.
type Case struct {
	ID        string          `json:"id"`
	Category  Category        `json:"category"`
	Status    Status          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	Documents []string        `json:"documents"`
	Fees      int             `json:"fees"`
	Timeline  []TimelineEvent `json:"timeline"`
}

// TimelineEvent is one historical entry in a case's processing. Status here
// is the human-readable transition label, intentionally decoupled from the
// machine-readable Case.Status enum.
type TimelineEvent struct {
	Date        time.Time `json:"date"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
}

// ValidCategory reports whether the category belongs to the closed set.
func ValidCategory(category Category) bool {
	switch category {
	case CategoryAcademic, CategoryMedical:
		return true
	default:
		return false
	}
}

// FeeFor resolves the fee for a category. Both categories currently share
// the flat tier.
func FeeFor(category Category) int {
	return FlatFee
}
