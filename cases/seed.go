package cases

import "time"

// SeedCases returns the built-in example set used to bootstrap a store whose
// cases document is absent or unreadable. Callers receive a fresh copy each
// time; mutating the result never affects future bootstraps.
func SeedCases() []Case {
	return []Case{
		{
			ID:        "ATT-2025-001234",
			Category:  CategoryAcademic,
			Status:    StatusReview,
			CreatedAt: time.Date(2025, 10, 20, 10, 30, 0, 0, time.UTC),
			UpdatedAt: time.Date(2025, 10, 21, 14, 22, 0, 0, time.UTC),
			Documents: []string{"Degree_Certificate.pdf", "Transcript.pdf"},
			Fees:      FlatFee,
			Timeline: []TimelineEvent{
				{
					Date:        time.Date(2025, 10, 20, 10, 30, 0, 0, time.UTC),
					Status:      "Submitted",
					Description: "Application submitted successfully",
				},
				{
					Date:        time.Date(2025, 10, 21, 14, 22, 0, 0, time.UTC),
					Status:      "Under Review",
					Description: "Documents are being verified",
				},
			},
		},
		{
			ID:        "ATT-2025-001189",
			Category:  CategoryMedical,
			Status:    StatusPayment,
			CreatedAt: time.Date(2025, 10, 15, 9, 15, 0, 0, time.UTC),
			UpdatedAt: time.Date(2025, 10, 19, 11, 45, 0, 0, time.UTC),
			Documents: []string{"Medical_Report.pdf"},
			Fees:      FlatFee,
			Timeline: []TimelineEvent{
				{
					Date:        time.Date(2025, 10, 15, 9, 15, 0, 0, time.UTC),
					Status:      "Submitted",
					Description: "Application submitted successfully",
				},
				{
					Date:        time.Date(2025, 10, 16, 13, 20, 0, 0, time.UTC),
					Status:      "Under Review",
					Description: "Documents verified",
				},
				{
					Date:        time.Date(2025, 10, 19, 11, 45, 0, 0, time.UTC),
					Status:      "Payment Pending",
					Description: "Please complete payment to proceed",
				},
			},
		},
		{
			ID:        "ATT-2025-000987",
			Category:  CategoryAcademic,
			Status:    StatusCompleted,
			CreatedAt: time.Date(2025, 10, 1, 8, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2025, 10, 10, 16, 30, 0, 0, time.UTC),
			Documents: []string{"Masters_Degree.pdf"},
			Fees:      FlatFee,
			Timeline: []TimelineEvent{
				{
					Date:        time.Date(2025, 10, 1, 8, 0, 0, 0, time.UTC),
					Status:      "Submitted",
					Description: "Application submitted successfully",
				},
				{
					Date:        time.Date(2025, 10, 2, 10, 15, 0, 0, time.UTC),
					Status:      "Under Review",
					Description: "Documents verified",
				},
				{
					Date:        time.Date(2025, 10, 5, 9, 30, 0, 0, time.UTC),
					Status:      "Payment Completed",
					Description: "Payment received",
				},
				{
					Date:        time.Date(2025, 10, 8, 14, 0, 0, 0, time.UTC),
					Status:      "Ready for Pickup",
					Description: "Available at MOFA or Q-Post delivery",
				},
				{
					Date:        time.Date(2025, 10, 10, 16, 30, 0, 0, time.UTC),
					Status:      "Completed",
					Description: "Document collected",
				},
			},
		},
	}
}
