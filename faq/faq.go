// Package faq serves the portal's static FAQ catalog.
package faq

import "strings"

// FAQ is one question/answer entry.
type FAQ struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
}

var catalog = []FAQ{
	{
		ID:       "faq-1",
		Question: "What file formats are accepted for upload?",
		Answer:   "We accept PDF and image files (JPG, PNG). Each file must not exceed 10 MB in size.",
		Category: "general",
	},
	{
		ID:       "faq-2",
		Question: "How much does academic certificate attestation cost?",
		Answer:   "Academic certificate attestation costs 100 QAR per document. Digital attestation service is also available for 100 QAR.",
		Category: "fees",
	},
	{
		ID:       "faq-3",
		Question: "How much does medical certificate attestation cost?",
		Answer:   "Medical certificate attestation costs 100 QAR per document.",
		Category: "fees",
	},
	{
		ID:       "faq-4",
		Question: "How long does the attestation process take?",
		Answer:   "The standard processing time is 1 working day after submission and payment.",
		Category: "processing",
	},
	{
		ID:       "faq-5",
		Question: "What documents do I need for academic attestation?",
		Answer:   "You need the original academic certificate or an officially certified copy. For degrees from outside Qatar, additional authentication may be required.",
		Category: "requirements",
	},
	{
		ID:       "faq-6",
		Question: "Can I submit multiple documents at once?",
		Answer:   "Each document requires a separate attestation request and fee. However, you can submit multiple files for the same certificate (e.g., degree and transcript together).",
		Category: "general",
	},
	{
		ID:       "faq-7",
		Question: "How will I receive my attested documents?",
		Answer:   "You can collect your documents from MOFA or choose delivery via Q-Post service.",
		Category: "delivery",
	},
	{
		ID:       "faq-8",
		Question: "What is digital attestation?",
		Answer:   "Digital attestation is an electronic version of document attestation available for 100 QAR. It provides a secure digital certificate that can be verified online.",
		Category: "general",
	},
}

// All returns the full catalog.
func All() []FAQ {
	out := make([]FAQ, len(catalog))
	copy(out, catalog)
	return out
}

// Search returns entries whose question or answer contains the query as a
// case-insensitive substring. An empty query matches everything.
func Search(query string) []FAQ {
	needle := strings.ToLower(query)
	matched := []FAQ{}
	for _, entry := range catalog {
		if strings.Contains(strings.ToLower(entry.Question), needle) ||
			strings.Contains(strings.ToLower(entry.Answer), needle) {
			matched = append(matched, entry)
		}
	}
	return matched
}
