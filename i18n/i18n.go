package i18n

// Translator resolves a message key to display text. The core never branches
// on the returned string; keys are the contract, text is presentation.
type Translator func(key string) string

// english is the default catalog. Keys mirror the portal's message namespace.
var english = map[string]string{
	"attestation.selectionRequired": "Please select a document category",
	"attestation.uploadRequired":    "Please upload at least one document",
	"attestation.invalidFileType":   "Only PDF and images are accepted",
	"attestation.fileTooLarge":      "Max 10MB per file",
	"attestation.submitted":         "Application submitted successfully",
	"attestation.academic":          "Academic Certificates",
	"attestation.medical":           "Medical Certificates",

	"requirements.originalDoc":  "Original document or certified copy",
	"requirements.validID":      "Valid QID or passport",
	"requirements.authenticate": "Degree must be authenticated by issuing country if from abroad",

	"cases.submitted":      "Submitted",
	"cases.underReview":    "Under Review",
	"cases.paymentPending": "Payment Pending",
	"cases.readyForPickup": "Ready for Pickup",
	"cases.completed":      "Completed",

	"assistant.greeting": "Hello! I'm your attestation assistant. I can help you with eligibility requirements, required documents, fee information, step-by-step guidance, and common questions. How can I assist you today?",
	"assistant.reply":    "I understand you need help with document attestation. To provide accurate guidance, could you please specify the type of document, where it was issued, and your intended use? This will help me provide you with the exact requirements and fees.",
}

// Default resolves keys against the built-in English catalog. Unknown keys
// are returned verbatim so missing translations stay visible instead of
// silently rendering empty text.
func Default() Translator {
	return func(key string) string {
		if text, ok := english[key]; ok {
			return text
		}
		return key
	}
}
