package main

import (
	"attestflow/assistant"
	"attestflow/cases"
	"attestflow/faq"
	"attestflow/wizard"
)

type errorResponse struct {
	Error string `json:"error"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	FullName string `json:"full_name,omitempty"`
}

type casesResponse struct {
	Cases []cases.Case `json:"cases"`
	Total int          `json:"total"`
}

type advanceRequest struct {
	Description string `json:"description"`
}

type categoryRequest struct {
	Category string `json:"category"`
}

type wizardResponse struct {
	SessionID string              `json:"session_id"`
	Step      int                 `json:"step"`
	Category  string              `json:"category,omitempty"`
	Files     []wizard.FileUpload `json:"files"`
	TotalFee  int                 `json:"total_fee"`
}

type requirementsResponse struct {
	Requirements []string `json:"requirements"`
	Fee          int      `json:"fee"`
}

type addFilesRequest struct {
	Files []wizard.FileUpload `json:"files"`
}

type rejectionView struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

type addFilesResponse struct {
	Accepted []wizard.FileUpload `json:"accepted"`
	Rejected []rejectionView     `json:"rejected"`
	Files    []wizard.FileUpload `json:"files"`
}

type faqsResponse struct {
	FAQs []faq.FAQ `json:"faqs"`
}

type chatResponse struct {
	SessionID string              `json:"session_id"`
	Messages  []assistant.Message `json:"messages"`
}

type chatSendRequest struct {
	Content string `json:"content"`
}
