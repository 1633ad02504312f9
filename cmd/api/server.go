package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"attestflow/assistant"
	"attestflow/auth"
	"attestflow/cases"
	"attestflow/faq"
	"attestflow/i18n"
	"attestflow/metrics"
	"attestflow/wizard"
)

// Server wires the domain services to the HTTP surface.
type Server struct {
	cases     *cases.Service
	wizard    *wizard.Manager
	auth      *auth.Service
	assistant *assistant.Service
	translate i18n.Translator
	metrics   *metrics.Metrics
	log       *zap.Logger
}

// Routes builds the API router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)
		r.Post("/logout", s.handleLogout)
		r.Get("/profile", s.handleProfile)

		r.Get("/cases", s.handleListCases)
		r.Get("/cases/{id}", s.handleGetCase)
		r.Post("/cases/{id}/advance", s.handleAdvanceCase)
		r.Get("/dashboard/summary", s.handleSummary)

		r.Post("/wizard", s.handleStartWizard)
		r.Route("/wizard/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetWizard)
			r.Delete("/", s.handleDiscardWizard)
			r.Post("/category", s.handleSelectCategory)
			r.Post("/next", s.handleWizardNext)
			r.Post("/previous", s.handleWizardPrevious)
			r.Get("/requirements", s.handleRequirements)
			r.Post("/files", s.handleAddFiles)
			r.Delete("/files/{index}", s.handleRemoveFile)
			r.Post("/confirm", s.handleConfirmWizard)
		})

		r.Get("/faqs", s.handleFAQs)

		r.Post("/assistant/sessions", s.handleStartChat)
		r.Get("/assistant/sessions/{id}/messages", s.handleChatMessages)
		r.Post("/assistant/sessions/{id}/messages", s.handleChatSend)
		r.Delete("/assistant/sessions/{id}", s.handleCloseChat)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- auth ---

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.auth.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrWeakPassword):
			s.writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, auth.ErrDuplicateUsername):
			s.writeError(w, http.StatusConflict, err.Error())
		default:
			s.internalError(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"username": user.Username})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.auth.Login(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			s.writeError(w, http.StatusUnauthorized, "invalid credentials")
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			// Client went away during the simulated delay; nothing was written.
			return
		default:
			s.internalError(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token:    result.Token,
		Username: result.User.Username,
		FullName: result.User.FullName,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.auth.Logout(r.Context()); err != nil {
		s.internalError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	current, err := s.auth.Current(r.Context())
	if err != nil {
		if errors.Is(err, auth.ErrNotLoggedIn) {
			s.writeError(w, http.StatusUnauthorized, "not logged in")
			return
		}
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, current)
}

// --- cases ---

func (s *Server) handleListCases(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	statusFilter := r.URL.Query().Get("status")
	if statusFilter == "" {
		statusFilter = cases.FilterAll
	}
	if statusFilter != cases.FilterAll && !cases.Status(statusFilter).Valid() {
		s.writeError(w, http.StatusBadRequest, "unknown status filter")
		return
	}

	matched, err := s.cases.Search(r.Context(), query, statusFilter)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, casesResponse{Cases: matched, Total: len(matched)})
}

func (s *Server) handleGetCase(w http.ResponseWriter, r *http.Request) {
	c, err := s.cases.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, cases.ErrCaseNotFound) {
			s.writeError(w, http.StatusNotFound, "case not found")
			return
		}
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleAdvanceCase(w http.ResponseWriter, r *http.Request) {
	var req advanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := s.cases.Advance(r.Context(), chi.URLParam(r, "id"), req.Description)
	if err != nil {
		switch {
		case errors.Is(err, cases.ErrCaseNotFound):
			s.writeError(w, http.StatusNotFound, "case not found")
		case errors.Is(err, cases.ErrCaseCompleted):
			s.writeError(w, http.StatusConflict, "case already completed")
		default:
			s.internalError(w, r, err)
		}
		return
	}

	s.metrics.IncrementTransition(string(c.Status))
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.cases.Summarize(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// --- wizard ---

func (s *Server) handleStartWizard(w http.ResponseWriter, _ *http.Request) {
	session := s.wizard.Start()
	writeJSON(w, http.StatusCreated, s.wizardView(session))
}

func (s *Server) handleGetWizard(w http.ResponseWriter, r *http.Request) {
	session, err := s.wizard.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, http.StatusNotFound, "wizard session not found")
		return
	}
	writeJSON(w, http.StatusOK, s.wizardView(session))
}

func (s *Server) handleDiscardWizard(w http.ResponseWriter, r *http.Request) {
	s.wizard.Discard(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSelectCategory(w http.ResponseWriter, r *http.Request) {
	session, err := s.wizard.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, http.StatusNotFound, "wizard session not found")
		return
	}

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := session.SelectCategory(cases.Category(req.Category)); err != nil {
		s.writeValidationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.wizardView(session))
}

func (s *Server) handleWizardNext(w http.ResponseWriter, r *http.Request) {
	session, err := s.wizard.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, http.StatusNotFound, "wizard session not found")
		return
	}

	if err := session.Next(); err != nil {
		s.writeValidationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.wizardView(session))
}

func (s *Server) handleWizardPrevious(w http.ResponseWriter, r *http.Request) {
	session, err := s.wizard.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, http.StatusNotFound, "wizard session not found")
		return
	}

	session.Previous()
	writeJSON(w, http.StatusOK, s.wizardView(session))
}

func (s *Server) handleRequirements(w http.ResponseWriter, r *http.Request) {
	session, err := s.wizard.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, http.StatusNotFound, "wizard session not found")
		return
	}

	keys := wizard.Requirements(session.Category())
	lines := make([]string, len(keys))
	for i, key := range keys {
		lines[i] = s.translate(key)
	}
	writeJSON(w, http.StatusOK, requirementsResponse{
		Requirements: lines,
		Fee:          session.TotalFee(),
	})
}

func (s *Server) handleAddFiles(w http.ResponseWriter, r *http.Request) {
	session, err := s.wizard.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, http.StatusNotFound, "wizard session not found")
		return
	}

	var req addFilesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	accepted, rejected := session.AddFiles(req.Files...)

	rejections := make([]rejectionView, len(rejected))
	for i, rej := range rejected {
		s.metrics.IncrementRejection(rej.Reason.Key)
		rejections[i] = rejectionView{
			Name:    rej.Name,
			Message: s.translate(rej.Reason.Key),
		}
	}

	writeJSON(w, http.StatusOK, addFilesResponse{
		Accepted: accepted,
		Rejected: rejections,
		Files:    session.Files(),
	})
}

func (s *Server) handleRemoveFile(w http.ResponseWriter, r *http.Request) {
	session, err := s.wizard.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, http.StatusNotFound, "wizard session not found")
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid file index")
		return
	}

	session.RemoveFile(index)
	writeJSON(w, http.StatusOK, s.wizardView(session))
}

func (s *Server) handleConfirmWizard(w http.ResponseWriter, r *http.Request) {
	created, err := s.wizard.Confirm(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		var verr *wizard.ValidationError
		switch {
		case errors.Is(err, wizard.ErrSessionNotFound):
			s.writeError(w, http.StatusNotFound, "wizard session not found")
		case errors.As(err, &verr):
			s.writeValidationError(w, err)
		default:
			s.internalError(w, r, err)
		}
		return
	}

	s.metrics.IncrementSubmitted(string(created.Category))
	writeJSON(w, http.StatusCreated, created)
}

// --- faq ---

func (s *Server) handleFAQs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	writeJSON(w, http.StatusOK, faqsResponse{FAQs: faq.Search(query)})
}

// --- assistant ---

func (s *Server) handleStartChat(w http.ResponseWriter, _ *http.Request) {
	sessionID := s.assistant.Start()
	messages, err := s.assistant.Messages(sessionID)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, chatResponse{SessionID: sessionID, Messages: messages})
}

func (s *Server) handleChatMessages(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	messages, err := s.assistant.Messages(sessionID)
	if err != nil {
		s.writeError(w, http.StatusNotFound, "chat session not found")
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{SessionID: sessionID, Messages: messages})
}

func (s *Server) handleChatSend(w http.ResponseWriter, r *http.Request) {
	var req chatSendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	message, err := s.assistant.Send(chi.URLParam(r, "id"), req.Content)
	if err != nil {
		switch {
		case errors.Is(err, assistant.ErrSessionNotFound):
			s.writeError(w, http.StatusNotFound, "chat session not found")
		case errors.Is(err, assistant.ErrEmptyMessage):
			s.writeError(w, http.StatusBadRequest, "message must not be empty")
		default:
			s.internalError(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusAccepted, message)
}

func (s *Server) handleCloseChat(w http.ResponseWriter, r *http.Request) {
	s.assistant.Close(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// --- helpers ---

func (s *Server) wizardView(session *wizard.Session) wizardResponse {
	return wizardResponse{
		SessionID: session.ID,
		Step:      session.Step(),
		Category:  string(session.Category()),
		Files:     session.Files(),
		TotalFee:  session.TotalFee(),
	}
}

func (s *Server) writeValidationError(w http.ResponseWriter, err error) {
	var verr *wizard.ValidationError
	if errors.As(err, &verr) {
		s.metrics.IncrementRejection(verr.Key)
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: s.translate(verr.Key)})
		return
	}
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Error("request failed",
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
