package transport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mlevin/applytrack/internal/domain/application"
	"github.com/mlevin/applytrack/internal/domain/board"
	"github.com/mlevin/applytrack/internal/domain/user"
)

// IdentityService handles accounts and token resolution.
type IdentityService interface {
	OwnerResolver
	SignUp(ctx context.Context, email, password string) (*user.User, string, error)
	LogIn(ctx context.Context, email, password string) (string, error)
}

// ApplicationService handles application CRUD.
type ApplicationService interface {
	Create(ctx context.Context, ownerID string, req application.CreateRequest) (*application.Application, error)
	List(ctx context.Context, ownerID string) ([]application.Application, error)
	Update(ctx context.Context, ownerID, id string, patch application.FieldPatch) (*application.Application, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// BoardService moves applications on the board.
type BoardService interface {
	Reposition(ctx context.Context, ownerID string, req board.RepositionRequest) (*application.Application, error)
}

// Server wires HTTP handlers.
type Server struct {
	identity IdentityService
	apps     ApplicationService
	board    BoardService
	logger   *slog.Logger
}

// NewServer creates the HTTP router with auth middleware on the
// application routes.
func NewServer(identity IdentityService, apps ApplicationService, boardSvc BoardService, logger *slog.Logger) *chi.Mux {
	srv := &Server{identity: identity, apps: apps, board: boardSvc, logger: logger}

	r := chi.NewRouter()
	r.Get("/health", srv.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/signup", srv.handleSignUp)
		r.Post("/auth/login", srv.handleLogIn)

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(identity))
			r.Get("/applications", srv.handleList)
			r.Post("/applications", srv.handleCreate)
			r.Put("/applications/{id}", srv.handleUpdate)
			r.Delete("/applications/{id}", srv.handleDelete)
			r.Patch("/applications/reorder", srv.handleReorder)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, token, err := s.identity.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"message": "User created successfully",
		"userId":  u.ID,
		"token":   token,
	})
}

func (s *Server) handleLogIn(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := s.identity.LogIn(r.Context(), req.Email, req.Password)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Login successful",
		"token":   token,
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := OwnerFromContext(r.Context())

	apps, err := s.apps.List(r.Context(), ownerID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if apps == nil {
		apps = []application.Application{}
	}
	writeJSON(w, http.StatusOK, apps)
}

type applicationPayload struct {
	CompanyName   *string `json:"company_name"`
	JobTitle      *string `json:"job_title"`
	Status        *string `json:"status"`
	DateApplied   *string `json:"date_applied"`
	JobPostingURL *string `json:"job_posting_url"`
	SalaryNotes   *string `json:"salary_notes"`
	PrivateNotes  *string `json:"private_notes"`
	ContactName   *string `json:"contact_name"`
	ContactEmail  *string `json:"contact_email"`
	ReminderDate  *string `json:"reminder_date"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := OwnerFromContext(r.Context())

	var payload applicationPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.CompanyName == nil || payload.JobTitle == nil {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	req := application.CreateRequest{
		CompanyName:   *payload.CompanyName,
		JobTitle:      *payload.JobTitle,
		JobPostingURL: payload.JobPostingURL,
		SalaryNotes:   payload.SalaryNotes,
		PrivateNotes:  payload.PrivateNotes,
		ContactName:   payload.ContactName,
		ContactEmail:  payload.ContactEmail,
	}
	if payload.Status != nil {
		req.Status = application.Status(*payload.Status)
	}

	var err error
	if req.DateApplied, err = parseDate(payload.DateApplied); err != nil {
		writeError(w, http.StatusBadRequest, "invalid date_applied")
		return
	}
	if req.ReminderDate, err = parseDate(payload.ReminderDate); err != nil {
		writeError(w, http.StatusBadRequest, "invalid reminder_date")
		return
	}

	app, err := s.apps.Create(r.Context(), ownerID, req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, app)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := OwnerFromContext(r.Context())
	id := chi.URLParam(r, "id")

	var payload applicationPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	patch := application.FieldPatch{
		CompanyName:   payload.CompanyName,
		JobTitle:      payload.JobTitle,
		JobPostingURL: payload.JobPostingURL,
		SalaryNotes:   payload.SalaryNotes,
		PrivateNotes:  payload.PrivateNotes,
		ContactName:   payload.ContactName,
		ContactEmail:  payload.ContactEmail,
	}

	var err error
	if patch.DateApplied, err = parseDate(payload.DateApplied); err != nil {
		writeError(w, http.StatusBadRequest, "invalid date_applied")
		return
	}
	if patch.ReminderDate, err = parseDate(payload.ReminderDate); err != nil {
		writeError(w, http.StatusBadRequest, "invalid reminder_date")
		return
	}

	app, err := s.apps.Update(r.Context(), ownerID, id, patch)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := OwnerFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := s.apps.Delete(r.Context(), ownerID, id); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Application deleted"})
}

type reorderRequest struct {
	ApplicationID *string `json:"applicationId"`
	NewStatus     *string `json:"newStatus"`
	NewIndex      *int    `json:"newIndex"`
}

func (s *Server) handleReorder(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := OwnerFromContext(r.Context())

	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	// All three fields are required; null and absent are both rejected
	// before any store read.
	if req.ApplicationID == nil || req.NewStatus == nil || req.NewIndex == nil {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	_, err := s.board.Reposition(r.Context(), ownerID, board.RepositionRequest{
		ApplicationID: *req.ApplicationID,
		NewStatus:     application.Status(*req.NewStatus),
		NewIndex:      *req.NewIndex,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Order updated successfully"})
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, message := statusForError(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	writeError(w, status, message)
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, *s); err == nil {
			return &t, nil
		}
	}
	return nil, &time.ParseError{Layout: time.RFC3339, Value: *s}
}
