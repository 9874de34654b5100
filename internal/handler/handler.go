package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/trustners-ux/trustner-platform-sub000/internal/engine"
	"github.com/trustners-ux/trustner-platform-sub000/internal/integrations/ratefeed"
	"github.com/trustners-ux/trustner-platform-sub000/internal/models"
	"github.com/trustners-ux/trustner-platform-sub000/internal/planner"
	"github.com/trustners-ux/trustner-platform-sub000/internal/service"
)

// maxBody caps request bodies
const maxBody = 1 << 20

// Service is the business API the handlers call
type Service interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	QuickCheck(in engine.QuickCheckInput) (engine.QuickCheckResult, error)
	CompareTax(gross int64, d models.TaxInputs) (models.TaxComparison, error)
	BenchmarkRate() (ratefeed.Rate, bool)
	CreatePlan(ctx context.Context) (*models.Plan, error)
	GetPlan(ctx context.Context, planID string) (*models.Plan, error)
	SaveStep(ctx context.Context, planID, step string, payload json.RawMessage) (*models.Plan, error)
	GeneratePlan(ctx context.Context, planID string) (*models.AnalysisResult, error)
	GetAnalysis(ctx context.Context, planID string) (*models.AnalysisResult, error)
	EmailReport(ctx context.Context, planID string) error
}

type Handler struct {
	svc Service
	log *logrus.Logger
}

func NewHandler(svc Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

type credentials struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type taxRequest struct {
	GrossIncome int64            `json:"gross_income"`
	Deductions  models.TaxInputs `json:"deductions"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return false
	}
	return true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var verr *planner.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": verr.Error(), "problems": verr.Problems})
	case errors.Is(err, service.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": service.ErrInvalidCredentials.Error()})
	case errors.Is(err, service.ErrForbidden):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
	case errors.Is(err, service.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, service.ErrConflict), errors.Is(err, service.ErrPlanNotFinalized):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		h.log.WithFields(logrus.Fields{"method": r.Method, "path": r.URL.Path}).Errorf("Request failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if !h.decode(w, r, &req) {
		return
	}
	user, err := h.svc.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if !h.decode(w, r, &req) {
		return
	}
	token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// HealthCheck scores the quick questionnaire without an account
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	var in engine.QuickCheckInput
	if !h.decode(w, r, &in) {
		return
	}
	result, err := h.svc.QuickCheck(in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// CompareTax returns old and new regime tax for a gross income
func (h *Handler) CompareTax(w http.ResponseWriter, r *http.Request) {
	var req taxRequest
	if !h.decode(w, r, &req) {
		return
	}
	cmp, err := h.svc.CompareTax(req.GrossIncome, req.Deductions)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cmp)
}

// BenchmarkRate returns the cached benchmark yield
func (h *Handler) BenchmarkRate(w http.ResponseWriter, r *http.Request) {
	rate, ok := h.svc.BenchmarkRate()
	if !ok {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "benchmark rate not available yet"})
		return
	}
	writeJSON(w, http.StatusOK, rate)
}

// CreatePlan starts a new draft plan
func (h *Handler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	plan, err := h.svc.CreatePlan(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, plan)
}

// GetPlan returns a plan with its step status
func (h *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := h.svc.GetPlan(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// SaveStep stores one wizard step
func (h *Handler) SaveStep(w http.ResponseWriter, r *http.Request) {
	var payload json.RawMessage
	if !h.decode(w, r, &payload) {
		return
	}
	vars := mux.Vars(r)
	plan, err := h.svc.SaveStep(r.Context(), vars["id"], vars["step"], payload)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// GeneratePlan finalizes the plan and returns the analysis
func (h *Handler) GeneratePlan(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GeneratePlan(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetAnalysis returns the latest analysis of a plan
func (h *Handler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetAnalysis(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// EmailReport mails the analysis summary to the plan owner
func (h *Handler) EmailReport(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.EmailReport(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "sent"})
}
