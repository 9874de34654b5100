package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/trustners-ux/trustner-platform-sub000/internal/engine"
	"github.com/trustners-ux/trustner-platform-sub000/internal/models"
	"github.com/trustners-ux/trustner-platform-sub000/internal/planner"
	"github.com/trustners-ux/trustner-platform-sub000/internal/utils"
)

// CreatePlan starts an empty draft plan for the authenticated user
func (s *Service) CreatePlan(ctx context.Context) (*models.Plan, error) {
	userID, err := UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	plan := &models.Plan{
		ID:     uuid.NewString(),
		UserID: userID,
		Status: models.PlanStatusDraft,
	}
	if err := s.sealDraft(plan, planner.NewDraft()); err != nil {
		return nil, err
	}
	if err := s.store.CreatePlan(ctx, plan); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"user_id": userID, "plan_id": plan.ID}).Info("Plan created")
	return plan, nil
}

// GetPlan returns a plan owned by the authenticated user
func (s *Service) GetPlan(ctx context.Context, planID string) (*models.Plan, error) {
	userID, err := UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(planID); err != nil {
		return nil, fmt.Errorf("plan %q: %w", planID, ErrNotFound)
	}
	plan, err := s.store.FindPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan.UserID != userID {
		s.log.WithFields(logrus.Fields{"user_id": userID, "plan_id": planID}).Warn("Plan access denied")
		return nil, fmt.Errorf("plan %s: %w", planID, ErrForbidden)
	}
	return plan, nil
}

// SaveStep validates and stores one wizard step. Editing a generated plan
// is allowed; the stored analysis stays until the plan is regenerated.
func (s *Service) SaveStep(ctx context.Context, planID, stepName string, payload json.RawMessage) (*models.Plan, error) {
	step, ok := planner.ParseStep(stepName)
	if !ok {
		return nil, fmt.Errorf("unknown step %q: %w", stepName, ErrInvalidInput)
	}
	plan, err := s.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	draft, err := s.openDraft(plan)
	if err != nil {
		return nil, err
	}
	if err := draft.Apply(step, payload); err != nil {
		return nil, err
	}
	if err := s.sealDraft(plan, draft); err != nil {
		return nil, err
	}
	if err := s.store.UpdatePlanDraft(ctx, plan); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"plan_id": plan.ID, "step": step}).Debug("Plan step saved")
	return plan, nil
}

// GeneratePlan finalizes the draft and runs the full analysis
func (s *Service) GeneratePlan(ctx context.Context, planID string) (*models.AnalysisResult, error) {
	plan, err := s.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	draft, err := s.openDraft(plan)
	if err != nil {
		return nil, err
	}

	now := s.now()
	profile, err := draft.Finalize(now.Year())
	if err != nil {
		return nil, err
	}
	if profile.Personal.CityTier == "" {
		profile.Personal.CityTier = s.config.CityTierDefault
	}

	as := engine.Assumptions{AsOf: now}
	if rate, ok := s.BenchmarkRate(); ok {
		as.DebtReturn = rate.Value
	}
	result := engine.Analyze(profile, s.engine, as)
	result.PlanID = plan.ID

	plan.Profile = &profile
	if err := s.store.SaveAnalysis(ctx, plan, &result); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"plan_id":      plan.ID,
		"score":        result.OverallScore,
		"label":        result.Label,
		"action_items": len(result.ActionItems),
	}).Info("Plan generated")
	return &result, nil
}

// GetAnalysis returns the latest analysis of a generated plan
func (s *Service) GetAnalysis(ctx context.Context, planID string) (*models.AnalysisResult, error) {
	plan, err := s.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan.Status != models.PlanStatusGenerated {
		return nil, fmt.Errorf("plan %s: %w", planID, ErrPlanNotFinalized)
	}
	return s.store.LatestAnalysis(ctx, plan.ID)
}

// EmailReport sends the latest analysis summary to the plan owner
func (s *Service) EmailReport(ctx context.Context, planID string) error {
	result, err := s.GetAnalysis(ctx, planID)
	if err != nil {
		return err
	}
	userID, _ := UserIDFromContext(ctx)
	user, err := s.store.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	return s.mailer.SendAnalysisSummary(user.Email, user.Username, *result)
}

func (s *Service) sealDraft(plan *models.Plan, d *planner.Draft) error {
	data, err := d.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}
	ciphertext, tag, err := utils.Seal(data, s.config.EncryptionKey, s.config.HMACSecret)
	if err != nil {
		return fmt.Errorf("failed to seal draft: %w", err)
	}
	plan.Draft = ciphertext
	plan.DraftTag = tag
	plan.Steps = d.StepStatus()
	return nil
}

func (s *Service) openDraft(plan *models.Plan) (*planner.Draft, error) {
	data, err := utils.Open(plan.Draft, plan.DraftTag, s.config.EncryptionKey, s.config.HMACSecret)
	if err != nil {
		s.log.WithField("plan_id", plan.ID).Errorf("Failed to open draft: %v", err)
		return nil, fmt.Errorf("failed to open draft: %w", err)
	}
	return planner.Decode(data)
}
