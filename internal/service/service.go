package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/trustners-ux/trustner-platform-sub000/internal/config"
	"github.com/trustners-ux/trustner-platform-sub000/internal/engine"
	"github.com/trustners-ux/trustner-platform-sub000/internal/integrations/ratefeed"
	"github.com/trustners-ux/trustner-platform-sub000/internal/models"
	"github.com/trustners-ux/trustner-platform-sub000/internal/repository"
)

var (
	ErrNotFound           = repository.ErrNotFound
	ErrConflict           = repository.ErrDuplicate
	ErrForbidden          = errors.New("forbidden")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrPlanNotFinalized   = errors.New("plan has not been generated")
)

// Store is the persistence the service needs
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id int64) (*models.User, error)
	CreatePlan(ctx context.Context, plan *models.Plan) error
	FindPlan(ctx context.Context, id string) (*models.Plan, error)
	UpdatePlanDraft(ctx context.Context, plan *models.Plan) error
	SaveAnalysis(ctx context.Context, plan *models.Plan, result *models.AnalysisResult) error
	LatestAnalysis(ctx context.Context, planID string) (*models.AnalysisResult, error)
	PlansDueForReview(ctx context.Context, cutoff time.Time) ([]models.PlanReminder, error)
	MarkReminded(ctx context.Context, planID string, at time.Time) error
}

// Mailer sends user-facing emails
type Mailer interface {
	SendAnalysisSummary(to, username string, result models.AnalysisResult) error
	SendReviewReminder(to, username string, generatedAt time.Time, score int) error
}

// RateSource supplies the benchmark debt yield
type RateSource interface {
	GetBenchmarkRate(ctx context.Context) (ratefeed.Rate, error)
}

// Service handles business logic
type Service struct {
	store  Store
	mailer Mailer
	rates  RateSource
	log    *logrus.Logger
	config *config.Config
	engine engine.Config
	now    func() time.Time

	mu        sync.RWMutex
	benchmark *ratefeed.Rate
}

// NewService initializes a new service
func NewService(store Store, mailer Mailer, rates RateSource, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{
		store:  store,
		mailer: mailer,
		rates:  rates,
		log:    log,
		config: cfg,
		engine: engine.DefaultConfig(),
		now:    time.Now,
	}
}

type ctxKey struct{}

// ContextWithUserID stores the authenticated user id
func ContextWithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

// UserIDFromContext returns the authenticated user id
func UserIDFromContext(ctx context.Context) (int64, error) {
	id, ok := ctx.Value(ctxKey{}).(int64)
	if !ok || id <= 0 {
		return 0, fmt.Errorf("user ID not found in context: %w", ErrUnauthorized)
	}
	return id, nil
}

// Register creates a new user with hashed password
func (s *Service) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("username and a valid email are required: %w", ErrInvalidInput)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters: %w", ErrInvalidInput)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.store.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(user.ID, 10),
		IssuedAt:  jwt.NewNumericDate(s.now()),
		ExpiresAt: jwt.NewNumericDate(s.now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

// QuickCheck scores the standalone health-check questionnaire
func (s *Service) QuickCheck(in engine.QuickCheckInput) (engine.QuickCheckResult, error) {
	if in.EmergencyMonths < 0 || in.HealthAmount < 0 || in.LifeAmount < 0 || in.SIPAmount < 0 ||
		in.MonthlyIncome < 0 || in.AnnualIncome < 0 || in.TotalEMI < 0 || in.RetirementSavings < 0 || in.CurrentAge < 0 || in.TargetRetirementAge < 0 {
		return engine.QuickCheckResult{}, fmt.Errorf("amounts must not be negative: %w", ErrInvalidInput)
	}
	return engine.QuickCheck(in, s.engine), nil
}

// CompareTax computes both regimes for an annual gross income
func (s *Service) CompareTax(gross int64, d models.TaxInputs) (models.TaxComparison, error) {
	if gross < 0 {
		return models.TaxComparison{}, fmt.Errorf("gross income must not be negative: %w", ErrInvalidInput)
	}
	return s.engine.Tax.Compare(gross, d), nil
}
