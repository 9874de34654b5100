package email

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/trustners-ux/trustner-platform-sub000/internal/config"
	"github.com/trustners-ux/trustner-platform-sub000/internal/engine"
	"github.com/trustners-ux/trustner-platform-sub000/internal/models"
)

// summaryActionItems caps the action items listed in a summary email
const summaryActionItems = 5

type sendFunc func(e *email.Email, addr string, auth smtp.Auth) error

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
	send   sendFunc
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
		send:   (*email.Email).Send,
	}
}

// SendAnalysisSummary emails the headline score and top action items of an analysis
func (s *Sender) SendAnalysisSummary(to, username string, result models.AnalysisResult) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Your Financial Health Score: %d/100 (%s)", result.OverallScore, result.Label)
	e.Text = []byte(summaryBody(username, result))
	return s.deliver(e, to)
}

// SendReviewReminder nudges a user whose last analysis is getting old
func (s *Sender) SendReviewReminder(to, username string, generatedAt time.Time, score int) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Time to review your financial plan"
	e.Text = []byte(reminderBody(username, generatedAt, score))
	return s.deliver(e, to)
}

func (s *Sender) deliver(e *email.Email, to string) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	if err := s.send(e, addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}

func summaryBody(username string, r models.AnalysisResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", username)
	fmt.Fprintf(&b, "Your financial health score is %d out of 100: %s.\n\n", r.OverallScore, r.Label)
	for _, c := range r.Categories {
		fmt.Fprintf(&b, "  %-16s %2d/%d\n", c.Category, c.Score, c.MaxScore)
	}
	fmt.Fprintf(&b, "\nNet worth: %s\n", engine.FormatINR(r.Summary.NetWorth))
	fmt.Fprintf(&b, "Monthly surplus: %s\n", engine.FormatINR(r.Summary.MonthlySurplus))
	if r.Tax.PotentialSavings > 0 {
		fmt.Fprintf(&b, "The %s tax regime saves you %s a year.\n", r.Tax.BetterRegime, engine.FormatINR(r.Tax.PotentialSavings))
	}

	items := r.ActionItems
	if len(items) > summaryActionItems {
		items = items[:summaryActionItems]
	}
	if len(items) > 0 {
		b.WriteString("\nYour top action items:\n")
		for i, a := range items {
			fmt.Fprintf(&b, "%d. [%s] %s\n", i+1, strings.ToUpper(string(a.Priority)), a.Text)
		}
	}
	b.WriteString("\nBest regards,\nTrustner Financial Planning")
	return b.String()
}

func reminderBody(username string, generatedAt time.Time, score int) string {
	return fmt.Sprintf(
		"Dear %s,\n\n"+
			"Your financial plan was last reviewed on %s with a health score of %d/100.\n"+
			"Incomes, expenses and goals change over time. Log in and regenerate your plan to keep it current.\n"+
			"\nBest regards,\nTrustner Financial Planning",
		username, generatedAt.Format("2 Jan 2006"), score,
	)
}
