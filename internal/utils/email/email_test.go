package email

import (
	"errors"
	"fmt"
	"io"
	"net/smtp"
	"testing"
	"time"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustners-ux/trustner-platform-sub000/internal/config"
	"github.com/trustners-ux/trustner-platform-sub000/internal/models"
)

type captured struct {
	email *email.Email
	addr  string
	auth  smtp.Auth
}

func newTestSender(err error) (*Sender, *captured) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	cfg := &config.Config{SMTPHost: "smtp.test", SMTPPort: 2525, SenderEmail: "planner@test"}
	s := NewSender(cfg, logger)
	c := &captured{}
	s.send = func(e *email.Email, addr string, auth smtp.Auth) error {
		c.email, c.addr, c.auth = e, addr, auth
		return err
	}
	return s, c
}

func sampleResult(items int) models.AnalysisResult {
	r := models.AnalysisResult{
		OverallScore: 62,
		Label:        "Needs Improvement",
		Categories: []models.CategoryScore{
			{Category: models.CategoryEmergencyFund, Score: 10, MaxScore: 20},
		},
		Summary: models.Summary{NetWorth: 2500000, MonthlySurplus: 35000},
		Tax:     models.TaxComparison{BetterRegime: models.RegimeNew, PotentialSavings: 42000},
	}
	for i := 0; i < items; i++ {
		r.ActionItems = append(r.ActionItems, models.ActionItem{Priority: models.PriorityHigh, Text: fmt.Sprintf("item %d", i+1)})
	}
	return r
}

func TestSendAnalysisSummary(t *testing.T) {
	s, c := newTestSender(nil)
	require.NoError(t, s.SendAnalysisSummary("asha@test", "Asha", sampleResult(7)))

	require.NotNil(t, c.email)
	assert.Equal(t, "smtp.test:2525", c.addr)
	assert.Nil(t, c.auth)
	assert.Equal(t, []string{"asha@test"}, c.email.To)
	assert.Equal(t, "Your Financial Health Score: 62/100 (Needs Improvement)", c.email.Subject)

	body := string(c.email.Text)
	assert.Contains(t, body, "Dear Asha")
	assert.Contains(t, body, "₹25,00,000")
	assert.Contains(t, body, "saves you ₹42,000")
	assert.Contains(t, body, "5. [HIGH] item 5")
	assert.NotContains(t, body, "item 6")
}

func TestSendReviewReminder(t *testing.T) {
	s, c := newTestSender(nil)
	s.cfg.SMTPUsername = "user"
	at := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.SendReviewReminder("asha@test", "Asha", at, 48))

	assert.NotNil(t, c.auth)
	assert.Contains(t, string(c.email.Text), "4 Mar 2026")
	assert.Contains(t, string(c.email.Text), "48/100")
}

func TestSend_Error(t *testing.T) {
	s, _ := newTestSender(errors.New("connection refused"))
	err := s.SendReviewReminder("asha@test", "Asha", time.Now(), 50)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
