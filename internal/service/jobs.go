package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/trustners-ux/trustner-platform-sub000/internal/integrations/ratefeed"
)

// BenchmarkRate returns the last fetched benchmark yield, if any
func (s *Service) BenchmarkRate() (ratefeed.Rate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.benchmark == nil {
		return ratefeed.Rate{}, false
	}
	return *s.benchmark, true
}

// RefreshBenchmarkRate fetches the benchmark yield. On failure the previous
// value is kept and analyses fall back to it or the engine default.
func (s *Service) RefreshBenchmarkRate(ctx context.Context) error {
	rate, err := s.rates.GetBenchmarkRate(ctx)
	if err != nil {
		s.log.Warnf("Benchmark rate refresh failed: %v", err)
		return fmt.Errorf("failed to refresh benchmark rate: %w", err)
	}

	s.mu.Lock()
	s.benchmark = &rate
	s.mu.Unlock()
	return nil
}

// SendReviewReminders emails owners of plans analysed more than
// ReviewReminderDays ago and returns how many reminders went out
func (s *Service) SendReviewReminders(ctx context.Context) (int, error) {
	now := s.now()
	cutoff := now.AddDate(0, 0, -s.config.ReviewReminderDays)
	due, err := s.store.PlansDueForReview(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, pr := range due {
		if err := ctx.Err(); err != nil {
			return sent, err
		}
		entry := s.log.WithFields(logrus.Fields{"plan_id": pr.PlanID, "email": pr.Email})
		if err := s.mailer.SendReviewReminder(pr.Email, pr.Username, pr.GeneratedAt, pr.Score); err != nil {
			entry.Errorf("Review reminder failed: %v", err)
			continue
		}
		if err := s.store.MarkReminded(ctx, pr.PlanID, now); err != nil {
			entry.Errorf("Failed to mark plan reminded: %v", err)
			continue
		}
		sent++
	}

	s.log.Infof("Review reminders sent: %d of %d due", sent, len(due))
	return sent, nil
}
