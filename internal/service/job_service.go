package service

import (
	"fmt"
	"log"
	"time"

	"rentacar/internal/repository"
)

// How long a rental may sit in Pendiente before the cleanup job cancels it.
const stalePendingAge = 24 * time.Hour

type JobService struct {
	Repo   *repository.JobRepository
	Sender *SenderService
}

func NewJobService(repo *repository.JobRepository, sender *SenderService) *JobService {
	return &JobService{Repo: repo, Sender: sender}
}

// CancelStalePendingRentals cancels rentals whose deposit was never
// captured. These are the orphans left behind when order creation succeeds
// but the client never pays.
func (s *JobService) CancelStalePendingRentals() error {
	cutoff := time.Now().UTC().Add(-stalePendingAge)
	ids, err := s.Repo.CancelPendingOlderThan(cutoff)
	if err != nil {
		return fmt.Errorf("cron job: failed to cancel stale pending rentals: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}
	log.Printf("Cron Job: cancelled %d stale pending rentals. IDs: %v", len(ids), ids)
	return nil
}

// NotifyOverdueRentals reminds clients whose active rental is past its end
// date, at most once per day per rental.
func (s *JobService) NotifyOverdueRentals() error {
	now := time.Now().UTC()
	overdue, err := s.Repo.GetOverdueRentals(now)
	if err != nil {
		return fmt.Errorf("cron job: failed to get overdue rentals: %w", err)
	}
	if len(overdue) == 0 {
		return nil
	}

	ids := make([]int, 0, len(overdue))
	for _, o := range overdue {
		if s.Sender != nil {
			s.Sender.SendOverdueReminder(o)
		}
		ids = append(ids, o.RentalID)
	}

	if err := s.Repo.MarkOverdueNotified(ids, now); err != nil {
		return fmt.Errorf("cron job: failed to mark overdue rentals notified: %w", err)
	}
	log.Printf("Cron Job: sent %d overdue reminders. IDs: %v", len(ids), ids)
	return nil
}
