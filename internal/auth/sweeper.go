package auth

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"course-api/internal/user"
)

// Accounts that stay unverified this long are eligible for deletion.
const unverifiedAccountRetention = 7 * 24 * time.Hour

const sweepTimeout = time.Minute

// Sweeper deletes stale unverified accounts on a fixed daily schedule.
type Sweeper struct {
	userRepository user.Repository
	log            *zap.SugaredLogger
	cron           *cron.Cron
	running        atomic.Bool
}

func NewSweeper(userRepository user.Repository, log *zap.SugaredLogger) *Sweeper {
	return &Sweeper{
		userRepository: userRepository,
		log:            log,
	}
}

// Start schedules the sweep with a cron expression ("0 2 * * *" runs
// daily at 02:00).
func (s *Sweeper) Start(schedule string) error {
	s.cron = cron.New()
	_, err := s.cron.AddFunc(schedule, s.Run)
	if err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

func (s *Sweeper) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Run performs one sweep. A failing run is logged and swallowed; it must
// never crash the host process or block the next scheduled run. User
// deletion is guarded against concurrent invocation since two racing
// sweeps would contend on the same rows.
func (s *Sweeper) Run() {
	if !s.running.CompareAndSwap(false, true) {
		s.log.Warn("unverified account sweep already running, skipping")
		return
	}
	defer s.running.Store(false)

	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	cutoff := time.Now().UTC().Add(-unverifiedAccountRetention)
	deletedCount, err := s.userRepository.DeleteUnverifiedUsersCreatedBefore(ctx, cutoff)
	if err != nil {
		s.log.Errorw("error occurred while sweep unverified users", zap.Error(err))
		return
	}

	s.log.Infow("swept stale unverified users",
		"deletedCount", deletedCount,
		"cutoff", cutoff,
	)
}
