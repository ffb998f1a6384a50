package refresh

import (
	"context"
	"sid/internal/fetcher"
	"sid/internal/providers"
	"sid/internal/refresh/interfaces"
	"sid/internal/structures"
	"sync"
	"time"

	"github.com/roylee0704/gron"
)

// Scheduler keeps the caches warm between requests: on a fixed
// interval it refreshes the directory and every owner's posts so a
// request after a quiet period still hits fresh data.
type Scheduler struct {
	config *structures.Config
	logger providers.Logger
	orch   fetcher.OrchestratorInterface
	cron   *gron.Cron
	opsMu  sync.Mutex
}

func (s *Scheduler) Init() {
	interval := s.config.Fetcher.WarmInterval
	if interval <= 0 {
		s.logger.Infof(providers.TypeApp, "Warm refresh disabled")
		return
	}

	s.cron = gron.New()
	s.cron.AddFunc(gron.Every(interval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		if err := s.warm(); err != nil {
			s.logger.Warnf(providers.TypeApp, "Warm refresh skipped: %s", err)
			return
		}
		s.logger.Infof(providers.TypeApp, "Warm refresh done: %d users, %d posts", s.orch.CachedUsers(), s.orch.CachedPosts())
	})
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Warm performs the initial best-effort cache fill at startup.
func (s *Scheduler) Warm() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeApp, "Warming caches...")
	if err := s.warm(); err != nil {
		return err
	}
	s.logger.Infof(providers.TypeApp, "Caches warm: %d users, %d posts", s.orch.CachedUsers(), s.orch.CachedPosts())
	return nil
}

func (s *Scheduler) warm() error {
	timeout := 3 * s.config.Upstream.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	users, err := s.orch.Directory(ctx)
	if err != nil {
		return err
	}

	ids := make([]string, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	s.orch.EnsurePosts(ctx, ids)
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, orch fetcher.OrchestratorInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config: config,
		logger: logger,
		orch:   orch,
	}
}
