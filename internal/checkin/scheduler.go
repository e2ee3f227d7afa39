package checkin

import (
	"github.com/roylee0704/gron"
	"sync"
	"vcheck/internal/checkin/interfaces"
	"vcheck/internal/providers"
	"vcheck/internal/structures"
)

type Scheduler struct {
	config   *structures.Config
	logger   providers.Logger
	archiver *Archiver
	cron     *gron.Cron
	opsMu    sync.Mutex
}

func (s *Scheduler) Init() {
	if !s.archiver.Enabled() {
		s.logger.Infof(providers.TypeApp, "Checkin log archiving disabled")
		return
	}

	s.cron = gron.New()
	s.cron.AddFunc(gron.Every(s.config.Checkin.ArchiveInterval), s.archive)
	s.cron.Start()
	s.logger.Infof(providers.TypeApp, "Archiving checkin logs older than %d days every %s",
		s.config.Checkin.ArchiveAfterDays, s.config.Checkin.ArchiveInterval)
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
	// wait for a sweep in progress
	s.opsMu.Lock()
	defer s.opsMu.Unlock()
}

func (s *Scheduler) archive() {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	n, err := s.archiver.Sweep()
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while archiving checkin logs: %s", err)
	}
	if n > 0 {
		s.logger.Infof(providers.TypeApp, "Archived %d checkin logs", n)
	}
}

func NewScheduler(config *structures.Config, logger providers.Logger, archiver *Archiver) interfaces.SchedulerInterface {
	return &Scheduler{
		config:   config,
		logger:   logger,
		archiver: archiver,
	}
}
