package checkin

import (
	"context"
	"errors"
	"fmt"
	"vcheck/internal/checkin/interfaces"
	"vcheck/internal/models"
	"vcheck/internal/providers"
	"vcheck/internal/structures"
)

var ErrUnknownChannel = errors.New("unknown checkin channel")

// Channels lists the channels owned by the ingestion service, in start order.
var Channels = []string{models.ChannelMinor, models.ChannelPeriodic}

type IngestionService struct {
	channels map[string]*Channel
	logger   providers.Logger
}

func NewIngestionService(conf *structures.Config, clock interfaces.Clock, logger providers.Logger, metrics providers.MetricsProviderInterface) interfaces.IngestionInterface {
	s := &IngestionService{
		channels: make(map[string]*Channel, len(Channels)),
		logger:   logger,
	}
	for _, name := range Channels {
		s.channels[name] = NewChannel(name, conf.Checkin.Dir, clock, logger, metrics)
	}
	return s
}

// Start launches every channel consumer. If one channel cannot start, the
// ones already running are stopped again.
func (s *IngestionService) Start(ctx context.Context) error {
	for i, name := range Channels {
		if err := s.channels[name].Start(ctx); err != nil {
			for _, started := range Channels[:i] {
				_ = s.channels[started].Stop(ctx)
			}
			return fmt.Errorf("starting %s channel: %w", name, err)
		}
	}
	return nil
}

// Stop drains and closes all channels within ctx.
func (s *IngestionService) Stop(ctx context.Context) error {
	var errs []error
	for _, name := range Channels {
		if err := s.channels[name].Stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("stopping %s channel: %w", name, err))
		}
	}
	if len(errs) == 0 {
		s.logger.Infof(providers.TypeCheckin, "All checkin channels drained")
	}
	return errors.Join(errs...)
}

func (s *IngestionService) Enqueue(channel string, record models.CheckinRecord) error {
	c, ok := s.channels[channel]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownChannel, channel)
	}
	c.Enqueue(record)
	return nil
}

func (s *IngestionService) EnqueueMinor(checkin models.MinorCheckin) {
	s.channels[models.ChannelMinor].Enqueue(checkin.Record())
}

func (s *IngestionService) EnqueuePeriodic(checkin models.PeriodicCheckin) {
	s.channels[models.ChannelPeriodic].Enqueue(checkin.Record())
}

func (s *IngestionService) Status() []models.ChannelStatus {
	out := make([]models.ChannelStatus, 0, len(Channels))
	for _, name := range Channels {
		out = append(out, s.channels[name].Status())
	}
	return out
}
