package interfaces

import (
	"context"
	"vcheck/internal/models"
)

type IngestionInterface interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Enqueue(channel string, record models.CheckinRecord) error
	EnqueueMinor(checkin models.MinorCheckin)
	EnqueuePeriodic(checkin models.PeriodicCheckin)
	Status() []models.ChannelStatus
}
