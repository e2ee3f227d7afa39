package services

import (
	"vcheck/internal/models"
	"vcheck/internal/providers"
	"vcheck/internal/structures"
)

type GateServiceInterface interface {
	Decide(rawVersion string) models.Decision
	LatestVersion() models.Version
}

// GateService answers "is there a newer release" against the release loaded at startup.
// It never touches the checkin pipeline.
type GateService struct {
	latest  models.Version
	release *structures.Release
	metrics providers.MetricsProviderInterface
}

func (gs *GateService) Decide(rawVersion string) models.Decision {
	status := models.Decide(rawVersion, gs.latest)
	gs.metrics.IncDecisions(string(status))

	switch status {
	case models.StatusError:
		return models.Decision{Status: status, Error: models.ParseErrorMessage}
	case models.StatusNeedUpdate:
		return models.Decision{
			Status:        status,
			LastVersion:   gs.release.LastVersion,
			ChangelogLink: gs.release.ChangelogLink,
		}
	default:
		return models.Decision{Status: status}
	}
}

func (gs *GateService) LatestVersion() models.Version {
	return gs.latest
}

func NewGateService(release *structures.Release, metrics providers.MetricsProviderInterface) GateServiceInterface {
	return &GateService{
		latest:  models.ParseVersion(release.LastVersion),
		release: release,
		metrics: metrics,
	}
}
