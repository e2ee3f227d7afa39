package services

import (
	"testing"
	"vcheck/internal/models"
	"vcheck/internal/structures"
	"vcheck/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func newTestGate(last string) (GateServiceInterface, *testutil.MockMetrics) {
	metrics := testutil.NewMockMetrics()
	release := &structures.Release{LastVersion: last, ChangelogLink: "https://example.com/changelog"}
	return NewGateService(release, metrics), metrics
}

func TestGateService_NeedUpdate(t *testing.T) {
	gs, metrics := newTestGate("1.0.0")

	d := gs.Decide("0.9.0")
	assert.Equal(t, models.StatusNeedUpdate, d.Status)
	assert.Equal(t, "1.0.0", d.LastVersion)
	assert.Equal(t, "https://example.com/changelog", d.ChangelogLink)
	assert.Empty(t, d.Error)
	assert.Equal(t, 1, metrics.Decisions["need_update"])
}

func TestGateService_OK(t *testing.T) {
	gs, _ := newTestGate("1.0.0")

	for _, v := range []string{"1.0.0", "1.0.1-beta", "10.0.0"} {
		d := gs.Decide(v)
		assert.Equal(t, models.Decision{Status: models.StatusOK}, d, v)
	}
}

func TestGateService_ParseError(t *testing.T) {
	gs, metrics := newTestGate("1.0.0")

	d := gs.Decide("abc")
	assert.Equal(t, models.StatusError, d.Status)
	assert.Equal(t, models.ParseErrorMessage, d.Error)
	assert.Empty(t, d.LastVersion)
	assert.Equal(t, 1, metrics.Decisions["error"])
}

func TestGateService_LatestKeepsRawSuffixInResponse(t *testing.T) {
	gs, _ := newTestGate("2.1.0-rc1")

	assert.Equal(t, models.Version{2, 1, 0}, gs.LatestVersion())
	d := gs.Decide("2.0.9")
	assert.Equal(t, "2.1.0-rc1", d.LastVersion)
	assert.Equal(t, models.StatusOK, gs.Decide("2.1.0").Status)
}
