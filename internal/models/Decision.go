package models

type DecisionStatus string

const (
	StatusError      DecisionStatus = "error"
	StatusNeedUpdate DecisionStatus = "need_update"
	StatusOK         DecisionStatus = "ok"
)

const ParseErrorMessage = "Could not parse the version"

// Decision is the response body of the update gate.
// LastVersion and ChangelogLink are only set for StatusNeedUpdate.
type Decision struct {
	Status        DecisionStatus `json:"status"`
	LastVersion   string         `json:"last_version,omitempty"`
	ChangelogLink string         `json:"link_changelog,omitempty"`
	Error         string         `json:"error,omitempty"`
}

// Decide compares the caller's raw version against latest.
// An unparseable version is never reported as up to date.
func Decide(raw string, latest Version) DecisionStatus {
	parsed := ParseVersion(raw)
	if parsed.IsEmpty() {
		return StatusError
	}
	if Compare(parsed, latest) == Less {
		return StatusNeedUpdate
	}
	return StatusOK
}
