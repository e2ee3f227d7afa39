package models

import "strings"

// Placeholder replaces any checkin field that the caller did not supply.
const Placeholder = "NA"

const (
	ChannelMinor    = "minor"
	ChannelPeriodic = "periodic"
)

// CheckinRecord is an immutable, ordered list of fields written as one log line.
type CheckinRecord struct {
	fields []string
}

func NewCheckinRecord(fields ...string) CheckinRecord {
	cp := make([]string, len(fields))
	for i, f := range fields {
		if f == "" {
			f = Placeholder
		}
		cp[i] = f
	}
	return CheckinRecord{fields: cp}
}

// Fields returns a copy of the record fields in definition order.
func (r CheckinRecord) Fields() []string {
	cp := make([]string, len(r.fields))
	copy(cp, r.fields)
	return cp
}

func (r CheckinRecord) Len() int {
	return len(r.fields)
}

// MinorCheckin is an ad-hoc "is there an update" request.
type MinorCheckin struct {
	Version        string
	RemoteAddr     string
	UserAgent      string
	AcceptLanguage string
}

func (c MinorCheckin) Record() CheckinRecord {
	return NewCheckinRecord(c.Version, c.RemoteAddr, c.UserAgent, c.AcceptLanguage)
}

// PeriodicCheckin is a scheduled heartbeat from a running deployment.
type PeriodicCheckin struct {
	Version     string
	RemoteAddr  string
	ServerCount string
	Platform    string
	TableCount  string
	ShardSizes  string
}

func (c PeriodicCheckin) Record() CheckinRecord {
	return NewCheckinRecord(c.Version, c.RemoteAddr, c.ServerCount, c.Platform, c.TableCount, c.ShardSizes)
}

// Sanitize makes a field safe for the tab-separated line format.
func Sanitize(field string) string {
	if !strings.ContainsAny(field, "\t\r\n") {
		return field
	}
	return strings.NewReplacer("\t", " ", "\r", " ", "\n", " ").Replace(field)
}
