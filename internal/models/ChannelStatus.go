package models

// ChannelStatus is a point-in-time view of one checkin channel.
type ChannelStatus struct {
	Name       string `json:"name"`
	QueueDepth int    `json:"queue_depth"`
	Running    bool   `json:"running"`
	Failed     bool   `json:"failed"`
	Error      string `json:"error,omitempty"`
}
