package shared

// Task types
const (
	TypePublishProfile     = "profile:publish"
	TypePublishAllProfiles = "profile:publish_all"
)

// Queues
const (
	QueueDefault = "default"
	QueueLow     = "low"
)

// PublishProfilePayload is the payload of TypePublishProfile.
type PublishProfilePayload struct {
	ProfileID int64 `json:"profileId"`
}
