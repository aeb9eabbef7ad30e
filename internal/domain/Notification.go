package domain

import "time"

type NotificationType string

const (
	NotificationCampaignPublished     NotificationType = "campaign_published"
	NotificationCampaignPublishFailed NotificationType = "campaign_publish_failed"
	NotificationCampaignAnalyzed      NotificationType = "campaign_analyzed"
	NotificationCommission            NotificationType = "commission"
)

type Notification struct {
	ID        string           `json:"id"`
	UserID    int              `json:"user_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Metadata  map[string]any   `json:"metadata,omitempty"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}
