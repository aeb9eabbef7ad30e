package domain

import (
	"strings"
	"time"
)

type Platform string

const (
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
	PlatformGoogle    Platform = "google"
)

// Platforms lista as plataformas com publicação suportada
var Platforms = []Platform{PlatformFacebook, PlatformInstagram, PlatformGoogle}

// ParsePlatform normaliza o nome da plataforma ignorando caixa e espaços
func ParsePlatform(s string) (Platform, bool) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	return p, p.IsValid()
}

func (p Platform) IsValid() bool {
	switch p {
	case PlatformFacebook, PlatformInstagram, PlatformGoogle:
		return true
	}
	return false
}

func (p Platform) String() string {
	return string(p)
}

type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusPaused    CampaignStatus = "paused"
	CampaignStatusCompleted CampaignStatus = "completed"
)

// IsTerminal indica que a campanha não volta a ficar ativa
func (s CampaignStatus) IsTerminal() bool {
	return s == CampaignStatusCompleted
}

type PublishStatus string

const (
	PublishStatusPending   PublishStatus = "pending"
	PublishStatusPublished PublishStatus = "published"
	PublishStatusFailed    PublishStatus = "failed"
)

type Campaign struct {
	ID                 string         `json:"id"`
	AffiliateID        string         `json:"affiliate_id"`
	Name               string         `json:"name"`
	Description        *string        `json:"description,omitempty"`
	Budget             float64        `json:"budget"`
	Status             CampaignStatus `json:"status"`
	Platform           Platform       `json:"platform"`
	TargetAudience     *string        `json:"target_audience,omitempty"`
	StartDate          *time.Time     `json:"start_date,omitempty"`
	EndDate            *time.Time     `json:"end_date,omitempty"`
	PerformanceMetrics map[string]any `json:"performance_metrics,omitempty"`
	PublishStatus      PublishStatus  `json:"publish_status"`
	PlatformCampaignID *string        `json:"platform_campaign_id,omitempty"`
	PublishError       *string        `json:"publish_error,omitempty"`
	PublishedAt        *time.Time     `json:"published_at,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

type CreateCampaignRequest struct {
	Name               string         `json:"name" validate:"required,max=255"`
	Description        *string        `json:"description" validate:"omitempty,max=1000"`
	Budget             float64        `json:"budget" validate:"required,gt=0"`
	Platform           string         `json:"platform" validate:"required,max=50"`
	TargetAudience     *string        `json:"target_audience" validate:"omitempty,max=500"`
	StartDate          *time.Time     `json:"start_date"`
	EndDate            *time.Time     `json:"end_date"`
	PerformanceMetrics map[string]any `json:"performance_metrics"`
}

// Plataforma é imutável depois da criação, por isso não aparece aqui
type UpdateCampaignRequest struct {
	Name           *string         `json:"name" validate:"omitempty,min=1,max=255"`
	Description    *string         `json:"description" validate:"omitempty,max=1000"`
	Budget         *float64        `json:"budget" validate:"omitempty,gt=0"`
	Status         *CampaignStatus `json:"status" validate:"omitempty,oneof=draft active paused completed"`
	TargetAudience *string         `json:"target_audience" validate:"omitempty,max=500"`
	StartDate      *time.Time      `json:"start_date"`
	EndDate        *time.Time      `json:"end_date"`
}

type CampaignFilter struct {
	AffiliateID   string
	Status        CampaignStatus
	Platform      Platform
	PublishStatus PublishStatus
}
