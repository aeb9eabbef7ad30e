package domain

import (
	"time"
)

type AffiliateStatus string

const (
	AffiliateStatusActive    AffiliateStatus = "active"
	AffiliateStatusInactive  AffiliateStatus = "inactive"
	AffiliateStatusSuspended AffiliateStatus = "suspended"
)

type Affiliate struct {
	ID             string          `json:"id"`
	UserID         int             `json:"user_id"`
	Name           string          `json:"name"`
	CommissionRate float64         `json:"commission_rate"`
	Status         AffiliateStatus `json:"status"`
	TotalEarnings  float64         `json:"total_earnings"`
	ReferralCode   string          `json:"referral_code"`
	PaymentInfo    *string         `json:"payment_info,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// IsActive indica se o afiliado pode criar campanhas e receber comissões
func (a *Affiliate) IsActive() bool {
	return a.Status == AffiliateStatusActive
}

type RegisterAffiliateRequest struct {
	Name           string   `json:"name" validate:"required,max=255"`
	CommissionRate *float64 `json:"commission_rate" validate:"omitempty,gt=0,lte=1"`
	PaymentInfo    *string  `json:"payment_info" validate:"omitempty,max=500"`
}

type UpdateAffiliateRequest struct {
	Name           *string          `json:"name" validate:"omitempty,min=1,max=255"`
	CommissionRate *float64         `json:"commission_rate" validate:"omitempty,gt=0,lte=1"`
	Status         *AffiliateStatus `json:"status" validate:"omitempty,oneof=active inactive suspended"`
	PaymentInfo    *string          `json:"payment_info" validate:"omitempty,max=500"`
}
