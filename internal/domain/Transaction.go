package domain

import "time"

type TransactionType string

const (
	TransactionTypeCommission TransactionType = "commission"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

type Transaction struct {
	ID          string            `json:"id"`
	AffiliateID string            `json:"affiliate_id"`
	Amount      float64           `json:"amount"`
	Currency    string            `json:"currency"`
	Type        TransactionType   `json:"type"`
	Status      TransactionStatus `json:"status"`
	ExternalID  *string           `json:"external_id,omitempty"`
	Description *string           `json:"description,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

type PostCommissionRequest struct {
	SaleAmount  float64 `json:"sale_amount" validate:"required,gt=0"`
	Currency    string  `json:"currency" validate:"required,len=3,alpha"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}
