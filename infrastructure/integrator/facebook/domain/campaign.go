package fbdomain

const (
	ObjectiveReach = "REACH"
	StatusPaused   = "PAUSED"
)

// CreateCampaignParams são os campos enviados para /act_{id}/campaigns
type CreateCampaignParams struct {
	Name                string
	Objective           string
	Status              string
	SpecialAdCategories []string
	BudgetRemaining     string
}

type CreateCampaignResponse struct {
	ID string `json:"id"`
}
