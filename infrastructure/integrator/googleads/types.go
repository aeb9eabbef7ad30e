package googleads

const (
	ChannelTypeSearch    = "SEARCH"
	CampaignStatusPaused = "PAUSED"
	DeliveryStandard     = "STANDARD"
)

type CampaignBudget struct {
	Name           string `json:"name"`
	AmountMicros   string `json:"amountMicros"`
	DeliveryMethod string `json:"deliveryMethod"`
}

type Campaign struct {
	Name                   string   `json:"name"`
	AdvertisingChannelType string   `json:"advertisingChannelType"`
	Status                 string   `json:"status"`
	CampaignBudget         string   `json:"campaignBudget"`
	ManualCpc              struct{} `json:"manualCpc"`
}

type mutateOperation[T any] struct {
	Create T `json:"create"`
}

type mutateRequest[T any] struct {
	Operations []mutateOperation[T] `json:"operations"`
}

type MutateResult struct {
	ResourceName string `json:"resourceName"`
}

type mutateResponse struct {
	Results []MutateResult `json:"results"`
}

// ErrorResponse é o envelope de erro da API REST do Google Ads
type ErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	TokenType   string `json:"token_type"`
}
