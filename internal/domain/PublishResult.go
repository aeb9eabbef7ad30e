package domain

type PublishResultStatus string

const (
	PublishResultCreated PublishResultStatus = "created"
	PublishResultFailed  PublishResultStatus = "failed"
)

// PublishResult é a resposta transitória de uma plataforma de anúncios.
// É consumida pelo orquestrador e não é persistida como entidade própria.
type PublishResult struct {
	Platform   Platform            `json:"platform"`
	PlatformID string              `json:"platform_id,omitempty"`
	Status     PublishResultStatus `json:"status"`
	Details    map[string]any      `json:"details,omitempty"`
	Error      string              `json:"error,omitempty"`
}

func (r *PublishResult) Succeeded() bool {
	return r != nil && r.Status == PublishResultCreated && r.PlatformID != ""
}

func NewCreatedPublishResult(platform Platform, platformID string, details map[string]any) *PublishResult {
	return &PublishResult{
		Platform:   platform,
		PlatformID: platformID,
		Status:     PublishResultCreated,
		Details:    details,
	}
}

func NewFailedPublishResult(platform Platform, err error) *PublishResult {
	msg := "unknown publish error"
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}

	return &PublishResult{
		Platform: platform,
		Status:   PublishResultFailed,
		Error:    msg,
	}
}
