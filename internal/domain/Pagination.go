package domain

const (
	DefaultPageLimit = 100
	MaxPageLimit     = 500
)

type Pagination struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}

// Normalize aplica os limites padrão de paginação
func (p Pagination) Normalize() Pagination {
	if p.Skip < 0 {
		p.Skip = 0
	}

	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}

	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}

	return p
}
