package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/vfg2006/affiliate-campaign-api/infrastructure/repository"
	"github.com/vfg2006/affiliate-campaign-api/internal/domain"
)

const listPageSize = 100

// syncState impede execuções sobrepostas e guarda os horários da última rodada
type syncState struct {
	mu                  sync.Mutex
	running             bool
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastProcessed       int
	lastFailed          int
}

func (s *syncState) tryStart() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return false
	}
	s.running = true
	s.lastSyncStartedAt = time.Now()
	return true
}

func (s *syncState) finish(processed, failed int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.running = false
	s.lastSyncCompletedAt = time.Now()
	s.lastProcessed = processed
	s.lastFailed = failed
}

func (s *syncState) isRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *syncState) snapshot(status map[string]any) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	status["sync_running"] = s.running
	status["last_sync_started_at"] = s.lastSyncStartedAt
	status["last_sync_completed_at"] = s.lastSyncCompletedAt
	status["last_sync_processed"] = s.lastProcessed
	status["last_sync_failed"] = s.lastFailed
	return status
}

// listAllCampaigns percorre todas as páginas do filtro
func listAllCampaigns(ctx context.Context, repo repository.CampaignRepository, filter domain.CampaignFilter) ([]*domain.Campaign, error) {
	campaigns := make([]*domain.Campaign, 0)
	pagination := domain.Pagination{Limit: listPageSize}

	for {
		page, err := repo.List(ctx, filter, pagination)
		if err != nil {
			return nil, err
		}

		campaigns = append(campaigns, page...)
		if len(page) < pagination.Limit {
			return campaigns, nil
		}
		pagination.Skip += pagination.Limit
	}
}

func maxConcurrent(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}
