package notifying

import (
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/affiliate-campaign-api/internal/domain"
	"github.com/vfg2006/affiliate-campaign-api/pkg/metrics"
)

const defaultBufferSize = 16

// Subscription é um canal de entrega ao vivo de um usuário.
// O canal é fechado pelo Hub no Unsubscribe ou quando o buffer enche.
type Subscription struct {
	UserID int
	events chan *domain.Notification
}

func (s *Subscription) Events() <-chan *domain.Notification {
	return s.events
}

// Hub mantém as assinaturas ativas por usuário
type Hub struct {
	mu          sync.RWMutex
	subscribers map[int]map[*Subscription]struct{}
	bufferSize  int
	closed      bool
}

func NewHub(bufferSize int) *Hub {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}

	return &Hub{
		subscribers: make(map[int]map[*Subscription]struct{}),
		bufferSize:  bufferSize,
	}
}

// Subscribe em um hub já fechado devolve assinatura com o canal fechado
func (h *Hub) Subscribe(userID int) *Subscription {
	sub := &Subscription{
		UserID: userID,
		events: make(chan *domain.Notification, h.bufferSize),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		close(sub.events)
		return sub
	}

	set, ok := h.subscribers[userID]
	if !ok {
		set = make(map[*Subscription]struct{})
		h.subscribers[userID] = set
	}
	set[sub] = struct{}{}
	metrics.NotificationSubscribers.Inc()

	return sub
}

// Unsubscribe é idempotente
func (h *Hub) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.remove(sub)
}

// remove exige h.mu travado para escrita
func (h *Hub) remove(sub *Subscription) {
	set, ok := h.subscribers[sub.UserID]
	if !ok {
		return
	}
	if _, ok := set[sub]; !ok {
		return
	}

	delete(set, sub)
	if len(set) == 0 {
		delete(h.subscribers, sub.UserID)
	}
	close(sub.events)
	metrics.NotificationSubscribers.Dec()
}

// Publish entrega sem bloquear e retorna quantas assinaturas receberam o evento.
// Assinaturas com buffer cheio são removidas.
func (h *Hub) Publish(userID int, notification *domain.Notification) int {
	delivered := 0
	var stale []*Subscription

	// envio sob RLock; o close só acontece sob Lock, então nunca enviamos em canal fechado
	h.mu.RLock()
	for sub := range h.subscribers[userID] {
		select {
		case sub.events <- notification:
			delivered++
		default:
			stale = append(stale, sub)
		}
	}
	h.mu.RUnlock()

	if len(stale) > 0 {
		h.mu.Lock()
		for _, sub := range stale {
			h.remove(sub)
		}
		h.mu.Unlock()

		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"dropped": len(stale),
		}).Warn("Assinaturas lentas removidas do hub de notificações")
	}

	return delivered
}

func (h *Hub) SubscriberCount(userID int) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subscribers[userID])
}

// Close encerra todas as assinaturas, usado no desligamento do servidor; assinaturas posteriores já nascem fechadas
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true

	for _, set := range h.subscribers {
		for sub := range set {
			h.remove(sub)
		}
	}
}
