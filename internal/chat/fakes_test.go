package chat

import (
	"errors"
	"sync"
	"time"

	"github.com/avdeyev/duochat/internal/models"
	ws "github.com/avdeyev/duochat/internal/websocket"
)

type recordedEvent struct {
	Type ws.EventType
	Data interface{}
}

type fakePeer struct {
	mu     sync.Mutex
	events []recordedEvent
	closed bool
}

func (p *fakePeer) SendEvent(eventType ws.EventType, data interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{Type: eventType, Data: data})
	return nil
}

func (p *fakePeer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
}

func (p *fakePeer) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

func (p *fakePeer) eventCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

func (p *fakePeer) eventsOfType(eventType ws.EventType) []recordedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []recordedEvent
	for _, e := range p.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

type onlineChange struct {
	username string
	online   bool
}

type fakeStore struct {
	mu       sync.Mutex
	saved    []*models.Message
	nextID   uint
	changes  []onlineChange
	failSave bool
}

func (s *fakeStore) SaveMessage(message *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSave {
		return errors.New("store unavailable")
	}
	s.nextID++
	message.ID = s.nextID
	copied := *message
	s.saved = append(s.saved, &copied)
	return nil
}

func (s *fakeStore) MarkMessagesRead(reader string, ids []uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	wanted := make(map[uint]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	for _, m := range s.saved {
		if wanted[m.ID] && m.Receiver == reader {
			m.IsRead = true
		}
	}
	return nil
}

func (s *fakeStore) SetOnline(username string, online bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.changes = append(s.changes, onlineChange{username: username, online: online})
	return nil
}

func (s *fakeStore) savedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.saved)
}

func (s *fakeStore) message(id uint) *models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.saved {
		if m.ID == id {
			copied := *m
			return &copied
		}
	}
	return nil
}

func (s *fakeStore) wentOffline(username string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.changes {
		if c.username == username && !c.online {
			return true
		}
	}
	return false
}

type fakeNotifier struct {
	mu       sync.Mutex
	online   []string
	offline  []string
	exported []string
}

func (n *fakeNotifier) UserOnline(username string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.online = append(n.online, username)
}

func (n *fakeNotifier) OfflineMessage(sender, preview string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.offline = append(n.offline, preview)
}

func (n *fakeNotifier) ChatExport(subject, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.exported = append(n.exported, subject)
	return nil
}

func (n *fakeNotifier) offlineCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.offline)
}

func (n *fakeNotifier) onlineCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.online)
}

// waitFor опрашивает условие до секунды; асинхронные побочные эффекты
// уходят в отдельных горутинах
func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}
