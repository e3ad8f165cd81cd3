package chat

import (
	"sync"
	"time"

	"github.com/avdeyev/duochat/internal/handlers/dto"
	ws "github.com/avdeyev/duochat/internal/websocket"
)

// Peer — живое соединение одного из двух пользователей.
// Реализуется websocket.Client; в тестах подменяется фейком.
type Peer interface {
	SendEvent(eventType ws.EventType, data interface{}) error
	Close()
}

type entry struct {
	peer     Peer
	lastBeat time.Time
}

// Directory — реестр подключенных пользователей, единственный источник
// истины о том, кто онлайн. Все операции защищены мьютексом; сырая мапа
// наружу не отдается.
type Directory struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

func NewDirectory() *Directory {
	return &Directory{
		entries: make(map[string]*entry),
	}
}

// Join регистрирует соединение, вытесняя прежнее для того же имени
// (переподключение). Остальным рассылается user_status, а самому
// соединению — полный список онлайна.
func (d *Directory) Join(username string, peer Peer) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.entries[username] = &entry{peer: peer, lastBeat: time.Now()}

	status := dto.UserStatus{Username: username, Online: true}
	for name, e := range d.entries {
		if name == username {
			continue
		}
		e.peer.SendEvent(ws.EventUserStatus, status)
	}

	online := make([]string, 0, len(d.entries))
	for name := range d.entries {
		online = append(online, name)
	}
	peer.SendEvent(ws.EventOnlineUsers, online)
}

// Touch обновляет отметку heartbeat
func (d *Directory) Touch(username string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if e, ok := d.entries[username]; ok {
		e.lastBeat = time.Now()
	}
}

func (d *Directory) Get(username string) (Peer, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	e, ok := d.entries[username]
	if !ok {
		return nil, false
	}
	return e.peer, true
}

// Remove удаляет запись, только если она все еще принадлежит этому
// соединению. Запись, вытесненная переподключением, не трогается;
// повторный вызов безопасен.
func (d *Directory) Remove(username string, peer Peer) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	e, ok := d.entries[username]
	if !ok || e.peer != peer {
		return false
	}
	delete(d.entries, username)
	return true
}

func (d *Directory) Contains(username string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	_, ok := d.entries[username]
	return ok
}

func (d *Directory) ListOnline() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	online := make([]string, 0, len(d.entries))
	for name := range d.entries {
		online = append(online, name)
	}
	return online
}

// Broadcast рассылает событие всем, кроме except (может быть nil)
func (d *Directory) Broadcast(eventType ws.EventType, data interface{}, except Peer) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, e := range d.entries {
		if e.peer == except {
			continue
		}
		e.peer.SendEvent(eventType, data)
	}
}

// ExpiredEntry — запись, чей heartbeat старше таймаута на момент now
type ExpiredEntry struct {
	Username string
	Peer     Peer
}

// Expired возвращает снимок просроченных записей; сами записи не удаляет,
// это делает жнец после отправки session_expired
func (d *Directory) Expired(timeout time.Duration, now time.Time) []ExpiredEntry {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var expired []ExpiredEntry
	for name, e := range d.entries {
		if now.Sub(e.lastBeat) > timeout {
			expired = append(expired, ExpiredEntry{Username: name, Peer: e.peer})
		}
	}
	return expired
}
