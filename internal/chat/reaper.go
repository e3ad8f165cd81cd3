package chat

import (
	"context"
	"log"
	"time"

	ws "github.com/avdeyev/duochat/internal/websocket"
)

const (
	// DefaultSessionTimeout — сколько живет сессия без heartbeat
	DefaultSessionTimeout = 5 * time.Minute

	// DefaultReapInterval — период проверки; клиенты шлют heartbeat
	// примерно каждые 30 секунд
	DefaultReapInterval = time.Minute
)

// Reaper — фоновая задача, выселяющая сессии с протухшим heartbeat
type Reaper struct {
	dir      *Directory
	store    Store
	timeout  time.Duration
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc
}

func NewReaper(dir *Directory, store Store, timeout, interval time.Duration) *Reaper {
	if timeout <= 0 {
		timeout = DefaultSessionTimeout
	}
	if interval <= 0 {
		interval = DefaultReapInterval
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Reaper{
		dir:      dir,
		store:    store,
		timeout:  timeout,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Run крутит тикер до вызова Stop
func (r *Reaper) Run() {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			return
		case now := <-ticker.C:
			r.sweep(now)
		}
	}
}

func (r *Reaper) Stop() {
	r.cancel()
}

// sweep снимает срез просроченных записей под локом и выселяет их все
// разом; запись в хранилище уходит в отдельной горутине на каждую
// запись, чтобы медленный стор не тормозил тик
func (r *Reaper) sweep(now time.Time) {
	for _, exp := range r.dir.Expired(r.timeout, now) {
		exp.Peer.SendEvent(ws.EventSessionExpired, nil)
		exp.Peer.Close()
		r.dir.Remove(exp.Username, exp.Peer)

		username := exp.Username
		go func() {
			if err := r.store.SetOnline(username, false); err != nil {
				log.Printf("Failed to mark %s offline: %v", username, err)
			}
		}()

		log.Printf("User %s auto-logged out due to inactivity", username)
	}
}
