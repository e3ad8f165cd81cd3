package chat

import (
	"testing"
	"time"

	"github.com/avdeyev/duochat/internal/handlers/dto"
	"github.com/avdeyev/duochat/internal/models"
	ws "github.com/avdeyev/duochat/internal/websocket"
)

func TestJoinBroadcastsStatusAndSendsOnlineSet(t *testing.T) {
	dir := NewDirectory()
	hePeer := &fakePeer{}
	shePeer := &fakePeer{}

	dir.Join(models.UserHe, hePeer)

	online := hePeer.eventsOfType(ws.EventOnlineUsers)
	if len(online) != 1 {
		t.Fatalf("expected 1 online_users event for joiner, got %d", len(online))
	}
	if got := online[0].Data.([]string); len(got) != 1 || got[0] != models.UserHe {
		t.Fatalf("unexpected online set: %v", got)
	}

	dir.Join(models.UserShe, shePeer)

	statuses := hePeer.eventsOfType(ws.EventUserStatus)
	if len(statuses) != 1 {
		t.Fatalf("expected exactly 1 user_status broadcast, got %d", len(statuses))
	}
	status := statuses[0].Data.(dto.UserStatus)
	if status.Username != models.UserShe || !status.Online {
		t.Fatalf("unexpected status payload: %+v", status)
	}

	// Joiner не получает user_status о самом себе
	if got := shePeer.eventsOfType(ws.EventUserStatus); len(got) != 0 {
		t.Fatalf("joiner should not receive own status, got %d events", len(got))
	}

	online = shePeer.eventsOfType(ws.EventOnlineUsers)
	if len(online) != 1 || len(online[0].Data.([]string)) != 2 {
		t.Fatalf("second joiner should see both users online")
	}
}

func TestReconnectReplacesEntry(t *testing.T) {
	dir := NewDirectory()
	first := &fakePeer{}
	second := &fakePeer{}

	dir.Join(models.UserHe, first)
	dir.Join(models.UserHe, second)

	if got := dir.ListOnline(); len(got) != 1 {
		t.Fatalf("expected single directory entry after reconnect, got %v", got)
	}

	peer, ok := dir.Get(models.UserHe)
	if !ok || peer != Peer(second) {
		t.Fatal("latest connection should win after reconnect")
	}
}

func TestRemoveIsIdempotentAndSupersededSafe(t *testing.T) {
	dir := NewDirectory()
	first := &fakePeer{}
	second := &fakePeer{}

	dir.Join(models.UserHe, first)
	dir.Join(models.UserHe, second)

	// Удаление вытесненного соединения не трогает актуальную запись
	if dir.Remove(models.UserHe, first) {
		t.Fatal("removing superseded peer should be a no-op")
	}
	if !dir.Contains(models.UserHe) {
		t.Fatal("entry should survive removal of superseded peer")
	}

	if !dir.Remove(models.UserHe, second) {
		t.Fatal("removing current peer should succeed")
	}
	if dir.Remove(models.UserHe, second) {
		t.Fatal("second removal should be a no-op")
	}
}

func TestExpiredRespectsHeartbeat(t *testing.T) {
	dir := NewDirectory()
	hePeer := &fakePeer{}
	shePeer := &fakePeer{}

	dir.Join(models.UserHe, hePeer)
	dir.Join(models.UserShe, shePeer)

	timeout := 5 * time.Minute

	// Свежий heartbeat — никто не просрочен
	if got := dir.Expired(timeout, time.Now().Add(time.Minute)); len(got) != 0 {
		t.Fatalf("no entries should be expired within the window, got %v", got)
	}

	expired := dir.Expired(timeout, time.Now().Add(6*time.Minute))
	if len(expired) != 2 {
		t.Fatalf("both stale entries should expire, got %d", len(expired))
	}

	// Touch сбрасывает таймер
	dir.Touch(models.UserHe)
	now := time.Now().Add(4 * time.Minute)
	expired = dir.Expired(timeout, now)
	if len(expired) != 0 {
		t.Fatalf("touched entry must not be evicted, got %v", expired)
	}
}

func TestTouchUnknownUserIsNoop(t *testing.T) {
	dir := NewDirectory()
	dir.Touch("ghost")

	if dir.Contains("ghost") {
		t.Fatal("touch must not create entries")
	}
}
