package notify

// Notifier — побочные эффекты чата: push при появлении второго аккаунта,
// письмо при сообщении офлайновому адресату, письмо с экспортом истории.
// UserOnline и OfflineMessage — fire-and-forget, сбои только логируются.
type Notifier interface {
	UserOnline(username string)
	OfflineMessage(sender, preview string)
	ChatExport(subject, body string) error
}

// Noop используется в тестах и при пустой конфигурации
type Noop struct{}

func (Noop) UserOnline(string) {}

func (Noop) OfflineMessage(string, string) {}

func (Noop) ChatExport(string, string) error { return nil }
