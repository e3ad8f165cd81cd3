package notify

import (
	"log"
	"os"
)

// FromEnv собирает нотификатор из переменных окружения.
// Ненастроенные каналы молча пропускаются.
func FromEnv() Notifier {
	n := &envNotifier{
		smtpHost:  getenv("SMTP_HOST", "smtp.gmail.com"),
		smtpPort:  getenv("SMTP_PORT", "587"),
		emailUser: os.Getenv("EMAIL_USER"),
		emailPass: os.Getenv("EMAIL_PASS"),
		emailTo:   getenv("EMAIL_TO", os.Getenv("EMAIL_USER")),
		pushToken: os.Getenv("PUSHOVER_TOKEN"),
		pushUser:  os.Getenv("PUSHOVER_USER"),
	}

	if n.emailConfigured() {
		log.Printf("Email notifications configured for %s", n.emailTo)
	} else {
		log.Println("Email not configured - check EMAIL_USER and EMAIL_PASS")
	}
	if n.pushConfigured() {
		log.Println("Pushover notifications configured")
	}

	return n
}

type envNotifier struct {
	smtpHost  string
	smtpPort  string
	emailUser string
	emailPass string
	emailTo   string
	pushToken string
	pushUser  string
}

func (n *envNotifier) emailConfigured() bool {
	return n.emailUser != "" && n.emailPass != ""
}

func (n *envNotifier) pushConfigured() bool {
	return n.pushToken != "" && n.pushUser != ""
}

// UserOnline шлет push, когда "she" заходит в чат
func (n *envNotifier) UserOnline(username string) {
	if !n.pushConfigured() {
		return
	}
	if err := n.sendPush("Chat Notification", "She is online in the chat!"); err != nil {
		log.Printf("Push notification error: %v", err)
		return
	}
	log.Println("Push notification sent")
}

// OfflineMessage шлет письмо о сообщении, пока адресат офлайн
func (n *envNotifier) OfflineMessage(sender, preview string) {
	if !n.emailConfigured() {
		return
	}
	body := "She sent: " + preview
	if err := n.sendEmail("New message from She", body); err != nil {
		log.Printf("Message notification error: %v", err)
	}
}

// ChatExport отправляет текстовый экспорт истории
func (n *envNotifier) ChatExport(subject, body string) error {
	if !n.emailConfigured() {
		return nil
	}
	return n.sendEmail(subject, body)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
