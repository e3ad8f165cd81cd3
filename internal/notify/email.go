package notify

import (
	"fmt"
	"net/smtp"
	"strings"
)

// sendEmail отправляет простое текстовое письмо через SMTP
func (n *envNotifier) sendEmail(subject, body string) error {
	addr := n.smtpHost + ":" + n.smtpPort
	auth := smtp.PlainAuth("", n.emailUser, n.emailPass, n.smtpHost)

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", n.emailUser)
	fmt.Fprintf(&msg, "To: %s\r\n", n.emailTo)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	return smtp.SendMail(addr, auth, n.emailUser, []string{n.emailTo}, []byte(msg.String()))
}
