package notify

import (
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const pushoverURL = "https://api.pushover.net/1/messages.json"

var pushClient = &http.Client{Timeout: 10 * time.Second}

// sendPush отправляет уведомление через Pushover
func (n *envNotifier) sendPush(title, message string) error {
	form := url.Values{
		"token":   {n.pushToken},
		"user":    {n.pushUser},
		"title":   {title},
		"message": {message},
	}

	resp, err := pushClient.PostForm(pushoverURL, form)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("pushover returned status %d", resp.StatusCode)
	}
	return nil
}
