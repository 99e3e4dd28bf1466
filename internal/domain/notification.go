package domain

import (
	"fmt"
	"strings"
	"time"
)

// NotificationType drives the icon and colour of a notification.
type NotificationType string

const (
	NotifyInfo    NotificationType = "info"
	NotifySuccess NotificationType = "success"
	NotifyWarning NotificationType = "warning"
	NotifyError   NotificationType = "error"
)

// ParseNotificationType accepts any casing of a known type.
func ParseNotificationType(s string) (NotificationType, error) {
	switch n := NotificationType(strings.ToLower(strings.TrimSpace(s))); n {
	case NotifyInfo, NotifySuccess, NotifyWarning, NotifyError:
		return n, nil
	}
	return "", fmt.Errorf("notification type %q: %w", s, ErrUnknownValue)
}

// Notification is a header bell entry.
type Notification struct {
	ID      string
	Type    NotificationType
	Message string
	Date    time.Time
	Read    bool
}
