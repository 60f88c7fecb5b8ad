package models

// NotificationType categorizes notifications for display.
type NotificationType string

const (
	NotificationTypeBudget    NotificationType = "budget_alert"
	NotificationTypeGoal      NotificationType = "goal_reached"
	NotificationTypeRecurring NotificationType = "recurring_posted"
	NotificationTypeSystem    NotificationType = "system"
)

// Notification is a best-effort badge item; the client polls for the unread
// count and never relies on delivery.
type Notification struct {
	Base
	UserID  string           `gorm:"index;not null" json:"-"`
	Type    NotificationType `gorm:"not null;default:'system'" json:"type"`
	Title   string           `gorm:"not null" json:"title"`
	Message string           `json:"message"`
	IsRead  bool             `gorm:"default:false;index" json:"is_read"`
}

// NotificationSummary carries the unread badge count.
type NotificationSummary struct {
	UnreadCount int `json:"unread_count"`
}
