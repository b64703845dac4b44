package models

// NotificationType represents the severity of a notification
type NotificationType string

const (
	NotificationTypeAlert   NotificationType = "alert"
	NotificationTypeInfo    NotificationType = "info"
	NotificationTypeSuccess NotificationType = "success"
	NotificationTypeWarning NotificationType = "warning"
)

// AppNotification is an append-only user alert. Entries are never mutated
// after creation except for the read flag, which is bulk-set, and are only
// removed by clearing the whole list.
type AppNotification struct {
	ID      string           `gorm:"type:uuid;primaryKey" json:"id"`
	Type    NotificationType `gorm:"not null" json:"type"`
	Title   string           `gorm:"not null" json:"title"`
	Message string           `gorm:"not null" json:"message"`

	// Creation time in epoch milliseconds.
	Timestamp int64 `gorm:"type:bigint;not null" json:"timestamp"`

	Read bool `gorm:"default:false" json:"read"`
}
