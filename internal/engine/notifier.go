// Package engine implements the in-memory core of the application: the
// notification emitter, the bill auto-pay scheduler, and the budget/goal
// alert evaluator. All functions take the current collections as slices and
// return new slices instead of mutating shared state, so a single owner
// (the session service) remains the only writer.
package engine

import (
	"fmt"
	"strings"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/uuid"
)

// Push prepends a new notification to the list (most recent first) and
// returns the updated list. The input slice is not modified.
func Push(list []models.AppNotification, now time.Time, typ models.NotificationType, title, message string) []models.AppNotification {
	n := models.AppNotification{
		ID:        uuid.New(),
		Type:      typ,
		Title:     title,
		Message:   message,
		Timestamp: now.UnixMilli(),
	}

	out := make([]models.AppNotification, 0, len(list)+1)
	out = append(out, n)
	out = append(out, list...)
	return out
}

// MarkAllRead returns a copy of the list with every entry's read flag set.
func MarkAllRead(list []models.AppNotification) []models.AppNotification {
	out := make([]models.AppNotification, len(list))
	copy(out, list)
	for i := range out {
		out[i].Read = true
	}
	return out
}

// Clear returns an empty notification list.
func Clear() []models.AppNotification {
	return []models.AppNotification{}
}

// MentionedRecently reports whether any notification created within the
// given window mentions name in its message text. Matching is a substring
// heuristic rather than an exact key; it exists as a named predicate so a
// stricter (id, day) match can replace it without touching callers.
func MentionedRecently(list []models.AppNotification, name string, now time.Time, window time.Duration) bool {
	cutoff := now.Add(-window).UnixMilli()
	for _, n := range list {
		if n.Timestamp >= cutoff && strings.Contains(n.Message, name) {
			return true
		}
	}
	return false
}

// money formats an amount in cents for notification text.
func money(cents int64) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100)
}
