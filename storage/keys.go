package storage

import "fmt"

// Key builders for the per-user blob layout. The separators differ between
// the dataset key and the rest for compatibility with the original layout.

// DataKey holds the project/task/team/user collections for one user.
func DataKey(namespace, userID string) string {
	return fmt.Sprintf("%s-data-%s", namespace, userID)
}

// CalendarKey holds the calendar event collection for one user.
func CalendarKey(namespace, userID string) string {
	return fmt.Sprintf("%s_calendar_events_%s", namespace, userID)
}

// CurrentUserKey holds the remembered session identity.
func CurrentUserKey(namespace string) string {
	return fmt.Sprintf("%s_current_user", namespace)
}

// LoginAttemptsKey holds the failed-login counter used for lockout.
func LoginAttemptsKey(namespace string) string {
	return fmt.Sprintf("%s_login_attempts", namespace)
}
