package helpers

import "time"

const (
	// DatabaseDatetimeLayout is the format used for created_at/updated_at
	// columns, which the legacy schema stores as plain strings.
	DatabaseDatetimeLayout = "2006-01-02 15:04:05"
	// DatetimeLayout is the Brazilian display format used in API payloads.
	DatetimeLayout = "02/01/2006 15:04:05"
)

// FormatDatabaseDatetime renders t in the storage format (yyyy-mm-dd hh:mm:ss).
func FormatDatabaseDatetime(t time.Time) string {
	return t.Format(DatabaseDatetimeLayout)
}

// FormatDatetime renders t in the display format (dd/mm/yyyy hh:mm:ss).
func FormatDatetime(t time.Time) string {
	return t.Format(DatetimeLayout)
}
