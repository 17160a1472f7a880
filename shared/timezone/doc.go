// Package timezone provides timezone utilities for the application.
//
// The timezone is configured via the APP_TIMEZONE environment variable
// and is automatically initialized when the package is imported.
// Use standard IANA timezone database names ("UTC", "Asia/Jakarta",
// "America/New_York") for reliable cross-platform compatibility.
package timezone
