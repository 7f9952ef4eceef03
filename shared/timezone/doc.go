// Package timezone pins every business-facing time to the restaurant's zone (APP_TIMEZONE, IANA
// names such as "Asia/Jakarta"). Audit columns, token issue times and the daily buckets of the
// sales report all read the clock through here, so a day always starts at local midnight.
//
//	now := timezone.Now()
//	day, err := timezone.ParseDay("2024-01-01")
//	closing := timezone.EndOfDay(day)
//
// An empty or unknown zone falls back to UTC with a log line.
package timezone
