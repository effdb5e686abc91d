// Package timezone pins every calendar computation of the service to one configured zone.
//
// Booking dates are calendar days without a time of day, so "today", "start of day" and the
// midnight instants stored for stays all depend on the zone set through APP_TIMEZONE
// (an IANA name such as "Europe/Lisbon"). The zone is loaded when the package is imported
// and falls back to UTC when it is missing or unknown.
//
//	now := timezone.Now()
//	today := timezone.StartOfDay(now)
//	t, err := timezone.Parse("2006-01-02", "2024-01-01")
package timezone
