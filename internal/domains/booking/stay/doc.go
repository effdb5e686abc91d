// Package stay decides whether a requested stay is valid for a cabin and what it costs.
//
// Everything here is pure: the only clock input is the "now" passed by the caller and the
// existing bookings come in as an immutable snapshot, so equal inputs always produce equal
// outcomes. Dates are calendar days in the application timezone, written dd/mm/yyyy by
// staff and persisted as "yyyy-mm-dd 00:00:00".
//
// A stay occupies [start, end): a booking ending on the 15th and another starting on the
// 15th do not conflict.
package stay
