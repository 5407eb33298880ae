// Package wake schedules a timed system suspend with rtcwake.
//
// A wake time is either an absolute local timestamp or a time of day that
// resolves to its next occurrence. An optional zenity dialog gates the
// suspend; any answer other than yes skips it.
package wake
