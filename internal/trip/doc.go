// Package trip provides the trip record extracted from the BCMC event listing
// and the values derived from it.
//
// A Trip is built once per extraction and never mutated afterwards. Derived
// values (spots left, multi-day detection, calendar dates, grade descriptions)
// are computed on demand from the raw display fields so that every consumer
// (HTML report, calendar, feed, notifier) agrees on them.
package trip
