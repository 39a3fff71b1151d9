// Package notifier announces trips on social platforms.
//
// The Twitter notifier signs requests with OAuth1, keeps each post within
// the 280 character limit and pauses between posts. DryRunNotifier writes
// the same posts to a writer instead. TelegramNotifier sends HTML messages
// through the Bot API, one per trip or as a single digest.
package notifier
