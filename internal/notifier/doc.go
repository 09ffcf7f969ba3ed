// Package notifier provides notification interfaces and implementations
// for announcing newly-posted swim meets.
//
// The notifier package supports posting meet announcements to Twitter.
// It handles OAuth authentication, rate limiting between posts, and
// message formatting.
package notifier
