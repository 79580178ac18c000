// Package resilience groups the reliability building blocks used around
// external service calls: retry with exponential backoff (retry) and
// circuit breaking (circuitbreaker). The summarization providers and the
// Telegram delivery path compose both so that a flaky upstream degrades
// into logged failures and user-visible apologies instead of crashes.
package resilience
