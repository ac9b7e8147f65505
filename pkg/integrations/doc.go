// Package integrations provides the shared HTTP client used by upstream API
// clients.
//
// # Overview
//
// [Client] performs GET requests and returns raw bodies. It has no retry
// policy: a request either completes or fails with an error
// wrapping [ErrNetwork], and the caller decides what a failure means.
//
// # Caching
//
// When constructed with a non-zero TTL, [Client.GetText] serves repeated
// URLs from a [cache.Cache]. Only successful (2xx) responses are stored.
//
// # Hooks
//
// Every request emits [observability.HTTPHooks] events, and cache lookups
// emit [observability.CacheHooks] events.
package integrations
