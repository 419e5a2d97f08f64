// Package views exposes memoized derived views over the plugin extension
// registry.
//
// A Views instance subscribes once to the registry's change channel and
// bumps an internal revision on every notification. Each derived view is
// recomputed only when the revision (or an explicit argument such as an
// extension point name) changes; otherwise the cached result is returned.
// This is a memoization contract, not a cache with its own invalidation
// policy.
package views
