// Package jwkscache keeps a locally persisted copy of an identity provider's
// JSON Web Key Sets and refreshes it in the background.
//
// Load returns cached keys without ever blocking on the network: a usable
// cached copy is returned immediately while a freshness check runs on its own
// goroutine, and a missing copy triggers a forced background fetch. A
// minimum-interval cooldown gates how often a realm is refreshed.
//
// The durable store and the HTTP transport are injected; MemStore and the
// ssmstore subpackage provide ready-made stores. Keyfunc bridges the cached
// keys into the golang-jwt library for token verification.
package jwkscache
