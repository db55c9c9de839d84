// Package notify delivers the final pipeline outcome to a caller-configured
// webhook.
//
// Delivery is best-effort: one POST, a fixed timeout, no retry, and no
// authentication. Failures are logged and swallowed so a broken webhook can
// never affect a publication that already succeeded. When no webhook is
// configured a no-op dispatcher is returned.
package notify
