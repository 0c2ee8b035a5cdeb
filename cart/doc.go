// Package cart implements the client-side shopping cart.
//
// The cart is owned by a single client and is the source of truth for what
// the shopper sees. Every mutation can be mirrored elsewhere through a
// MirrorFunc; the mirror is advisory and never affects the local cart.
package cart
