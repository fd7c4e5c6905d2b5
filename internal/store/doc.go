// Package store holds the storefront's in-memory view of the remote catalog and homepage
// layout, plus the per-shopper sessions (cart, wishlist, signed-in profile).
//
// The Store is the only component that talks to the remote tables for reads, and the only
// place where remote rows are translated to domain values. Writes follow one rule: the
// remote write must succeed before local state changes, and a failed write is followed by a
// full Refresh so memory matches the remote tables again.
package store
