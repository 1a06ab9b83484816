// Package constants holds the small set of fixed numbers the protocol's
// invariants depend on, kept in one place separate from the logic that
// uses them.
package constants

// MinHashKeyLen is the minimum length, in bytes, of each of the five HMAC
// keys k0..k4 Setup samples for the hash family.
const MinHashKeyLen = 16

// NumHashKeys is the size of the keyed hash family H0..H4.
const NumHashKeys = 5

// MinRingSize is the minimum number of members a ring may contain.
const MinRingSize = 2
