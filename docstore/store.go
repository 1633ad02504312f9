// Package docstore is the keyed document store the portal persists into.
// Values are opaque JSON documents addressed by a string key; the domain
// services decide what is stored and when, the store only moves bytes.
package docstore

import "context"

// Store is a minimal keyed document store. Get reports absence through the
// boolean rather than an error: a missing key is a normal outcome for every
// caller in this system.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
