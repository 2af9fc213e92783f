// Package blob abstracts the external object store holding event images.
// Events reference blobs by URL; the blob store owns the bytes.
package blob

import "context"

// Store is the interface the lifecycle manager uses to manage image blobs.
type Store interface {
	// Put uploads data and returns the public URL of the stored blob.
	Put(ctx context.Context, data []byte, contentType string) (string, error)

	// Delete removes the blob at the given URL. Deleting a URL this store
	// did not issue is an error.
	Delete(ctx context.Context, url string) error
}
