// Package storage moves uploaded files to durable locations and hands back
// public URLs.
package storage

import "context"

type ObjectStore interface {
	// Transfer moves the local file into the store and returns its durable
	// public URL. The local temp file is removed regardless of outcome.
	Transfer(ctx context.Context, localPath string) (string, error)
}
