// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to provide a simplified interface for the read
// operations the fetcher needs: streaming an object, downloading it to a local
// file, and checking bucket access. This abstraction supports both AWS S3 and
// self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the target bucket.
//   - GetObject: Retrieves content as a stream.
//   - FGetObject: Streams an object directly to a local file path.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	rc, err := client.GetObject(ctx, "data", "reports/daily.json", minio.GetObjectOptions{})
package storage
