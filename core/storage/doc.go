// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the few operations needed to publish check reports,
// and works with both AWS S3 and self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface makes storage interactions easy to mock in unit tests
// (see core/storage/mocks).
//
//   - BucketExists: Verifies access to the target bucket.
//   - MakeBucket: Creates the bucket on first publish.
//   - PutObject: Uploads a report (with size and content type).
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
