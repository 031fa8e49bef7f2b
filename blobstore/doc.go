// Package blobstore abstracts the durable root that holds persisted
// collection envelopes.
//
// The default is LocalStore (one directory on the local file system). The
// s3 and minio subpackages provide remote roots with the same contract for
// deployments that keep the data directory in object storage.
package blobstore
