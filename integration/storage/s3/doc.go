// Package s3 serves objects stored in Amazon S3 and S3-compatible services
// (MinIO, DigitalOcean Spaces, Wasabi) as response containers.
//
// A Store is built from Config, which is read from the environment:
//
//	S3_BUCKET=uploads
//	S3_REGION=us-east-1
//	S3_ACCESS_KEY_ID=...        # optional, default AWS credential chain otherwise
//	S3_SECRET_KEY=...
//	S3_ENDPOINT=http://localhost:9000
//	S3_FORCE_PATH_STYLE=true    # required for MinIO
//	S3_BASE_URL=https://cdn.example.com
//
// Streaming an object through the response pipeline:
//
//	store, err := s3.New(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	resp.SetBody(store.Object("avatars/42.png"))
//
// The container forwards Range, If-None-Match and If-Modified-Since to S3,
// answers 404 for missing objects, 403 for denied access and 304 when the
// object is unchanged. Headers and cookies accumulated on the response are
// kept. For public buckets Store.Redirect sends the client to the object
// URL instead.
package s3
