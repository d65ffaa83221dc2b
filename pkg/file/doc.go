// Package file provides the storage side of the upload pipeline: content signature
// detection and write-once storage backends for the local filesystem and S3.
//
// # Content Detection
//
// Detect classifies bytes by their leading signature, ignoring names and declared types:
//
//	d, ok := file.Detect(data)
//	if !ok {
//		// no signature: plain text, CSV, JSON, XML, or something unknown
//	}
//	fmt.Println(d.MIME, d.Confidence)
//
// Executables (ELF, PE, Mach-O) and shebang scripts are part of the signature table
// so that they are always recognized, whatever they claim to be.
//
// # Storage
//
// The Storage interface covers what an upload needs: directory provisioning, a
// write-once Write, best-effort Delete and the Root every key resolves against.
//
//	storage, err := file.NewLocalStorage("/var/uploads")
//	if err != nil {
//		return err
//	}
//
//	if err := storage.EnsureDir(ctx, "sketches"); err != nil {
//		return err
//	}
//	obj, err := storage.Write(ctx, "sketches/photo_1700000000000_ab12cd34.png", data, "image/png")
//	if errors.Is(err, file.ErrFileExists) {
//		// never overwritten
//	}
//
//	publicPath := file.PublicPath(obj.Key) // "/sketches/photo_1700000000000_ab12cd34.png"
//
// S3 and S3-compatible services:
//
//	storage, err := file.NewS3Storage(ctx, file.S3Config{
//		Bucket: "uploads",
//		Region: "us-east-1",
//		Prefix: "tenants",
//	})
//
// # Security Considerations
//
//   - Every key is resolved inside the storage root; traversal yields ErrInvalidPath
//   - Files are created exclusively (O_EXCL locally, If-None-Match on S3)
//   - Writes ignore caller cancellation, so a started write is never cut short
//   - WithAtomicWrites stages local writes in a temporary file and links them into place
//
// # Error Handling
//
// S3-specific errors are mapped to generic file errors for consistency:
//   - NoSuchBucket -> ErrBucketNotFound
//   - NoSuchKey, NotFound -> ErrFileNotFound
//   - PreconditionFailed -> ErrFileExists
//   - AccessDenied -> ErrAccessDenied
package file
