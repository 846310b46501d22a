// Package fetch provides typed, logged accessors over raw storage reads.
//
// It is a thin layer over core/storage: each operation resolves a bucket and
// object key, requests the object, decodes the payload, and reports failures.
// Connection handling, retries, and credentials all live in the wrapped
// storage client.
//
// # Operations
//
//   - ParseObjectPath: Splits a combined "s3://bucket/key" path.
//   - ReadJSON / ReadJSONWithContent: Decode an object as a JSON mapping,
//     optionally returning the raw text as well.
//   - ReadCSVRecords: Decode a CSV object into header-keyed records.
//   - ReadCSVTable: Decode a CSV object into a gota dataframe.
//   - Download: Stream an object to a local file.
//
// # Error Handling
//
// Every failure is logged for observability and then returned unchanged, so
// the caller keeps full control over retry and fallback decisions. Storage
// provider errors keep their code and message; malformed paths wrap
// ErrInvalidPath.
//
// # HTTP Endpoints
//
//   - GET /fetch/json : Read a JSON object.
//   - GET /fetch/json/raw : Read a JSON object plus its raw text.
//   - GET /fetch/csv : Read a CSV object (supports ?table=true).
//   - POST /fetch/download : Download an object to a local file.
package fetch
