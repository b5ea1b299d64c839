// Package health reports on the dependencies the report pipeline uses.
//
// # Checks Provided
//
//   - Output: the configured report sink can be listed.
//   - Storage: the report bucket exists in object storage (only with the s3 sink).
//   - Warehouse: the position table has the MMSI and timestamp columns the
//     enrichment lookup queries.
//
// Dependencies that are not configured are reported as skipped by the
// combined check and as 503 by their own endpoint.
//
// # HTTP Endpoints
//
//   - GET /health : Runs all checks.
//   - GET /health/storage : Checks the bucket (supports ?fix=true).
//   - GET /health/warehouse : Checks the warehouse table.
package health
