// Package fleet turns an uploaded workbook of vessel IMO numbers into a
// report workbook built from the fleet tracking API.
//
// # Pipeline
//
//  1. Reject empty uploads and missing credentials.
//  2. Read the workbook (see package sheet).
//  3. Fetch the caller's fleet roster.
//  4. Keep roster entries whose IMO appears in the upload (exact match).
//  5. Collect their serials.
//  6. Fetch the latest reports for all serials in one request.
//  7. Optionally enrich each report with its MMSI, the newest AIS position and
//     the newest warehouse position. Failures are recorded per report.
//  8. Render the report workbook and store it through the configured sink,
//     or return it directly when streaming.
//
// # HTTP Endpoints
//
//   - POST /api/fleet/upload : multipart fields file, username, password, enrich (supports ?stream=true).
//   - GET /api/fleet/reports : lists stored reports.
//   - GET /api/fleet/reports/:name : downloads a stored report (supports ?run=<id>).
package fleet
