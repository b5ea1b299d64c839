// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation (X-API-Key header or Bearer token). An empty
//     key disables it.
//   - rayid: assigns every request a RayID, stores it in the context locals
//     under "ray_id" and echoes it in the X-Ray-ID response header.
//
// Both are registered globally in the start command, rayid first so every
// log line of a request carries its RayID.
package middleware
