// Package server holds the HTTP server configuration.
//
// While the start command builds the Fiber application, this package defines
// the settings it reads: listen port, optional API key, the upload body limit
// and the read timeout. Helpers apply the defaults when values are unset.
package server
