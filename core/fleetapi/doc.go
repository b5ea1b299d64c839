// Package fleetapi is the client for the third-party fleet tracking API.
//
// Every call is a POST to a single endpoint. Profile, report and extended
// vessel lookups send a form field `data` holding an XML `otisrequest`
// envelope that carries the caller's login, an action code and a parameter
// block; the envelope is produced by encoding/xml so credentials and serials
// are escaped. AIS history lookups send a JSON body with the configured API
// key. All responses are JSON envelopes of the shape {"data": {...}}.
//
// A non-success status is reported as ErrStatus and a missing data block as
// ErrEmpty. Nothing is retried.
//
// # Actions
//
//   - GetUserProfile: the roster (serial and IMO per vessel).
//   - GetLatestReports: latest report for every serial in one request.
//   - GetVesselExtendedInfo: extended record, used for the MMSI.
//   - GetAisHistory: AIS positions for an MMSI in a time window.
package fleetapi
