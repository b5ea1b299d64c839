// Package utils provides small helpers shared by the fleet report packages:
// loose value conversion for JSON envelopes and form fields, and the
// timestamp parsing and formatting rules every report column follows.
package utils
