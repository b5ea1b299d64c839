// Package sheet reads uploaded vessel workbooks and renders report workbooks
// with excelize.
//
// Read takes the first worksheet, skips the header and returns one row per
// line from columns A to D (IMO, vessel name, timestamp, report label).
// Numeric timestamp cells are Excel date serials and are rendered as
// "YYYY-MM-DD HH:MM:SS" UTC; any other cell keeps its displayed text.
//
// Render writes the fixed eight-column report, one line per uploaded row with
// a non-empty IMO, pairing each with the first fetched report of the same IMO
// whose description matches the row's label case-insensitively.
package sheet
