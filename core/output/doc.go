// Package output stores generated fleet reports.
//
// Two sinks implement the Sink interface:
//   - LocalSink writes into a directory (Reports/ by default) through afero,
//     publishing each file with a temp-file-and-rename so a failed run never
//     leaves a partial workbook behind.
//   - ObjectSink uploads into the configured storage bucket.
//
// With IsolateRuns enabled, each report lives under its run ID, so two uploads
// of identically named workbooks no longer overwrite one another.
package output
