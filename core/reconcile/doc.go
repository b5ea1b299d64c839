// Package reconcile provides the generic building blocks of the fleet
// reconciliation pipeline.
//
// # Join
//
// Intersect keeps the roster entries whose key appears in the uploaded
// identifiers (exact string equality, roster order). Project turns the matched
// entries into the de-duplicated list of serials sent upstream.
//
// # Per-item isolation
//
// ForEach runs a function over a batch through a bounded errgroup pool and
// collects one Result per item. Failures are recorded on the item instead of
// aborting the batch, so one vessel whose enrichment fails does not cost the
// whole report. A worker count of 1 keeps the calls strictly sequential.
//
// # Cache
//
// Cache is a TTL cache with singleflight stampede protection used for fleet
// rosters. A zero TTL disables it and every call goes upstream.
//
// # Usage Example
//
//	matched := reconcile.Intersect(imos, roster, func(e fleetapi.FleetEntry) string { return e.IMO.String() })
//	serials := reconcile.Project(matched, func(e fleetapi.FleetEntry) string { return e.Serial.String() })
//	results := reconcile.ForEach(ctx, reports, workers, enrichOne)
package reconcile
