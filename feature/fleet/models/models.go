package models

import (
	"fleet-report/core/fleetapi"
	"fleet-report/core/reconcile"
)

// UploadedRow is one data row of the uploaded workbook.
type UploadedRow struct {
	// IMO is the vessel identifier from column A.
	IMO string `json:"imo"`
	// VesselName is column B.
	VesselName string `json:"vessel_name"`
	// Timestamp is column C; date serials are rendered as "YYYY-MM-DD HH:MM:SS" UTC.
	Timestamp string `json:"timestamp"`
	// Report is the report label from column D.
	Report string `json:"report"`
}

// Report is the latest report of a matched vessel plus its enrichment.
type Report struct {
	ReportID    string `json:"report_id"`
	Serial      string `json:"serial"`
	IMO         string `json:"imo"`
	VesselName  string `json:"vessel_name"`
	Timestamp   string `json:"timestamp"`
	Description string `json:"description"`

	// MMSI is filled from the extended vessel info during enrichment.
	MMSI string `json:"mmsi,omitempty"`
	// AISLatest is the newest AIS position time since Timestamp.
	AISLatest string `json:"ais_latest,omitempty"`
	// WarehouseLatest is the newest warehouse position time since Timestamp.
	WarehouseLatest string `json:"warehouse_latest,omitempty"`
	// EnrichError describes why enrichment of this report failed, if it did.
	EnrichError string `json:"enrich_error,omitempty"`
}

// FromAPI converts a fleet API report.
func FromAPI(r fleetapi.Report) Report {
	return Report{
		ReportID:    r.ReportID.String(),
		Serial:      r.Serial.String(),
		IMO:         r.IMO.String(),
		VesselName:  r.Name,
		Timestamp:   r.Timestamp,
		Description: r.Description,
	}
}

// UploadResponse is the JSON body of a successful upload.
type UploadResponse struct {
	Message    string             `json:"Message"`
	FileName   string             `json:"FileName"`
	RunID      string             `json:"RunID"`
	Matched    int                `json:"Matched"`
	Enrichment *reconcile.Summary `json:"Enrichment,omitempty"`
}
