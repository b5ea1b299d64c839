package fleetapi

import (
	"fleet-report/core/utils"

	"github.com/goccy/go-json"
)

// Credentials are the fleet API login supplied by the caller of each request.
type Credentials struct {
	Username string
	Password string
}

// Valid reports whether both fields are present.
func (c Credentials) Valid() bool {
	return c.Username != "" && c.Password != ""
}

// FlexString decodes JSON strings and numbers alike. The API returns IMO,
// MMSI and serial numbers in either form.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = FlexString(utils.ToString(v))
	return nil
}

// String returns the decoded value.
func (f FlexString) String() string {
	return string(f)
}

// FleetEntry is one vessel of the caller's roster.
type FleetEntry struct {
	Serial FlexString `json:"serial"`
	IMO    FlexString `json:"imo"`
	Name   string     `json:"name,omitempty"`
}

// Report is the latest status report of one vessel.
type Report struct {
	ReportID    FlexString `json:"reportId"`
	Serial      FlexString `json:"serial"`
	IMO         FlexString `json:"imo"`
	Name        string     `json:"name"`
	Timestamp   string     `json:"timestamp"`
	Description string     `json:"description"`
}

// VesselInfo is the extended vessel record; MMSI is what enrichment needs.
type VesselInfo struct {
	Serial   FlexString `json:"serial"`
	IMO      FlexString `json:"imo"`
	MMSI     FlexString `json:"mmsi"`
	Name     string     `json:"name,omitempty"`
	CallSign string     `json:"callsign,omitempty"`
	Flag     string     `json:"flag,omitempty"`
}

// AISPosition is one AIS history point.
type AISPosition struct {
	MMSI      FlexString `json:"mmsi"`
	Timestamp string     `json:"timestamp"`
	Latitude  float64    `json:"lat,omitempty"`
	Longitude float64    `json:"lon,omitempty"`
}

type fleetData struct {
	Fleet []FleetEntry `json:"fleet"`
}

type reportsData struct {
	Reports []Report `json:"reports"`
}

type vesselsData struct {
	Vessels []VesselInfo `json:"vessels"`
}

type aisData struct {
	Positions []AISPosition `json:"positions"`
}
