package fleetapi

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fleet-report/core/utils"

	"github.com/goccy/go-json"
)

// Action codes understood by the fleet API.
const (
	ActionUserProfile        = "GetUserProfile"
	ActionLatestReports      = "GetLatestReports"
	ActionVesselExtendedInfo = "GetVesselExtendedInfo"
	ActionAISHistory         = "GetAisHistory"
)

var (
	// ErrStatus is returned when the API answers with a non-success status.
	ErrStatus = errors.New("fleet api returned non-success status")
	// ErrEmpty is returned when the envelope carries no data.
	ErrEmpty = errors.New("fleet api returned no data")
)

// Client talks to the fleet tracking API.
type Client struct {
	url       string
	aisURL    string
	aisAPIKey string
	userAgent string
	http      *http.Client
}

// NewClient creates a Client from cfg. httpClient may be nil.
func NewClient(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		timeout := cfg.TimeoutSeconds
		if timeout <= 0 {
			timeout = 60
		}
		httpClient = &http.Client{Timeout: time.Duration(timeout) * time.Second}
	}

	aisURL := cfg.AISURL
	if aisURL == "" {
		aisURL = cfg.URL
	}

	return &Client{
		url:       cfg.URL,
		aisURL:    aisURL,
		aisAPIKey: cfg.AISAPIKey,
		userAgent: cfg.UserAgent,
		http:      httpClient,
	}
}

type otisRequest struct {
	XMLName        xml.Name       `xml:"otisrequest"`
	Login          string         `xml:"login"`
	Password       string         `xml:"password"`
	Action         string         `xml:"action"`
	ResponseFormat string         `xml:"responseformat"`
	Parameters     otisParameters `xml:"parameters"`
}

type otisParameters struct {
	UserAgent string   `xml:"useragent,omitempty"`
	Serials   []string `xml:"serial"`
}

type aisRequest struct {
	Action     string        `json:"action"`
	APIKey     string        `json:"apikey,omitempty"`
	Parameters aisParameters `json:"parameters"`
}

type aisParameters struct {
	MMSI string `json:"mmsi"`
	From string `json:"from"`
	To   string `json:"to"`
}

// GetFleet returns the roster visible to creds.
func (c *Client) GetFleet(ctx context.Context, creds Credentials) ([]FleetEntry, error) {
	var data fleetData
	err := c.callAction(ctx, creds, ActionUserProfile, otisParameters{UserAgent: c.userAgent}, &data)
	if err != nil {
		return nil, err
	}
	if data.Fleet == nil {
		return nil, fmt.Errorf("%s: %w", ActionUserProfile, ErrEmpty)
	}
	return data.Fleet, nil
}

// GetLatestReports returns the latest reports for all serials in one request.
func (c *Client) GetLatestReports(ctx context.Context, creds Credentials, serials []string) ([]Report, error) {
	var data reportsData
	if err := c.callAction(ctx, creds, ActionLatestReports, otisParameters{Serials: serials}, &data); err != nil {
		return nil, err
	}
	if data.Reports == nil {
		return nil, fmt.Errorf("%s: %w", ActionLatestReports, ErrEmpty)
	}
	return data.Reports, nil
}

// GetVesselExtendedInfo returns the first extended record for serial.
func (c *Client) GetVesselExtendedInfo(ctx context.Context, creds Credentials, serial string) (*VesselInfo, error) {
	var data vesselsData
	if err := c.callAction(ctx, creds, ActionVesselExtendedInfo, otisParameters{Serials: []string{serial}}, &data); err != nil {
		return nil, err
	}
	if len(data.Vessels) == 0 {
		return nil, fmt.Errorf("%s for serial %s: %w", ActionVesselExtendedInfo, serial, ErrEmpty)
	}
	return &data.Vessels[0], nil
}

// GetAisHistory returns the AIS positions of mmsi between from and to.
func (c *Client) GetAisHistory(ctx context.Context, mmsi string, from, to time.Time) ([]AISPosition, error) {
	body, err := json.Marshal(aisRequest{
		Action: ActionAISHistory,
		APIKey: c.aisAPIKey,
		Parameters: aisParameters{
			MMSI: mmsi,
			From: utils.FormatTimestamp(from),
			To:   utils.FormatTimestamp(to),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", ActionAISHistory, err)
	}

	var data aisData
	if err := c.do(ctx, c.aisURL, ActionAISHistory, "application/json", body, &data); err != nil {
		return nil, err
	}
	return data.Positions, nil
}

func (c *Client) callAction(ctx context.Context, creds Credentials, action string, params otisParameters, out any) error {
	envelope, err := xml.Marshal(otisRequest{
		Login:          creds.Username,
		Password:       creds.Password,
		Action:         action,
		ResponseFormat: "json",
		Parameters:     params,
	})
	if err != nil {
		return fmt.Errorf("encode %s request: %w", action, err)
	}

	form := url.Values{"data": {string(envelope)}}
	return c.do(ctx, c.url, action, "application/x-www-form-urlencoded", []byte(form.Encode()), out)
}

func (c *Client) do(ctx context.Context, endpoint, action, contentType string, body []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create %s request: %w", action, err)
	}
	req.Header.Set("Content-Type", contentType+"; charset=utf-8")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", action, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s: %w: %d %s", action, ErrStatus, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", action, err)
	}

	return decodeEnvelope(action, raw, out)
}
