package fleetapi

import "time"

// Config holds configuration for the fleet tracking API and the pipeline
// that drives it.
type Config struct {
	// URL is the single action endpoint of the fleet API.
	URL string `mapstructure:"url" default:"https://otis.stratumfive.com/api/otis.ashx"`
	// AISURL receives AIS history requests. Empty means URL.
	AISURL string `mapstructure:"ais_url" default:""`
	// AISAPIKey authenticates AIS history requests.
	AISAPIKey string `mapstructure:"ais_api_key" default:""`
	// UserAgent is sent inside the profile request parameters.
	UserAgent string `mapstructure:"user_agent" default:"Mozilla/5.0"`
	// TimeoutSeconds bounds each outbound request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"60"`
	// Enrich turns on AIS and warehouse enrichment when the request does not say.
	Enrich bool `mapstructure:"enrich" default:"false"`
	// EnrichWorkers is how many reports are enriched at once. 1 keeps it sequential.
	EnrichWorkers int `mapstructure:"enrich_workers" default:"1"`
	// RosterCacheTTLSeconds caches rosters per user. 0 disables the cache.
	RosterCacheTTLSeconds int `mapstructure:"roster_cache_ttl_seconds" default:"0"`
}

// RosterCacheTTL returns the roster cache lifetime.
func (c Config) RosterCacheTTL() time.Duration {
	if c.RosterCacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.RosterCacheTTLSeconds) * time.Second
}
