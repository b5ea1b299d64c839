// Package config provides configuration management for the fleet report service.
//
// It uses Viper for environment variables and godotenv for an optional .env
// file. Defaults live in `default:"..."` struct tags on each section and are
// registered by reflection; environment keys map SECTION_KEY to section.key.
//
// # Configuration Structure
//
//   - Server: HTTP port, API key, upload body limit
//   - Log: level and format
//   - Fleet: fleet API endpoint, AIS endpoint and key, enrichment workers, roster cache
//   - Warehouse: position warehouse driver, DSN parts, table and columns
//   - Report: report sink (local or s3), output directory, run isolation
//   - Storage: S3/MinIO credentials and bucket for the s3 sink
//
// No credential or connection string is compiled in; all come from here.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Fleet.URL)
package config
