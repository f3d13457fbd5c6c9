package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/reformguide/internal/flagx"
	"github.com/dmitrijs2005/reformguide/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations use
// timex.Duration so both "30m" and integer nanoseconds are accepted.
// Fields absent from the file keep their current value.
type JsonConfig struct {
	EndpointAddrHTTP             *string         `json:"endpoint_addr_http"`
	DatabaseDSN                  *string         `json:"database_dsn"`
	SecretKey                    *string         `json:"secret_key"`
	AccessTokenValidityDuration  *timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration *timex.Duration `json:"refresh_token_validity_duration"`
	PasswordHashCost             *int            `json:"password_hash_cost"`
	ImageStorage                 *string         `json:"image_storage"`
	ImageDir                     *string         `json:"image_dir"`
	S3RootUser                   *string         `json:"s3_root_user"`
	S3RootPassword               *string         `json:"s3_root_password"`
	S3Bucket                     *string         `json:"s3_bucket"`
	S3Region                     *string         `json:"s3_region"`
	S3BaseEndpoint               *string         `json:"s3_base_endpoint"`
	ClassifierEndpoint           *string         `json:"classifier_endpoint"`
	MaxUploadSize                *int64          `json:"max_upload_size"`
}

// parseJson overlays values from the JSON file named by -c/-config.
// Without the flag nothing is loaded. An unreadable or invalid file panics.
func parseJson(config *Config, args []string) {
	path := flagx.ConfigFilePath(args)
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setIfPresent(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setIfPresent(&config.DatabaseDSN, c.DatabaseDSN)
	setIfPresent(&config.SecretKey, c.SecretKey)
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RefreshTokenValidityDuration != nil {
		config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	}
	setIfPresent(&config.PasswordHashCost, c.PasswordHashCost)
	setIfPresent(&config.ImageStorage, c.ImageStorage)
	setIfPresent(&config.ImageDir, c.ImageDir)
	setIfPresent(&config.S3RootUser, c.S3RootUser)
	setIfPresent(&config.S3RootPassword, c.S3RootPassword)
	setIfPresent(&config.S3Bucket, c.S3Bucket)
	setIfPresent(&config.S3Region, c.S3Region)
	setIfPresent(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setIfPresent(&config.ClassifierEndpoint, c.ClassifierEndpoint)
	setIfPresent(&config.MaxUploadSize, c.MaxUploadSize)
}

func setIfPresent[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
