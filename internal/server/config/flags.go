package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/reformguide/internal/flagx"
)

var knownFlags = []string{"-a", "-d", "-s", "-t", "-r", "-h", "-k", "-i", "-u", "-p", "-b", "-g", "-e", "-m", "-l"}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-r int      refresh token validity, minutes
//	-h int      bcrypt cost
//	-k string   image storage backend ("disk" or "s3")
//	-i string   image directory for the disk backend
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint
//	-m string   garment classifier endpoint
//	-l int      maximum upload size, bytes
//
// Unknown arguments are dropped by flagx.FilterArgs before parsing.
func parseFlags(config *Config, args []string) {
	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")
	refreshTokenValidityDuration := fs.Int("r", int(config.RefreshTokenValidityDuration.Minutes()), "refresh_token_validity_duration (in minutes)")

	fs.IntVar(&config.PasswordHashCost, "h", config.PasswordHashCost, "bcrypt cost")
	fs.StringVar(&config.ImageStorage, "k", config.ImageStorage, "image storage (disk|s3)")
	fs.StringVar(&config.ImageDir, "i", config.ImageDir, "image directory")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.ClassifierEndpoint, "m", config.ClassifierEndpoint, "garment classifier endpoint")
	fs.Int64Var(&config.MaxUploadSize, "l", config.MaxUploadSize, "max upload size (in bytes)")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
	config.RefreshTokenValidityDuration = time.Duration(*refreshTokenValidityDuration) * time.Minute
}
