// Package config provides functionality for managing configuration options
// for the application using command-line flags, an optional JSON config file,
// and environment variables.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
)

// Options holds the configuration values for the application.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string

	// DatabaseDSN holds the database connection string for the application.
	DatabaseDSN string

	// JWTSecret is the HMAC secret used to verify bearer tokens.
	JWTSecret string

	// FrontendURL is the base URL of the dashboard, used to build viewer links.
	FrontendURL string

	// MailEndpoint is the URL of the send-case-link mail function.
	MailEndpoint string

	// MailToken authorizes calls to the mail function.
	MailToken string

	// Config is the path to the Config file.
	Config string
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Port, "a", "localhost:4000", "run on ip:port server")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address")
	flag.StringVar(&options.JWTSecret, "s", "", "jwt signing secret")
	flag.StringVar(&options.FrontendURL, "f", "http://localhost:5173", "frontend base url for viewer links")
	flag.StringVar(&options.MailEndpoint, "m", "", "mail function url")
	flag.StringVar(&options.MailToken, "t", "", "mail function token")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags, config file, and environment variables
// to set configuration values. It returns a pointer to the Options struct
// containing the parsed configuration values.
func Parse() *Options {
	flag.Parse()

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Port = serverAddress
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		options.JWTSecret = secret
	}
	if frontend := os.Getenv("FRONTEND_URL"); frontend != "" {
		options.FrontendURL = frontend
	}
	if mail := os.Getenv("MAIL_ENDPOINT"); mail != "" {
		options.MailEndpoint = mail
	}
	if token := os.Getenv("MAIL_TOKEN"); token != "" {
		options.MailToken = token
	}

	return options
}
