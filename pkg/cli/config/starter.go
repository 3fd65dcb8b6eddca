package config

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/m-mizutani/appacc/pkg/infra/starter"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Starter holds starter backend configuration
type Starter struct {
	ServiceURL  string
	DownloadURL string
	Timeout     time.Duration
}

// Flags returns CLI flags for starter backend configuration
func (c *Starter) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "service-url",
			Usage:       "API root of the starter backend",
			Value:       starter.DefaultServiceURL,
			Destination: &c.ServiceURL,
			Sources:     cli.EnvVars("APPACC_SERVICE_URL"),
		},
		&cli.StringFlag{
			Name:        "download-url",
			Usage:       "Base URL of download links (default: <service-url>)",
			Destination: &c.DownloadURL,
			Sources:     cli.EnvVars("APPACC_DOWNLOAD_URL"),
		},
		&cli.DurationFlag{
			Name:        "timeout",
			Usage:       "HTTP timeout for requests to the starter backend",
			Value:       30 * time.Second,
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("APPACC_TIMEOUT"),
		},
	}
}

// NewClient creates a starter backend client from the configuration
func (c *Starter) NewClient(logger *slog.Logger) (*starter.Client, error) {
	if c.Timeout < 0 {
		return nil, goerr.New("timeout must not be negative", goerr.V("timeout", c.Timeout))
	}

	opts := []starter.Option{
		starter.WithHTTPClient(&http.Client{Timeout: c.Timeout}),
		starter.WithLogger(logger),
	}
	if c.DownloadURL != "" {
		opts = append(opts, starter.WithDownloadURL(c.DownloadURL))
	}

	client, err := starter.NewClient(c.ServiceURL, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create starter client")
	}
	return client, nil
}
