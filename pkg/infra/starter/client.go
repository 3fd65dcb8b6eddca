package starter

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/m-mizutani/appacc/pkg/domain/interfaces"
	"github.com/m-mizutani/appacc/pkg/domain/model"
	"github.com/m-mizutani/appacc/pkg/domain/types"
	"github.com/m-mizutani/appacc/pkg/utils/async"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

const (
	// DefaultServiceURL is the API root of a locally running starter backend
	DefaultServiceURL = "http://localhost:9080/start/api/v1"

	techPath = "/tech"

	// maxErrorBodySize limits how much of a failed response body is kept in error values
	maxErrorBodySize = 1024
)

// Client talks to the starter backend. It holds only constant configuration and is
// safe for concurrent use.
type Client struct {
	httpClient  interfaces.HTTPClient
	logger      *slog.Logger
	techURL     string
	downloadURL string
}

var _ interfaces.StarterClient = (*Client)(nil)

// Option is a functional option for Client configuration
type Option func(*Client)

// WithHTTPClient sets the transport. Timeouts are owned by the transport.
func WithHTTPClient(httpClient interfaces.HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets the logger. Without it the logger is taken from the context of each call.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDownloadURL overrides the base URL of generated download links (default: the service URL),
// e.g. <service-url>/data for the data endpoint of the starter backend
func WithDownloadURL(downloadURL string) Option {
	return func(c *Client) {
		c.downloadURL = strings.TrimRight(downloadURL, "?")
	}
}

// NewClient creates a new starter backend client for the API root serviceURL
func NewClient(serviceURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(serviceURL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse service URL", goerr.V("url", serviceURL))
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, goerr.New("service URL must be absolute", goerr.V("url", serviceURL))
	}

	base := strings.TrimRight(serviceURL, "/")
	c := &Client{
		httpClient:  http.DefaultClient,
		techURL:     base + techPath,
		downloadURL: base,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.log(context.Background()).Debug("Initialising starter client",
		"tech_url", c.techURL,
		"download_url", c.downloadURL,
	)

	return c, nil
}

func (c *Client) log(ctx context.Context) *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return ctxlog.From(ctx)
}

// FetchTechnologies issues one GET request for the technology list. Records are returned
// in the order received. On any failure (transport error, non-200 status, malformed
// payload) it returns an empty, non-nil list and an error tagged types.ErrTagFetchFailed.
func (c *Client) FetchTechnologies(ctx context.Context) (model.Technologies, error) {
	logger := c.log(ctx)
	logger.Debug("GET available technology list", "url", c.techURL)

	techs, err := c.getTechnologies(ctx)
	if err != nil {
		logger.Debug("Fetching technology list failed", "url", c.techURL, "error", err)
		return model.Technologies{}, goerr.Wrap(err, "failed to fetch technologies",
			goerr.V("url", c.techURL),
			goerr.T(types.ErrTagFetchFailed),
		)
	}

	logger.Debug("Fetched technology list", "url", c.techURL, "count", len(techs))
	return techs, nil
}

// FetchTechnologiesAsync runs FetchTechnologies in background and delivers one result.
// The request is not cancelled by ctx.
func (c *Client) FetchTechnologiesAsync(ctx context.Context) <-chan async.Result[model.Technologies] {
	return async.Go(ctx, c.FetchTechnologies)
}

func (c *Client) getTechnologies(ctx context.Context) (model.Technologies, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.techURL, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to send request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, goerr.New("unexpected status code",
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(body)),
		)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read response body")
	}

	// Unmarshal rejects trailing data after the array
	var techs model.Technologies
	if err := json.Unmarshal(body, &techs); err != nil {
		return nil, goerr.Wrap(err, "failed to decode technology list",
			goerr.V("body_size", len(body)),
			goerr.T(types.ErrTagInvalidResponse))
	}
	if techs == nil {
		return nil, goerr.New("technology list is null", goerr.T(types.ErrTagInvalidResponse))
	}
	if err := techs.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid technology list", goerr.T(types.ErrTagInvalidResponse))
	}

	return techs, nil
}

// BuildDownloadURL builds the download URL for the selected technologies in
// selections, in input order. It returns false when nothing is selected.
func (c *Client) BuildDownloadURL(selections model.Technologies) (string, bool) {
	selected := selections.Selected()
	if len(selected) == 0 {
		c.log(context.Background()).Debug("No technology selected, download URL is not built")
		return "", false
	}

	req := &model.DownloadRequest{Technologies: selected.IDs()}
	u := c.downloadURL + "?" + req.Query()
	c.log(context.Background()).Debug("Download URL built", "url", u)
	return u, true
}

// BuildDownloadRequestURL builds the download URL carrying every parameter of req
func (c *Client) BuildDownloadRequestURL(req *model.DownloadRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", goerr.Wrap(err, "invalid download request")
	}

	return c.downloadURL + "?" + req.Query(), nil
}
