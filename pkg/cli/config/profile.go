package config

import (
	"os"

	"github.com/m-mizutani/appacc/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Profile holds the path of a TOML file with default download parameters, e.g.
//
//	technologies = ["rest", "java"]
//	deploy = "local"
//	name = "myProject"
//	tech_options = ["swagger:server"]
type Profile struct {
	Path string
}

// Flags returns CLI flags for profile configuration
func (c *Profile) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "profile",
			Aliases:     []string{"p"},
			Usage:       "TOML file with default download parameters",
			Destination: &c.Path,
			Sources:     cli.EnvVars("APPACC_PROFILE"),
		},
	}
}

// Load reads the profile. An empty request is returned when no path is set.
func (c *Profile) Load() (*model.DownloadRequest, error) {
	var req model.DownloadRequest
	if c.Path == "" {
		return &req, nil
	}

	f, err := os.Open(c.Path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open profile", goerr.V("path", c.Path))
	}
	defer f.Close()

	decoder := toml.NewDecoder(f)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		return nil, goerr.Wrap(err, "failed to parse profile", goerr.V("path", c.Path))
	}

	return &req, nil
}
