package model

import (
	"net/url"
	"strings"

	"github.com/m-mizutani/appacc/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// DefaultProjectName is used when the download request has no project name
const DefaultProjectName = "libertyProject"

// DownloadRequest describes which project the starter backend should generate
type DownloadRequest struct {
	Technologies []string `json:"technologies" toml:"technologies"`
	Deploy       string   `json:"deploy,omitempty" toml:"deploy"`
	Name         string   `json:"name,omitempty" toml:"name"`
	Workspace    string   `json:"workspace,omitempty" toml:"workspace"`
	TechOptions  []string `json:"tech_options,omitempty" toml:"tech_options"`
}

// Validate checks the request can be turned into a download URL
func (r *DownloadRequest) Validate() error {
	if r == nil {
		return goerr.New("download request is null", goerr.T(types.ErrTagInvalidRequest))
	}
	if len(r.Technologies) == 0 {
		return goerr.New("no technology selected", goerr.T(types.ErrTagNoSelection))
	}
	for i, id := range r.Technologies {
		if strings.TrimSpace(id) == "" {
			return goerr.New("technology id is empty",
				goerr.V("index", i),
				goerr.T(types.ErrTagInvalidRequest))
		}
	}
	return nil
}

// Query encodes the request as a query string. Parameters are written in a fixed
// order (tech, deploy, name, workspace, techoptions) and repeated values keep input order.
func (r *DownloadRequest) Query() string {
	var parts []string
	add := func(key, value string) {
		parts = append(parts, url.QueryEscape(key)+"="+url.QueryEscape(value))
	}

	for _, id := range r.Technologies {
		add("tech", id)
	}
	if r.Deploy != "" {
		add("deploy", r.Deploy)
	}
	if r.Name != "" {
		add("name", r.Name)
	}
	if r.Workspace != "" {
		add("workspace", r.Workspace)
	}
	for _, opt := range r.TechOptions {
		add("techoptions", opt)
	}

	return strings.Join(parts, "&")
}
