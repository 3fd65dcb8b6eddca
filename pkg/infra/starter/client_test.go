package starter_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/m-mizutani/appacc/pkg/domain/model"
	"github.com/m-mizutani/appacc/pkg/domain/types"
	"github.com/m-mizutani/appacc/pkg/infra/starter"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

const techListJSON = `[
	{"id":"rest","name":"REST","description":"Build a RESTful service"},
	{"id":"web","name":"Web","description":"Serve static web content"},
	{"id":"java","name":"Java","description":"Java EE 7 APIs"}
]`

// httpClientFunc adapts a function to interfaces.HTTPClient
type httpClientFunc func(req *http.Request) (*http.Response, error)

func (f httpClientFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newBackend(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.Method != http.MethodGet || r.URL.Path != "/start/api/v1/tech" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &hits
}

func newClient(t *testing.T, serviceURL string, opts ...starter.Option) *starter.Client {
	t.Helper()
	client, err := starter.NewClient(serviceURL, opts...)
	gt.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "Absolute URL", url: "http://localhost:9080/start/api/v1", wantErr: false},
		{name: "Trailing slash", url: "https://example.com/start/api/v1/", wantErr: false},
		{name: "Relative path", url: "/start/api/v1", wantErr: true},
		{name: "Empty", url: "", wantErr: true},
		{name: "Broken", url: "http://[::1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := starter.NewClient(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewClient() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestClient_FetchTechnologies(t *testing.T) {
	ctx := context.Background()

	t.Run("returns records in received order", func(t *testing.T) {
		server, hits := newBackend(t, http.StatusOK, techListJSON)
		client := newClient(t, server.URL+"/start/api/v1")

		techs, err := client.FetchTechnologies(ctx)
		gt.NoError(t, err)
		gt.A(t, techs).Length(3)
		gt.Equal(t, techs.IDs(), []string{"rest", "web", "java"})
		gt.Equal(t, techs[0].Name, "REST")
		gt.Equal(t, techs[2].Description, "Java EE 7 APIs")
		gt.Equal(t, hits.Load(), int32(1))
	})

	t.Run("empty list is a success", func(t *testing.T) {
		server, _ := newBackend(t, http.StatusOK, `[]`)
		client := newClient(t, server.URL+"/start/api/v1")

		techs, err := client.FetchTechnologies(ctx)
		gt.NoError(t, err)
		gt.A(t, techs).Length(0)
	})

	t.Run("non-200 returns empty list and fetch error", func(t *testing.T) {
		for _, status := range []int{http.StatusNotFound, http.StatusInternalServerError, http.StatusNoContent} {
			server, _ := newBackend(t, status, `{"error":"nope"}`)
			client := newClient(t, server.URL+"/start/api/v1")

			techs, err := client.FetchTechnologies(ctx)
			gt.Error(t, err)
			gt.True(t, goerr.HasTag(err, types.ErrTagFetchFailed))
			gt.True(t, techs != nil)
			gt.A(t, techs).Length(0)
		}
	})

	t.Run("transport failure returns empty list and fetch error", func(t *testing.T) {
		refused := errors.New("connection refused")
		client := newClient(t, "http://localhost:9080/start/api/v1",
			starter.WithHTTPClient(httpClientFunc(func(req *http.Request) (*http.Response, error) {
				return nil, refused
			})),
		)

		techs, err := client.FetchTechnologies(ctx)
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, types.ErrTagFetchFailed))
		gt.True(t, errors.Is(err, refused))
		gt.True(t, techs != nil)
		gt.A(t, techs).Length(0)
	})

	t.Run("closed server is a transport failure", func(t *testing.T) {
		server, _ := newBackend(t, http.StatusOK, techListJSON)
		serviceURL := server.URL + "/start/api/v1"
		server.Close()

		techs, err := newClient(t, serviceURL).FetchTechnologies(ctx)
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, types.ErrTagFetchFailed))
		gt.A(t, techs).Length(0)
	})

	t.Run("malformed payload fails fast", func(t *testing.T) {
		payloads := []string{
			`not json`,
			`null`,
			`{"id":"rest"}`,
			`[{"id":"rest","name":"REST"},{"name":"no id"}]`,
			`[{"id":"rest","name":"REST"}] <html>garbage`,
			`[{"id":"rest","name":"REST"}][]`,
		}
		for _, payload := range payloads {
			server, _ := newBackend(t, http.StatusOK, payload)
			client := newClient(t, server.URL+"/start/api/v1")

			techs, err := client.FetchTechnologies(ctx)
			gt.Error(t, err)
			gt.True(t, goerr.HasTag(err, types.ErrTagFetchFailed))
			gt.True(t, goerr.HasTag(err, types.ErrTagInvalidResponse))
			gt.A(t, techs).Length(0)
		}
	})

	t.Run("uses GET on the tech endpoint", func(t *testing.T) {
		var gotMethod, gotURL string
		client := newClient(t, "http://starter.example.com/start/api/v1/",
			starter.WithHTTPClient(httpClientFunc(func(req *http.Request) (*http.Response, error) {
				gotMethod = req.Method
				gotURL = req.URL.String()
				return nil, errors.New("stop")
			})),
		)

		_, _ = client.FetchTechnologies(ctx)
		gt.Equal(t, gotMethod, http.MethodGet)
		gt.Equal(t, gotURL, "http://starter.example.com/start/api/v1/tech")
	})
}

func TestClient_FetchTechnologiesAsync(t *testing.T) {
	ctx := context.Background()

	receive := func(t *testing.T, client *starter.Client) <-chan error {
		ch := client.FetchTechnologiesAsync(ctx)
		errCh := make(chan error, 1)
		go func() {
			select {
			case r := <-ch:
				if r.Err == nil && len(r.Value) != 3 {
					errCh <- errors.New("unexpected number of technologies")
					return
				}
				errCh <- r.Err
			case <-time.After(5 * time.Second):
				errCh <- errors.New("timeout")
			}
		}()
		return errCh
	}

	t.Run("concurrent calls are independent requests", func(t *testing.T) {
		server, hits := newBackend(t, http.StatusOK, techListJSON)
		client := newClient(t, server.URL+"/start/api/v1")

		first := receive(t, client)
		second := receive(t, client)

		gt.NoError(t, <-first)
		gt.NoError(t, <-second)
		gt.Equal(t, hits.Load(), int32(2))
	})

	t.Run("failure of one call does not leak into another", func(t *testing.T) {
		okServer, _ := newBackend(t, http.StatusOK, techListJSON)
		ngServer, _ := newBackend(t, http.StatusNotFound, ``)

		okResult := receive(t, newClient(t, okServer.URL+"/start/api/v1"))
		ngResult := receive(t, newClient(t, ngServer.URL+"/start/api/v1"))

		gt.NoError(t, <-okResult)
		err := <-ngResult
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, types.ErrTagFetchFailed))
	})

	t.Run("delivers empty list on failure", func(t *testing.T) {
		server, _ := newBackend(t, http.StatusNotFound, ``)
		client := newClient(t, server.URL+"/start/api/v1")

		r := <-client.FetchTechnologiesAsync(ctx)
		gt.Error(t, r.Err)
		gt.True(t, r.Value != nil)
		gt.A(t, r.Value).Length(0)
	})
}

func TestClient_BuildDownloadURL(t *testing.T) {
	client := newClient(t, "http://localhost:9080/start/api/v1")

	t.Run("nothing selected produces no URL", func(t *testing.T) {
		u, ok := client.BuildDownloadURL(model.Technologies{
			{ID: "rest", Name: "REST"},
			{ID: "java", Name: "Java"},
		})
		gt.False(t, ok)
		gt.Equal(t, u, "")
	})

	t.Run("empty input produces no URL", func(t *testing.T) {
		_, ok := client.BuildDownloadURL(nil)
		gt.False(t, ok)
	})

	t.Run("selected technologies in input order", func(t *testing.T) {
		u, ok := client.BuildDownloadURL(model.Technologies{
			{ID: "rest", Name: "REST", Selected: true},
			{ID: "web", Name: "Web"},
			{ID: "java", Name: "Java", Selected: true},
		})
		gt.True(t, ok)
		gt.Equal(t, u, "http://localhost:9080/start/api/v1?tech=rest&tech=java")
	})

	t.Run("custom download URL", func(t *testing.T) {
		c := newClient(t, "http://localhost:9080/start/api/v1",
			starter.WithDownloadURL("http://localhost:9080/start/api/v1/data?"))
		u, ok := c.BuildDownloadURL(model.Technologies{{ID: "rest", Name: "REST", Selected: true}})
		gt.True(t, ok)
		gt.Equal(t, u, "http://localhost:9080/start/api/v1/data?tech=rest")
	})

	t.Run("trailing slash of service URL is dropped", func(t *testing.T) {
		c := newClient(t, "http://localhost:9080/start/api/v1/")
		u, ok := c.BuildDownloadURL(model.Technologies{{ID: "java", Name: "Java", Selected: true}})
		gt.True(t, ok)
		gt.Equal(t, u, "http://localhost:9080/start/api/v1?tech=java")
	})
}

func TestClient_BuildDownloadRequestURL(t *testing.T) {
	client := newClient(t, "http://localhost:9080/start/api/v1")

	t.Run("full request", func(t *testing.T) {
		u, err := client.BuildDownloadRequestURL(&model.DownloadRequest{
			Technologies: []string{"rest", "java"},
			Deploy:       "local",
			Name:         "libertyProject",
			Workspace:    "ws-1",
		})
		gt.NoError(t, err)
		gt.Equal(t, u, "http://localhost:9080/start/api/v1?tech=rest&tech=java&deploy=local&name=libertyProject&workspace=ws-1")
	})

	t.Run("no technology", func(t *testing.T) {
		_, err := client.BuildDownloadRequestURL(&model.DownloadRequest{Deploy: "local"})
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, types.ErrTagNoSelection))
	})
}
