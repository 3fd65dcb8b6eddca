package interfaces

import (
	"context"

	"github.com/m-mizutani/appacc/pkg/domain/model"
)

// StarterClient defines operations against the starter backend
type StarterClient interface {
	// FetchTechnologies retrieves the list of available technologies.
	// On failure it returns an empty list together with the error.
	FetchTechnologies(ctx context.Context) (model.Technologies, error)

	// BuildDownloadRequestURL builds the project download URL for the request
	BuildDownloadRequestURL(req *model.DownloadRequest) (string, error)
}
