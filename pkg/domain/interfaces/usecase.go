package interfaces

import (
	"context"

	"github.com/m-mizutani/appacc/pkg/domain/model"
)

// DownloadUseCase defines operations used by CLI and HTTP controller
type DownloadUseCase interface {
	// ListTechnologies returns technologies offered by the starter backend
	ListTechnologies(ctx context.Context) (model.Technologies, error)

	// PrepareDownload fills defaults of the request and returns its download URL
	PrepareDownload(ctx context.Context, req *model.DownloadRequest) (string, error)
}
