package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/m-mizutani/appacc/pkg/domain/interfaces"
	"github.com/m-mizutani/appacc/pkg/domain/model"
	"github.com/m-mizutani/appacc/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

type downloadUseCase struct {
	client interfaces.StarterClient
	verify bool
}

// DownloadOption is a functional option for the download use case
type DownloadOption func(*downloadUseCase)

// WithVerify makes PrepareDownload check requested technologies against the backend list
func WithVerify(verify bool) DownloadOption {
	return func(uc *downloadUseCase) {
		uc.verify = verify
	}
}

// NewDownload creates a new instance of DownloadUseCase
func NewDownload(client interfaces.StarterClient, opts ...DownloadOption) interfaces.DownloadUseCase {
	uc := &downloadUseCase{client: client}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// ListTechnologies returns technologies offered by the starter backend
func (uc *downloadUseCase) ListTechnologies(ctx context.Context) (model.Technologies, error) {
	techs, err := uc.client.FetchTechnologies(ctx)
	if err != nil {
		return techs, goerr.Wrap(err, "failed to list technologies", goerr.T(types.ErrTagFetchFailed))
	}
	return techs, nil
}

// PrepareDownload fills defaults of req (project name, workspace), optionally verifies
// its technologies and returns the download URL. req is not modified.
func (uc *downloadUseCase) PrepareDownload(ctx context.Context, req *model.DownloadRequest) (string, error) {
	logger := ctxlog.From(ctx)

	if err := req.Validate(); err != nil {
		return "", goerr.Wrap(err, "invalid download request")
	}

	filled := *req
	if filled.Name == "" {
		filled.Name = model.DefaultProjectName
	}
	if filled.Workspace == "" {
		filled.Workspace = uuid.NewString()
	}

	if uc.verify {
		techs, err := uc.client.FetchTechnologies(ctx)
		if err != nil {
			return "", goerr.Wrap(err, "failed to verify technologies", goerr.T(types.ErrTagFetchFailed))
		}
		if err := techs.Select(filled.Technologies...); err != nil {
			return "", goerr.Wrap(err, "requested technology is not offered",
				goerr.T(types.ErrTagUnknownTechnology))
		}
	}

	u, err := uc.client.BuildDownloadRequestURL(&filled)
	if err != nil {
		return "", goerr.Wrap(err, "failed to build download URL")
	}

	logger.Info("Download URL prepared",
		"technologies", filled.Technologies,
		"deploy", filled.Deploy,
		"name", filled.Name,
		"workspace", filled.Workspace,
	)

	return u, nil
}
