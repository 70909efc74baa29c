package interfaces

import (
	"context"

	"descarga_masiva/internal/domain/entities"
)

// IRemoteGateway opens clients against the SAT bulk-download web service.
type IRemoteGateway interface {
	Connect(signer ISigner, kind entities.ServiceKind) (IRemoteServiceClient, error)
}

// IRemoteServiceClient is one signer's view of the SAT bulk-download web service.
//
// Implementations return a *failures.Failure of kind remote_transport_error for
// network, timeout and protocol-level errors. Business answers, accepted or not,
// come back as values with a nil error.
type IRemoteServiceClient interface {
	Authenticate(ctx context.Context) (entities.Token, error)
	SubmitQuery(ctx context.Context, token entities.Token, query entities.RemoteQuery) (entities.QuerySubmission, error)
	Verify(ctx context.Context, token entities.Token, requestID string) (entities.VerificationResult, error)
	DownloadPackage(ctx context.Context, token entities.Token, packageID string) (entities.PackageDownload, error)
}
