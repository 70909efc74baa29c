package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	request "descarga_masiva/internal/adapter/http/dto/request"
	response "descarga_masiva/internal/adapter/http/dto/response"
	"descarga_masiva/internal/domain/entities"
	"descarga_masiva/internal/domain/failures"
	"descarga_masiva/internal/infrastructure/logger"
	"descarga_masiva/internal/usecase"
	"descarga_masiva/pkg"

	"github.com/gin-gonic/gin"
)

// maxSubmitBody bounds the whole multipart body: two credential files plus form fields.
const maxSubmitBody = 2*request.MaxCredentialFileSize + 1<<20

var (
	errInvalidSubmitPayload = pkg.NewDomainErrorSimple("INVALID_SUBMIT_INPUT", "certificate, privateKey and password are required as multipart/form-data", http.StatusBadRequest)
	errInvalidFlag          = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid query parameter", http.StatusBadRequest)
)

// DownloadRequestHandler exposes the bulk-download lifecycle over HTTP.
type DownloadRequestHandler struct {
	usecase usecase.IDownloadRequestUseCase
	log     *logger.Logger
}

func NewDownloadRequestHandler(uc usecase.IDownloadRequestUseCase, log *logger.Logger) *DownloadRequestHandler {
	return &DownloadRequestHandler{usecase: uc, log: logger.OrDefault(log)}
}

// Submit godoc
// @Summary      Authenticate a FIEL and optionally submit a bulk-download query
// @Tags         requests
// @Accept       multipart/form-data
// @Produce      json
// @Param        certificate     formData  file    true   "FIEL certificate (.cer)"
// @Param        privateKey      formData  file    true   "FIEL private key (.key)"
// @Param        password        formData  string  true   "Private key passphrase"
// @Param        startDate       formData  string  false  "First day, YYYY-MM-DD"
// @Param        endDate         formData  string  false  "Last day, YYYY-MM-DD"
// @Param        documentType    formData  string  false  "ingreso, egreso, traslado, nomina, pago or undefined"
// @Param        downloadType    formData  string  false  "issued or received"
// @Param        documentStatus  formData  string  false  "active, cancelled or undefined"
// @Param        requestType     formData  string  false  "metadata or xml"
// @Param        serviceKind     formData  string  false  "cfdi or retenciones"
// @Success      201  {object}  response.SubmitResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      401  {object}  pkg.HTTPError
// @Failure      502  {object}  pkg.HTTPError
// @Router       /requests [post]
func (h *DownloadRequestHandler) Submit(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSubmitBody)

	var payload request.SubmitRequest
	if err := c.ShouldBind(&payload); err != nil {
		h.log.Warnf("[download][handler] submit invalid payload err=%v", err)
		c.JSON(errInvalidSubmitPayload.HTTPStatus, errInvalidSubmitPayload.ToHTTPError())
		return
	}

	query, err := payload.ResolveQuery()
	if err != nil {
		h.fail(c, err, entities.LifecycleSnapshot{})
		return
	}
	secret, err := payload.ReadSecret()
	if err != nil {
		h.fail(c, err, entities.LifecycleSnapshot{})
		return
	}
	defer secret.Wipe()

	h.log.Infof("[download][handler] submit start service_kind=%s with_query=%t", payload.ServiceKind, query != nil)
	snap, err := h.usecase.Submit(c.Request.Context(), usecase.SubmitInput{
		Secret:      secret,
		ServiceKind: entities.ServiceKind(payload.ServiceKind),
		Query:       query,
	})
	if err != nil {
		h.log.Warnf("[download][handler] submit failed lifecycle_id=%s err=%v", snap.LifecycleID, err)
		h.fail(c, err, snap)
		return
	}
	h.log.Infof("[download][handler] submit success lifecycle_id=%s state=%s request_id=%s", snap.LifecycleID, snap.State, snap.RequestID)

	c.JSON(http.StatusCreated, response.FromSubmission(snap))
}

// Verify godoc
// @Summary      Poll the verification of a submitted request
// @Tags         requests
// @Produce      json
// @Param        id    path   string  true   "Lifecycle id"
// @Param        wait  query  bool    false  "Keep polling with backoff until the request leaves verifying"
// @Success      200  {object}  response.LifecycleResponse
// @Failure      404  {object}  pkg.HTTPError
// @Failure      409  {object}  pkg.HTTPError
// @Router       /requests/{id}/verify [post]
func (h *DownloadRequestHandler) Verify(c *gin.Context) {
	id := c.Param("id")
	wait, ok := boolQuery(c, "wait")
	if !ok {
		c.JSON(errInvalidFlag.HTTPStatus, errInvalidFlag.ToHTTPError())
		return
	}

	h.log.Infof("[download][handler] verify start lifecycle_id=%s wait=%t", id, wait)
	snap, err := h.usecase.Verify(c.Request.Context(), id, wait)
	if err != nil {
		h.log.Warnf("[download][handler] verify failed lifecycle_id=%s err=%v", id, err)
		h.fail(c, err, snap)
		return
	}
	c.JSON(http.StatusOK, response.FromSnapshot(snap))
}

// Download godoc
// @Summary      Download and store every package of a finished request
// @Tags         requests
// @Produce      json
// @Param        id     path   string  true   "Lifecycle id"
// @Param        force  query  bool    false  "Download packages again even when already stored"
// @Success      200  {object}  response.DownloadResponse
// @Success      207  {object}  response.DownloadResponse
// @Failure      409  {object}  pkg.HTTPError
// @Router       /requests/{id}/download [post]
func (h *DownloadRequestHandler) Download(c *gin.Context) {
	id := c.Param("id")
	force, ok := boolQuery(c, "force")
	if !ok {
		c.JSON(errInvalidFlag.HTTPStatus, errInvalidFlag.ToHTTPError())
		return
	}

	h.log.Infof("[download][handler] download start lifecycle_id=%s force=%t", id, force)
	report, err := h.usecase.Download(c.Request.Context(), id, usecase.RetrieveOptions{Force: force})
	if err != nil {
		h.log.Warnf("[download][handler] download failed lifecycle_id=%s err=%v", id, err)
		h.fail(c, err, report.Snapshot)
		return
	}

	status := http.StatusOK
	if !report.Result.Complete() {
		status = http.StatusMultiStatus
	}
	h.log.Infof("[download][handler] download done lifecycle_id=%s stored=%d failed=%d", id, len(report.Result.Records), len(report.Result.Failures))
	c.JSON(status, response.FromDownloadReport(report))
}

// ReadPackage godoc
// @Summary      Read the invoices of a stored package
// @Tags         requests
// @Produce      json
// @Param        id          path  string  true  "Lifecycle id"
// @Param        package_id  path  string  true  "Package id"
// @Success      200  {object}  response.InvoicesResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /requests/{id}/packages/{package_id}/invoices [get]
func (h *DownloadRequestHandler) ReadPackage(c *gin.Context) {
	id, packageID := c.Param("id"), c.Param("package_id")
	entries, err := h.usecase.ReadPackage(c.Request.Context(), id, packageID)
	if err != nil {
		h.log.Warnf("[download][handler] read package failed lifecycle_id=%s package_id=%s err=%v", id, packageID, err)
		h.fail(c, err, entities.LifecycleSnapshot{})
		return
	}
	c.JSON(http.StatusOK, response.FromInvoices(id, packageID, entries))
}

// List godoc
// @Summary      List the latest snapshot of every request
// @Tags         requests
// @Produce      json
// @Success      200  {array}  response.LifecycleResponse
// @Router       /requests [get]
func (h *DownloadRequestHandler) List(c *gin.Context) {
	snaps, err := h.usecase.List(c.Request.Context())
	if err != nil {
		h.log.Errorf("[download][handler] list failed err=%v", err)
		h.fail(c, err, entities.LifecycleSnapshot{})
		return
	}
	c.JSON(http.StatusOK, response.FromSnapshots(snaps))
}

// GetByID godoc
// @Summary      Latest snapshot of a request
// @Tags         requests
// @Produce      json
// @Param        id  path  string  true  "Lifecycle id"
// @Success      200  {object}  response.LifecycleResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /requests/{id} [get]
func (h *DownloadRequestHandler) GetByID(c *gin.Context) {
	h.lookup(c, "lifecycle_id", c.Param("id"), h.usecase.GetByID)
}

// GetSnapshot godoc
// @Summary      A stored snapshot by its id
// @Tags         snapshots
// @Produce      json
// @Param        id  path  string  true  "Snapshot id"
// @Success      200  {object}  response.LifecycleResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /snapshots/{id} [get]
func (h *DownloadRequestHandler) GetSnapshot(c *gin.Context) {
	h.lookup(c, "snapshot_id", c.Param("id"), h.usecase.GetSnapshot)
}

// GetByRequestID godoc
// @Summary      Latest snapshot for a SAT request id
// @Tags         verifications
// @Produce      json
// @Param        request_id  path  string  true  "SAT request id"
// @Success      200  {object}  response.LifecycleResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /verifications/{request_id} [get]
func (h *DownloadRequestHandler) GetByRequestID(c *gin.Context) {
	h.lookup(c, "request_id", c.Param("request_id"), h.usecase.GetByRequestID)
}

func (h *DownloadRequestHandler) lookup(
	c *gin.Context,
	key, id string,
	find func(ctx context.Context, id string) (entities.LifecycleSnapshot, error),
) {
	snap, err := find(c.Request.Context(), id)
	if err != nil {
		h.log.Debugf("[download][handler] lookup failed %s=%s err=%v", key, id, err)
		h.fail(c, err, entities.LifecycleSnapshot{})
		return
	}
	c.JSON(http.StatusOK, response.FromSnapshot(snap))
}

func (h *DownloadRequestHandler) fail(c *gin.Context, err error, snap entities.LifecycleSnapshot) {
	appErr := mapLifecycleError(err)
	if details := errorDetails(err, snap); len(details) > 0 {
		appErr = appErr.WithDetails(details)
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func boolQuery(c *gin.Context, name string) (bool, bool) {
	v := c.Query(name)
	if v == "" {
		return false, true
	}
	b, err := strconv.ParseBool(v)
	return b, err == nil
}

func mapLifecycleError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, failures.ErrValidation):
		return pkg.NewDomainError("VALIDATION_ERROR", failureMessage(err, "Invalid request"), err, http.StatusBadRequest)
	case errors.Is(err, failures.ErrCredentialInvalid):
		return pkg.NewDomainError("INVALID_CREDENTIAL", "The FIEL could not be loaded or is not valid", err, http.StatusUnauthorized)
	case errors.Is(err, failures.ErrAuthenticationFailed), errors.Is(err, failures.ErrTokenExpired):
		return pkg.NewDomainError("AUTHENTICATION_ERROR", "SAT did not authenticate the FIEL", err, http.StatusUnauthorized)
	case errors.Is(err, failures.ErrNotFound):
		return pkg.NewDomainError("NOT_FOUND", failureMessage(err, "Resource not found"), err, http.StatusNotFound)
	case errors.Is(err, failures.ErrIllegalTransition):
		return pkg.NewDomainError("INVALID_STATE", failureMessage(err, "The request cannot do that in its current state"), err, http.StatusConflict)
	case errors.Is(err, failures.ErrRemoteRejected):
		return pkg.NewDomainError("SAT_REQUEST_REJECTED", "SAT rejected the request", err, http.StatusUnprocessableEntity)
	case errors.Is(err, failures.ErrRequestExpired):
		return pkg.NewDomainError("SAT_REQUEST_EXPIRED", "The SAT request expired", err, http.StatusUnprocessableEntity)
	case errors.Is(err, failures.ErrRequestFailed):
		return pkg.NewDomainError("SAT_REQUEST_FAILED", "The SAT request failed", err, http.StatusUnprocessableEntity)
	case errors.Is(err, failures.ErrMalformedDocument), errors.Is(err, failures.ErrUnsupportedSchema):
		return pkg.NewDomainError("INVALID_PACKAGE", "The stored package could not be read", err, http.StatusUnprocessableEntity)
	case errors.Is(err, failures.ErrRemoteTransport), errors.Is(err, failures.ErrPackageDownload):
		return pkg.NewDomainError("SAT_SERVICE_ERROR", "Error talking to the SAT web service", err, http.StatusBadGateway)
	case errors.Is(err, failures.ErrPersistence):
		return pkg.NewDomainError("DATABASE_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

// failureMessage surfaces the domain message for client errors only.
func failureMessage(err error, fallback string) string {
	if f, ok := failures.As(err); ok && f.Message != "" {
		return f.Message
	}
	return fallback
}

func errorDetails(err error, snap entities.LifecycleSnapshot) map[string]any {
	details := map[string]any{}
	if f, ok := failures.As(err); ok && f.RemoteCode != 0 {
		details["remote_code"] = f.RemoteCode
		details["remote_message"] = f.RemoteMessage
	}
	if hints := failures.Hints(err); len(hints) > 0 {
		details["hints"] = hints
	}
	if snap.ID != "" && !failures.Is(err, failures.KindPersistence) {
		details["lifecycle_id"] = snap.LifecycleID
		details["snapshot_id"] = snap.ID
		details["state"] = string(snap.State)
	}
	return details
}
