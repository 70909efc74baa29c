package satws

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"descarga_masiva/internal/domain/entities"
	"descarga_masiva/internal/domain/failures"
	"descarga_masiva/internal/infrastructure/logger"
	"descarga_masiva/internal/usecase/interfaces"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-retryablehttp"
)

const (
	headerSubject     = "X-Fiel-Subject"
	headerSignature   = "X-Fiel-Signature"
	headerServiceKind = "X-Service-Kind"

	maxBridgeResponse = 512 << 20

	pathAuthenticate = "/authenticate"
	pathQuery        = "/query"
	pathVerify       = "/verify"
	pathDownload     = "/download"
)

// singleShot lists the calls the transport never repeats; a second /query
// registers a second request on the SAT side.
var singleShot = map[string]bool{pathAuthenticate: true, pathQuery: true}

// BridgeGateway talks to the SAT bridge: a sidecar that owns the SOAP envelopes
// and XML-DSig of the bulk-download service and exposes them as JSON over HTTP.
// Every request body is signed with the caller's FIEL.
type BridgeGateway struct {
	baseURL string
	http    *retryablehttp.Client
	once    *retryablehttp.Client
	log     *logger.Logger
}

var _ interfaces.IRemoteGateway = (*BridgeGateway)(nil)

// NewBridgeGateway retries verification, download and FIEL calls up to retryMax
// times; authentication and query submission are sent once.
func NewBridgeGateway(baseURL string, timeout time.Duration, retryMax int, log *logger.Logger) *BridgeGateway {
	l := logger.OrDefault(log)
	return &BridgeGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    newBridgeHTTPClient(timeout, retryMax, l),
		once:    newBridgeHTTPClient(timeout, 0, l),
		log:     l,
	}
}

func newBridgeHTTPClient(timeout time.Duration, retryMax int, l *logger.Logger) *retryablehttp.Client {
	c := retryablehttp.NewClient()
	c.RetryMax = retryMax
	c.RetryWaitMin = 500 * time.Millisecond
	c.RetryWaitMax = 10 * time.Second
	c.HTTPClient.Timeout = timeout
	c.Logger = retryLogger{l}
	c.ErrorHandler = retryablehttp.PassthroughErrorHandler
	return c
}

func (g *BridgeGateway) clientFor(path string) *retryablehttp.Client {
	if singleShot[path] {
		return g.once
	}
	return g.http
}

func (g *BridgeGateway) Connect(signer interfaces.ISigner, kind entities.ServiceKind) (interfaces.IRemoteServiceClient, error) {
	if signer == nil {
		return nil, failures.New(failures.KindCredentialInvalid, "no signer")
	}
	return &bridgeClient{gw: g, signer: signer, kind: kind}, nil
}

type bridgeStatus struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (s bridgeStatus) remote() entities.RemoteStatus {
	return entities.RemoteStatus{Code: s.Code, Message: s.Message}
}

type bridgeToken struct {
	Value   string    `json:"token"`
	Created time.Time `json:"created"`
	Expires time.Time `json:"expires"`
}

type bridgeQueryRequest struct {
	Token          string `json:"token"`
	Start          string `json:"start"`
	End            string `json:"end"`
	DocumentType   string `json:"document_type"`
	DownloadType   string `json:"download_type"`
	DocumentStatus string `json:"document_status"`
	RequestType    string `json:"request_type"`
}

type bridgeQueryResponse struct {
	Status    bridgeStatus `json:"status"`
	RequestID string       `json:"request_id"`
}

type bridgeVerifyRequest struct {
	Token     string `json:"token"`
	RequestID string `json:"request_id"`
}

type bridgeVerifyResponse struct {
	Status        bridgeStatus `json:"status"`
	CodeRequest   bridgeStatus `json:"code_request"`
	StatusRequest int          `json:"status_request"`
	NumberCfdis   int          `json:"number_cfdis"`
	PackageIDs    []string     `json:"package_ids"`
}

type bridgeDownloadRequest struct {
	Token     string `json:"token"`
	PackageID string `json:"package_id"`
}

type bridgeDownloadResponse struct {
	Status  bridgeStatus `json:"status"`
	Package []byte       `json:"package"`
}

type bridgeError struct {
	Message string `json:"message"`
}

type bridgeClient struct {
	gw     *BridgeGateway
	signer interfaces.ISigner
	kind   entities.ServiceKind
}

func (c *bridgeClient) Authenticate(ctx context.Context) (entities.Token, error) {
	var out bridgeToken
	if err := c.call(ctx, pathAuthenticate, struct{}{}, &out); err != nil {
		return entities.Token{}, err
	}
	if out.Value == "" {
		return entities.Token{}, failures.New(failures.KindAuthenticationFailed, "bridge returned an empty token")
	}
	return entities.Token{Value: out.Value, Created: out.Created, Expires: out.Expires}, nil
}

func (c *bridgeClient) SubmitQuery(ctx context.Context, token entities.Token, q entities.RemoteQuery) (entities.QuerySubmission, error) {
	in := bridgeQueryRequest{
		Token:          token.Value,
		Start:          q.Start.Format(time.DateTime),
		End:            q.End.Format(time.DateTime),
		DocumentType:   string(q.DocumentType),
		DownloadType:   string(q.DownloadType),
		DocumentStatus: string(q.DocumentStatus),
		RequestType:    string(q.RequestType),
	}
	var out bridgeQueryResponse
	if err := c.call(ctx, pathQuery, in, &out); err != nil {
		return entities.QuerySubmission{}, err
	}
	return entities.QuerySubmission{Status: out.Status.remote(), RequestID: out.RequestID}, nil
}

func (c *bridgeClient) Verify(ctx context.Context, token entities.Token, requestID string) (entities.VerificationResult, error) {
	var out bridgeVerifyResponse
	if err := c.call(ctx, pathVerify, bridgeVerifyRequest{Token: token.Value, RequestID: requestID}, &out); err != nil {
		return entities.VerificationResult{}, err
	}
	return entities.VerificationResult{
		Status:        out.Status.remote(),
		CodeRequest:   out.CodeRequest.remote(),
		StatusRequest: entities.RequestStatus(out.StatusRequest),
		NumberCfdis:   out.NumberCfdis,
		PackageIDs:    out.PackageIDs,
	}, nil
}

func (c *bridgeClient) DownloadPackage(ctx context.Context, token entities.Token, packageID string) (entities.PackageDownload, error) {
	var out bridgeDownloadResponse
	if err := c.call(ctx, pathDownload, bridgeDownloadRequest{Token: token.Value, PackageID: packageID}, &out); err != nil {
		return entities.PackageDownload{}, err
	}
	return entities.PackageDownload{Status: out.Status.remote(), Content: out.Package}, nil
}

// call posts a signed JSON body and decodes the JSON answer into out.
func (c *bridgeClient) call(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return errors.Wrapf(err, "marshal %s request", path)
	}
	sig, err := c.signer.Sign(ctx, body)
	if err != nil {
		return failures.Wrap(err, failures.KindCredentialInvalid, "sign bridge request")
	}
	headers := map[string]string{
		headerSubject:     c.signer.SubjectID(),
		headerSignature:   base64.StdEncoding.EncodeToString(sig),
		headerServiceKind: string(c.kind),
	}
	return c.gw.post(ctx, path, headers, body, out)
}

func (g *BridgeGateway) post(ctx context.Context, path string, headers map[string]string, body []byte, out any) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, body)
	if err != nil {
		return errors.Wrapf(err, "build %s request", path)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := g.clientFor(path).Do(req)
	if err != nil {
		g.log.Warnf("[sat][bridge] call failed path=%s elapsed=%s err=%v", path, time.Since(start), err)
		return failures.Wrap(err, failures.KindRemoteTransport, "call SAT bridge "+path)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBridgeResponse))
	if err != nil {
		return failures.Wrap(err, failures.KindRemoteTransport, "read SAT bridge response")
	}
	g.log.Debugf("[sat][bridge] call path=%s status=%d elapsed=%s bytes=%d", path, resp.StatusCode, time.Since(start), len(data))

	if resp.StatusCode >= 400 {
		var be bridgeError
		_ = json.Unmarshal(data, &be)
		msg := strings.TrimSpace(be.Message)
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		kind := failures.KindRemoteTransport
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			kind = failures.KindAuthenticationFailed
		}
		return failures.Remote(kind, "SAT bridge "+path+" failed", resp.StatusCode, msg)
	}

	if err := json.NewDecoder(bytes.NewReader(data)).Decode(out); err != nil {
		return failures.Wrap(err, failures.KindRemoteTransport, "decode SAT bridge response")
	}
	return nil
}

// retryLogger routes retryablehttp's leveled output to zap.
type retryLogger struct {
	l *logger.Logger
}

func (r retryLogger) Error(msg string, kv ...interface{}) { r.l.Errorw("[sat][bridge] "+msg, kv...) }
func (r retryLogger) Info(msg string, kv ...interface{})  { r.l.Debugw("[sat][bridge] "+msg, kv...) }
func (r retryLogger) Debug(msg string, kv ...interface{}) { r.l.Debugw("[sat][bridge] "+msg, kv...) }
func (r retryLogger) Warn(msg string, kv ...interface{})  { r.l.Warnw("[sat][bridge] "+msg, kv...) }
