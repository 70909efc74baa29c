package satws

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"descarga_masiva/internal/domain/credentials"
	"descarga_masiva/internal/domain/entities"
	"descarga_masiva/internal/domain/failures"
	"descarga_masiva/internal/domain/packagereader"
	"descarga_masiva/internal/infrastructure/logger"
	"descarga_masiva/internal/usecase/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selfSignedFIEL(t *testing.T, rfc string, notAfter time.Time) []byte {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject: pkix.Name{
			CommonName: "CONTRIBUYENTE DE PRUEBA",
			ExtraNames: []pkix.AttributeTypeAndValue{{Type: oidUniqueIdentifier, Value: rfc + " / XEXX010101HNEXXXA4"}},
		},
		NotBefore: time.Now().Add(-time.Hour),
		NotAfter:  notAfter,
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)
	return der
}

func stage(t *testing.T, secret entities.CredentialSecret) *credentials.StagedCredential {
	t.Helper()
	cred, err := credentials.NewStagingArea(t.TempDir()).Stage(secret)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cred.Release() })
	return cred
}

func TestMockSignerFactory(t *testing.T) {
	ctx := context.Background()

	t.Run("subject from certificate", func(t *testing.T) {
		cred := stage(t, entities.CredentialSecret{
			Certificate: selfSignedFIEL(t, "aaa010101aaa", time.Now().Add(time.Hour)),
			PrivateKey:  []byte("key"),
			Passphrase:  []byte("pw"),
		})
		s, err := NewMockSignerFactory().NewSigner(ctx, cred)
		require.NoError(t, err)
		assert.Equal(t, "AAA010101AAA", s.SubjectID())
		assert.True(t, s.IsValid(ctx))

		a, err := s.Sign(ctx, []byte("challenge"))
		require.NoError(t, err)
		b, err := s.Sign(ctx, []byte("challenge"))
		require.NoError(t, err)
		assert.Equal(t, a, b)

		require.NoError(t, cred.Release())
		assert.False(t, s.IsValid(ctx))
		_, err = s.Sign(ctx, []byte("challenge"))
		assert.True(t, failures.Is(err, failures.KindCredentialInvalid))
	})

	t.Run("expired certificate", func(t *testing.T) {
		cred := stage(t, entities.CredentialSecret{
			Certificate: selfSignedFIEL(t, "AAA010101AAA", time.Now().Add(-time.Minute)),
			PrivateKey:  []byte("key"),
			Passphrase:  []byte("pw"),
		})
		s, err := NewMockSignerFactory().NewSigner(ctx, cred)
		require.NoError(t, err)
		assert.False(t, s.IsValid(ctx))
	})

	t.Run("opaque certificate", func(t *testing.T) {
		cred := stage(t, entities.CredentialSecret{Certificate: []byte("cer"), PrivateKey: []byte("key"), Passphrase: []byte("pw")})
		s, err := NewMockSignerFactory().NewSigner(ctx, cred)
		require.NoError(t, err)
		assert.Equal(t, GenericSubjectID, s.SubjectID())
		assert.True(t, s.IsValid(ctx))
	})
}

type stubSigner struct{ subject string }

func (s stubSigner) SubjectID() string                                { return s.subject }
func (s stubSigner) IsValid(context.Context) bool                     { return true }
func (s stubSigner) Sign(_ context.Context, b []byte) ([]byte, error) { return append([]byte("sig:"), b...), nil }

func connectMock(t *testing.T, g *MockGateway, subject string) (interfaces.IRemoteServiceClient, entities.Token) {
	t.Helper()
	c, err := g.Connect(stubSigner{subject}, entities.ServiceKindCfdi)
	require.NoError(t, err)
	tok, err := c.Authenticate(context.Background())
	require.NoError(t, err)
	return c, tok
}

func lastMonth(rt entities.RequestType) entities.RemoteQuery {
	start := time.Now().UTC().AddDate(0, -1, 0).Truncate(24 * time.Hour)
	return entities.RemoteQuery{
		Start:          start,
		End:            start.Add(24*time.Hour - time.Second),
		DocumentType:   entities.DocumentTypeUndefined,
		DownloadType:   entities.DownloadTypeReceived,
		DocumentStatus: entities.DocumentStatusUndefined,
		RequestType:    rt,
	}
}

func TestMockGateway_FullCycle(t *testing.T) {
	ctx := context.Background()
	g := NewMockGateway(2, 2, logger.NewNop())
	c, tok := connectMock(t, g, "BBB010101BBB")
	assert.Equal(t, 5*time.Minute, tok.Expires.Sub(tok.Created))

	sub, err := c.SubmitQuery(ctx, tok, lastMonth(entities.RequestTypeMetadata))
	require.NoError(t, err)
	require.True(t, sub.Status.IsAccepted())
	require.NotEmpty(t, sub.RequestID)

	dup, err := c.SubmitQuery(ctx, tok, lastMonth(entities.RequestTypeMetadata))
	require.NoError(t, err)
	assert.Equal(t, codeDuplicated, dup.Status.Code)

	res, err := c.Verify(ctx, tok, sub.RequestID)
	require.NoError(t, err)
	assert.Equal(t, entities.RequestStatusInProgress, res.StatusRequest)

	res, err = c.Verify(ctx, tok, sub.RequestID)
	require.NoError(t, err)
	require.Equal(t, entities.RequestStatusFinished, res.StatusRequest)
	require.Len(t, res.PackageIDs, 2)

	dl, err := c.DownloadPackage(ctx, tok, res.PackageIDs[0])
	require.NoError(t, err)
	require.True(t, dl.Status.IsAccepted())

	pkg, err := packagereader.Open(dl.Content)
	require.NoError(t, err)
	assert.True(t, pkg.HasManifest())
	rows, err := pkg.Manifest()
	require.NoError(t, err)
	require.Len(t, rows, mockInvoicesPerPack)
	assert.Equal(t, "BBB010101BBB", rows[0].RecipientID)
	assert.Equal(t, "1160.00", rows[0].Total.StringFixed(2))
}

func TestMockGateway_XMLPackages(t *testing.T) {
	ctx := context.Background()
	g := NewMockGateway(1, 1, logger.NewNop())
	c, tok := connectMock(t, g, "BBB010101BBB")

	sub, err := c.SubmitQuery(ctx, tok, lastMonth(entities.RequestTypeXML))
	require.NoError(t, err)
	res, err := c.Verify(ctx, tok, sub.RequestID)
	require.NoError(t, err)
	require.Len(t, res.PackageIDs, 1)

	dl, err := c.DownloadPackage(ctx, tok, res.PackageIDs[0])
	require.NoError(t, err)
	pkg, err := packagereader.Open(dl.Content)
	require.NoError(t, err)
	assert.False(t, pkg.HasManifest())

	n := 0
	for e, err := range pkg.Entries() {
		require.NoError(t, err)
		assert.Equal(t, "BBB010101BBB", e.Metadata.RecipientID)
		assert.NotEmpty(t, e.XML)
		n++
	}
	assert.Equal(t, mockInvoicesPerPack, n)
}

func TestMockGateway_Rejections(t *testing.T) {
	ctx := context.Background()
	g := NewMockGateway(1, 0, logger.NewNop())
	c, tok := connectMock(t, g, "BBB010101BBB")

	future := lastMonth(entities.RequestTypeMetadata)
	future.Start = time.Now().Add(48 * time.Hour)
	sub, err := c.SubmitQuery(ctx, tok, future)
	require.NoError(t, err)
	assert.Equal(t, codeNoInformation, sub.Status.Code)

	sub, err = c.SubmitQuery(ctx, entities.Token{Value: "forged"}, lastMonth(entities.RequestTypeMetadata))
	require.NoError(t, err)
	assert.Equal(t, codeInvalidUser, sub.Status.Code)

	sub, err = c.SubmitQuery(ctx, tok, lastMonth(entities.RequestTypeMetadata))
	require.NoError(t, err)
	res, err := c.Verify(ctx, tok, sub.RequestID)
	require.NoError(t, err)
	assert.Equal(t, codeNoInformation, res.CodeRequest.Code, "finished without packages")

	other, otherTok := connectMock(t, g, "CCC010101CCC")
	res, err = other.Verify(ctx, otherTok, sub.RequestID)
	require.NoError(t, err)
	assert.False(t, res.CodeRequest.IsAccepted())

	dl, err := other.DownloadPackage(ctx, otherTok, "UNKNOWN_01")
	require.NoError(t, err)
	assert.Equal(t, codePackageNotFound, dl.Status.Code)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = c.Verify(cancelled, tok, sub.RequestID)
	assert.True(t, failures.Is(err, failures.KindRemoteTransport))
}

func TestBridgeGateway(t *testing.T) {
	var verifyCalls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "BBB010101BBB", r.Header.Get(headerSubject))
		assert.NotEmpty(t, r.Header.Get(headerSignature))
		assert.Equal(t, "cfdi", r.Header.Get(headerServiceKind))

		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/authenticate":
			_, _ = w.Write([]byte(`{"token":"tok","created":"2024-03-01T10:00:00Z","expires":"2024-03-01T10:05:00Z"}`))
		case "/query":
			assert.Equal(t, "tok", body["token"])
			assert.Equal(t, "2024-01-01 00:00:00", body["start"])
			_, _ = w.Write([]byte(`{"status":{"code":5000,"message":"Solicitud Aceptada"},"request_id":"req-1"}`))
		case "/verify":
			if verifyCalls.Add(1) == 1 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write([]byte(`{"status":{"code":5000,"message":"ok"},"code_request":{"code":5000,"message":"ok"},"status_request":3,"number_cfdis":4,"package_ids":["P1"]}`))
		case "/download":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"status":  map[string]any{"code": 5000, "message": "ok"},
				"package": base64.StdEncoding.EncodeToString([]byte("zip")),
			})
		default:
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"message":"firma inválida"}`))
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	g := NewBridgeGateway(srv.URL+"/", time.Second, 2, logger.NewNop())
	g.http.RetryWaitMin = time.Millisecond
	g.http.RetryWaitMax = time.Millisecond

	c, err := g.Connect(stubSigner{"BBB010101BBB"}, entities.ServiceKindCfdi)
	require.NoError(t, err)

	tok, err := c.Authenticate(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", tok.Value)
	assert.Equal(t, 5*time.Minute, tok.Expires.Sub(tok.Created))

	sub, err := c.SubmitQuery(ctx, tok, entities.RemoteQuery{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "req-1", sub.RequestID)

	res, err := c.Verify(ctx, tok, "req-1")
	require.NoError(t, err)
	assert.Equal(t, entities.RequestStatusFinished, res.StatusRequest)
	assert.Equal(t, []string{"P1"}, res.PackageIDs)
	assert.EqualValues(t, 2, verifyCalls.Load())

	dl, err := c.DownloadPackage(ctx, tok, "P1")
	require.NoError(t, err)
	assert.Equal(t, []byte("zip"), dl.Content)

	err = g.post(ctx, "/unknown", map[string]string{
		headerSubject: "BBB010101BBB", headerSignature: "x", headerServiceKind: "cfdi",
	}, []byte(`{}`), &struct{}{})
	fail, ok := failures.As(err)
	require.True(t, ok)
	assert.Equal(t, failures.KindAuthenticationFailed, fail.Kind)
	assert.Equal(t, http.StatusForbidden, fail.RemoteCode)
	assert.Equal(t, "firma inválida", fail.RemoteMessage)
}

func TestBridgeGateway_SubmissionIsSentOnce(t *testing.T) {
	tests := []struct {
		name string
		path string
		call func(ctx context.Context, c interfaces.IRemoteServiceClient) error
	}{
		{
			name: "authenticate",
			path: "/authenticate",
			call: func(ctx context.Context, c interfaces.IRemoteServiceClient) error {
				_, err := c.Authenticate(ctx)
				return err
			},
		},
		{
			name: "query",
			path: "/query",
			call: func(ctx context.Context, c interfaces.IRemoteServiceClient) error {
				_, err := c.SubmitQuery(ctx, entities.Token{Value: "tok"}, lastMonth(entities.RequestTypeMetadata))
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != tt.path {
					w.WriteHeader(http.StatusNotFound)
					return
				}
				w.Header().Set("Content-Type", "application/json")
				if calls.Add(1) == 1 {
					w.WriteHeader(http.StatusBadGateway)
					return
				}
				_, _ = w.Write([]byte(`{"token":"tok","status":{"code":5000,"message":"Solicitud Aceptada"},"request_id":"req-2"}`))
			}))
			defer srv.Close()

			g := NewBridgeGateway(srv.URL, time.Second, 3, logger.NewNop())
			g.http.RetryWaitMin = time.Millisecond
			g.http.RetryWaitMax = time.Millisecond
			c, err := g.Connect(stubSigner{"BBB010101BBB"}, entities.ServiceKindCfdi)
			require.NoError(t, err)

			err = tt.call(context.Background(), c)
			fail, ok := failures.As(err)
			require.True(t, ok, "err=%v", err)
			assert.Equal(t, failures.KindRemoteTransport, fail.Kind)
			assert.Equal(t, http.StatusBadGateway, fail.RemoteCode)
			assert.EqualValues(t, 1, calls.Load())
		})
	}
}

func TestBridgeGateway_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	g := NewBridgeGateway(url, 100*time.Millisecond, 0, logger.NewNop())
	c, err := g.Connect(stubSigner{"BBB010101BBB"}, entities.ServiceKindCfdi)
	require.NoError(t, err)
	_, err = c.Authenticate(context.Background())
	assert.True(t, failures.Is(err, failures.KindRemoteTransport))
}

func TestBridgeSignerFactory(t *testing.T) {
	var (
		mu        sync.Mutex
		seenPaths []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in fielRequest
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&in)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		cer, err := os.ReadFile(in.CertificatePath)
		assert.NoError(t, err)
		assert.Equal(t, "cer", string(cer))
		assert.Equal(t, "pw", in.Passphrase)
		mu.Lock()
		seenPaths = append(seenPaths, in.CertificatePath)
		mu.Unlock()

		switch r.URL.Path {
		case "/fiel/validate":
			_, _ = w.Write([]byte(`{"valid":true,"subject_id":"AAA010101AAA"}`))
		case "/fiel/sign":
			_, _ = w.Write([]byte(`{"signature":"` + base64.StdEncoding.EncodeToString([]byte("signed:"+in.Challenge)) + `"}`))
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	cred := stage(t, entities.CredentialSecret{Certificate: []byte("cer"), PrivateKey: []byte("key"), Passphrase: []byte("pw")})
	s, err := NewBridgeSignerFactory(NewBridgeGateway(srv.URL, time.Second, 0, logger.NewNop())).NewSigner(ctx, cred)
	require.NoError(t, err)
	assert.Equal(t, "AAA010101AAA", s.SubjectID())
	assert.True(t, s.IsValid(ctx))

	sig, err := s.Sign(ctx, []byte("hola"))
	require.NoError(t, err)
	assert.Equal(t, "signed:"+base64.StdEncoding.EncodeToString([]byte("hola")), string(sig))

	secret, err := cred.Secret()
	require.NoError(t, err)
	assert.Equal(t, "pw", string(secret.Passphrase), "signing must not wipe the staged buffers")

	require.NoError(t, cred.Release())
	mu.Lock()
	first := seenPaths[0]
	mu.Unlock()
	_, err = os.Stat(first)
	assert.True(t, os.IsNotExist(err))
	assert.False(t, s.IsValid(ctx))
}
