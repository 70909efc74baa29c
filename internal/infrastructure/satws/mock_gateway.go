package satws

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"descarga_masiva/internal/domain/cfdi"
	"descarga_masiva/internal/domain/entities"
	"descarga_masiva/internal/domain/failures"
	"descarga_masiva/internal/domain/packagereader"
	"descarga_masiva/internal/infrastructure/logger"
	"descarga_masiva/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SAT answer codes the simulated service uses.
const (
	codeInvalidUser      = 300
	codeNoInformation    = 5004
	codeDuplicated       = 5005
	codePackageNotFound  = 5007
	mockTokenLifetime    = 5 * time.Minute
	mockInvoicesPerPack  = 3
	mockCounterpartRFC   = "AAA010101AAA"
	mockCounterpartName  = "PROVEEDORA DEMO SA DE CV"
	mockIssuerRegime     = "601"
	mockRecipientRegime  = "612"
	mockRecipientZipCode = "06000"
)

type mockRequest struct {
	subjectID  string
	kind       entities.ServiceKind
	query      entities.RemoteQuery
	polls      int
	packageIDs []string
}

type mockToken struct {
	subjectID string
	expires   time.Time
}

// MockGateway is an in-process stand-in for the SAT bulk-download service.
// Accepted requests stay in progress for a number of polls, then finish with
// synthetic packages built in the SAT layout.
type MockGateway struct {
	mu       sync.Mutex
	polls    int
	packages int
	tokens   map[string]mockToken
	requests map[string]*mockRequest
	owners   map[string]string
	log      *logger.Logger
	now      func() time.Time
}

var _ interfaces.IRemoteGateway = (*MockGateway)(nil)

func NewMockGateway(polls, packages int, log *logger.Logger) *MockGateway {
	l := logger.OrDefault(log)
	l.Infof("[sat][gateway] mock mode enabled polls=%d packages=%d", polls, packages)
	return &MockGateway{
		polls:    polls,
		packages: packages,
		tokens:   map[string]mockToken{},
		requests: map[string]*mockRequest{},
		owners:   map[string]string{},
		log:      l,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (g *MockGateway) Connect(signer interfaces.ISigner, kind entities.ServiceKind) (interfaces.IRemoteServiceClient, error) {
	if signer == nil {
		return nil, failures.New(failures.KindCredentialInvalid, "no signer")
	}
	return &mockClient{gw: g, signer: signer, kind: kind}, nil
}

type mockClient struct {
	gw     *MockGateway
	signer interfaces.ISigner
	kind   entities.ServiceKind
}

func (c *mockClient) Authenticate(ctx context.Context) (entities.Token, error) {
	now := c.gw.now()
	challenge := []byte("autentica|" + now.Format(time.RFC3339))
	if _, err := c.signer.Sign(ctx, challenge); err != nil {
		return entities.Token{}, failures.Wrap(err, failures.KindAuthenticationFailed, "sign authentication challenge")
	}
	if err := ctx.Err(); err != nil {
		return entities.Token{}, failures.Wrap(err, failures.KindRemoteTransport, "authenticate")
	}

	t := entities.Token{Value: "mock-" + uuid.NewString(), Created: now, Expires: now.Add(mockTokenLifetime)}
	c.gw.mu.Lock()
	c.gw.tokens[t.Value] = mockToken{subjectID: c.signer.SubjectID(), expires: t.Expires}
	c.gw.mu.Unlock()
	c.gw.log.Debugf("[sat][gateway] mock authenticated subject_id=%s kind=%s", c.signer.SubjectID(), c.kind)
	return t, nil
}

func (c *mockClient) SubmitQuery(ctx context.Context, token entities.Token, query entities.RemoteQuery) (entities.QuerySubmission, error) {
	if err := ctx.Err(); err != nil {
		return entities.QuerySubmission{}, failures.Wrap(err, failures.KindRemoteTransport, "submit query")
	}
	g := c.gw
	g.mu.Lock()
	defer g.mu.Unlock()

	subjectID, ok := g.tokenOwner(token)
	if !ok {
		return entities.QuerySubmission{Status: entities.RemoteStatus{Code: codeInvalidUser, Message: "Usuario No Válido"}}, nil
	}
	if query.Start.After(g.now()) {
		return entities.QuerySubmission{Status: entities.RemoteStatus{Code: codeNoInformation, Message: "No se encontró la información"}}, nil
	}
	for _, r := range g.requests {
		if r.subjectID == subjectID && r.kind == c.kind && r.query == query {
			return entities.QuerySubmission{Status: entities.RemoteStatus{Code: codeDuplicated, Message: "Solicitud duplicada"}}, nil
		}
	}

	id := uuid.NewString()
	g.requests[id] = &mockRequest{subjectID: subjectID, kind: c.kind, query: query}
	g.log.Infof("[sat][gateway] mock query accepted request_id=%s subject_id=%s request_type=%s", id, subjectID, query.RequestType)
	return entities.QuerySubmission{Status: accepted("Solicitud Aceptada"), RequestID: id}, nil
}

func (c *mockClient) Verify(ctx context.Context, token entities.Token, requestID string) (entities.VerificationResult, error) {
	if err := ctx.Err(); err != nil {
		return entities.VerificationResult{}, failures.Wrap(err, failures.KindRemoteTransport, "verify")
	}
	g := c.gw
	g.mu.Lock()
	defer g.mu.Unlock()

	subjectID, ok := g.tokenOwner(token)
	if !ok {
		return entities.VerificationResult{Status: entities.RemoteStatus{Code: codeInvalidUser, Message: "Usuario No Válido"}}, nil
	}
	r, ok := g.requests[requestID]
	if !ok || r.subjectID != subjectID {
		return entities.VerificationResult{
			Status:      accepted("Solicitud Aceptada"),
			CodeRequest: entities.RemoteStatus{Code: codeNoInformation, Message: "No se encontró la solicitud"},
		}, nil
	}

	r.polls++
	if r.polls < g.polls {
		return entities.VerificationResult{
			Status:        accepted("Solicitud Aceptada"),
			CodeRequest:   accepted("Solicitud Aceptada"),
			StatusRequest: entities.RequestStatusInProgress,
		}, nil
	}

	if r.packageIDs == nil {
		r.packageIDs = []string{}
		for i := 1; i <= g.packages; i++ {
			pid := fmt.Sprintf("%s_%02d", strings.ToUpper(requestID), i)
			r.packageIDs = append(r.packageIDs, pid)
			g.owners[pid] = requestID
		}
	}
	if len(r.packageIDs) == 0 {
		return entities.VerificationResult{
			Status:        accepted("Solicitud Aceptada"),
			CodeRequest:   entities.RemoteStatus{Code: codeNoInformation, Message: "No se encontró la información"},
			StatusRequest: entities.RequestStatusFinished,
		}, nil
	}
	return entities.VerificationResult{
		Status:        accepted("Solicitud Aceptada"),
		CodeRequest:   accepted("Solicitud Aceptada"),
		StatusRequest: entities.RequestStatusFinished,
		NumberCfdis:   len(r.packageIDs) * mockInvoicesPerPack,
		PackageIDs:    append([]string(nil), r.packageIDs...),
	}, nil
}

func (c *mockClient) DownloadPackage(ctx context.Context, token entities.Token, packageID string) (entities.PackageDownload, error) {
	if err := ctx.Err(); err != nil {
		return entities.PackageDownload{}, failures.Wrap(err, failures.KindRemoteTransport, "download package")
	}
	g := c.gw
	g.mu.Lock()
	subjectID, ok := g.tokenOwner(token)
	var req mockRequest
	if ok {
		if r, found := g.requests[g.owners[packageID]]; found && r.subjectID == subjectID {
			req = *r
		} else {
			ok = false
		}
	}
	g.mu.Unlock()

	if !ok {
		return entities.PackageDownload{Status: entities.RemoteStatus{Code: codePackageNotFound, Message: "No existe el paquete solicitado"}}, nil
	}
	content, err := buildMockPackage(packageID, req)
	if err != nil {
		return entities.PackageDownload{}, failures.Wrap(err, failures.KindRemoteTransport, "build package")
	}
	return entities.PackageDownload{Status: accepted("Solicitud Aceptada"), Content: content}, nil
}

// tokenOwner must be called with g.mu held.
func (g *MockGateway) tokenOwner(t entities.Token) (string, bool) {
	tok, ok := g.tokens[t.Value]
	if !ok || !g.now().Before(tok.expires) {
		return "", false
	}
	return tok.subjectID, true
}

func accepted(msg string) entities.RemoteStatus {
	return entities.RemoteStatus{Code: entities.RemoteCodeAccepted, Message: msg}
}

// buildMockPackage lays out a metadata package (manifest only) or an xml
// package (documents only), the way SAT does for each request type.
func buildMockPackage(packageID string, r mockRequest) ([]byte, error) {
	b := packagereader.NewBuilder(packageID + ".txt")
	if r.query.RequestType == entities.RequestTypeXML {
		b = packagereader.NewBuilder("")
	}

	issuerID, issuerName, recipientID, recipientName := mockCounterpartRFC, mockCounterpartName, r.subjectID, "CONTRIBUYENTE"
	if r.query.DownloadType == entities.DownloadTypeIssued {
		issuerID, issuerName, recipientID, recipientName = r.subjectID, "CONTRIBUYENTE", mockCounterpartRFC, mockCounterpartName
	}

	for i := range mockInvoicesPerPack {
		id := strings.ToUpper(uuid.NewSHA1(uuid.NameSpaceOID, fmt.Appendf(nil, "%s/%d", packageID, i)).String())
		issued := r.query.Start.Add(time.Duration(i+1) * time.Hour)
		subtotal := decimal.NewFromInt(int64(1000 * (i + 1)))
		tax := subtotal.Mul(decimal.RequireFromString("0.16"))
		total := subtotal.Add(tax)

		if r.query.RequestType != entities.RequestTypeXML {
			certified := issued.Add(time.Minute)
			b.AddMetadata(entities.InvoiceMetadata{
				UUID:              id,
				IssuerID:          issuerID,
				IssuerName:        issuerName,
				RecipientID:       recipientID,
				RecipientName:     recipientName,
				PacID:             "SAT970701NN3",
				IssueDate:         issued,
				CertificationDate: &certified,
				Total:             total,
				EffectStatus:      "I",
				DocumentStatus:    entities.DocumentStatusActive,
			})
			continue
		}

		doc := entities.InvoiceDocument{
			Version:         entities.NewText("4.0"),
			UUID:            entities.NewText(id),
			Series:          entities.NewText("A"),
			Folio:           entities.NewText(fmt.Sprint(i + 1)),
			Date:            entities.NewText(issued.Format("2006-01-02T15:04:05")),
			Subtotal:        entities.NewText(subtotal.StringFixed(2)),
			Currency:        entities.NewText("MXN"),
			Total:           entities.NewText(total.StringFixed(2)),
			DocumentType:    entities.NewText("I"),
			Export:          entities.NewText("01"),
			PaymentMethod:   entities.NewText("PUE"),
			PaymentForm:     entities.NewText("03"),
			IssuingPlace:    entities.NewText(mockRecipientZipCode),
			Issuer:          entities.InvoiceIssuer{ID: entities.NewText(issuerID), Name: entities.NewText(issuerName), Regime: entities.NewText(mockIssuerRegime)},
			Recipient: entities.InvoiceRecipient{
				ID:            entities.NewText(recipientID),
				Name:          entities.NewText(recipientName),
				FiscalAddress: entities.NewText(mockRecipientZipCode),
				Regime:        entities.NewText(mockRecipientRegime),
				Usage:         entities.NewText("G03"),
			},
			Items: []entities.InvoiceItem{{
				ProductKey:  entities.NewText("84111506"),
				Quantity:    entities.NewText("1"),
				UnitKey:     entities.NewText("ACT"),
				Description: entities.NewText("Servicios de facturación"),
				UnitValue:   entities.NewText(subtotal.StringFixed(2)),
				Amount:      entities.NewText(subtotal.StringFixed(2)),
				TaxObject:   entities.NewText("02"),
			}},
			TransferredTaxTotal: entities.NewText(tax.StringFixed(2)),
		}
		xml, err := cfdi.Encode(doc)
		if err != nil {
			return nil, err
		}
		b.AddDocument(id+".xml", xml)
	}
	return b.Bytes()
}
