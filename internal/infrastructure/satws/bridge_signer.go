package satws

import (
	"context"
	"encoding/base64"
	"encoding/json"

	"descarga_masiva/internal/domain/credentials"
	"descarga_masiva/internal/domain/failures"
	"descarga_masiva/internal/usecase/interfaces"

	"github.com/cockroachdb/errors"
)

// BridgeSignerFactory loads the FIEL inside the SAT bridge. The bridge reads the
// certificate and key from the staged files, so they exist only while the
// staged credential is alive.
type BridgeSignerFactory struct {
	gw *BridgeGateway
}

var _ interfaces.ISignerFactory = (*BridgeSignerFactory)(nil)

func NewBridgeSignerFactory(gw *BridgeGateway) *BridgeSignerFactory {
	return &BridgeSignerFactory{gw: gw}
}

type fielRequest struct {
	CertificatePath string `json:"certificate_path"`
	KeyPath         string `json:"key_path"`
	Passphrase      string `json:"passphrase"`
	Challenge       string `json:"challenge,omitempty"`
}

type fielValidateResponse struct {
	Valid     bool   `json:"valid"`
	SubjectID string `json:"subject_id"`
}

type fielSignResponse struct {
	Signature string `json:"signature"`
}

func (f *BridgeSignerFactory) NewSigner(ctx context.Context, cred *credentials.StagedCredential) (interfaces.ISigner, error) {
	s := &bridgeSigner{gw: f.gw, cred: cred}
	var out fielValidateResponse
	if err := s.fiel(ctx, "/fiel/validate", nil, &out); err != nil {
		return nil, err
	}
	s.subjectID = out.SubjectID
	s.valid = out.Valid && out.SubjectID != ""
	return s, nil
}

type bridgeSigner struct {
	gw        *BridgeGateway
	cred      *credentials.StagedCredential
	subjectID string
	valid     bool
}

func (s *bridgeSigner) SubjectID() string { return s.subjectID }

func (s *bridgeSigner) IsValid(context.Context) bool {
	return s.valid && !s.cred.Released()
}

func (s *bridgeSigner) Sign(ctx context.Context, challenge []byte) ([]byte, error) {
	var out fielSignResponse
	if err := s.fiel(ctx, "/fiel/sign", challenge, &out); err != nil {
		return nil, err
	}
	sig, err := base64.StdEncoding.DecodeString(out.Signature)
	if err != nil {
		return nil, failures.Wrap(err, failures.KindRemoteTransport, "decode signature")
	}
	return sig, nil
}

func (s *bridgeSigner) fiel(ctx context.Context, path string, challenge []byte, out any) error {
	files, err := s.cred.MaterializeFiles()
	if err != nil {
		return failures.Wrap(err, failures.KindCredentialInvalid, "stage FIEL files")
	}
	secret, err := s.cred.Secret()
	if err != nil {
		return failures.Wrap(err, failures.KindCredentialInvalid, "read staged credential")
	}

	in := fielRequest{
		CertificatePath: files.CertificatePath,
		KeyPath:         files.KeyPath,
		Passphrase:      string(secret.Passphrase),
	}
	if challenge != nil {
		in.Challenge = base64.StdEncoding.EncodeToString(challenge)
	}
	body, err := json.Marshal(in)
	if err != nil {
		return errors.Wrap(err, "marshal fiel request")
	}
	defer clear(body)
	return s.gw.post(ctx, path, nil, body, out)
}
