package entities

// CredentialSecret is the FIEL material a lifecycle is authenticated with.
//
// It is never part of a LifecycleSnapshot; it only crosses the secret vault boundary sealed.
type CredentialSecret struct {
	Certificate []byte `json:"certificate"`
	PrivateKey  []byte `json:"private_key"`
	Passphrase  []byte `json:"passphrase"`
}

// Wipe zeroes every buffer in place.
func (c *CredentialSecret) Wipe() {
	if c == nil {
		return
	}
	clear(c.Certificate)
	clear(c.PrivateKey)
	clear(c.Passphrase)
}

func (c CredentialSecret) IsComplete() bool {
	return len(c.Certificate) > 0 && len(c.PrivateKey) > 0 && len(c.Passphrase) > 0
}
