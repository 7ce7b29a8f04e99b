package user

import (
	"encoding/json"
	"fmt"
)

// StorageKey is the single key the credential record lives under.
const StorageKey = "UserData"

// Credential is the one locally stored user record. It is compared in
// plaintext and is not a security mechanism.
type Credential struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	UserName string `json:"userName"`
}

func (c Credential) Encode() ([]byte, error) {
	return json.Marshal(c)
}

// DecodeCredential parses a stored record. A JSON null decodes to found=false.
func DecodeCredential(data []byte) (Credential, bool, error) {
	var c *Credential
	if err := json.Unmarshal(data, &c); err != nil {
		return Credential{}, false, fmt.Errorf("failed to decode credential record: %w", err)
	}
	if c == nil {
		return Credential{}, false, nil
	}
	return *c, true, nil
}
