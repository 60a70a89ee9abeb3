package model

import "time"

// EncryptedSecret is the at-rest form of a user-supplied API credential.
// Each field is a base64 text encoding of the corresponding raw bytes.
// The plaintext form is never persisted.
type EncryptedSecret struct {
	Ciphertext string
	Nonce      string
	Tag        string
}

// APICredential holds the encrypted answer-provider credential for one user.
// At most one credential exists per owner.
type APICredential struct {
	OwnerID   string
	Secret    EncryptedSecret
	CreatedAt time.Time
	UpdatedAt time.Time
}
