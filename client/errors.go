package client

import (
	"errors"
	"fmt"
)

// errNoProofVerifier is returned by Client.VerifyCompressionProof when no
// ProofVerifier adapter was supplied.
var errNoProofVerifier = errors.New("client: no proof verifier configured")

// AccountNotFoundError reports a Transport lookup miss.
type AccountNotFoundError struct {
	Address Id
}

func (e *AccountNotFoundError) Error() string {
	return fmt.Sprintf("client: account %s not found", e.Address.Hex())
}

func errAccountNotFound(address Id) error {
	return &AccountNotFoundError{Address: address}
}
