package client

import "context"

// AccountData is the thin on-chain account representation fetched by
// Transport. Field shapes are deliberately minimal: the SDK shell never
// interprets account data beyond what Client needs to surface it.
type AccountData struct {
	Owner string
	Data  []byte
}

// Transport is the RPC boundary the Client talks to. It stands in for a
// Solana JSON-RPC connection (`solana.rpc.async_api.AsyncClient` in the
// original Python client): the Client package never assumes a concrete
// wire protocol, so tests can substitute an in-memory stub.
type Transport interface {
	FetchAccount(ctx context.Context, address Id) (AccountData, error)
}

// StubTransport is an in-memory Transport backed by a fixed account map,
// used in tests and for local development without a live RPC endpoint.
type StubTransport struct {
	Accounts map[Id]AccountData
}

// NewStubTransport builds a StubTransport with an empty account map.
func NewStubTransport() *StubTransport {
	return &StubTransport{Accounts: make(map[Id]AccountData)}
}

// FetchAccount implements Transport.
func (s *StubTransport) FetchAccount(ctx context.Context, address Id) (AccountData, error) {
	acct, ok := s.Accounts[address]
	if !ok {
		return AccountData{}, errAccountNotFound(address)
	}
	return acct, nil
}
