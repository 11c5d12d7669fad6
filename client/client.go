// Package client is the thin SDK shell around the compression pipeline:
// an RPC transport, PDA derivation, and a SendMessage convenience that
// wraps the Batcher. It mirrors sdk-python/pod_protocol/client.py at
// SDK-shell fidelity, not core fidelity — no transaction signing, no
// wire-level Solana RPC client.
package client

import (
	"context"

	"github.com/yousif123412321/pod-protocol/core"
)

// ChannelAccount is the SDK shell's view of an on-chain channel account,
// mirroring ChannelAccount in services/channel.py.
type ChannelAccount struct {
	Address Id
	Creator Id
	Name    string
}

// ParticipantAccount mirrors the participant account fetched by
// ChannelService.get_participant in the original client.
type ParticipantAccount struct {
	Address Id
	Channel Id
	Agent   Id
}

// Client bundles the pieces an agent needs to submit and look up
// protocol state: an RPC Transport, the content-addressed ObjectStore,
// and the Batcher that turns records into committed Merkle batches.
type Client struct {
	Transport Transport
	Store     core.ObjectStore
	Batcher   *core.Batcher
	ProgramID Id
}

// New wires a Client around the given transport, store, and batcher.
func New(transport Transport, store core.ObjectStore, batcher *core.Batcher, programID Id) *Client {
	return &Client{Transport: transport, Store: store, Batcher: batcher, ProgramID: programID}
}

// SendMessage enqueues content as a Record via the Batcher, which stores
// it in the ObjectStore and returns the handle the caller can use to
// recover the eventual Merkle proof once the batch commits.
func (c *Client) SendMessage(ctx context.Context, channel, sender Id, content []byte, kind core.RecordKind) (core.RecordHandle, error) {
	in := core.RecordInput{
		Channel: channel,
		Sender:  sender,
		Content: content,
		Kind:    kind,
	}
	return c.Batcher.Enqueue(ctx, in)
}

// FetchChannelAccount derives the channel PDA from creator+name and
// fetches its account data over Transport.
func (c *Client) FetchChannelAccount(ctx context.Context, creator Id, name string) (ChannelAccount, error) {
	addr, _ := DeriveChannelPDA(creator, name, c.ProgramID)
	if _, err := c.Transport.FetchAccount(ctx, addr); err != nil {
		return ChannelAccount{}, err
	}
	return ChannelAccount{Address: addr, Creator: creator, Name: name}, nil
}

// FetchParticipantAccount derives the participant PDA within channel for
// agent and fetches its account data over Transport.
func (c *Client) FetchParticipantAccount(ctx context.Context, channel, agent Id) (ParticipantAccount, error) {
	addr, _ := DeriveParticipantPDA(channel, agent, c.ProgramID)
	if _, err := c.Transport.FetchAccount(ctx, addr); err != nil {
		return ParticipantAccount{}, err
	}
	return ParticipantAccount{Address: addr, Channel: channel, Agent: agent}, nil
}
