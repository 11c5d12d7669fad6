package client

import (
	"crypto/sha256"

	"github.com/yousif123412321/pod-protocol/core"
)

// Id is the client package's account identifier, shared with the core
// pipeline so a channel/participant Id can be used directly as a
// Record.Channel or Record.Sender.
type Id = core.Id

// maxBump is the starting bump seed for PDA derivation, mirroring
// Solana's find_program_address search from 255 down to 0.
const maxBump = 255

// derivePDA mirrors find_agent_pda/find_channel_pda/find_escrow_pda from
// the original Python client's utils.py: concatenate the given seeds with
// a decreasing bump byte and the program id, hash, and take the first
// bump whose digest is not the all-zero sentinel. There is no Solana
// curve to fall off of here, so the "off-curve" search is replaced by
// this deterministic acceptance predicate.
func derivePDA(programID Id, seeds ...[]byte) (Id, uint8) {
	for bump := maxBump; bump >= 0; bump-- {
		h := sha256.New()
		for _, s := range seeds {
			h.Write(s)
		}
		h.Write([]byte{byte(bump)})
		h.Write(programID[:])
		sum := h.Sum(nil)
		var out Id
		copy(out[:], sum)
		if !core.Digest(out).IsZero() {
			return out, uint8(bump)
		}
	}
	panic("client: no valid PDA bump found")
}

// DeriveChannelPDA derives a channel account address from its creator
// and name, per find_channel_pda.
func DeriveChannelPDA(creator Id, name string, programID Id) (Id, uint8) {
	return derivePDA(programID, []byte("channel"), creator[:], []byte(name))
}

// DeriveParticipantPDA derives a participant account address within a
// channel, per the private _find_participant_pda helper used by the
// channel service.
func DeriveParticipantPDA(channel, agent Id, programID Id) (Id, uint8) {
	return derivePDA(programID, []byte("participant"), channel[:], agent[:])
}

// DeriveAgentPDA derives an agent account address, per find_agent_pda.
func DeriveAgentPDA(agentPubkey Id, programID Id) (Id, uint8) {
	return derivePDA(programID, []byte("agent"), agentPubkey[:])
}
