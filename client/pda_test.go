package client

import "testing"

func TestDeriveChannelPDA_Deterministic(t *testing.T) {
	creator := Id{1}
	program := Id{9}
	a, bumpA := DeriveChannelPDA(creator, "general", program)
	b, bumpB := DeriveChannelPDA(creator, "general", program)
	if a != b || bumpA != bumpB {
		t.Fatalf("expected deterministic derivation, got (%x,%d) vs (%x,%d)", a, bumpA, b, bumpB)
	}
}

func TestDeriveChannelPDA_DiffersByName(t *testing.T) {
	creator := Id{1}
	program := Id{9}
	a, _ := DeriveChannelPDA(creator, "general", program)
	b, _ := DeriveChannelPDA(creator, "random", program)
	if a == b {
		t.Fatalf("expected different channel names to derive different addresses")
	}
}

func TestDeriveParticipantPDA_DiffersFromChannelPDA(t *testing.T) {
	creator := Id{1}
	agent := Id{2}
	program := Id{9}
	channel, _ := DeriveChannelPDA(creator, "general", program)
	participant, _ := DeriveParticipantPDA(channel, agent, program)
	if channel == participant {
		t.Fatalf("expected participant PDA to differ from channel PDA")
	}
}
