package ledger

import (
	"testing"

	"github.com/cardano-cbor/ledgercodec/pkg/cbor"
	"github.com/cardano-cbor/ledgercodec/pkg/schema"
)

func TestVoterSchemaRoundTrip(t *testing.T) {
	voter := Voter{Kind: VoterDRepKeyHash, Hash: [28]byte{1, 2, 3}}
	v, err := voterSchema.Encode(voter)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	back, err := voterSchema.Decode(v)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if back != voter {
		t.Fatalf("got %+v, want %+v", back, voter)
	}
}

func TestVoterSchemaRejectsOutOfRangeKind(t *testing.T) {
	voter := Voter{Kind: VoterKind(5), Hash: [28]byte{}}
	if _, err := voterSchema.Encode(voter); !cbor.Is(err, cbor.EncoderRefusal) {
		t.Fatalf("expected EncoderRefusal, got %v", err)
	}
}

func TestVotingProcedureRoundTripWithAndWithoutAnchor(t *testing.T) {
	noAnchor := VotingProcedure{Vote: VoteYes}
	v, err := votingProcedureSchema.Encode(noAnchor)
	if err != nil {
		t.Fatalf("encode no-anchor: %v", err)
	}
	back, err := votingProcedureSchema.Decode(v)
	if err != nil {
		t.Fatalf("decode no-anchor: %v", err)
	}
	if back.Vote != VoteYes || back.Anchor != nil {
		t.Fatalf("got %+v, want Vote=Yes Anchor=nil", back)
	}

	withAnchor := VotingProcedure{Vote: VoteNo, Anchor: &Anchor{Url: "https://example.com", DataHash: [32]byte{9}}}
	v2, err := votingProcedureSchema.Encode(withAnchor)
	if err != nil {
		t.Fatalf("encode with-anchor: %v", err)
	}
	back2, err := votingProcedureSchema.Decode(v2)
	if err != nil {
		t.Fatalf("decode with-anchor: %v", err)
	}
	if back2.Anchor == nil || back2.Anchor.Url != "https://example.com" {
		t.Fatalf("got %+v, want anchor preserved", back2)
	}
}

func TestVotingProceduresRoundTrip(t *testing.T) {
	real := VotingProcedures{
		Ballots: []VoterBallot{
			{
				Voter: Voter{Kind: VoterStakePoolKeyHash, Hash: [28]byte{7}},
			},
		},
	}
	v, err := VotingProceduresSchema.Encode(real)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	back, err := VotingProceduresSchema.Decode(v)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(back.Ballots) != 1 || back.Ballots[0].Voter != real.Ballots[0].Voter {
		t.Fatalf("got %+v, want %+v", back, real)
	}
}

func TestVotingProceduresRoundTripWithVotes(t *testing.T) {
	withVotes := VotingProcedures{
		Ballots: []VoterBallot{
			{
				Voter: Voter{Kind: VoterCCKeyHash, Hash: [28]byte{3}},
				Procedures: []schema.KV[GovActionId, VotingProcedure]{
					{
						Key:   GovActionId{TransactionId: [32]byte{1}, ActionIndex: 0},
						Value: VotingProcedure{Vote: VoteAbstain},
					},
				},
			},
		},
	}
	v, err := VotingProceduresSchema.Encode(withVotes)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	back, err := VotingProceduresSchema.Decode(v)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(back.Ballots) != 1 || len(back.Ballots[0].Procedures) != 1 {
		t.Fatalf("got %+v, want one ballot with one procedure", back)
	}
	if back.Ballots[0].Procedures[0].Value.Vote != VoteAbstain {
		t.Fatalf("got vote %v, want Abstain", back.Ballots[0].Procedures[0].Value.Vote)
	}
}
