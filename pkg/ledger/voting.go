package ledger

import (
	"github.com/cardano-cbor/ledgercodec/pkg/cbor"
	"github.com/cardano-cbor/ledgercodec/pkg/schema"
)

// VoterKind identifies which kind of credential a Voter's hash belongs to.
type VoterKind uint64

const (
	VoterCCKeyHash        VoterKind = 0
	VoterCCScriptHash     VoterKind = 1
	VoterDRepKeyHash      VoterKind = 2
	VoterDRepScriptHash   VoterKind = 3
	VoterStakePoolKeyHash VoterKind = 4
)

// Voter is the 2-tuple [kind, hash] identifying who cast a vote. Unlike a
// DRep credential, a Voter can never be the AlwaysAbstain/AlwaysNoConfidence
// sentinels: those don't identify anyone, and there is no Voter constructor
// for them at all. The type itself only has the five kinds above, so any
// out-of-range Kind value reaching voterSchema's encoder is refused.
type Voter struct {
	Kind VoterKind
	Hash [28]byte
}

var voterSchema = schema.Tuple(2,
	func(items []cbor.Value) (Voter, error) {
		if items[0].Kind() != cbor.MajorUint {
			return Voter{}, cbor.Newf(cbor.InvalidVariant, "voter kind must be a uint")
		}
		kind := VoterKind(items[0].AsBigInt().Uint64())
		if kind > VoterStakePoolKeyHash {
			return Voter{}, cbor.Newf(cbor.InvalidVariant, "voter kind %d out of range 0..4", kind)
		}
		hash, err := BytesKSchema(28).Decode(items[1])
		if err != nil {
			return Voter{}, cbor.Wrap(cbor.OutOfRange, err, "voter hash")
		}
		var h [28]byte
		copy(h[:], hash)
		return Voter{Kind: kind, Hash: h}, nil
	},
	func(v Voter) ([]cbor.Value, error) {
		if v.Kind > VoterStakePoolKeyHash {
			return nil, cbor.Newf(cbor.EncoderRefusal, "voter kind %d cannot identify a voter", v.Kind)
		}
		return []cbor.Value{cbor.UintFromU64(uint64(v.Kind)), cbor.Bytes(v.Hash[:])}, nil
	},
)

// GovActionId identifies a governance action: the transaction that proposed
// it, and that transaction's proposal-procedure index.
type GovActionId struct {
	TransactionId [32]byte
	ActionIndex   uint64
}

var govActionIdSchema = schema.Tuple(2,
	func(items []cbor.Value) (GovActionId, error) {
		txId, err := BytesKSchema(32).Decode(items[0])
		if err != nil {
			return GovActionId{}, cbor.Wrap(cbor.OutOfRange, err, "gov action transaction id")
		}
		if items[1].Kind() != cbor.MajorUint {
			return GovActionId{}, cbor.Newf(cbor.InvalidVariant, "gov action index must be a uint")
		}
		var id [32]byte
		copy(id[:], txId)
		return GovActionId{TransactionId: id, ActionIndex: items[1].AsBigInt().Uint64()}, nil
	},
	func(g GovActionId) ([]cbor.Value, error) {
		return []cbor.Value{cbor.Bytes(g.TransactionId[:]), cbor.UintFromU64(g.ActionIndex)}, nil
	},
)

// Vote is one of the three ballot values a VotingProcedure can carry.
type Vote uint64

const (
	VoteNo      Vote = 0
	VoteYes     Vote = 1
	VoteAbstain Vote = 2
)

func (v Vote) String() string {
	switch v {
	case VoteNo:
		return "No"
	case VoteYes:
		return "Yes"
	case VoteAbstain:
		return "Abstain"
	default:
		return "Unknown"
	}
}

// Anchor points at an off-chain metadata document and pins its content hash.
type Anchor struct {
	Url      string
	DataHash [32]byte
}

var anchorSchema = schema.Tuple(2,
	func(items []cbor.Value) (Anchor, error) {
		if items[0].Kind() != cbor.MajorText {
			return Anchor{}, cbor.Newf(cbor.InvalidVariant, "anchor url must be text")
		}
		hash, err := BytesKSchema(32).Decode(items[1])
		if err != nil {
			return Anchor{}, cbor.Wrap(cbor.OutOfRange, err, "anchor data hash")
		}
		var h [32]byte
		copy(h[:], hash)
		return Anchor{Url: items[0].AsText(), DataHash: h}, nil
	},
	func(a Anchor) ([]cbor.Value, error) {
		return []cbor.Value{cbor.Text(a.Url), cbor.Bytes(a.DataHash[:])}, nil
	},
)

// anchorOrNullSchema is `anchor | null`: a VotingProcedure's optional anchor,
// converted between the combinator's schema.Option[Anchor] and a plain *Anchor
// for a more natural Go field type at this layer.
var anchorOrNullSchema = schema.Schema[cbor.Value, *Anchor]{
	Decode: func(v cbor.Value) (*Anchor, error) {
		opt, err := schema.NullOr(anchorSchema).Decode(v)
		if err != nil {
			return nil, err
		}
		if !opt.Present {
			return nil, nil
		}
		a := opt.Value
		return &a, nil
	},
	Encode: func(a *Anchor) (cbor.Value, error) {
		if a == nil {
			return schema.NullOr(anchorSchema).Encode(schema.None[Anchor]())
		}
		return schema.NullOr(anchorSchema).Encode(schema.Some(*a))
	},
}

// VotingProcedure is the 2-tuple [vote, anchor | null] cast by a Voter for a
// single governance action.
type VotingProcedure struct {
	Vote   Vote
	Anchor *Anchor
}

var votingProcedureSchema = schema.Tuple(2,
	func(items []cbor.Value) (VotingProcedure, error) {
		if items[0].Kind() != cbor.MajorUint {
			return VotingProcedure{}, cbor.Newf(cbor.InvalidVariant, "vote must be a uint")
		}
		vote := Vote(items[0].AsBigInt().Uint64())
		if vote > VoteAbstain {
			return VotingProcedure{}, cbor.Newf(cbor.InvalidVariant, "vote %d out of range 0..2", vote)
		}
		anchor, err := anchorOrNullSchema.Decode(items[1])
		if err != nil {
			return VotingProcedure{}, err
		}
		return VotingProcedure{Vote: vote, Anchor: anchor}, nil
	},
	func(p VotingProcedure) ([]cbor.Value, error) {
		if p.Vote > VoteAbstain {
			return nil, cbor.Newf(cbor.EncoderRefusal, "vote %d out of range 0..2", p.Vote)
		}
		anchorVal, err := anchorOrNullSchema.Encode(p.Anchor)
		if err != nil {
			return nil, err
		}
		return []cbor.Value{cbor.UintFromU64(uint64(p.Vote)), anchorVal}, nil
	},
)

// VoterBallot pairs a Voter with all of the governance-action votes they
// cast, the inner Map<GovActionId, VotingProcedure> of the wire shape.
type VoterBallot struct {
	Voter      Voter
	Procedures []schema.KV[GovActionId, VotingProcedure]
}

// VotingProcedures is the Map<Voter, Map<GovActionId, VotingProcedure>> a
// transaction body's voting_procedures field carries.
type VotingProcedures struct {
	Ballots []VoterBallot
}

var votingProceduresInnerSchema = schema.Map(govActionIdSchema, votingProcedureSchema)

// VotingProceduresSchema is the top-level codec for VotingProcedures.
var VotingProceduresSchema = schema.Schema[cbor.Value, VotingProcedures]{
	Decode: func(v cbor.Value) (VotingProcedures, error) {
		outer, err := schema.Map(voterSchema, votingProceduresInnerSchema).Decode(v)
		if err != nil {
			return VotingProcedures{}, err
		}
		ballots := make([]VoterBallot, len(outer))
		for i, kv := range outer {
			ballots[i] = VoterBallot{Voter: kv.Key, Procedures: kv.Value}
		}
		return VotingProcedures{Ballots: ballots}, nil
	},
	Encode: func(p VotingProcedures) (cbor.Value, error) {
		outer := make([]schema.KV[Voter, []schema.KV[GovActionId, VotingProcedure]], len(p.Ballots))
		for i, b := range p.Ballots {
			outer[i] = schema.KV[Voter, []schema.KV[GovActionId, VotingProcedure]]{Key: b.Voter, Value: b.Procedures}
		}
		return schema.Map(voterSchema, votingProceduresInnerSchema).Encode(outer)
	},
}
