package cbor

// Mode selects between two families of encoding behavior: a hand-tunable
// "custom" mode driven by the individual flags below, and a "canonical" mode
// that forces RFC 8949 §4.2.1 behavior and ignores the custom flags.
type Mode int

const (
	ModeCustom Mode = iota
	ModeCanonical
)

// Options is passed to both the reader and the writer. The same struct flows
// through both directions so callers can request CML-compatible
// definite-length output, canonical RFC 8949 output, or indefinite-length
// output. Only the writer reads its fields; Decode ignores them.
type Options struct {
	Mode Mode

	// UseIndefiniteArrays, when Mode == ModeCustom, writes non-empty arrays
	// using the indefinite (0x9F ... 0xFF) form.
	UseIndefiniteArrays bool
	// UseIndefiniteMaps is the map analogue of UseIndefiniteArrays.
	UseIndefiniteMaps bool
	// UseDefiniteForEmpty overrides UseIndefiniteArrays/UseIndefiniteMaps
	// when the container has zero elements: an empty array/map is always
	// written definite-length regardless of the indefinite flags.
	UseDefiniteForEmpty bool
	// SortMapKeys, when Mode == ModeCustom, sorts encoded map pairs by the
	// byte length of the encoded key only (not full lexicographic order;
	// see Profile/SortMapKeys note in pkg/cbor/writer.go). ModeCanonical
	// always sorts, additionally breaking ties lexicographically.
	SortMapKeys bool
	// UseMinimalEncoding picks the shortest integer/length header that
	// fits. ModeCanonical always behaves as if this were true.
	UseMinimalEncoding bool
	// MapsAsObjects is carried as part of the option bundle but is not read
	// by any decoder or schema in this module: maps always decode as
	// ordered key/value pairs, never as string-keyed records.
	MapsAsObjects bool
}

// Canonical reports whether o behaves in RFC 8949 §4.2.1 canonical mode.
func (o Options) Canonical() bool { return o.Mode == ModeCanonical }

// indefiniteArrays reports the effective indefinite-array behavior,
// accounting for canonical mode (which forbids indefinite forms outright).
func (o Options) indefiniteArrays(length int) bool {
	if o.Mode == ModeCanonical {
		return false
	}
	if length == 0 && o.UseDefiniteForEmpty {
		return false
	}
	return o.UseIndefiniteArrays
}

func (o Options) indefiniteMaps(length int) bool {
	if o.Mode == ModeCanonical {
		return false
	}
	if length == 0 && o.UseDefiniteForEmpty {
		return false
	}
	return o.UseIndefiniteMaps
}

func (o Options) minimalEncoding() bool {
	return o.Mode == ModeCanonical || o.UseMinimalEncoding
}

func (o Options) sortKeys() bool {
	return o.Mode == ModeCanonical || o.SortMapKeys
}

// Profile names one of the preset option bundles used across the Cardano
// ecosystem, collapsing what several call sites would otherwise express as
// overlapping default-option constants (a CML default, a Plutus Data
// default, a struct-friendly default) into a single enum.
type Profile int

const (
	ProfileCml Profile = iota
	ProfilePlutusData
	ProfileCanonical
	ProfileStructFriendly
)

// DefaultOptions returns the Options bundle for the named profile.
func DefaultOptions(p Profile) Options {
	switch p {
	case ProfilePlutusData:
		return Options{
			Mode:                ModeCustom,
			UseIndefiniteArrays: true,
			UseIndefiniteMaps:   true,
			UseDefiniteForEmpty: true,
			UseMinimalEncoding:  true,
		}
	case ProfileCanonical:
		return Options{Mode: ModeCanonical}
	case ProfileStructFriendly:
		return Options{
			Mode:                ModeCustom,
			UseDefiniteForEmpty: true,
			UseMinimalEncoding:  true,
		}
	default: // ProfileCml
		return Options{
			Mode:                ModeCustom,
			UseIndefiniteArrays: false,
			UseIndefiniteMaps:   false,
			UseDefiniteForEmpty: true,
			SortMapKeys:         false,
			UseMinimalEncoding:  true,
			MapsAsObjects:       false,
		}
	}
}

// CmlDefaultOptions is the default option set for general Cardano-ledger
// CBOR: definite-length, minimally encoded, unsorted maps.
func CmlDefaultOptions() Options { return DefaultOptions(ProfileCml) }

// PlutusDataDefaultOptions is the CML-compatible default for Plutus Data:
// like CmlDefaultOptions but with indefinite arrays/maps on, matching the
// wire shape Cardano node/CML actually emits for Plutus Data.
func PlutusDataDefaultOptions() Options { return DefaultOptions(ProfilePlutusData) }

// CanonicalOptions is strict RFC 8949 §4.2.1 canonical CBOR.
func CanonicalOptions() Options { return DefaultOptions(ProfileCanonical) }
