package marshalling

import (
	"math/big"

	"go.dedis.ch/kyber/v4"
	"go.dedis.ch/protobuf"
	"golang.org/x/xerrors"

	"thresholdsecret/reedsolomon"
	"thresholdsecret/secretsharing"
)

// ShareRecord is the binary form of a share. X is written in base 10.
type ShareRecord struct {
	X     string
	Base  int64
	Value string
}

// BundleRecord is the binary form of a whole share file. Every element of
// Shares is an encoded ShareRecord.
type BundleRecord struct {
	N      int64
	K      int64
	Shares [][]byte
}

// ShardRecord is one shard of an erasure-coded bundle. Every shard carries
// the parameters of the code so that any subset of them can be decoded.
type ShardRecord struct {
	Required int64
	Total    int64
	Number   int64
	Data     []byte
}

func toRecord(s secretsharing.Share) *ShareRecord {
	return &ShareRecord{
		X:     s.X.String(),
		Base:  int64(s.Base),
		Value: s.Value,
	}
}

func fromRecord(r *ShareRecord) (secretsharing.Share, error) {
	x, ok := new(big.Int).SetString(r.X, 10)
	if !ok {
		return secretsharing.Share{}, xerrors.Errorf("invalid share index %q: %w", r.X, ErrMalformedShareFile)
	}
	return secretsharing.Share{X: x, Base: int(r.Base), Value: r.Value}, nil
}

// marshalShare encodes a single share
func marshalShare(s secretsharing.Share) ([]byte, error) {
	return protobuf.Encode(toRecord(s))
}

// unmarshalShare decodes a share encoded with marshalShare
func unmarshalShare(bs []byte) (secretsharing.Share, error) {
	r := &ShareRecord{}
	err := protobuf.Decode(bs, r)
	if err != nil {
		return secretsharing.Share{}, err
	}
	return fromRecord(r)
}

// MarshalBundle encodes a share file
func MarshalBundle(f ShareFile) ([]byte, error) {
	b := &BundleRecord{
		N:      int64(f.Spec.N),
		K:      int64(f.Spec.K),
		Shares: make([][]byte, len(f.Shares)),
	}
	for i, s := range f.Shares {
		bs, err := marshalShare(s)
		if err != nil {
			return nil, xerrors.Errorf("failed to marshal share %s: %w", s.X, err)
		}
		b.Shares[i] = bs
	}
	return protobuf.Encode(b)
}

// UnmarshalBundle decodes a share file encoded with MarshalBundle
func UnmarshalBundle(bs []byte) (ShareFile, error) {
	b := &BundleRecord{}
	err := protobuf.Decode(bs, b)
	if err != nil {
		return ShareFile{}, err
	}

	f := ShareFile{
		Spec:   secretsharing.ThresholdSpec{N: int(b.N), K: int(b.K)},
		Shares: make([]secretsharing.Share, len(b.Shares)),
	}
	for i, bs := range b.Shares {
		f.Shares[i], err = unmarshalShare(bs)
		if err != nil {
			return ShareFile{}, err
		}
	}
	return f, nil
}

// MarshalArchive encodes the share file into total shards, any required of
// which are enough to get it back. Up to (total-required)/2 corrupted shards
// are corrected.
func MarshalArchive(f ShareFile, required, total int) ([][]byte, error) {
	rs, err := reedsolomon.NewBWCodes(required, total)
	if err != nil {
		return nil, err
	}

	bundle, err := MarshalBundle(f)
	if err != nil {
		return nil, xerrors.Errorf("failed to marshal bundle: %w", err)
	}

	shards, err := rs.Encode(bundle)
	if err != nil {
		return nil, xerrors.Errorf("failed to encode bundle: %w", err)
	}

	encoded := make([][]byte, len(shards))
	for i, shard := range shards {
		encoded[i], err = protobuf.Encode(&ShardRecord{
			Required: int64(required),
			Total:    int64(total),
			Number:   int64(shard.Number),
			Data:     shard.Data,
		})
		if err != nil {
			return nil, err
		}
	}
	return encoded, nil
}

type codeParams struct {
	required, total int64
}

// UnmarshalArchive decodes a share file from shards produced by
// MarshalArchive. Shards that cannot be parsed are skipped, and so are the
// ones whose code parameters differ from the ones most shards agree on.
func UnmarshalArchive(encoded [][]byte) (ShareFile, error) {
	records := make([]*ShardRecord, 0, len(encoded))
	votes := make(map[codeParams]int)
	for _, bs := range encoded {
		r := &ShardRecord{}
		err := protobuf.Decode(bs, r)
		if err != nil || r.Required < 1 || r.Number < 0 || r.Number >= r.Total {
			continue
		}
		records = append(records, r)
		votes[codeParams{r.Required, r.Total}]++
	}

	var params codeParams
	best := 0
	for p, count := range votes {
		if count > best || (count == best && p.total > params.total) {
			params, best = p, count
		}
	}
	if best == 0 {
		return ShareFile{}, xerrors.Errorf("no readable shard: %w", reedsolomon.ErrNotEnoughShards)
	}

	shards := make([]reedsolomon.Shard, 0, best)
	for _, r := range records {
		if r.Required == params.required && r.Total == params.total {
			shards = append(shards, reedsolomon.Shard{Number: int(r.Number), Data: r.Data})
		}
	}

	rs, err := reedsolomon.NewBWCodes(int(params.required), int(params.total))
	if err != nil {
		return ShareFile{}, err
	}
	bundle, err := rs.Decode(shards)
	if err != nil {
		return ShareFile{}, xerrors.Errorf("failed to decode archive: %w", err)
	}
	return UnmarshalBundle(bundle)
}

// MarshalCommitment marshal the given commitment to an array of bytes.
// Return an error if marshalling kyber.Point caused an error
func MarshalCommitment(commits []kyber.Point) ([]byte, error) {
	encoded := make([]byte, 0)

	for _, point := range commits {
		bs, err := point.MarshalBinary()
		if err != nil {
			return nil, err
		}
		encoded = append(encoded, bs...)
	}
	return encoded, nil
}

// UnmarshalCommitment unmarshal a commitment encoded with MarshalCommitment.
// The group should be the same as the one used to generate the commitment.
func UnmarshalCommitment(bs []byte, g kyber.Group) ([]kyber.Point, error) {
	pointSize := g.Point().MarshalSize()
	if len(bs) == 0 || len(bs)%pointSize != 0 {
		return nil, xerrors.Errorf("commitment of %d bytes is not a multiple of %d", len(bs), pointSize)
	}

	commits := make([]kyber.Point, 0, len(bs)/pointSize)
	for start := 0; start < len(bs); start += pointSize {
		p := g.Point().Null()
		err := p.UnmarshalBinary(bs[start : start+pointSize])
		if err != nil {
			return nil, err
		}
		commits = append(commits, p)
	}

	return commits, nil
}
