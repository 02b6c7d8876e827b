package reedsolomon

import (
	"encoding/binary"

	"github.com/HACKERALERT/infectious"
	"golang.org/x/xerrors"
)

var (
	// ErrTooManyErrors is returned when the shards are too corrupted to be
	// corrected
	ErrTooManyErrors = xerrors.New("too many corrupted shards")
	// ErrNotEnoughShards is returned when fewer shards than required are given
	ErrNotEnoughShards = xerrors.New("not enough shards")
)

// lengthPrefix is the size of the message length written before the
// message, so that the padding can be removed after decoding
const lengthPrefix = 4

// Shard is one of the n symbols produced by the encoder
type Shard struct {
	Number int
	Data   []byte
}

// RSEncoder turns a message into shards
type RSEncoder interface {
	// Encode receives a message of any size and encodes it into n shards
	Encode(msg []byte) ([]Shard, error)
}

// RSDecoder gets a message back from its shards
type RSDecoder interface {
	// Decode takes at least k shards, possibly corrupted, and returns the
	// original message
	Decode(shards []Shard) ([]byte, error)
}

// RSCodes is implemented by BWCodes
type RSCodes interface {
	RSEncoder
	RSDecoder
}

// BWCodes Berlekamp-Welch implementation of RS codes
// from this library: https://pkg.go.dev/github.com/HACKERALERT/infectious
type BWCodes struct {
	fec *infectious.FEC
}

var _ RSCodes = (*BWCodes)(nil)

// NewBWCodes returns a code where any k of the n shards are enough to decode
func NewBWCodes(k, n int) (*BWCodes, error) {
	fec, err := infectious.NewFEC(k, n)
	if err != nil {
		return nil, xerrors.Errorf("failed to create RS code (%d, %d): %w", k, n, err)
	}
	return &BWCodes{
		fec: fec,
	}, nil
}

// Required returns k
func (rs *BWCodes) Required() int {
	return rs.fec.Required()
}

// Total returns n
func (rs *BWCodes) Total() int {
	return rs.fec.Total()
}

// Encode implements RSEncoder. The message is prefixed by its length and
// padded with zeros to a multiple of k.
func (rs *BWCodes) Encode(msg []byte) ([]Shard, error) {
	k := rs.fec.Required()
	size := lengthPrefix + len(msg)
	if size%k != 0 {
		size += k - size%k
	}

	padded := make([]byte, size)
	binary.BigEndian.PutUint32(padded[:lengthPrefix], uint32(len(msg)))
	copy(padded[lengthPrefix:], msg)

	shards := make([]Shard, rs.fec.Total())
	output := func(s infectious.Share) {
		sCopy := s.DeepCopy()
		shards[s.Number] = Shard{
			Number: sCopy.Number,
			Data:   sCopy.Data,
		}
	}

	err := rs.fec.Encode(padded, output)
	return shards, err
}

// Decode implements RSDecoder. The given shards are not modified.
func (rs *BWCodes) Decode(shards []Shard) ([]byte, error) {
	if len(shards) < rs.fec.Required() {
		return nil, xerrors.Errorf("got %d, need %d: %w", len(shards), rs.fec.Required(), ErrNotEnoughShards)
	}

	res, err := rs.fec.Decode(nil, shardsToShares(shards))
	if xerrors.Is(err, infectious.TooManyErrors) {
		return nil, ErrTooManyErrors
	}
	if xerrors.Is(err, infectious.NotEnoughShares) {
		return nil, ErrNotEnoughShards
	}
	if err != nil {
		return nil, err
	}

	if len(res) < lengthPrefix {
		return nil, xerrors.Errorf("decoded message too short: %d bytes", len(res))
	}
	length := binary.BigEndian.Uint32(res[:lengthPrefix])
	if int(length) > len(res)-lengthPrefix {
		return nil, xerrors.Errorf("invalid message length %d", length)
	}
	return res[lengthPrefix : lengthPrefix+int(length)], nil
}

// shardsToShares copies the shards since the decoder corrects them in place
func shardsToShares(shards []Shard) []infectious.Share {
	shares := make([]infectious.Share, len(shards))
	for i, shard := range shards {
		data := make([]byte, len(shard.Data))
		copy(data, shard.Data)
		shares[i] = infectious.Share{
			Number: shard.Number,
			Data:   data,
		}
	}
	return shares
}
