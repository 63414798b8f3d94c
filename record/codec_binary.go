package record

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/katalvlaran/explore/core"
)

// Binary record layout, little-endian, one record per interaction:
//
//	u8  version (0x01)
//	u64 id
//	u64 id-hash of the unique id
//	u32 action
//	f32 probability
//	u32 seed
//	u32 feature count
//	N × (u32 feature index, f32 feature value)
//	u32 other-context length
//	    other-context bytes
//	f32 reward, NaN sentinel when unset
//
// The version byte heads every record, not just the stream, so streams
// concatenated from logs written by different releases stay readable.
const binaryVersion byte = 0x01

// rewardSentinel is the quiet-NaN bit pattern written for an unset reward.
const rewardSentinel uint32 = 0x7FC00000

// maxDecodeLen caps decoded feature counts and context lengths so a
// corrupt length prefix cannot drive allocation to the u32 limit.
const maxDecodeLen = 1 << 28

// EncodeBinary writes interactions to w in the binary record format.
func EncodeBinary(w io.Writer, interactions []*core.Interaction) error {
	for _, it := range interactions {
		if it == nil {
			continue
		}
		if err := encodeBinaryOne(w, it); err != nil {
			return err
		}
	}

	return nil
}

func encodeBinaryOne(w io.Writer, it *core.Interaction) error {
	if _, err := w.Write([]byte{binaryVersion}); err != nil {
		return fmt.Errorf("record: write version: %w", err)
	}

	ctx := it.Context()
	scalars := []any{
		it.ID(),
		it.IDHash(),
		uint32(it.Action()),
		it.Probability(),
		it.Seed(),
		uint32(len(ctx.Features)),
	}
	for _, v := range scalars {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return fmt.Errorf("record: write header: %w", err)
		}
	}

	for _, f := range ctx.Features {
		if err := binary.Write(w, binary.LittleEndian, f.Index); err != nil {
			return fmt.Errorf("record: write feature index: %w", err)
		}
		if err := binary.Write(w, binary.LittleEndian, f.Value); err != nil {
			return fmt.Errorf("record: write feature value: %w", err)
		}
	}

	other := []byte(ctx.Other)
	if err := binary.Write(w, binary.LittleEndian, uint32(len(other))); err != nil {
		return fmt.Errorf("record: write context length: %w", err)
	}
	if _, err := w.Write(other); err != nil {
		return fmt.Errorf("record: write context: %w", err)
	}

	rewardBits := rewardSentinel
	if r, ok := it.Reward(); ok {
		rewardBits = math.Float32bits(r)
	}
	if err := binary.Write(w, binary.LittleEndian, rewardBits); err != nil {
		return fmt.Errorf("record: write reward: %w", err)
	}

	return nil
}

// DecodeBinary reads records from r until EOF and returns the decoded
// interactions in stream order. A stream that ends mid-record, carries an
// unknown version byte, or decodes to invariant-violating fields returns
// ErrCorruptStream.
func DecodeBinary(r io.Reader) ([]*core.Interaction, error) {
	var out []*core.Interaction
	for {
		var version [1]byte
		if _, err := io.ReadFull(r, version[:]); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}

			return nil, fmt.Errorf("%w: reading version: %v", ErrCorruptStream, err)
		}
		if version[0] != binaryVersion {
			return nil, fmt.Errorf("%w: unknown record version 0x%02x", ErrCorruptStream, version[0])
		}

		it, err := decodeBinaryOne(r)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
}

func decodeBinaryOne(r io.Reader) (*core.Interaction, error) {
	var (
		id, idHash   uint64
		action, seed uint32
		probability  float32
		featureCount uint32
	)
	for _, dst := range []any{&id, &idHash, &action, &probability, &seed, &featureCount} {
		if err := binary.Read(r, binary.LittleEndian, dst); err != nil {
			return nil, fmt.Errorf("%w: truncated record header: %v", ErrCorruptStream, err)
		}
	}
	if featureCount > maxDecodeLen {
		return nil, fmt.Errorf("%w: implausible feature count %d", ErrCorruptStream, featureCount)
	}

	ctx := core.Context{}
	if featureCount > 0 {
		ctx.Features = make([]core.Feature, featureCount)
		for i := range ctx.Features {
			if err := binary.Read(r, binary.LittleEndian, &ctx.Features[i].Index); err != nil {
				return nil, fmt.Errorf("%w: truncated features: %v", ErrCorruptStream, err)
			}
			if err := binary.Read(r, binary.LittleEndian, &ctx.Features[i].Value); err != nil {
				return nil, fmt.Errorf("%w: truncated features: %v", ErrCorruptStream, err)
			}
		}
	}

	var otherLen uint32
	if err := binary.Read(r, binary.LittleEndian, &otherLen); err != nil {
		return nil, fmt.Errorf("%w: truncated context length: %v", ErrCorruptStream, err)
	}
	if otherLen > maxDecodeLen {
		return nil, fmt.Errorf("%w: implausible context length %d", ErrCorruptStream, otherLen)
	}
	if otherLen > 0 {
		buf := make([]byte, otherLen)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("%w: truncated context: %v", ErrCorruptStream, err)
		}
		ctx.Other = string(buf)
	}

	var rewardBits uint32
	if err := binary.Read(r, binary.LittleEndian, &rewardBits); err != nil {
		return nil, fmt.Errorf("%w: truncated reward: %v", ErrCorruptStream, err)
	}
	reward := math.Float32frombits(rewardBits)
	hasReward := !isNaN32(reward)

	it, err := core.Restore(id, idHash, ctx, core.Action(action), probability, seed, reward, hasReward)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptStream, err)
	}

	return it, nil
}

func isNaN32(f float32) bool {
	return f != f
}
