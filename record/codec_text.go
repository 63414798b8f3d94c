package record

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/explore/core"
)

// Text record layout, one record per line, fields whitespace-delimited in
// the same order as the binary form:
//
//	id id-hash action probability seed feature-count [index value]... "other" reward
//
// The free-form context is Go-quoted so embedded whitespace and newlines
// round-trip; an unset reward is written as NaN. Floats are formatted at
// float32 precision with the shortest representation that parses back to
// the identical bits, so text round-trips are lossless too.

// EncodeText writes interactions to w in the text record format.
func EncodeText(w io.Writer, interactions []*core.Interaction) error {
	bw := bufio.NewWriter(w)
	for _, it := range interactions {
		if it == nil {
			continue
		}
		if err := encodeTextOne(bw, it); err != nil {
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("record: flush text stream: %w", err)
	}

	return nil
}

func encodeTextOne(w *bufio.Writer, it *core.Interaction) error {
	ctx := it.Context()

	fields := make([]string, 0, 8+2*len(ctx.Features))
	fields = append(fields,
		strconv.FormatUint(it.ID(), 10),
		strconv.FormatUint(it.IDHash(), 10),
		strconv.FormatUint(uint64(it.Action()), 10),
		formatF32(it.Probability()),
		strconv.FormatUint(uint64(it.Seed()), 10),
		strconv.Itoa(len(ctx.Features)),
	)
	for _, f := range ctx.Features {
		fields = append(fields, strconv.FormatUint(uint64(f.Index), 10), formatF32(f.Value))
	}
	fields = append(fields, strconv.Quote(ctx.Other))

	if r, ok := it.Reward(); ok {
		fields = append(fields, formatF32(r))
	} else {
		fields = append(fields, "NaN")
	}

	if _, err := w.WriteString(strings.Join(fields, " ") + "\n"); err != nil {
		return fmt.Errorf("record: write text record: %w", err)
	}

	return nil
}

// DecodeText reads one record per non-empty line until EOF.
func DecodeText(r io.Reader) ([]*core.Interaction, error) {
	var out []*core.Interaction
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxDecodeLen)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		it, err := decodeTextOne(text)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrCorruptStream, line, err)
		}
		out = append(out, it)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptStream, err)
	}

	return out, nil
}

func decodeTextOne(line string) (*core.Interaction, error) {
	lx := &textLexer{rest: line}

	id, err := lx.uint64Field("id")
	if err != nil {
		return nil, err
	}
	idHash, err := lx.uint64Field("id-hash")
	if err != nil {
		return nil, err
	}
	action, err := lx.uint32Field("action")
	if err != nil {
		return nil, err
	}
	probability, err := lx.f32Field("probability")
	if err != nil {
		return nil, err
	}
	seed, err := lx.uint32Field("seed")
	if err != nil {
		return nil, err
	}
	featureCount, err := lx.uint32Field("feature count")
	if err != nil {
		return nil, err
	}
	if featureCount > maxDecodeLen {
		return nil, fmt.Errorf("implausible feature count %d", featureCount)
	}

	ctx := core.Context{}
	if featureCount > 0 {
		ctx.Features = make([]core.Feature, featureCount)
		for i := range ctx.Features {
			if ctx.Features[i].Index, err = lx.uint32Field("feature index"); err != nil {
				return nil, err
			}
			if ctx.Features[i].Value, err = lx.f32Field("feature value"); err != nil {
				return nil, err
			}
		}
	}

	if ctx.Other, err = lx.quotedField("other context"); err != nil {
		return nil, err
	}

	reward, err := lx.f32Field("reward")
	if err != nil {
		return nil, err
	}
	if !lx.drained() {
		return nil, fmt.Errorf("trailing fields after reward: %q", lx.rest)
	}

	it, restoreErr := core.Restore(id, idHash, ctx, core.Action(action), probability, seed, reward, !isNaN32(reward))
	if restoreErr != nil {
		return nil, restoreErr
	}

	return it, nil
}

// textLexer walks one record line, understanding plain and Go-quoted
// fields.
type textLexer struct {
	rest string
}

func (l *textLexer) drained() bool {
	return strings.TrimSpace(l.rest) == ""
}

// next returns the next plain whitespace-delimited token.
func (l *textLexer) next(name string) (string, error) {
	l.rest = strings.TrimLeft(l.rest, " \t")
	if l.rest == "" {
		return "", fmt.Errorf("missing %s field", name)
	}
	end := strings.IndexAny(l.rest, " \t")
	if end < 0 {
		tok := l.rest
		l.rest = ""

		return tok, nil
	}
	tok := l.rest[:end]
	l.rest = l.rest[end:]

	return tok, nil
}

func (l *textLexer) uint64Field(name string) (uint64, error) {
	tok, err := l.next(name)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(tok, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad %s %q", name, tok)
	}

	return v, nil
}

func (l *textLexer) uint32Field(name string) (uint32, error) {
	tok, err := l.next(name)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(tok, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("bad %s %q", name, tok)
	}

	return uint32(v), nil
}

func (l *textLexer) f32Field(name string) (float32, error) {
	tok, err := l.next(name)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(tok, 32)
	if err != nil {
		return 0, fmt.Errorf("bad %s %q", name, tok)
	}

	return float32(v), nil
}

// quotedField consumes a Go-quoted string field.
func (l *textLexer) quotedField(name string) (string, error) {
	l.rest = strings.TrimLeft(l.rest, " \t")
	if l.rest == "" || l.rest[0] != '"' {
		return "", fmt.Errorf("missing quoted %s field", name)
	}
	prefix, err := strconv.QuotedPrefix(l.rest)
	if err != nil {
		return "", fmt.Errorf("bad quoted %s: %v", name, err)
	}
	l.rest = l.rest[len(prefix):]
	v, err := strconv.Unquote(prefix)
	if err != nil {
		return "", fmt.Errorf("bad quoted %s: %v", name, err)
	}

	return v, nil
}

// formatF32 renders a float32 with the shortest decimal that parses back
// to the identical bits.
func formatF32(f float32) string {
	if isNaN32(f) {
		return "NaN"
	}

	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}
