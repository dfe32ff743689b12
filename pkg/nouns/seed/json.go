package seed

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	nerrors "github.com/provide-io/nouns/go/nouns/pkg/nouns/errors"
)

// MarshalJSON writes every field as a decimal string, the shape the
// subgraph serves seeds in.
func (s Seed) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range allFields {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, "%q:%q", f.Key(), strconv.Itoa(s.Get(f)))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts string or numeric values. The basic fields are
// required; extended fields default to 0 and unknown keys are ignored.
func (s *Seed) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", nerrors.ErrInvalidSeed, err)
	}

	var out Seed
	for _, f := range allFields {
		msg, ok := raw[f.Key()]
		if !ok {
			continue
		}
		n, err := decodeIndex(msg)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", nerrors.ErrInvalidSeed, f.Key(), err)
		}
		out = out.With(f, n)
	}
	for _, f := range basicFields {
		if _, ok := raw[f.Key()]; !ok {
			return fmt.Errorf("%w: missing %s", nerrors.ErrInvalidSeed, f.Key())
		}
	}
	if err := out.Validate(Extended); err != nil {
		return err
	}

	*s = out
	return nil
}

func decodeIndex(msg json.RawMessage) (int, error) {
	msg = bytes.TrimSpace(msg)
	if len(msg) > 0 && msg[0] == '"' {
		var str string
		if err := json.Unmarshal(msg, &str); err != nil {
			return 0, err
		}
		return strconv.Atoi(str)
	}
	var n int
	if err := json.Unmarshal(msg, &n); err != nil {
		return 0, err
	}
	return n, nil
}
