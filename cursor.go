package keyset

import (
	"cmp"
	"database/sql/driver"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	_encoder    = base64.RawURLEncoding
	_rawEncoder = base64.RawStdEncoding
)

// Kind enumerates scalar kinds a Cursor can hold.
type Kind uint8

const (
	// KindNone is the kind of the absent cursor.
	KindNone Kind = iota
	KindInt
	KindFloat
	KindText
	KindTime
)

var _kindNames = map[Kind]string{
	KindNone:  "none",
	KindInt:   "int",
	KindFloat: "float",
	KindText:  "text",
	KindTime:  "time",
}

// String - implements fmt.Stringer.
func (k Kind) String() string {
	if name, ok := _kindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("kind(%d)", uint8(k))
}

func parseKind(s string) (Kind, bool) {
	for k, name := range _kindNames {
		if name == s && k != KindNone {
			return k, true
		}
	}

	return KindNone, false
}

// Cursor is a resumption point: the value of the sort field on some row.
// The zero Cursor is the absent cursor, used for the first page.
//
// Cursors are immutable values. Ordering and equality are defined per Kind;
// KindInt and KindFloat compare exactly by numeric value with each other.
type Cursor struct {
	kind Kind
	i    int64
	f    float64
	s    string
	t    time.Time
}

func IntCursor(v int64) Cursor {
	return Cursor{kind: KindInt, i: v}
}

func FloatCursor(v float64) Cursor {
	return Cursor{kind: KindFloat, f: v}
}

func TextCursor(v string) Cursor {
	return Cursor{kind: KindText, s: v}
}

// TimeCursor builds a timestamp cursor. The value is normalized to UTC and
// stripped of its monotonic clock reading.
func TimeCursor(v time.Time) Cursor {
	return Cursor{kind: KindTime, t: v.UTC().Round(0)}
}

// CursorOf converts a value as returned by a database driver or a model getter
// into a Cursor. NULL values have no position in the ordering and are rejected.
func CursorOf(v any) (Cursor, error) {
	switch vt := v.(type) {
	case Cursor:
		return vt, nil
	case int:
		return IntCursor(int64(vt)), nil
	case int8:
		return IntCursor(int64(vt)), nil
	case int16:
		return IntCursor(int64(vt)), nil
	case int32:
		return IntCursor(int64(vt)), nil
	case int64:
		return IntCursor(vt), nil
	case uint8:
		return IntCursor(int64(vt)), nil
	case uint16:
		return IntCursor(int64(vt)), nil
	case uint32:
		return IntCursor(int64(vt)), nil
	case uint:
		return uintCursor(uint64(vt))
	case uint64:
		return uintCursor(vt)
	case float32:
		return FloatCursor(float64(vt)), nil
	case float64:
		return FloatCursor(vt), nil
	case string:
		return TextCursor(vt), nil
	case []byte:
		return TextCursor(string(vt)), nil
	case time.Time:
		return TimeCursor(vt), nil
	case *time.Time:
		if vt == nil {
			return Cursor{}, fmt.Errorf("%w: NULL", ErrUnsupportedCursorValue)
		}
		return TimeCursor(*vt), nil
	case driver.Valuer:
		value, err := vt.Value()
		if err != nil {
			return Cursor{}, fmt.Errorf("%w: %w", ErrUnsupportedCursorValue, err)
		}
		if value == nil {
			return Cursor{}, fmt.Errorf("%w: NULL", ErrUnsupportedCursorValue)
		}
		return CursorOf(value)
	case nil:
		return Cursor{}, fmt.Errorf("%w: NULL", ErrUnsupportedCursorValue)
	default:
		return Cursor{}, fmt.Errorf("%w: %T", ErrUnsupportedCursorValue, v)
	}
}

func uintCursor(v uint64) (Cursor, error) {
	if v > math.MaxInt64 {
		return Cursor{}, fmt.Errorf("%w: %d overflows int64", ErrUnsupportedCursorValue, v)
	}

	return IntCursor(int64(v)), nil
}

// Kind returns the kind of the cursor value.
func (c Cursor) Kind() Kind {
	return c.kind
}

// IsEmpty returns true for the absent cursor.
func (c Cursor) IsEmpty() bool {
	return c.kind == KindNone
}

// Value returns the scalar suitable as a query argument: int64, float64,
// string, time.Time or nil for the absent cursor.
func (c Cursor) Value() any {
	switch c.kind {
	case KindInt:
		return c.i
	case KindFloat:
		return c.f
	case KindText:
		return c.s
	case KindTime:
		return c.t
	default:
		return nil
	}
}

// compareIntFloat compares i with f exactly, without rounding i to float64.
// NaN orders before every number, as in cmp.Compare.
func compareIntFloat(i int64, f float64) int {
	switch {
	case math.IsNaN(f):
		return 1
	case f >= math.MaxInt64:
		return -1
	case f < math.MinInt64:
		return 1
	}

	whole := math.Trunc(f)
	if res := cmp.Compare(i, int64(whole)); res != 0 {
		return res
	}

	return cmp.Compare(whole, f)
}

// Compare returns -1, 0 or +1 depending on whether c orders before, equal to
// or after other. Cursors of incompatible kinds are not comparable.
func (c Cursor) Compare(other Cursor) (int, error) {
	if c.kind == other.kind {
		switch c.kind {
		case KindInt:
			return cmp.Compare(c.i, other.i), nil
		case KindFloat:
			return cmp.Compare(c.f, other.f), nil
		case KindText:
			return strings.Compare(c.s, other.s), nil
		case KindTime:
			return c.t.Compare(other.t), nil
		default:
			return 0, nil
		}
	}

	if c.kind == KindInt && other.kind == KindFloat {
		return compareIntFloat(c.i, other.f), nil
	} else if c.kind == KindFloat && other.kind == KindInt {
		return -compareIntFloat(other.i, c.f), nil
	}

	return 0, fmt.Errorf("%w: %s vs %s", ErrCursorKindMismatch, c.kind, other.kind)
}

// Equal reports whether both cursors are comparable and equal.
func (c Cursor) Equal(other Cursor) bool {
	res, err := c.Compare(other)
	return err == nil && res == 0
}

type cursorPayload struct {
	Kind  string `json:"k"`
	Value string `json:"v"`
	// Raw marks a text value stored as base64 because it is not valid UTF-8.
	Raw bool `json:"r,omitempty"`
}

func (c Cursor) payload() cursorPayload {
	ret := cursorPayload{Kind: c.kind.String()}

	switch c.kind {
	case KindInt:
		ret.Value = strconv.FormatInt(c.i, 10)
	case KindFloat:
		ret.Value = strconv.FormatFloat(c.f, 'g', -1, 64)
	case KindText:
		if utf8.ValidString(c.s) {
			ret.Value = c.s
		} else {
			ret.Value, ret.Raw = _rawEncoder.EncodeToString([]byte(c.s)), true
		}
	case KindTime:
		ret.Value = c.t.Format(time.RFC3339Nano)
	}

	return ret
}

// String - implements fmt.Stringer. Returns an opaque URL-safe token, or an
// empty string for the absent cursor.
func (c Cursor) String() string {
	if c.IsEmpty() {
		return ""
	}

	jTok, err := json.Marshal(c.payload())
	if err != nil {
		panic(fmt.Errorf("cannot marshal cursor value: %w", err))
	}

	return _encoder.EncodeToString(jTok)
}

// DecodeCursor parses a token produced by Cursor.String. An empty token
// decodes into the absent cursor.
func DecodeCursor(b64String string) (Cursor, error) {
	if len(b64String) == 0 {
		return Cursor{}, nil
	}

	jsonData, err := _encoder.DecodeString(b64String)
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: failed to decode base64 encoded cursor: %w", ErrCursorToken, err)
	}

	var payload cursorPayload
	if err = json.Unmarshal(jsonData, &payload); err != nil {
		return Cursor{}, fmt.Errorf("%w: failed to unmarshal json encoded cursor: %w", ErrCursorToken, err)
	}

	kind, ok := parseKind(payload.Kind)
	if !ok {
		return Cursor{}, fmt.Errorf("%w: unknown cursor kind '%s'", ErrCursorToken, payload.Kind)
	}

	switch kind {
	case KindInt:
		v, err := strconv.ParseInt(payload.Value, 10, 64)
		if err != nil {
			return Cursor{}, fmt.Errorf("%w: failed to parse int cursor: %w", ErrCursorToken, err)
		}
		return IntCursor(v), nil
	case KindFloat:
		v, err := strconv.ParseFloat(payload.Value, 64)
		if err != nil {
			return Cursor{}, fmt.Errorf("%w: failed to parse float cursor: %w", ErrCursorToken, err)
		}
		return FloatCursor(v), nil
	case KindTime:
		v, err := time.Parse(time.RFC3339Nano, payload.Value)
		if err != nil {
			return Cursor{}, fmt.Errorf("%w: failed to parse time cursor: %w", ErrCursorToken, err)
		}
		return TimeCursor(v), nil
	default:
		if !payload.Raw {
			return TextCursor(payload.Value), nil
		}
		v, err := _rawEncoder.DecodeString(payload.Value)
		if err != nil {
			return Cursor{}, fmt.Errorf("%w: failed to decode raw text cursor: %w", ErrCursorToken, err)
		}
		return TextCursor(string(v)), nil
	}
}

// MarshalJSON encodes the cursor as its token string, or null when absent.
func (c Cursor) MarshalJSON() ([]byte, error) {
	if c.IsEmpty() {
		return []byte("null"), nil
	}

	return json.Marshal(c.String())
}

// UnmarshalJSON accepts a token string or null.
func (c *Cursor) UnmarshalJSON(data []byte) error {
	var token *string
	if err := json.Unmarshal(data, &token); err != nil {
		return fmt.Errorf("%w: %w", ErrCursorToken, err)
	}

	if token == nil {
		*c = Cursor{}
		return nil
	}

	decoded, err := DecodeCursor(*token)
	if err != nil {
		return err
	}
	*c = decoded

	return nil
}

var (
	_ fmt.Stringer     = Cursor{}
	_ json.Marshaler   = Cursor{}
	_ json.Unmarshaler = (*Cursor)(nil)
)
