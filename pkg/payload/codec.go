package payload

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"auth490/pkg/model"
)

// object is an ordered key/value sequence. The canonical byte form of every
// payload is its object rendered as the smallest JSON text, so field order
// must be pinned by the producer and reproduced on every re-encode.
type object struct {
	fields []field
}

type field struct {
	key string
	val any
}

func newObject(tag Tag) *object {
	o := &object{}
	o.set("t", string(tag))
	return o
}

func (o *object) set(key string, val any) {
	o.fields = append(o.fields, field{key: key, val: val})
}

// bytes renders compact JSON: no whitespace, comma and colon separators only.
func (o *object) bytes() []byte {
	var buf bytes.Buffer
	o.write(&buf)
	return buf.Bytes()
}

func (o *object) write(buf *bytes.Buffer) {
	buf.WriteByte('{')
	for i, f := range o.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeString(buf, f.key)
		buf.WriteByte(':')
		writeValue(buf, f.val)
	}
	buf.WriteByte('}')
}

func writeValue(buf *bytes.Buffer, val any) {
	switch v := val.(type) {
	case string:
		writeString(buf, v)
	case int:
		buf.WriteString(strconv.Itoa(v))
	case *object:
		v.write(buf)
	case []any:
		buf.WriteByte('[')
		for i, e := range v {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeValue(buf, e)
		}
		buf.WriteByte(']')
	case nil:
		buf.WriteString("null")
	default:
		panic(fmt.Sprintf("unencodable canonical value %T", val))
	}
}

func writeString(buf *bytes.Buffer, s string) {
	b, _ := json.Marshal(s)
	buf.Write(b)
}

// compress deflates the canonical bytes and base64url-encodes the result.
func compress(raw []byte) string {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	zw.Write(raw)
	zw.Close()
	return base64.URLEncoding.EncodeToString(buf.Bytes())
}

// decompress reverses compress into the decoded raw map. Numbers are kept as
// json.Number so enum codes survive untouched.
func decompress(body string) (map[string]any, error) {
	raw, err := base64.URLEncoding.DecodeString(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrMalformedPayload, err)
	}
	zr, err := zlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrMalformedPayload, err)
	}
	defer zr.Close()

	inflated, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrMalformedPayload, err)
	}

	dec := json.NewDecoder(bytes.NewReader(inflated))
	dec.UseNumber()
	out := map[string]any{}
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrMalformedPayload, err)
	}
	return out, nil
}

// digitEncode remaps every character c of the base64url body to the
// two-digit decimal of c−45, which keeps the whole transport string inside
// the QR alphanumeric charset.
func digitEncode(body string) string {
	var sb strings.Builder
	sb.Grow(2 * len(body))
	for i := 0; i < len(body); i++ {
		sb.WriteString(fmt.Sprintf("%02d", body[i]-45))
	}
	return sb.String()
}

func digitDecode(body string) (string, error) {
	if len(body)%2 != 0 {
		return "", fmt.Errorf("%w: odd transport body length", model.ErrMalformedPayload)
	}
	out := make([]byte, 0, len(body)/2)
	for i := 0; i < len(body); i += 2 {
		hi, lo := body[i], body[i+1]
		if hi < '0' || hi > '9' || lo < '0' || lo > '9' {
			return "", fmt.Errorf("%w: transport body is not decimal", model.ErrMalformedPayload)
		}
		out = append(out, 45+(hi-'0')*10+(lo-'0'))
	}
	return string(out), nil
}

// decode field accessors. The raw map comes from encoding/json, so shapes
// are map[string]any, []any, string and json.Number.

func rawString(m map[string]any, key string) (string, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: field %q is not a string", model.ErrMalformedPayload, key)
	}
	return s, nil
}

func rawMap(m map[string]any, key string) (map[string]any, error) {
	v, ok := m[key]
	if !ok {
		return nil, fmt.Errorf("%w: missing field %q", model.ErrMalformedPayload, key)
	}
	mm, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: field %q is not a map", model.ErrMalformedPayload, key)
	}
	return mm, nil
}

func rawList(m map[string]any, key string) ([]any, error) {
	v, ok := m[key]
	if !ok {
		return nil, fmt.Errorf("%w: missing field %q", model.ErrMalformedPayload, key)
	}
	l, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: field %q is not a list", model.ErrMalformedPayload, key)
	}
	return l, nil
}

func rawInt(v any) (int, error) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, fmt.Errorf("%w: expected integer, got %T", model.ErrMalformedPayload, v)
	}
	i, err := strconv.Atoi(n.String())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", model.ErrMalformedPayload, err)
	}
	return i, nil
}

func rawIntList(m map[string]any, key string) ([]int, error) {
	l, err := rawList(m, key)
	if err != nil {
		return nil, err
	}
	out := make([]int, 0, len(l))
	for _, v := range l {
		i, err := rawInt(v)
		if err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, nil
}
