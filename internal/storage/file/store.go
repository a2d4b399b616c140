package file

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/honeycarbs/hh-analyst/pkg/hh"
)

const filePrefix = "hh_vacancies_"

// Store writes listing snapshots as indented JSON files
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir ("" means the working directory)
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the snapshot location for the given criteria
func (s *Store) Path(criteria hh.Criteria) string {
	name := filePrefix + sanitize(criteria.Text) + "_" + sanitize(string(criteria.Experience)) + ".json"
	return filepath.Join(s.dir, name)
}

// Save overwrites the snapshot for criteria with the raw listing body.
// The file is replaced atomically, so concurrent saves leave one
// complete document behind.
func (s *Store) Save(criteria hh.Criteria, listing *hh.ListingResponse) (string, error) {
	if listing == nil || len(listing.Raw) == 0 {
		return "", fmt.Errorf("snapshot: empty listing")
	}

	data, err := Encode(listing.Raw)
	if err != nil {
		return "", err
	}

	if s.dir != "" {
		if err := os.MkdirAll(s.dir, 0o755); err != nil {
			return "", fmt.Errorf("snapshot: create dir: %w", err)
		}
	}

	path := s.Path(criteria)
	if err := writeAtomic(path, data); err != nil {
		return "", fmt.Errorf("snapshot: write %s: %w", path, err)
	}

	return path, nil
}

func writeAtomic(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".hh_vacancies_*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}

// Encode re-indents a JSON document with two spaces. Key order and
// number literals are kept as received; strings are written with only
// quotes, backslashes and control characters escaped.
func Encode(raw json.RawMessage) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var compact bytes.Buffer
	if err := copyValue(dec, &compact); err != nil {
		return nil, fmt.Errorf("snapshot: decode: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("snapshot: decode: trailing data after document")
	}

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("snapshot: encode: %w", err)
	}
	out.WriteByte('\n')

	return out.Bytes(), nil
}

func copyValue(dec *json.Decoder, buf *bytes.Buffer) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			buf.WriteByte('{')
			for i := 0; dec.More(); i++ {
				if i > 0 {
					buf.WriteByte(',')
				}
				key, err := dec.Token()
				if err != nil {
					return err
				}
				k, ok := key.(string)
				if !ok {
					return fmt.Errorf("unexpected object key %v", key)
				}
				writeString(buf, k)
				buf.WriteByte(':')
				if err := copyValue(dec, buf); err != nil {
					return err
				}
			}
			if _, err := dec.Token(); err != nil {
				return err
			}
			buf.WriteByte('}')
		case '[':
			buf.WriteByte('[')
			for i := 0; dec.More(); i++ {
				if i > 0 {
					buf.WriteByte(',')
				}
				if err := copyValue(dec, buf); err != nil {
					return err
				}
			}
			if _, err := dec.Token(); err != nil {
				return err
			}
			buf.WriteByte(']')
		default:
			return fmt.Errorf("unexpected delimiter %v", v)
		}
	case string:
		writeString(buf, v)
	case json.Number:
		buf.WriteString(v.String())
	case bool:
		buf.WriteString(strconv.FormatBool(v))
	case nil:
		buf.WriteString("null")
	default:
		return fmt.Errorf("unexpected token %T", tok)
	}

	return nil
}

// writeString quotes s leaving every printable rune, including U+2028
// and U+2029, as is
func writeString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		default:
			if r < 0x20 {
				fmt.Fprintf(buf, `\u%04x`, r)
				continue
			}
			buf.WriteRune(r)
		}
	}
	buf.WriteByte('"')
}

// sanitize replaces path separators, reserved and control characters with '_'
func sanitize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || s == "." || s == ".." {
		return "_"
	}

	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsControl(r):
			return '_'
		case strings.ContainsRune(`/\<>:"|?*`, r):
			return '_'
		default:
			return r
		}
	}, s)
}
