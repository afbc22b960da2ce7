// Package encoding provides text encoding utilities for place files that
// declare a legacy character set.
package encoding

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

// ErrUnknownCharset is returned for labels with no known encoding.
var ErrUnknownCharset = errors.New("unknown charset")

// Lookup returns the encoding for a charset label such as "ISO-8859-1"
// or "euc-kr". Labels follow the WHATWG encoding names.
func Lookup(label string) (encoding.Encoding, error) {
	label = strings.TrimSpace(strings.ToLower(label))
	if label == "euc-kr" || label == "cp949" {
		return korean.EUCKR, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCharset, label)
	}
	return enc, nil
}

// NewReader returns a reader converting input in the labelled charset to
// UTF-8. It matches the signature of xml.Decoder.CharsetReader.
func NewReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := Lookup(label)
	if err != nil {
		return nil, err
	}
	return transform.NewReader(input, enc.NewDecoder()), nil
}

// ToUTF8 converts data in the labelled charset to a UTF-8 string.
func ToUTF8(label string, data []byte) (string, error) {
	enc, err := Lookup(label)
	if err != nil {
		return "", err
	}
	result, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return "", err
	}
	return string(result), nil
}
