package container

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrUnencodable is returned when a record would not parse back to itself.
var ErrUnencodable = errors.New("record cannot be encoded")

// EncodeOptions controls the layout produced by Encode.
type EncodeOptions struct {
	Padding  int  // zero bytes written around each segment
	WithSHA1 bool // add a SHA1 header line
}

// Encode writes recs as a container: each record becomes a segment framed by
// delimiters, with a FILENAME/EXT header followed by the content. Content that
// does not begin with a known signature is preceded by the fallback marker.
func Encode(w io.Writer, recs []Record, opts EncodeOptions) error {
	bw := bufio.NewWriter(w)
	padding := make([]byte, max(opts.Padding, 0))

	for i, rec := range recs {
		seg, err := encodeSegment(rec, opts.WithSHA1)
		if err != nil {
			return fmt.Errorf("record %d (%s): %w", i, rec.Name, err)
		}

		if _, err := bw.Write(delimiter); err != nil {
			return err
		}
		if _, err := bw.Write(padding); err != nil {
			return err
		}
		if _, err := bw.Write(seg); err != nil {
			return err
		}
		if _, err := bw.Write(padding); err != nil {
			return err
		}
	}

	if _, err := bw.Write(delimiter); err != nil {
		return err
	}
	return bw.Flush()
}

func encodeSegment(rec Record, withSHA1 bool) ([]byte, error) {
	if err := checkHeaderValue("name", rec.Name, false); err != nil {
		return nil, err
	}
	if err := checkHeaderValue("extension", rec.Ext, true); err != nil {
		return nil, err
	}

	var hdr bytes.Buffer
	fmt.Fprintf(&hdr, "%s/%s\n", KeyFilename, rec.Name)
	if rec.Ext != "" {
		fmt.Fprintf(&hdr, "%s/%s\n", KeyExt, rec.Ext)
	}
	if withSHA1 {
		fmt.Fprintf(&hdr, "%s/%s\n", KeySHA1, rec.SHA1())
	}

	if _, pos := DetectSignature(hdr.Bytes()); pos >= 0 {
		return nil, fmt.Errorf("%w: header contains a file signature", ErrUnencodable)
	}
	if IndexOf(rec.Content, delimiter) >= 0 {
		return nil, fmt.Errorf("%w: content contains the segment delimiter", ErrUnencodable)
	}
	if n := len(rec.Content); n > 0 && rec.Content[n-1] == 0 {
		return nil, fmt.Errorf("%w: content ends with zero padding", ErrUnencodable)
	}

	seg := hdr.Bytes()
	if StartsWithSignature(rec.Content) {
		return append(seg, rec.Content...), nil
	}

	if _, pos := DetectSignature(rec.Content); pos >= 0 {
		return nil, fmt.Errorf("%w: content contains a file signature past its start", ErrUnencodable)
	}
	if IndexOf(seg, fallbackMarker) >= 0 {
		return nil, fmt.Errorf("%w: header contains the fallback marker", ErrUnencodable)
	}

	seg = append(seg, fallbackMarker...)
	return append(seg, rec.Content...), nil
}

func checkHeaderValue(what, v string, allowEmpty bool) error {
	if v == "" && !allowEmpty {
		return fmt.Errorf("%w: empty %s", ErrUnencodable, what)
	}
	if strings.ContainsAny(v, "\r\n") {
		return fmt.Errorf("%w: %s contains a line break", ErrUnencodable, what)
	}
	if strings.Contains(v, Delimiter) {
		return fmt.Errorf("%w: %s contains the segment delimiter", ErrUnencodable, what)
	}
	if strings.TrimSpace(v) != v {
		return fmt.Errorf("%w: %s has surrounding whitespace", ErrUnencodable, what)
	}
	return nil
}
