package container

import "bytes"

// Segment is one delimiter-bounded chunk of a container.
type Segment struct {
	Index  int    // Position of the segment among all segments of the buffer
	Offset int    // Offset of Data[0] within the buffer
	Data   []byte // Borrowed from the buffer, never modified
}

// Boundary is the header/content split of a segment.
type Boundary struct {
	Header        []byte
	Content       []byte
	ContentOffset int       // Offset of Content[0] within the buffer
	Signature     Signature // Zero when the fallback marker was used
}

// Split partitions buf on every non-overlapping occurrence of Delimiter.
// It always returns count(Delimiter)+1 segments, including empty ones.
func Split(buf []byte) []Segment {
	segments := make([]Segment, 0, bytes.Count(buf, delimiter)+1)

	offset := 0
	for {
		idx := IndexOf(buf[offset:], delimiter)
		if idx < 0 {
			break
		}

		segments = append(segments, Segment{
			Index:  len(segments),
			Offset: offset,
			Data:   buf[offset : offset+idx],
		})
		offset += idx + len(delimiter)
	}

	return append(segments, Segment{
		Index:  len(segments),
		Offset: offset,
		Data:   buf[offset:],
	})
}

// Trim removes the runs of zero bytes at both ends of the segment.
func (s Segment) Trim() Segment {
	start := 0
	for start < len(s.Data) && s.Data[start] == 0 {
		start++
	}

	end := len(s.Data)
	for end > start && s.Data[end-1] == 0 {
		end--
	}

	return Segment{
		Index:  s.Index,
		Offset: s.Offset + start,
		Data:   s.Data[start:end],
	}
}

// Empty reports whether the segment holds no bytes.
func (s Segment) Empty() bool {
	return len(s.Data) == 0
}

// Boundary locates the split between header and content. A magic signature
// takes precedence over the fallback marker: the content then starts at the
// signature and includes it. Otherwise the content starts right after the
// marker. It returns false when the segment has neither.
func (s Segment) Boundary() (Boundary, bool) {
	if sig, pos := DetectSignature(s.Data); pos >= 0 {
		return Boundary{
			Header:        s.Data[:pos],
			Content:       s.Data[pos:],
			ContentOffset: s.Offset + pos,
			Signature:     sig,
		}, true
	}

	if pos := IndexOf(s.Data, fallbackMarker); pos >= 0 {
		start := pos + len(fallbackMarker)
		return Boundary{
			Header:        s.Data[:pos],
			Content:       s.Data[start:],
			ContentOffset: s.Offset + start,
		}, true
	}
	return Boundary{}, false
}
