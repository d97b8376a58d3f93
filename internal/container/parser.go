package container

// DropReason tells why a segment produced no record.
type DropReason int

const (
	DropNone       DropReason = iota
	DropEmpty                 // nothing left after trimming zero padding
	DropNoBoundary            // neither a signature nor the fallback marker
)

func (r DropReason) String() string {
	switch r {
	case DropNone:
		return "none"
	case DropEmpty:
		return "empty"
	case DropNoBoundary:
		return "no boundary"
	default:
		return "unknown"
	}
}

// Result is the outcome of parsing one segment.
type Result struct {
	Segment Segment // Trimmed segment
	Record  Record  // Valid only when Dropped == DropNone
	Dropped DropReason
}

// Parser turns container buffers into records.
type Parser struct {
	names NameGenerator
}

// Option configures a Parser.
type Option func(*Parser)

// WithNames sets the generator used for records lacking a FILENAME.
func WithNames(g NameGenerator) Option {
	return func(p *Parser) {
		if g != nil {
			p.names = g
		}
	}
}

// NewParser returns a Parser. Without options, fallback names are random.
func NewParser(opts ...Option) *Parser {
	p := &Parser{names: RandomNames()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse returns the records of buf in order of occurrence. It never fails:
// malformed segments are skipped. Record contents borrow from buf.
func Parse(buf []byte) []Record {
	return NewParser().Parse(buf)
}

// Parse returns the records of buf in order of occurrence.
func (p *Parser) Parse(buf []byte) []Record {
	var records []Record
	for res := range p.Scan(buf) {
		if res.Dropped == DropNone {
			records = append(records, res.Record)
		}
	}
	return records
}

// Scan yields one Result per delimiter-separated segment of buf.
func (p *Parser) Scan(buf []byte) func(yield func(Result) bool) {
	return func(yield func(Result) bool) {
		for _, seg := range Split(buf) {
			if !yield(p.parseSegment(seg.Trim())) {
				return
			}
		}
	}
}

func (p *Parser) parseSegment(seg Segment) Result {
	if seg.Empty() {
		return Result{Segment: seg, Dropped: DropEmpty}
	}

	b, ok := seg.Boundary()
	if !ok {
		return Result{Segment: seg, Dropped: DropNoBoundary}
	}

	fields := ParseHeader(b.Header)

	var fallback string
	if fields[KeyFilename] == "" {
		fallback = p.names.Next(seg.Index)
	}

	rec := Reconstruct(fields, b.Signature, b.Content, fallback)
	rec.Offset = b.ContentOffset

	return Result{Segment: seg, Record: rec}
}
