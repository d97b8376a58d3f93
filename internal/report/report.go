package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/ostafen/envcarve/internal/container"
	"github.com/ostafen/envcarve/internal/env"
	"github.com/ostafen/envcarve/pkg/dfxml"
)

const (
	DigestSHA1  = "sha1"
	DigestXXH64 = "xxh64"
)

// FileObject describes rec as a DFXML file object.
func FileObject(rec container.Record) dfxml.FileObject {
	return dfxml.FileObject{
		Filename: rec.FileName(),
		FileSize: uint64(rec.Size()),
		ByteRuns: dfxml.ByteRuns{
			Runs: []dfxml.ByteRun{{
				Offset:    0,
				ImgOffset: uint64(rec.Offset),
				Length:    uint64(rec.Size()),
			}},
		},
		HashDigests: []dfxml.HashDigest{
			{Type: DigestSHA1, Value: rec.SHA1()},
			{Type: DigestXXH64, Value: fmt.Sprintf("%016x", rec.Checksum())},
		},
	}
}

// Write produces a DFXML report listing recs, extracted from the container
// at sourcePath of sourceSize bytes.
func Write(w io.Writer, sourcePath string, sourceSize int, recs []container.Record) error {
	rw := dfxml.NewDFXMLWriter(w)

	err := rw.WriteHeader(dfxml.DFXMLHeader{
		XmlOutput: dfxml.XmlOutputVersion,
		Metadata:  dfxml.DefaultMetadata,
		Creator: dfxml.Creator{
			Package:              env.AppName,
			Version:              env.Version,
			ExecutionEnvironment: dfxml.GetExecEnv(),
		},
		Source: dfxml.Source{
			ImageFilename: sourcePath,
			ImageSize:     uint64(sourceSize),
		},
	})
	if err != nil {
		return err
	}

	for _, rec := range recs {
		if err := rw.WriteFileObject(FileObject(rec)); err != nil {
			return fmt.Errorf("unable to write report entry %q: %w", rec.FileName(), err)
		}
	}
	return rw.Close()
}

// Mismatch is a difference between a report and the records of a container.
type Mismatch struct {
	Index  int
	Name   string
	Reason string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("#%d %s: %s", m.Index, m.Name, m.Reason)
}

// Verify compares the file objects of a report against recs, in order.
func Verify(r io.Reader, recs []container.Record) ([]Mismatch, error) {
	objects, err := dfxml.ReadFileObjects(r)
	if err != nil {
		return nil, fmt.Errorf("invalid report: %w", err)
	}

	var mismatches []Mismatch
	for i := 0; i < max(len(objects), len(recs)); i++ {
		switch {
		case i >= len(recs):
			mismatches = append(mismatches, Mismatch{i, objects[i].Filename, "missing from container"})
			continue
		case i >= len(objects):
			mismatches = append(mismatches, Mismatch{i, recs[i].FileName(), "missing from report"})
			continue
		}

		want, got := objects[i], FileObject(recs[i])
		if reason := compare(want, got); reason != "" {
			mismatches = append(mismatches, Mismatch{i, want.Filename, reason})
		}
	}
	return mismatches, nil
}

func compare(want, got dfxml.FileObject) string {
	if want.Filename != got.Filename {
		return fmt.Sprintf("name is %q", got.Filename)
	}
	if want.FileSize != got.FileSize {
		return fmt.Sprintf("size is %d, expected %d", got.FileSize, want.FileSize)
	}

	for _, typ := range []string{DigestSHA1, DigestXXH64} {
		expected, ok := want.Digest(typ)
		if !ok {
			continue
		}
		actual, _ := got.Digest(typ)
		if !strings.EqualFold(strings.TrimSpace(expected), actual) {
			return fmt.Sprintf("%s digest mismatch", typ)
		}
	}
	return ""
}
