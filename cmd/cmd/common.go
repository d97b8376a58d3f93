// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ostafen/envcarve/internal/container"
	"github.com/ostafen/envcarve/internal/filter"
	"github.com/ostafen/envcarve/internal/logger"
	"github.com/ostafen/envcarve/internal/source"
	"github.com/ostafen/envcarve/pkg/util/format"
	"github.com/spf13/cobra"
)

// addParseFlags registers the flags shared by every command reading a container.
func addParseFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("include", nil, "only keep files whose name matches one of the glob patterns")
	cmd.Flags().String("names", "random", "naming scheme for files without a name (random, index)")
	cmd.Flags().Uint64("seed", 0, "seed for reproducible random names (0 means unseeded)")
	cmd.Flags().String("max-input-size", "", "reject containers larger than the specified size")
}

func consoleLogger(cmd *cobra.Command) *logger.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	return logger.New(cmd.OutOrStdout(), logger.ParseLevel(level))
}

func slogLevel(level logger.Level) slog.Level {
	switch level {
	case logger.DebugLevel:
		return slog.LevelDebug
	case logger.WarnLevel:
		return slog.LevelWarn
	case logger.ErrorLevel:
		return slog.LevelError
	}
	return slog.LevelInfo
}

// setupLogger initializes a new slog.Logger that writes to the --log-file
// or discards output.
// The returned *os.File (if not nil) should be closed by the caller.
func setupLogger(cmd *cobra.Command) (*slog.Logger, *os.File, error) {
	logFilePath, _ := cmd.Flags().GetString("log-file")
	level, _ := cmd.Flags().GetString("log-level")

	var writer io.Writer
	var file *os.File

	if logFilePath == "" {
		writer = io.Discard
	} else {
		logDir := filepath.Dir(logFilePath)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory %q: %w", logDir, err)
		}

		f, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file %q: %w", logFilePath, err)
		}
		writer = f
		file = f
	}

	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{
		Level: slogLevel(logger.ParseLevel(level)),
	})
	return slog.New(handler), file, nil
}

func getBytes(cmd *cobra.Command, name string) (uint64, error) {
	s, _ := cmd.Flags().GetString(name)
	if s == "" {
		return 0, nil
	}

	v, err := format.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return v, nil
}

func newParser(cmd *cobra.Command) (*container.Parser, error) {
	scheme, _ := cmd.Flags().GetString("names")
	seed, _ := cmd.Flags().GetUint64("seed")

	names, err := container.ParseNameScheme(scheme)
	if err != nil {
		return nil, err
	}
	if seed != 0 && strings.EqualFold(scheme, "random") {
		names = container.SeededNames(seed)
	}
	return container.NewParser(container.WithNames(names)), nil
}

func newRecordFilter(cmd *cobra.Command) (*filter.Filter, error) {
	patterns, _ := cmd.Flags().GetStringSlice("include")
	return filter.New(patterns...)
}

// loadedContainer is a parsed container whose records borrow from buf.
type loadedContainer struct {
	Path    string
	Buf     *source.Buffer
	Records []container.Record
	Dropped int
}

func (c *loadedContainer) Close() error {
	return c.Buf.Close()
}

// loadContainer reads and parses the container at path, logging every
// dropped segment to log. The caller must Close the result once done with
// the records.
func loadContainer(cmd *cobra.Command, path string, log *slog.Logger) (*loadedContainer, error) {
	limit, err := getBytes(cmd, "max-input-size")
	if err != nil {
		return nil, err
	}

	p, err := newParser(cmd)
	if err != nil {
		return nil, err
	}

	flt, err := newRecordFilter(cmd)
	if err != nil {
		return nil, err
	}

	buf, err := source.Load(path, limit)
	if err != nil {
		return nil, fmt.Errorf("unable to load container: %w", err)
	}

	c := &loadedContainer{Path: path, Buf: buf}
	for res := range p.Scan(buf.Bytes()) {
		if res.Dropped != container.DropNone {
			c.Dropped++
			log.Debug("segment dropped",
				"index", res.Segment.Index,
				"offset", res.Segment.Offset,
				"reason", res.Dropped.String(),
			)
			continue
		}

		rec := res.Record
		log.Debug("record found",
			"index", res.Segment.Index,
			"name", rec.FileName(),
			"size", rec.Size(),
			"type", rec.Type,
		)
		if !rec.VerifySHA1() {
			log.Warn("sha1 mismatch", "name", rec.FileName(), "declared", rec.Hash)
		}
		c.Records = append(c.Records, rec)
	}

	c.Records = flt.Records(c.Records)
	return c, nil
}

// containerBaseName returns the container file name without extension.
func containerBaseName(path string) string {
	if path == source.Stdin {
		return "stdin"
	}
	base := filepath.Base(path)

	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" {
		return base
	}
	return name
}

func absPath(path string) string {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}
