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
	"os"
	"path/filepath"
	"strings"

	"github.com/ostafen/envcarve/internal/container"
	osutils "github.com/ostafen/envcarve/pkg/util/os"
	"github.com/spf13/cobra"
)

func DefinePackCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pack <file1> <file2> ...",
		Short: "Pack multiple files into a single container",
		Long: `The 'pack' command combines multiple files into a single container that 'unpack' can split again.
Directories are walked recursively and their files added in lexical order.
This is useful for testing with known, reproducible data. You can optionally add zero-byte padding around each file.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE:         RunPack,
	}

	cmd.Flags().StringP("output", "o", "", "Path to the output container file (required)")
	cmd.Flags().Int("padding", 0, "Number of zero bytes to insert around each file")
	cmd.Flags().Bool("sha1", false, "Add a SHA1 header to each file")

	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func RunPack(cmd *cobra.Command, args []string) error {
	filePaths := make([]string, 0, len(args))
	for _, arg := range args {
		paths, err := osutils.ListFiles(arg)
		if err != nil {
			return err
		}
		filePaths = append(filePaths, paths...)
	}

	out, _ := cmd.Flags().GetString("output")
	padding, _ := cmd.Flags().GetInt("padding")
	withSHA1, _ := cmd.Flags().GetBool("sha1")

	if padding < 0 {
		return fmt.Errorf("padding must not be negative")
	}

	logger := consoleLogger(cmd)

	recs := make([]container.Record, 0, len(filePaths))
	for _, path := range filePaths {
		rec, err := readRecord(path)
		if err != nil {
			return err
		}
		recs = append(recs, rec)
	}

	logger.Infof("Packing %d files into %s", len(recs), out)

	n, err := writeContainer(out, recs, container.EncodeOptions{
		Padding:  padding,
		WithSHA1: withSHA1,
	})
	if err != nil {
		return err
	}

	logger.Infof("Packing successfully completed. %d bytes written.", n)
	return nil
}

// writeContainer encodes recs to a temporary file next to out and renames it
// to out once complete, so a failed pack never leaves a partial container.
func writeContainer(out string, recs []container.Record, opts container.EncodeOptions) (int64, error) {
	f, err := os.CreateTemp(filepath.Dir(out), "."+filepath.Base(out)+"-*")
	if err != nil {
		return 0, err
	}
	tmp := f.Name()

	n, err := encodeTo(f, recs, opts)
	if err != nil {
		os.Remove(tmp)
		return 0, err
	}

	if err := os.Rename(tmp, out); err != nil {
		os.Remove(tmp)
		return 0, err
	}
	return n, nil
}

func encodeTo(f *os.File, recs []container.Record, opts container.EncodeOptions) (int64, error) {
	defer f.Close()

	if err := f.Chmod(0644); err != nil {
		return 0, err
	}
	if err := container.Encode(f, recs, opts); err != nil {
		return 0, err
	}

	info, err := f.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), f.Close()
}

// readRecord loads the file at path as a record named after its base name.
func readRecord(path string) (container.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return container.Record{}, err
	}

	base := filepath.Base(path)

	// Dot-files such as ".bashrc" have no extension.
	ext := filepath.Ext(base)
	if ext == base {
		ext = ""
	}

	return container.Record{
		Name:    strings.TrimSuffix(base, ext),
		Ext:     strings.TrimPrefix(ext, "."),
		Content: data,
	}, nil
}
