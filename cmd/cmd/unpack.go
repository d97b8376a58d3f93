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
	"os"
	"path/filepath"
	"time"

	"github.com/ostafen/envcarve/internal/extract"
	"github.com/ostafen/envcarve/internal/report"
	"github.com/ostafen/envcarve/pkg/pbar"
	fmtutil "github.com/ostafen/envcarve/pkg/util/format"
	"github.com/spf13/cobra"
)

func DefineUnpackCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unpack <container>",
		Short: "Extract the embedded files of a container",
		Long: `The 'unpack' command parses a container and writes every embedded file to the output directory.
Use '-' to read the container from standard input.
Optionally, a DFXML report describing the extracted files can be written with --report.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunUnpack,
	}

	addParseFlags(cmd)
	cmd.Flags().StringP("output-dir", "o", "", "directory where extracted files will be placed (default <container>-files)")
	cmd.Flags().StringP("report", "r", "", "write a DFXML report to the specified file")
	cmd.Flags().Bool("progress", false, "show a progress bar")

	return cmd
}

func RunUnpack(cmd *cobra.Command, args []string) error {
	log := consoleLogger(cmd)

	slogger, logFile, err := setupLogger(cmd)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	start := time.Now()

	c, err := loadContainer(cmd, args[0], slogger)
	if err != nil {
		return err
	}
	defer c.Close()

	outDir, _ := cmd.Flags().GetString("output-dir")
	if outDir == "" {
		outDir = containerBaseName(args[0]) + "-files"
	}

	log.Infof("Source: \t%s", args[0])
	log.Infof("Destination: \t%s", absPath(outDir))

	if len(c.Records) == 0 {
		log.Warn(extract.ErrNoFiles.Error())
		return nil
	}

	var total int64
	for _, rec := range c.Records {
		total += int64(rec.Size())
	}

	showProgress, _ := cmd.Flags().GetBool("progress")

	var bar *pbar.ProgressBarState
	if showProgress {
		bar = pbar.NewProgressBarState(cmd.OutOrStdout(), total)
	}

	err = extract.WriteFiles(outDir, c.Records, func(path string, n int) {
		if bar != nil {
			bar.Add(n)
			return
		}
		log.Debugf("extracted %s (%s)", path, fmtutil.FormatBytes(int64(n)))
	})
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return err
	}

	if reportPath, _ := cmd.Flags().GetString("report"); reportPath != "" {
		if err := writeReport(reportPath, c); err != nil {
			return err
		}
		log.Infof("Report saved to: \t%s", absPath(reportPath))
	}

	log.Infof("Files extracted: \t%d", len(c.Records))
	if c.Dropped > 0 {
		log.Infof("Segments skipped: \t%d", c.Dropped)
	}
	log.Infof("Total data: \t%s", fmtutil.FormatBytes(total))
	log.Infof("Duration: \t%s", time.Since(start).Round(time.Millisecond))
	return nil
}

func writeReport(path string, c *loadedContainer) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := report.Write(f, c.Path, len(c.Buf.Bytes()), c.Records); err != nil {
		return err
	}
	return f.Close()
}
