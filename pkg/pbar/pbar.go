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
package pbar

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ostafen/envcarve/pkg/util/format"
)

const MinRefreshRate = time.Millisecond * 500

const barLength = 20

// ProgressBarState holds all the data needed to render the progress bar
type ProgressBarState struct {
	TotalBytes         int64
	ProcessedBytes     int64
	FilesWritten       int
	StartTime          time.Time
	LastUpdateTime     time.Time
	LastProcessedBytes int64

	out io.Writer
}

// NewProgressBarState initializes a new ProgressBarState rendering to out.
func NewProgressBarState(out io.Writer, totalBytes int64) *ProgressBarState {
	return &ProgressBarState{
		TotalBytes:     totalBytes,
		StartTime:      time.Now(),
		LastUpdateTime: time.Unix(0, 0),
		out:            out,
	}
}

// Add records a written file of n bytes and renders the bar if due.
func (pbs *ProgressBarState) Add(n int) {
	pbs.FilesWritten++
	pbs.ProcessedBytes += int64(n)
	pbs.Render(false)
}

func (pbs *ProgressBarState) percentage() float64 {
	if pbs.TotalBytes <= 0 {
		return 100
	}
	return min(100, float64(pbs.ProcessedBytes)/float64(pbs.TotalBytes)*100)
}

func bar(percentage float64) string {
	filledLen := int(float64(barLength) * percentage / 100)
	if filledLen >= barLength {
		return strings.Repeat("=", barLength)
	}
	return strings.Repeat("=", filledLen) + ">" + strings.Repeat(" ", barLength-filledLen-1)
}

// Render updates and prints the progress bar line
func (pbs *ProgressBarState) Render(force bool) {
	if !force && time.Since(pbs.LastUpdateTime) < MinRefreshRate {
		return
	}

	percentage := pbs.percentage()

	elapsed := time.Since(pbs.StartTime).Seconds()
	var speedMBps float64
	if elapsed > 0 {
		speedMBps = float64(pbs.ProcessedBytes) / elapsed / (1024 * 1024)
	}

	pbs.LastUpdateTime = time.Now()
	pbs.LastProcessedBytes = pbs.ProcessedBytes

	// \r moves the cursor to the beginning of the line, trailing spaces
	// clear leftovers of a previous longer line.
	fmt.Fprintf(pbs.out, "\r[INFO] Progress: [%s] %3.0f%% (%s/%s) | Files Written: %d | @ %.2fMB/s    ",
		bar(percentage),
		percentage,
		format.FormatBytes(pbs.ProcessedBytes),
		format.FormatBytes(pbs.TotalBytes),
		pbs.FilesWritten,
		speedMBps)
}

// Finish renders the final state and moves to the next line.
func (pbs *ProgressBarState) Finish() {
	pbs.Render(true)
	fmt.Fprintln(pbs.out)
}
