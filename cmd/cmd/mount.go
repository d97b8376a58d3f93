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
	"github.com/ostafen/envcarve/internal/extract"
	"github.com/ostafen/envcarve/internal/fuse"
	"github.com/spf13/cobra"
)

func DefineMountCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mount <container>",
		Short: "Mount the embedded files of a container as a read-only filesystem",
		Long: `The 'mount' command exposes every file embedded in a container through a read-only FUSE filesystem.
The filesystem stays mounted until interrupted or unmounted.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunMount,
	}

	addParseFlags(cmd)
	cmd.Flags().StringP("mountpoint", "m", "", "Path to the directory where the filesystem will be mounted. If not specified, a default will be generated.")
	return cmd
}

func RunMount(cmd *cobra.Command, args []string) error {
	log := consoleLogger(cmd)

	slogger, logFile, err := setupLogger(cmd)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	c, err := loadContainer(cmd, args[0], slogger)
	if err != nil {
		return err
	}
	defer c.Close()

	if len(c.Records) == 0 {
		return extract.ErrNoFiles
	}

	mountpoint, _ := cmd.Flags().GetString("mountpoint")
	if mountpoint == "" {
		mountpoint = getMountpoint(args[0])
	}
	return fuse.Mount(mountpoint, c.Records, log)
}

// getMountpoint generates a mountpoint name from a container file name by
// stripping the extension and adding "_mnt".
func getMountpoint(containerPath string) string {
	return containerBaseName(containerPath) + "_mnt"
}
