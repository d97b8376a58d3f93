package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/ostafen/envcarve/internal/bundle"
	"github.com/ostafen/envcarve/internal/extract"
	"github.com/spf13/cobra"
)

func DefineBundleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "bundle <container>",
		Short:        "Bundle the embedded files of a container into a zip archive",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunBundle,
	}

	addParseFlags(cmd)
	cmd.Flags().StringP("output", "o", bundle.DefaultName, "path of the zip archive")
	cmd.Flags().String("method", "deflate", "compression method (store, deflate, zstd)")

	return cmd
}

func RunBundle(cmd *cobra.Command, args []string) error {
	log := consoleLogger(cmd)

	method, _ := cmd.Flags().GetString("method")
	m, err := bundle.ParseMethod(method)
	if err != nil {
		return err
	}

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
		log.Warn(extract.ErrNoFiles.Error())
		return nil
	}

	out, _ := cmd.Flags().GetString("output")

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := bundle.Write(w, c.Records, m); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("error flushing writer: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	log.Infof("%d files bundled into %s", len(c.Records), absPath(out))
	return nil
}
