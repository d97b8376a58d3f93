package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/ostafen/envcarve/internal/report"
	"github.com/spf13/cobra"
)

func DefineVerifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <container> <report_file>",
		Short: "Check a container against a DFXML report",
		Long: `The 'verify' command parses a container and compares its files with those listed in a report produced by 'unpack --report'.
Names, sizes and digests must match, in order.
Files without a name must be named as when the report was produced (see --names and --seed).`,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE:         RunVerify,
	}

	addParseFlags(cmd)
	return cmd
}

func RunVerify(cmd *cobra.Command, args []string) error {
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

	reportFile, err := os.Open(args[1])
	if err != nil {
		return err
	}
	defer reportFile.Close()

	mismatches, err := report.Verify(bufio.NewReader(reportFile), c.Records)
	if err != nil {
		return err
	}

	for _, m := range mismatches {
		log.Error(m.String())
	}
	if len(mismatches) > 0 {
		return fmt.Errorf("%d mismatches found", len(mismatches))
	}

	log.Infof("%d files verified", len(c.Records))
	return nil
}
