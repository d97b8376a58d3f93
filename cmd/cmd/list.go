package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/ostafen/envcarve/internal/extract"
	"github.com/spf13/cobra"
)

func DefineListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "list <container>",
		Short:        "List the embedded files of a container",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunList,
	}

	addParseFlags(cmd)
	return cmd
}

func RunList(cmd *cobra.Command, args []string) error {
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
		consoleLogger(cmd).Warn(extract.ErrNoFiles.Error())
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tEXT\tSIZE\tTYPE\tOFFSET\tCHECKSUM\tSHA1")

	for _, rec := range c.Records {
		typ := rec.Type
		if typ == "" {
			typ = "-"
		}

		sha := "-"
		if rec.Hash != "" {
			sha = "ok"
			if !rec.VerifySHA1() {
				sha = "mismatch"
			}
		}

		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%d\t%016x\t%s\n",
			rec.Name,
			rec.Ext,
			rec.Size(),
			typ,
			rec.Offset,
			rec.Checksum(),
			sha,
		)
	}
	return w.Flush()
}
