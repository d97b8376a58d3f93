package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ostafen/envcarve/internal/filter"
	"github.com/ostafen/envcarve/internal/watch"
	"github.com/spf13/cobra"
)

func DefineWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Unpack containers as they are written to a directory",
		Long: `The 'watch' command monitors a directory and unpacks every container created or modified in it.
A container is processed once it has not changed for the quiet period.
The files of <dir>/<name>.<ext> are written to <output-dir>/<name>-files/.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunWatch,
	}

	addParseFlags(cmd)
	cmd.Flags().StringP("output-dir", "o", "", "directory receiving the extracted files (default <dir>)")
	cmd.Flags().StringSlice("match", nil, "only process containers whose name matches one of the glob patterns")
	cmd.Flags().Duration("quiet", watch.DefaultQuietPeriod, "time a container must stay unchanged before being processed")

	return cmd
}

func RunWatch(cmd *cobra.Command, args []string) error {
	log := consoleLogger(cmd)

	slogger, logFile, err := setupLogger(cmd)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	limit, err := getBytes(cmd, "max-input-size")
	if err != nil {
		return err
	}

	p, err := newParser(cmd)
	if err != nil {
		return err
	}

	records, err := newRecordFilter(cmd)
	if err != nil {
		return err
	}

	patterns, _ := cmd.Flags().GetStringSlice("match")
	inputs, err := filter.New(patterns...)
	if err != nil {
		return err
	}

	outDir, _ := cmd.Flags().GetString("output-dir")
	quiet, _ := cmd.Flags().GetDuration("quiet")

	w, err := watch.New(watch.Options{
		Dir:          args[0],
		OutDir:       outDir,
		Inputs:       inputs,
		Records:      records,
		Parser:       p,
		QuietPeriod:  quiet,
		MaxInputSize: limit,
		Logger:       slogger,
		OnUnpack: func(path string, files int, err error) {
			if err != nil {
				log.Errorf("unable to unpack %s: %s", path, err)
				return
			}
			log.Infof("unpacked %d files from %s", files, path)
		},
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Infof("watching %s (quiet period %s)", absPath(args[0]), quiet.Round(time.Millisecond))
	return w.Run(ctx)
}
