package main

import (
	"fmt"
	"io"
	"os"

	"github.com/ostafen/envcarve/cmd/cmd"
	"github.com/ostafen/envcarve/internal/env"
)

func main() {
	PrintLogo(os.Stderr)

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func PrintLogo(w io.Writer) {
	fmt.Fprintln(w, "                                        ")
	fmt.Fprintln(w, "  ___ _ ____   _____ __ _ _ ____   _____ ")
	fmt.Fprintln(w, " / _ \\ '_ \\ \\ / / __/ _` | '__\\ \\ / / _ \\")
	fmt.Fprintln(w, "|  __/ | | \\ V / (_| (_| | |   \\ V /  __/")
	fmt.Fprintln(w, " \\___|_| |_|\\_/ \\___\\__,_|_|    \\_/ \\___|")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Embedded file container extraction tool")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Version:   %s\n", env.Version)
	fmt.Fprintf(w, "Commit:    %s\n", env.CommitHash)
	fmt.Fprintf(w, "Build Time: %s\n", env.BuildTime)
	fmt.Fprintln(w, " ")
}
