package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"mamlgen/internal/logger"
	"mamlgen/internal/xmldoc"
)

func newXMLDocCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "xmldoc <package>",
		Short: "Write the XML documentation file for a Go package",
		Long: `Write the XML documentation file for a Go package from its doc comments.

Each exported type becomes a T: member and each exported struct field a P:
member. The first paragraph of a comment is the summary; the remaining
paragraphs become remarks.

Example:

  mamlgen xmldoc ./widgets -o widgets/widgets.xml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		logFile, _ := cmd.Flags().GetString("log-file")
		if err := logger.Init(a.stderr, logFile, verbose); err != nil {
			return err
		}
		defer logger.Close()

		if output == "" {
			return xmldoc.Generate(cmd.Context(), args[0], a.stdout)
		}

		tmp, err := os.CreateTemp(filepath.Dir(output), ".xmldoc-*")
		if err != nil {
			return err
		}
		defer os.Remove(tmp.Name())

		if err := xmldoc.Generate(cmd.Context(), args[0], tmp); err != nil {
			tmp.Close()
			return err
		}
		if err := tmp.Close(); err != nil {
			return err
		}
		if err := os.Rename(tmp.Name(), output); err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "Wrote %s\n", output)
		return nil
	}
	return cmd
}
