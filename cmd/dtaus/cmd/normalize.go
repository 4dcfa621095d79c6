/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/ssargent/dtaus/pkg/codec"
	"github.com/ssargent/dtaus/pkg/dtaus"
	"go.uber.org/zap"
)

func newNormalizeCmd() *cobra.Command {
	normalizeCmd := &cobra.Command{
		Use:   "normalize <in> <out> [tolerance] [encoding]",
		Short: "Rewrite a DTAUS file in conforming form",
		Long: `Parse a DTAUS file with the given tolerance and encoding and write every
logical file back strictly, with translated characters, normalized padding
and the output encoding.

Examples:
	  dtaus normalize legacy.txt dtaus0.txt 3 IBM850
	  dtaus normalize dtaus0.txt clean.txt --recompute-trailers`,
		Args: cobra.RangeArgs(2, 4),
		RunE: runNormalize,
	}

	normalizeCmd.Flags().String("output-encoding", "", "Charset of the output file (default ISO-8859-1)")
	normalizeCmd.Flags().Bool("recompute-trailers", false, "Derive each trailer from its transactions")
	return normalizeCmd
}

func runNormalize(cmd *cobra.Command, args []string) (err error) {
	defer func() { err = exportMetrics(err) }()

	tol, enc, err := resolvePolicy(container.GetConfig(), args[2:])
	if err != nil {
		return err
	}
	outName, _ := cmd.Flags().GetString("output-encoding")
	outEnc, err := codec.LookupCharset(outName)
	if err != nil {
		return err
	}
	recompute, _ := cmd.Flags().GetBool("recompute-trailers")

	p, err := dtaus.ParseFile(args[0], container.Options(tol, enc)...)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(args[1]), 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	file, err := os.OpenFile(args[1], os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) // #nosec G304 -- path is supplied by the operator
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	w := dtaus.NewWriter(file, container.Options(codec.StrictConformant, outEnc)...)
	for _, lf := range p.LogicalFiles() {
		if recompute {
			// An open file gets its trailer computed by the writer.
			open := dtaus.NewLogicalFile(lf.Header)
			for _, tx := range lf.Transactions() {
				if err := open.Add(tx); err != nil {
					return err
				}
			}
			lf = open
		}
		if err := w.Write(lf); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	if err := file.Sync(); err != nil {
		return fmt.Errorf("failed to sync output: %w", err)
	}

	container.GetLogger().Info("normalized dtaus file",
		zap.String("in", args[0]),
		zap.String("out", args[1]),
		zap.Int("logical_files", w.Count()),
		zap.Int64("bytes", w.Size()),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "logical files: %d\n", w.Count())
	return nil
}
