package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/jsondoc/internal/jv"
	"github.com/roach88/jsondoc/internal/transcode"
)

// ConvertOptions holds flags for the convert command.
type ConvertOptions struct {
	*RootOptions
	From   string
	To     string
	Output string
}

// ConvertResult is the JSON payload of the convert command. Data is the
// encoded document (base64 in JSON output).
type ConvertResult struct {
	From transcode.Format `json:"from"`
	To   transcode.Format `json:"to"`
	Data []byte           `json:"data"`
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConvertOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Convert a document between JSON, YAML, CBOR and CUE",
		Long: `Decode a document in one format and encode it in another.

The input format defaults to the file extension (.yaml/.yml, .cbor, .cue,
otherwise JSON). CUE is accepted as input only and must be concrete.
Use - to read standard input.

Examples:
  jsondoc convert config.yaml
  jsondoc convert --to cbor -o cart.cbor cart.json
  jsondoc convert --from cue --to yaml schema.cue`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.From, "from", "", "input format (json|yaml|cbor|cue, default from extension)")
	cmd.Flags().StringVar(&opts.To, "to", "json", "output format (json|yaml|cbor)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the result to this file")

	return cmd
}

func runConvert(opts *ConvertOptions, file string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	from := transcode.FormatForPath(file)
	if opts.From != "" {
		f, err := transcode.ParseFormat(opts.From)
		if err != nil {
			return NewExitError(ExitCommandError, err.Error())
		}
		from = f
	}
	to, err := transcode.ParseFormat(opts.To)
	if err != nil {
		return NewExitError(ExitCommandError, err.Error())
	}
	if to == transcode.FormatCUE {
		return NewExitError(ExitCommandError, "cue is not supported as an output format")
	}

	data, err := readFile(cmd, file)
	if err != nil {
		return formatter.Fail("failed to read input", err)
	}

	var v jv.Value
	if from == transcode.FormatCUE {
		v, err = transcode.FromCUE(data, file)
	} else {
		v, err = transcode.Decode(from, data)
	}
	if err != nil {
		return formatter.Fail(fmt.Sprintf("failed to decode %s", from), err)
	}
	formatter.VerboseLog("Decoded %s document from %s", from, file)

	out, err := transcode.Encode(to, v)
	if err != nil {
		return formatter.Fail(fmt.Sprintf("failed to encode %s", to), err)
	}

	if opts.Output != "" {
		if err := writeFile(opts.Output, out); err != nil {
			return formatter.Fail("failed to write output", err)
		}
		formatter.VerboseLog("Wrote %d bytes to %s", len(out), opts.Output)
		return formatter.Success(WriteResult{Path: opts.Output, Bytes: len(out)})
	}

	if opts.Format == "json" {
		return formatter.Success(ConvertResult{From: from, To: to, Data: out})
	}

	w := cmd.OutOrStdout()
	if _, err := w.Write(out); err != nil {
		return WrapExitError(ExitCommandError, "failed to write output", err)
	}
	if to == transcode.FormatJSON {
		fmt.Fprintln(w)
	}
	return nil
}
