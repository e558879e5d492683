package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/jsondoc/internal/jv"
)

// OutputOptions holds the --output flag shared by commands that produce a
// document.
type OutputOptions struct {
	*RootOptions
	Output string
}

// WriteResult reports a document written to a file.
type WriteResult struct {
	Path  string `json:"path"`
	Bytes int    `json:"bytes"`
}

func (r WriteResult) String() string {
	return "wrote " + r.Path
}

// NewFmtCommand creates the fmt command.
func NewFmtCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &OutputOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "fmt <src>",
		Short: "Print a document in canonical form",
		Long: `Parse a document and print its canonical serialization.

<src> is a .json file, inline JSON text, or - for standard input.

Examples:
  jsondoc fmt cart.json
  jsondoc fmt '{"b": 1, "a": [1.0, 2]}'
  cat cart.json | jsondoc fmt - -o cart.canonical.json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the result to this file")

	return cmd
}

func runFmt(opts *OutputOptions, src string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	v, err := readDocument(cmd, src)
	if err != nil {
		return formatter.Fail("failed to read document", err)
	}
	return outputDocument(formatter, opts.Output, v)
}

// outputDocument prints v, or serializes it to path when path is set.
func outputDocument(formatter *OutputFormatter, path string, v jv.Value) error {
	if path == "" {
		if _, err := jv.Serialize(v, ""); err != nil {
			return formatter.Fail("failed to serialize document", err)
		}
		return formatter.Success(v)
	}

	text, err := jv.Serialize(v, path)
	if err != nil {
		return formatter.Fail("failed to write document", err)
	}
	formatter.VerboseLog("Wrote %d bytes to %s", len(text), path)
	return formatter.Success(WriteResult{Path: path, Bytes: len(text)})
}

// NewMinifyCommand creates the minify command.
func NewMinifyCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "minify <src>",
		Short: "Strip insignificant whitespace",
		Long: `Remove whitespace outside string literals without parsing.

The input is not validated; malformed text is minified as-is.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			text, err := readText(cmd, args[0])
			if err != nil {
				return formatter.Fail("failed to read input", err)
			}
			return formatter.Success(jv.Minify(text))
		},
	}

	return cmd
}

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <src> <path>",
		Short: "Print the value at a path",
		Long: `Print the value addressed by a path such as items[0].sku.

Member names containing dots or brackets use a quoted segment: a["x.y"].
The empty path addresses the whole document.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			v, err := readDocument(cmd, args[0])
			if err != nil {
				return formatter.Fail("failed to read document", err)
			}
			p, err := jv.ParsePath(args[1])
			if err != nil {
				return formatter.Fail("invalid path", err)
			}
			found, err := v.Find(p)
			if err != nil {
				return formatter.Fail("lookup failed", err)
			}
			return formatter.Success(*found)
		},
	}

	return cmd
}

// NewSetCommand creates the set command.
func NewSetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &OutputOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "set <src> <path> <json>",
		Short: "Store a value at a path",
		Long: `Store a JSON value at a path and print the updated document.

Missing members are created; an index equal to the array length appends.

Examples:
  jsondoc set cart.json items[2] '{"sku":"C-3"}' -o cart.json
  jsondoc set null a.b '[1,2]'`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(opts.RootOptions, cmd)

			v, err := readDocument(cmd, args[0])
			if err != nil {
				return formatter.Fail("failed to read document", err)
			}
			p, err := jv.ParsePath(args[1])
			if err != nil {
				return formatter.Fail("invalid path", err)
			}
			elem, err := jv.Parse(args[2])
			if err != nil {
				return formatter.Fail("invalid value", err)
			}
			if err := v.Put(p, elem); err != nil {
				return formatter.Fail("update failed", err)
			}
			return outputDocument(formatter, opts.Output, v)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the result to this file")

	return cmd
}

// NewDigestCommand creates the digest command.
func NewDigestCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "digest <src>",
		Short: "Print the content digest of a document",
		Long: `Print the SHA-256 content digest of a document.

Equal documents have equal digests regardless of key order, whitespace or
Unicode normalization form.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			v, err := readDocument(cmd, args[0])
			if err != nil {
				return formatter.Fail("failed to read document", err)
			}
			d, err := jv.Digest(v)
			if err != nil {
				return formatter.Fail("failed to digest document", err)
			}
			return formatter.Success(d)
		},
	}

	return cmd
}
