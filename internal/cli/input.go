package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/jsondoc/internal/jv"
)

// stdinArg names standard input wherever a source is expected.
const stdinArg = "-"

func ioError(op, what string, err error) error {
	return &jv.Error{Kind: jv.ErrIO, Op: op, Message: what, Err: err}
}

// readDocument loads a <src> argument: "-" parses standard input, anything
// else goes through jv.Deserialize (a .json file path or inline JSON).
func readDocument(cmd *cobra.Command, src string) (jv.Value, error) {
	if src == stdinArg {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return jv.Value{}, ioError("read", "stdin", err)
		}
		return jv.ParseBytes(data)
	}
	return jv.Deserialize(src)
}

// readText returns the raw text of a <src> argument without parsing it.
func readText(cmd *cobra.Command, src string) (string, error) {
	if src == stdinArg {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", ioError("read", "stdin", err)
		}
		return string(data), nil
	}
	if strings.HasSuffix(src, jv.FileExtension) {
		if info, err := os.Stat(src); err == nil && info.Mode().IsRegular() {
			data, err := os.ReadFile(src)
			if err != nil {
				return "", ioError("read", src, err)
			}
			return string(data), nil
		}
	}
	return src, nil
}

// readFile reads a file argument, "-" meaning standard input.
func readFile(cmd *cobra.Command, path string) ([]byte, error) {
	var data []byte
	var err error
	if path == stdinArg {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, ioError("read", path, err)
	}
	return data, nil
}

// writeFile writes data to path, created or truncated.
func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return ioError("write", fmt.Sprintf("write %s", path), err)
	}
	return nil
}
