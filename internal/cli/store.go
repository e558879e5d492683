package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/jsondoc/internal/jv"
	"github.com/roach88/jsondoc/internal/store"
)

// NewStoreCommand creates the store command and its subcommands.
func NewStoreCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Keep revisioned documents in a SQLite store",
		Long: `Put, read and list named documents kept in the SQLite database
given by --db.

Every put of a changed document appends a revision; putting an equal
document again is a no-op.`,
	}

	cmd.AddCommand(newStorePutCommand(rootOpts))
	cmd.AddCommand(newStoreGetCommand(rootOpts))
	cmd.AddCommand(newStoreListCommand(rootOpts))
	cmd.AddCommand(newStoreHistoryCommand(rootOpts))
	cmd.AddCommand(newStoreDeleteCommand(rootOpts))
	cmd.AddCommand(newStoreFindCommand(rootOpts))

	return cmd
}

// withStore opens the store named by --db, runs fn and closes the store.
func withStore(opts *RootOptions, fn func(*store.Store) error) error {
	st, err := store.Open(opts.DB)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("failed to open store %s", opts.DB), err)
	}
	defer st.Close()
	return fn(st)
}

func newStorePutCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "put <name> <src>",
		Short:         "Store a document as the newest revision",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			v, err := readDocument(cmd, args[1])
			if err != nil {
				return formatter.Fail("failed to read document", err)
			}
			return withStore(rootOpts, func(st *store.Store) error {
				rev, err := st.Put(cmd.Context(), args[0], v)
				if err != nil {
					return formatter.Fail("put failed", err)
				}
				return formatter.Success(rev)
			})
		},
	}
}

func newStoreGetCommand(rootOpts *RootOptions) *cobra.Command {
	var revID string

	cmd := &cobra.Command{
		Use:           "get <name>",
		Short:         "Print the head revision of a document",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			return withStore(rootOpts, func(st *store.Store) error {
				var v jv.Value
				var rev store.Revision
				var err error
				if revID != "" {
					v, rev, err = st.GetRevision(cmd.Context(), revID)
					if err == nil && rev.Name != args[0] {
						err = fmt.Errorf("revision %s belongs to %q: %w", revID, rev.Name, store.ErrNotFound)
					}
				} else {
					v, rev, err = st.Get(cmd.Context(), args[0])
				}
				if err != nil {
					return formatter.Fail("get failed", err)
				}
				formatter.VerboseLog("Revision %s", rev)
				return formatter.Success(v)
			})
		},
	}

	cmd.Flags().StringVar(&revID, "rev", "", "print this revision ID instead of the head")

	return cmd
}

func newStoreListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List the head revision of every document",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			return withStore(rootOpts, func(st *store.Store) error {
				revs, err := st.List(cmd.Context())
				if err != nil {
					return formatter.Fail("list failed", err)
				}
				return SuccessList(formatter, revs)
			})
		},
	}
}

func newStoreHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "history <name>",
		Short:         "List every revision of a document, oldest first",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			return withStore(rootOpts, func(st *store.Store) error {
				revs, err := st.History(cmd.Context(), args[0])
				if err != nil {
					return formatter.Fail("history failed", err)
				}
				return SuccessList(formatter, revs)
			})
		},
	}
}

func newStoreDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <name>",
		Short:         "Delete a document and its history",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			return withStore(rootOpts, func(st *store.Store) error {
				if err := st.Delete(cmd.Context(), args[0]); err != nil {
					return formatter.Fail("delete failed", err)
				}
				return formatter.Success(fmt.Sprintf("deleted %s", args[0]))
			})
		},
	}
}

func newStoreFindCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "find <src>",
		Short: "List revisions whose content equals a document",
		Long: `Compute the content digest of <src> and list every stored revision,
of any document, with the same digest.`,
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
			return withStore(rootOpts, func(st *store.Store) error {
				revs, err := st.FindDigest(cmd.Context(), d)
				if err != nil {
					return formatter.Fail("find failed", err)
				}
				return SuccessList(formatter, revs)
			})
		},
	}
}
