// Package admin implements nutrisync-admin, the operator tool that
// physically removes synchronized rows from the backend.
package admin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/nutrisync/internal/client/client"
	"github.com/dmitrijs2005/nutrisync/internal/client/models"
	"github.com/dmitrijs2005/nutrisync/internal/common"
	"github.com/dmitrijs2005/nutrisync/internal/cryptox"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Remote is the part of the sync client the tool needs.
type Remote interface {
	GetSalt(ctx context.Context, username string) ([]byte, error)
	Login(ctx context.Context, username string, key []byte) error
	DeleteScope(ctx context.Context, f client.DeleteFilter) (int64, error)
	Close() error
}

type resetOptions struct {
	server         string
	adminKey       string
	user           string
	entityType     string
	syncIDs        []string
	tombstonesOnly bool
	updatedBefore  string
	allUsers       bool
	timeout        time.Duration
}

var (
	dial = func(server, adminKey string) (Remote, error) {
		var opts []client.Option
		if adminKey != "" {
			opts = append(opts, client.WithAdminKey(adminKey))
		}
		return client.NewSyncClient(server, opts...)
	}
	readPassword = func(w io.Writer) ([]byte, error) {
		fmt.Fprint(w, "Password: ")
		defer fmt.Fprintln(w)
		return term.ReadPassword(int(os.Stdin.Fd()))
	}
)

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "nutrisync-admin",
		Short:         "Operator tools for the nutrisync backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newResetCmd())
	return root
}

var resetExample = `
  nutrisync-admin reset --all-users --admin-key $NUTRISYNC_ADMIN_KEY --type chat_message
  nutrisync-admin reset --user alice --tombstones-only --updated-before 2025-01-01`

func newResetCmd() *cobra.Command {
	o := &resetOptions{}
	cmd := &cobra.Command{
		Use:     "reset",
		Short:   "Physically delete synchronized rows",
		Example: resetExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReset(cmd.Context(), o, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.server, "server", "s", "localhost:50051", "backend gRPC address")
	f.StringVarP(&o.adminKey, "admin-key", "k", os.Getenv("NUTRISYNC_ADMIN_KEY"), "backend admin key, required with --all-users")
	f.StringVarP(&o.user, "user", "u", "", "reset the rows of this account, prompts for its password")
	f.StringVarP(&o.entityType, "type", "t", "", "entity type to reset, all types when empty")
	f.StringSliceVar(&o.syncIDs, "sync-id", nil, "restrict to these sync ids")
	f.BoolVar(&o.tombstonesOnly, "tombstones-only", false, "only delete tombstones")
	f.StringVar(&o.updatedBefore, "updated-before", "", "only delete rows updated before this day (YYYY-MM-DD)")
	f.BoolVar(&o.allUsers, "all-users", false, "reset every account")
	f.DurationVar(&o.timeout, "timeout", 30*time.Second, "request timeout")
	cmd.MarkFlagsMutuallyExclusive("user", "all-users")
	cmd.MarkFlagsOneRequired("user", "all-users")
	return cmd
}

func (o *resetOptions) filter() (client.DeleteFilter, error) {
	f := client.DeleteFilter{
		Type:           models.EntityType(o.entityType),
		SyncIDs:        o.syncIDs,
		TombstonesOnly: o.tombstonesOnly,
		AllUsers:       o.allUsers,
	}
	if o.entityType != "" && !f.Type.Valid() {
		return f, fmt.Errorf("unknown entity type %q", o.entityType)
	}
	if o.updatedBefore != "" {
		t, err := time.Parse(common.DateLayout, o.updatedBefore)
		if err != nil {
			return f, fmt.Errorf("--updated-before: %w", err)
		}
		f.UpdatedBefore = t
	}
	if o.allUsers && o.adminKey == "" {
		return f, errors.New("--all-users needs --admin-key")
	}
	return f, nil
}

func runReset(ctx context.Context, o *resetOptions, out io.Writer) error {
	f, err := o.filter()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	c, err := dial(o.server, o.adminKey)
	if err != nil {
		return fmt.Errorf("dial error: %w", err)
	}
	defer c.Close()

	if !o.allUsers {
		if err := login(ctx, c, o.user, out); err != nil {
			return err
		}
	}

	n, err := c.DeleteScope(ctx, f)
	if err != nil {
		return fmt.Errorf("reset error: %w", err)
	}
	fmt.Fprintf(out, "Deleted %d rows\n", n)
	return nil
}

func login(ctx context.Context, c Remote, user string, out io.Writer) error {
	password, err := readPassword(out)
	if err != nil {
		return fmt.Errorf("password error: %w", err)
	}
	defer common.WipeByteArray(password)

	salt, err := c.GetSalt(ctx, user)
	if err != nil {
		return fmt.Errorf("get salt error: %w", err)
	}
	key := cryptox.DeriveMasterKey(password, salt)
	defer common.WipeByteArray(key)

	if err := c.Login(ctx, user, cryptox.MakeVerifier(key)); err != nil {
		return fmt.Errorf("login error: %w", err)
	}
	return nil
}
