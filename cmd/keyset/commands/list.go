package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Alp4ka/keyset"
	"github.com/Alp4ka/keyset/internal/config"
	"github.com/Alp4ka/keyset/internal/logging"
	"github.com/Alp4ka/keyset/internal/store"
)

func newListCommand(configPath *string, open dbOpener) *cobra.Command {
	var (
		req     keyset.Request
		ownerID int64
		all     bool
	)

	cmd := &cobra.Command{
		Use:       "list <users|posts|images|tags>",
		Short:     "Print pages of rows as JSON, one response per line",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"users", "posts", "images", "tags"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(*configPath)
			if err != nil {
				return err
			}

			log, err := logging.New(cfg.Logger, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			db, err := open(cfg.Database, logging.GORMLogger(log))
			if err != nil {
				return err
			}
			defer func() {
				sqlDB, err := db.DB()
				if err == nil {
					err = sqlDB.Close()
				}
				if err != nil {
					log.WithError(err).Warn("failed to close database")
				}
			}()

			var opts []store.ListOption
			if cmd.Flags().Changed("owner") {
				opts = append(opts, store.WithOwner(ownerID))
			}

			p := pagePrinter{
				log:   log,
				out:   json.NewEncoder(cmd.OutOrStdout()),
				store: store.New(db, cfg.Paging.MaxLimit),
				all:   all,
			}

			switch args[0] {
			case "users":
				return printPages(cmd.Context(), p, store.Users, req, opts...)
			case "posts":
				return printPages(cmd.Context(), p, store.Posts, req, opts...)
			case "images":
				return printPages(cmd.Context(), p, store.Images, req, opts...)
			case "tags":
				return printPages(cmd.Context(), p, store.Tags, req, opts...)
			default:
				return fmt.Errorf("unknown entity '%s'", args[0])
			}
		},
	}

	cmd.Flags().IntVarP(&req.Limit, "limit", "l", keyset.DefaultLimit, "page size")
	cmd.Flags().StringVarP(&req.Sort, "sort", "s", "", `sort column alias with optional direction, e.g. "creationTimestamp desc"`)
	cmd.Flags().StringVarP(&req.SortDirection, "direction", "d", "", "sort direction: asc or desc")
	cmd.Flags().StringVar(&req.Cursor, "cursor", "", "cursor token to start from")
	cmd.Flags().Int64Var(&ownerID, "owner", 0, "only rows owned by this user (posts, images)")
	cmd.Flags().BoolVar(&all, "all", false, "follow the next cursor until the last page")

	return cmd
}

type pagePrinter struct {
	log   *logrus.Logger
	out   *json.Encoder
	store *store.Store
	all   bool
}

func printPages[M any](
	ctx context.Context,
	p pagePrinter,
	entity store.Entity[M],
	req keyset.Request,
	opts ...store.ListOption,
) error {
	for pageNum := 1; ; pageNum++ {
		page, err := store.List(ctx, p.store, entity, req, opts...)
		if err != nil {
			return err
		}

		p.log.WithFields(logrus.Fields{
			"entity":  entity.Name,
			"page":    pageNum,
			"items":   len(page.Items),
			"hasMore": page.Cursors.HasNext(),
		}).Debug("fetched page")

		if err = p.out.Encode(keyset.NewResponse(page)); err != nil {
			return fmt.Errorf("failed to write page: %w", err)
		}

		if !p.all || !page.Cursors.HasNext() {
			return nil
		}
		// The next page would start at the same value as this one.
		if page.Cursors.Next.Equal(page.Cursors.Start) {
			return fmt.Errorf(
				"cannot list all %s: more than %d rows share the sort value '%v', sort by a unique column",
				entity.Name, len(page.Items), page.Cursors.Next.Value(),
			)
		}
		req.Cursor = page.Cursors.Next.String()
	}
}
