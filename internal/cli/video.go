package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/zhouzirui/video-catalog/backend/internal/model/video"
)

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid video id %q", raw)
	}
	return id, nil
}

func newGetCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get [ID]",
		Short: "Show one video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			v, err := opts.client().Get(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get video: %w", err)
			}
			return printJSON(cmd, v)
		},
	}
}

func newPutCommand(opts *options) *cobra.Command {
	var (
		name  string
		views int64
		likes int64
	)

	cmd := &cobra.Command{
		Use:   "put [ID]",
		Short: "Create a video under ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			created, err := opts.client().Create(cmd.Context(), video.Video{ID: id, Name: name, Views: views, Likes: likes})
			if err != nil {
				return fmt.Errorf("failed to create video: %w", err)
			}
			return printJSON(cmd, created)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Video name")
	cmd.Flags().Int64Var(&views, "views", 0, "View count")
	cmd.Flags().Int64Var(&likes, "likes", 0, "Like count")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newPatchCommand(opts *options) *cobra.Command {
	var (
		name  string
		views int64
		likes int64
	)

	cmd := &cobra.Command{
		Use:   "patch [ID]",
		Short: "Update some fields of a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var patch video.Patch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("views") {
				patch.Views = &views
			}
			if cmd.Flags().Changed("likes") {
				patch.Likes = &likes
			}
			if patch.Empty() {
				return fmt.Errorf("at least one of --name, --views or --likes is required")
			}

			updated, err := opts.client().Update(cmd.Context(), id, patch)
			if err != nil {
				return fmt.Errorf("failed to update video: %w", err)
			}
			return printJSON(cmd, updated)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().Int64Var(&views, "views", 0, "New view count")
	cmd.Flags().Int64Var(&likes, "likes", 0, "New like count")

	return cmd
}

func newDeleteCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [ID]",
		Short: "Delete a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if err := opts.client().Delete(cmd.Context(), id); err != nil {
				return fmt.Errorf("failed to delete video: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Video %d deleted\n", id)
			return nil
		},
	}
}

func newListCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every video",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			videos, err := opts.client().List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list videos: %w", err)
			}
			if len(videos) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No videos found.")
				return nil
			}
			return printJSON(cmd, videos)
		},
	}
}

func newHelloCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "hello [NAME]",
		Short: "Look up a name on the hello-world endpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.client().Hello(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to look up %s: %w", args[0], err)
			}
			return printJSON(cmd, p)
		},
	}
}
