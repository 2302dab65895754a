package cli

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/zhouzirui/video-catalog/backend/internal/client"
	"github.com/zhouzirui/video-catalog/backend/internal/model/video"
)

// sampleVideos are stored under ids 0..n-1 by the seed command.
var sampleVideos = []video.Video{
	{Name: "hello", Views: 300, Likes: 22},
	{Name: "The Interstellar Experience", Views: 1000, Likes: 100},
	{Name: "Turning 18 & New Year 2025", Views: 500, Likes: 57},
}

func newSeedCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the sample videos, then patch and read back video 2",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api := opts.client()
			ctx := cmd.Context()

			for i, sample := range sampleVideos {
				sample.ID = int64(i)
				created, err := api.Create(ctx, sample)
				var apiErr *client.APIError
				switch {
				case errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict:
					fmt.Fprintf(cmd.OutOrStdout(), "Video %d already exists, skipping\n", sample.ID)
				case err != nil:
					return fmt.Errorf("failed to create video %d: %w", sample.ID, err)
				default:
					fmt.Fprintf(cmd.OutOrStdout(), "Created video %d: %s\n", created.ID, created.Name)
				}
			}

			likes := int64(99)
			if _, err := api.Update(ctx, 2, video.Patch{Likes: &likes}); err != nil {
				return fmt.Errorf("failed to update video 2: %w", err)
			}

			v, err := api.Get(ctx, 2)
			if err != nil {
				return fmt.Errorf("failed to get video 2: %w", err)
			}
			return printJSON(cmd, v)
		},
	}
}
