// Package cli implements the videoctl command tree.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/zhouzirui/video-catalog/backend/internal/client"
	"github.com/zhouzirui/video-catalog/backend/internal/model/lookup"
	"github.com/zhouzirui/video-catalog/backend/internal/model/video"
)

const defaultBaseURL = "http://127.0.0.1:8080"

// API is the subset of the catalog client the commands use.
type API interface {
	Get(ctx context.Context, id int64) (*video.Video, error)
	Create(ctx context.Context, v video.Video) (*video.Video, error)
	Update(ctx context.Context, id int64, patch video.Patch) (*video.Video, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]video.Video, error)
	Hello(ctx context.Context, name string) (*lookup.Person, error)
}

// options is shared by every subcommand.
type options struct {
	baseURL string
	timeout time.Duration
	api     API
}

// client returns the injected API or builds one from the flags.
func (o *options) client() API {
	if o.api == nil {
		o.api = client.New(o.baseURL, o.timeout)
	}
	return o.api
}

// NewRootCommand creates videoctl. api may be nil, in which case an HTTP
// client is built from --base-url.
func NewRootCommand(api API) *cobra.Command {
	opts := &options{api: api}

	baseURL := os.Getenv("VIDEOCTL_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	cmd := &cobra.Command{
		Use:           "videoctl",
		Short:         "Command line client for the video catalog",
		Long:          `Create, read, update, and delete video records on a running catalog server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.baseURL, "base-url", baseURL, "Catalog server URL (env VIDEOCTL_BASE_URL)")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "Per-request timeout")

	cmd.AddCommand(newGetCommand(opts))
	cmd.AddCommand(newPutCommand(opts))
	cmd.AddCommand(newPatchCommand(opts))
	cmd.AddCommand(newDeleteCommand(opts))
	cmd.AddCommand(newListCommand(opts))
	cmd.AddCommand(newHelloCommand(opts))
	cmd.AddCommand(newSeedCommand(opts))

	return cmd
}

func printJSON(cmd *cobra.Command, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format as JSON: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(output))
	return nil
}
