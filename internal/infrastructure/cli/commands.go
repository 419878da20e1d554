package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/doeshing/toolgate/internal/app"
	"github.com/doeshing/toolgate/internal/domain"
	"github.com/doeshing/toolgate/internal/infrastructure/mcp"
	"github.com/doeshing/toolgate/internal/version"
)

func newCallCommand(lazy *app.Lazy) *cobra.Command {
	var (
		rawArgs string
		pairs   []string
		output  string
	)
	cmd := &cobra.Command{
		Use:   "call <tool>",
		Short: "Dispatch a single tool call and print its outcome as JSON",
		Example: `  toolgate call read_file --arg path=notes.txt
  toolgate call run_command --args '{"command":"ls","args":["-la"]}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "json" && output != "text" {
				return fmt.Errorf("--output must be json or text, got %q", output)
			}
			call, err := buildToolCall(args[0], rawArgs, pairs)
			if err != nil {
				return err
			}
			container, err := lazy.Get(cmd.Context())
			if err != nil {
				return err
			}
			prompter, release := selectPrompter(container, cmd.InOrStdin(), cmd.ErrOrStderr(), "")
			defer release()
			if err := attachOperator(container, prompter, cmd.ErrOrStderr()); err != nil {
				return err
			}

			out := container.Dispatcher.Dispatch(cmd.Context(), call)
			if output == "text" {
				RenderOutcome(cmd.OutOrStdout(), out)
				return nil
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVar(&rawArgs, "args", "", "Tool parameters as a JSON object")
	cmd.Flags().StringArrayVar(&pairs, "arg", nil, "Tool parameter as key=value (repeatable)")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "Outcome format: json or text")
	return cmd
}

// buildToolCall merges --args JSON with --arg pairs; pairs win. Values of
// boolean and array parameters are parsed as JSON, everything else is kept
// as a literal string.
func buildToolCall(name, rawArgs string, pairs []string) (domain.ToolCall, error) {
	call := domain.ToolCall{Name: name, Args: map[string]any{}}
	if strings.TrimSpace(rawArgs) != "" {
		if err := json.Unmarshal([]byte(rawArgs), &call.Args); err != nil {
			return domain.ToolCall{}, fmt.Errorf("--args must be a JSON object: %w", err)
		}
		if call.Args == nil {
			call.Args = map[string]any{}
		}
	}
	tool, _ := domain.LookupTool(name)
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return domain.ToolCall{}, fmt.Errorf("--arg %q must be key=value", pair)
		}
		call.Args[key] = value
		for _, param := range tool.Params {
			if param.Name != key || param.Type == domain.ParamString {
				continue
			}
			var decoded any
			if err := json.Unmarshal([]byte(value), &decoded); err != nil {
				return domain.ToolCall{}, fmt.Errorf("--arg %s must be JSON %s: %w", key, param.Type, err)
			}
			call.Args[key] = decoded
		}
	}
	return call, nil
}

func newServeCommand(lazy *app.Lazy) *cobra.Command {
	var (
		transport string
		port      int
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tools to a planner over MCP (stdio or SSE)",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := lazy.Get(cmd.Context())
			if err != nil {
				return err
			}
			if transport == "" {
				transport = container.Config.Server.Transport
			}
			if port == 0 {
				port = container.Config.Server.Port
			}
			if transport != domain.TransportStdio && transport != domain.TransportSSE {
				return fmt.Errorf("unknown transport %q (stdio|sse)", transport)
			}

			prompter, release := selectPrompter(container, cmd.InOrStdin(), cmd.ErrOrStderr(), transport)
			defer release()
			if err := attachOperator(container, prompter, cmd.ErrOrStderr()); err != nil {
				return err
			}

			var opts []mcp.Option
			if container.Config.Server.Metrics {
				opts = append(opts, mcp.WithMetricsHandler(container.Metrics.Handler()))
			}
			server := mcp.NewServer(container.Dispatcher, container.Logger, version.Version, opts...)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			if transport == domain.TransportSSE {
				return server.ServeSSE(ctx, port)
			}
			return server.ServeStdio(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&transport, "transport", "", "stdio or sse (default from config)")
	cmd.Flags().IntVar(&port, "port", 0, "SSE listen port (default from config)")
	return cmd
}

func newToolsCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the tools offered to planners",
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), domain.ToolCatalog)
			}
			renderTools(cmd.OutOrStdout())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the catalogue as JSON")
	return cmd
}

func renderTools(out io.Writer) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, tool := range domain.ToolCatalog {
		fmt.Fprintf(w, "%s\t%s\n", tool.Name, tool.Description)
		for _, param := range tool.Params {
			required := "optional"
			if param.Required {
				required = "required"
			}
			fmt.Fprintf(w, "  %s\t%s, %s. %s\n", param.Name, param.Type, required, param.Description)
		}
	}
	_ = w.Flush()
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
