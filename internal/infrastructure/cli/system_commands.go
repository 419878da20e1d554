package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/toolgate/assets"
	"github.com/doeshing/toolgate/internal/app"
	configapp "github.com/doeshing/toolgate/internal/application/config"
	"github.com/doeshing/toolgate/internal/domain"
	configinfra "github.com/doeshing/toolgate/internal/infrastructure/config"
	"github.com/doeshing/toolgate/internal/infrastructure/security"
	"github.com/doeshing/toolgate/internal/pkg/filesystem"
	"github.com/doeshing/toolgate/internal/version"
)

const msgConfigurationValid = "Configuration valid"

// ============================================================================
// Version Command
// ============================================================================

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show toolgate version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			return displayVersionInformation(cmd.OutOrStdout())
		},
	}
}

func displayVersionInformation(out io.Writer) error {
	fmt.Fprintf(out, "toolgate version %s\n", version.Version)
	if version.Commit != "" {
		fmt.Fprintf(out, "Commit: %s\n", version.Commit)
	}
	if version.BuildDate != "" {
		fmt.Fprintf(out, "Built: %s\n", version.BuildDate)
	}
	fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
	return nil
}

// ============================================================================
// Classify Command
// ============================================================================

func newClassifyCommand(lazy *app.Lazy) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Show how a command line or path is classified",
	}
	commandCmd := &cobra.Command{
		Use:   "command [--] <command line...>",
		Short: "Classify a command line",
		Example: `  toolgate classify command rm -rf /tmp/x
  toolgate classify command -- -rf`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := lazy.Get(cmd.Context())
			if err != nil {
				return err
			}
			renderAssessment(cmd.OutOrStdout(), container.Classifier.ClassifyCommand(strings.Join(args, " ")))
			return nil
		},
	}
	// Flags after the first word belong to the classified command line.
	commandCmd.Flags().SetInterspersed(false)

	cmd.AddCommand(
		commandCmd,
		&cobra.Command{
			Use:   "path <path>",
			Short: "Classify a filesystem path",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				container, err := lazy.Get(cmd.Context())
				if err != nil {
					return err
				}
				renderAssessment(cmd.OutOrStdout(), container.Classifier.ClassifyPath(args[0]))
				return nil
			},
		},
	)
	return cmd
}

func renderAssessment(out io.Writer, risk domain.RiskAssessment) {
	fmt.Fprintln(out, risk.Tier)
	for _, reason := range risk.Reasons {
		fmt.Fprintf(out, " - %s\n", reason)
	}
	if len(risk.MatchedRules) > 0 {
		fmt.Fprintf(out, "matched: %q\n", risk.MatchedRules)
	}
}

// ============================================================================
// Rules Command
// ============================================================================

func newRulesCommand(lazy *app.Lazy) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect or initialize classification rules",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective command and path tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := lazy.Get(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Command patterns:")
			renderRules(out, container.Classifier.CommandRules())
			fmt.Fprintln(out, "\nProtected paths:")
			renderRules(out, container.Classifier.PathRules())
			return nil
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter rules file at security.rules_file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configinfra.NewFileLoader(lazy.Options().ConfigPath).Load(cmd.Context())
			if err != nil {
				return err
			}
			path := filesystem.ExpandPath(cfg.Security.RulesFile)
			if path == "" {
				path = configinfra.DefaultRulesPath()
			}
			if err := writeStarterRules(path, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing rules file")

	cmd.AddCommand(show, initCmd)
	return cmd
}

func renderRules(out io.Writer, rules []domain.PatternRule) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, rule := range rules {
		fmt.Fprintf(w, "  %q\t%s\t%s\n", rule.Pattern, domain.ParseRiskTier(rule.Tier), rule.Reason)
	}
	_ = w.Flush()
}

func writeStarterRules(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return err
	}
	return os.WriteFile(path, assets.DefaultRulesYAML, domain.SecureFilePermissions)
}

// ============================================================================
// Config Command
// ============================================================================

func newConfigCommand(lazy *app.Lazy) *cobra.Command {
	loader := func() *configinfra.FileLoader {
		return configinfra.NewFileLoader(lazy.Options().ConfigPath)
	}
	show := func(cmd *cobra.Command, args []string) error {
		cfg, err := loader().Load(cmd.Context())
		if err != nil {
			return err
		}
		raw, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(raw)
		return err
	}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect toolgate configuration",
		RunE:  show,
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show full configuration",
			RunE:  show,
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the config file location",
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintln(cmd.OutOrStdout(), loader().Path())
				return nil
			},
		},
		&cobra.Command{
			Use:   "validate",
			Short: "Validate the configuration and rules file",
			RunE: func(cmd *cobra.Command, args []string) error {
				l := loader()
				cfg, err := l.Load(cmd.Context())
				if err != nil {
					return err
				}
				if err := configapp.Validate(cfg); err != nil {
					return fmt.Errorf("%s: %w", l.Path(), err)
				}
				if _, err := security.NewClassifier(cfg.Security.RulesFile); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), msgConfigurationValid)
				return nil
			},
		},
	)
	return cmd
}

// ============================================================================
// Doctor Command
// ============================================================================

func newDoctorCommand(lazy *app.Lazy) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose environment setup",
		RunE: func(cmd *cobra.Command, args []string) error {
			interactive := func() bool { return readerIsInteractive(cmd.InOrStdin()) }
			report, err := app.NewDoctorService(lazy.Options(), interactive).Run(cmd.Context())
			displayDoctorReport(cmd.OutOrStdout(), report)
			if err != nil {
				return fmt.Errorf("diagnostics completed with errors: %w", err)
			}
			if report.HasErrors() {
				return errors.New("diagnostics found problems")
			}
			return nil
		},
	}
}

func displayDoctorReport(out io.Writer, report domain.HealthReport) {
	for _, check := range report.Checks {
		fmt.Fprintf(out, "[%s] %s - %s\n",
			strings.ToUpper(string(check.Status)),
			check.Name,
			check.Details)
	}
}
