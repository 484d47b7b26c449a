package cmd

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"ctxgen/pkg/catalog"
	"ctxgen/pkg/combine"
	"ctxgen/pkg/config"
	"ctxgen/pkg/errors"
	"ctxgen/pkg/ignore"
	"ctxgen/pkg/logging"
	"ctxgen/pkg/version"
)

// rootOptions carries state shared by the root command and its children.
type rootOptions struct {
	configFile string
	v          *viper.Viper
	cfg        *config.Config
	logger     *zap.Logger
}

// NewRootCommand builds the ctxgen command tree.
func NewRootCommand() *cobra.Command {
	o := &rootOptions{v: config.New(), logger: zap.NewNop()}

	cmd := &cobra.Command{
		Use:   "ctxgen [directory]",
		Short: "ctxgen dumps a source tree as context for GPT-like tools",
		Long: `ctxgen walks a directory, skips files matching the default exclusion
categories and any extra patterns, and prints every remaining text file
between separator lines. With --dry-run it prints a tree of what would be
included and excluded instead.`,
		Version:           version.Get().String(),
		Args:              cobra.MaximumNArgs(1),
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: o.init,
		RunE:              o.run,
	}
	cmd.SetVersionTemplate("{{.Version}}\n")

	flags := cmd.Flags()
	flags.StringArray(config.KeyExclude, nil, "exclude files/folders matching these patterns (supports wildcards)")
	flags.StringSlice(config.KeyExcludeFrom, nil, "read additional exclude patterns from a file, one per line")
	flags.StringSlice(config.KeyDisableCategory, nil, "disable default exclusion categories by ID (use list-exclusions to see IDs)")
	flags.Bool(config.KeyNoDefaults, false, "disable default exclusions")
	flags.Bool(config.KeyDryRun, false, "show which files would be processed or excluded without printing contents")
	flags.Bool(config.KeyGitignore, false, "also exclude paths matched by the root .gitignore")
	flags.Bool(config.KeyCopy, false, "copy the output to the clipboard as well")

	pflags := cmd.PersistentFlags()
	pflags.StringVar(&o.configFile, "config", "", "config file (default ./.ctxgen.yaml or $HOME/.config/ctxgen/config.yaml)")
	pflags.Bool(config.KeyDebug, false, "enable debug logging")

	cmd.AddCommand(newListCommand(), newVersionCommand())
	return cmd
}

// Execute runs the root command against os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

// init resolves configuration before any command runs.
func (o *rootOptions) init(cmd *cobra.Command, _ []string) error {
	root := cmd.Root()
	if err := config.Bind(o.v, root.Flags()); err != nil {
		return err
	}
	if err := config.Bind(o.v, root.PersistentFlags()); err != nil {
		return err
	}

	cfg, err := config.Load(o.v, o.configFile)
	if err != nil {
		return err
	}
	o.cfg = cfg

	if cfg.Debug {
		if _, err := logging.Setup(true); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
	}
	o.logger = zap.L()
	if cfg.File != "" {
		o.logger.Debug("Using config file", zap.String("file", cfg.File))
	}
	return nil
}

func (o *rootOptions) run(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	cfg := o.cfg

	cat := catalog.Default()
	if invalid := cat.Unknown(cfg.DisableCategory); len(invalid) > 0 {
		msg := fmt.Sprintf("invalid category IDs: %s. Use 'list-exclusions' to see valid IDs", strings.Join(invalid, ", "))
		return errors.NewError(errors.InvalidCategory, msg, "", nil)
	}

	custom := append([]string{}, cfg.Exclude...)
	for _, file := range cfg.ExcludeFrom {
		patterns, err := ignore.LoadPatternFile(file)
		if err != nil {
			return err
		}
		custom = append(custom, patterns...)
	}

	filter, err := ignore.Build(cat, ignore.Options{
		Custom:     custom,
		Disabled:   cfg.DisableCategory,
		NoDefaults: cfg.NoDefaults,
		Logger:     o.logger,
	})
	if err != nil {
		return err
	}
	if cfg.Gitignore {
		if err := filter.WithGitignore(root); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	var copied *bytes.Buffer
	if cfg.Copy {
		copied = &bytes.Buffer{}
		out = io.MultiWriter(out, copied)
	}

	mode := combine.ModeScan
	if cfg.DryRun {
		mode = combine.ModeDryRun
	}

	s := combine.New(filter, out, o.logger)
	if err := s.Run(root, mode); err != nil {
		return err
	}
	if skipped := s.Skipped(); skipped != nil {
		o.logger.Warn("Some entries could not be read", zap.Int("count", len(multierr.Errors(skipped))))
	}

	if copied != nil {
		if err := clipboard.WriteAll(copied.String()); err != nil {
			o.logger.Warn("Failed to copy output to clipboard", zap.Error(err))
		} else {
			o.logger.Info("Output copied to clipboard", zap.Int("bytes", copied.Len()))
		}
	}
	return nil
}
