/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package main

import (
	"os"

	"github.com/botobag/linkboard/graphql"
	"github.com/botobag/linkboard/internal/config"
	"github.com/botobag/linkboard/internal/logging"
	"github.com/botobag/linkboard/mutation"
	"github.com/botobag/linkboard/resolver"
	"github.com/botobag/linkboard/schema"
	"github.com/botobag/linkboard/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// globalOptions are shared by all subcommands. They are populated by the root command before a
// subcommand runs.
type globalOptions struct {
	configPath string
	logLevel   string
	seedPath   string
	addr       string

	// loggerOptions are passed to logging.New.
	loggerOptions []zap.Option

	config config.Config
	logger *zap.Logger
}

func newRootCommand(loggerOptions ...zap.Option) *cobra.Command {
	opts := &globalOptions{
		loggerOptions: loggerOptions,
	}

	cmd := &cobra.Command{
		Use:          "linkboard",
		Short:        "A link board with users, links and threaded comments",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path of a YAML config file")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error (overrides log.level)")
	flags.StringVar(&opts.seedPath, "seed", "", "path of a JSON seed file (overrides seed; default is the built-in seed)")

	cmd.AddCommand(
		newServeCommand(opts),
		newQueryCommand(opts),
	)

	return cmd
}

// setup loads the config, applies the flags set on the command line over it and builds the logger.
func (opts *globalOptions) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	if flags.Changed("seed") {
		cfg.Seed = opts.seedPath
	}
	if flags.Lookup("addr") != nil && flags.Changed("addr") {
		cfg.Server.Addr = opts.addr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	opts.config = cfg

	logger, err := logging.New(cfg.Log, opts.loggerOptions...)
	if err != nil {
		return err
	}
	opts.logger = logger

	return nil
}

// newStore populates a store from the configured seed. Integrity problems in the seed are logged
// but don't prevent the store from being used.
func (opts *globalOptions) newStore() (*store.Store, error) {
	seed := store.DefaultSeed()
	if len(opts.config.Seed) > 0 {
		f, err := os.Open(opts.config.Seed)
		if err != nil {
			return nil, graphql.NewError("cannot open seed file", graphql.Op("linkboard.newStore"), err)
		}
		defer f.Close()

		seed, err = store.LoadSeed(f)
		if err != nil {
			return nil, graphql.WrapErrorf(err, "cannot load seed file %s", opts.config.Seed)
		}
	}

	s, err := store.New(seed)
	if err != nil {
		return nil, err
	}

	for _, problem := range s.CheckIntegrity().Errors {
		opts.logger.Warn("seed integrity",
			zap.String("problem", problem.Message),
			zap.Stringer("kind", problem.Kind))
	}

	opts.logger.Info("store populated",
		zap.Int("users", len(s.Users())),
		zap.Int("links", s.NumLinks()),
		zap.Int("comments", len(s.Comments())))

	return s, nil
}

// newSchema builds the store and the schema resolving against it.
func (opts *globalOptions) newSchema() (*graphql.Schema, error) {
	s, err := opts.newStore()
	if err != nil {
		return nil, err
	}
	return schema.New(resolver.New(s, opts.logger), mutation.NewExecutor(s, opts.logger))
}
