// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/content-catalog/pkg/catalog"
	"github.com/mesh-intelligence/content-catalog/pkg/publish"
	"github.com/mesh-intelligence/content-catalog/pkg/store"
)

const defaultDBPath = "catalog.db"

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "content-catalog",
		Short: "Index content configuration files into a normalized catalog",
		Long: `content-catalog walks a directory tree for config<N>*.json files, parses
each one, resolves its companion markup and script files, assigns a unique
gameId, and writes a deterministic catalog.json plus a diagnostic report.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setupLogging,
	}
	rootCmd.PersistentFlags().String("config", catalog.DefaultConfigFile, "Configuration file")
	rootCmd.PersistentFlags().String("root", "", "Corpus root directory (overrides config)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log per-file progress")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress progress logging")

	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Build the catalog and write it to disk",
		Args:  cobra.NoArgs,
		RunE:  runBuild,
	}
	buildCmd.Flags().String("out", "", "Catalog output path (overrides config)")
	buildCmd.Flags().Bool("lite", false, "Omit full document content from the catalog")
	buildCmd.Flags().String("report-out", "", "Write the report to this file (.json or .yaml)")
	buildCmd.Flags().Int("workers", 0, "Concurrent file loads (default: number of CPUs)")

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Build in memory and print the diagnostic report",
		Args:  cobra.NoArgs,
		RunE:  runReport,
	}
	reportCmd.Flags().Bool("json", false, "Print the report as JSON")

	diffCmd := &cobra.Command{
		Use:   "diff",
		Short: "Compare the current corpus against a previous catalog",
		Args:  cobra.NoArgs,
		RunE:  runDiff,
	}
	diffCmd.Flags().String("previous", "", "Previously written catalog file")
	diffCmd.Flags().Bool("json", false, "Print the change set as JSON")
	_ = diffCmd.MarkFlagRequired("previous")

	validateCmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Validate a catalog file against the catalog schema",
		Args:  cobra.ExactArgs(1),
		RunE:  runValidate,
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Build and export the catalog into a SQLite index",
		Args:  cobra.NoArgs,
		RunE:  runExport,
	}
	exportCmd.Flags().String("db", "", "SQLite database path (overrides config)")

	publishCmd := &cobra.Command{
		Use:   "publish",
		Short: "Build and upload the catalog to S3-compatible storage",
		Args:  cobra.NoArgs,
		RunE:  runPublish,
	}

	rootCmd.AddCommand(buildCmd, reportCmd, diffCmd, validateCmd, exportCmd, publishCmd)
	return rootCmd
}

func setupLogging(cmd *cobra.Command, _ []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")
	switch {
	case quiet:
		catalog.SetLogger(nil)
	case verbose:
		catalog.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug})))
	default:
		catalog.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelInfo})))
	}
	return nil
}

// loadConfig resolves configuration in order: file, environment, flags.
func loadConfig(cmd *cobra.Command) (catalog.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := catalog.LoadConfig(path)
	if err != nil {
		return catalog.Config{}, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return catalog.Config{}, err
	}
	if root, _ := cmd.Flags().GetString("root"); root != "" {
		cfg.Corpus.Root = root
	}
	return cfg, nil
}

func buildCatalog(cmd *cobra.Command, cfg catalog.Config) (*catalog.Result, error) {
	info, err := os.Stat(cfg.Corpus.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to access root %q: %w", cfg.Corpus.Root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %q is not a directory", cfg.Corpus.Root)
	}
	return catalog.Build(cmd.Context(), cfg)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if out, _ := flags.GetString("out"); out != "" {
		cfg.Output.CatalogPath = out
	}
	if lite, _ := flags.GetBool("lite"); lite {
		cfg.SetIncludeContent(false)
	}
	if rp, _ := flags.GetString("report-out"); rp != "" {
		cfg.Output.ReportPath = rp
	}
	if flags.Changed("workers") {
		cfg.Build.Workers, _ = flags.GetInt("workers")
	}

	res, err := buildCatalog(cmd, cfg)
	if err != nil {
		return err
	}
	if err := catalog.WriteCatalogFile(cfg.Output.CatalogPath, res.Catalog); err != nil {
		return err
	}
	if cfg.Output.ReportPath != "" {
		if err := catalog.WriteReportFile(cfg.Output.ReportPath, cfg.Output.ReportFormat, res.Report); err != nil {
			return err
		}
	}
	catalog.PrintReport(cmd.OutOrStdout(), res.Report)
	fmt.Fprintf(cmd.OutOrStdout(), "\nwrote %d game(s) to %s\n", res.Catalog.TotalGames, cfg.Output.CatalogPath)
	return nil
}

func runReport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg.SetIncludeContent(false)
	res, err := buildCatalog(cmd, cfg)
	if err != nil {
		return err
	}
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		data, err := catalog.MarshalReport(res.Report, catalog.FormatJSON)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	catalog.PrintReport(cmd.OutOrStdout(), res.Report)
	return nil
}

func runDiff(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	prevPath, _ := cmd.Flags().GetString("previous")
	prev, err := catalog.ReadCatalog(prevPath)
	if err != nil {
		return err
	}
	cfg.SetIncludeContent(false)
	res, err := buildCatalog(cmd, cfg)
	if err != nil {
		return err
	}
	changes, err := catalog.Diff(prev, res.Catalog)
	if err != nil {
		return err
	}
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(changes)
	}
	catalog.PrintChanges(cmd.OutOrStdout(), changes)
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}
	if err := catalog.Validate(data); err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✅ %s is a valid catalog\n", args[0])
	return nil
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		dbPath = cfg.Store.SQLitePath
	}
	if dbPath == "" {
		dbPath = defaultDBPath
	}

	cfg.SetIncludeContent(false)
	res, err := buildCatalog(cmd, cfg)
	if err != nil {
		return err
	}
	s, err := store.Open(cmd.Context(), dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()
	if err := s.SaveCatalog(cmd.Context(), res.Catalog, res.Report.Fingerprint); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "exported %d game(s) to %s\n", res.Catalog.TotalGames, dbPath)
	return nil
}

func runPublish(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	pub, err := publish.New(publish.OptionsFromConfig(cfg))
	if errors.Is(err, publish.ErrPublishNotConfigured) {
		return fmt.Errorf("%w: set publish.endpoint and publish.bucket in %s", err, catalog.DefaultConfigFile)
	}
	if err != nil {
		return err
	}
	res, err := buildCatalog(cmd, cfg)
	if err != nil {
		return err
	}
	data, err := catalog.MarshalCatalog(res.Catalog)
	if err != nil {
		return err
	}
	if err := pub.Publish(cmd.Context(), data, res.Report.Fingerprint); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "published %d game(s) to %s/%s\n", res.Catalog.TotalGames, pub.Bucket(), pub.Object())
	return nil
}
