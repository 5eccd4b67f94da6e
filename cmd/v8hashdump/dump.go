package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mister-utka/Extracting-password-hashes-from-1C-postgres-database/internal/config"
	"github.com/mister-utka/Extracting-password-hashes-from-1C-postgres-database/internal/report"
	"github.com/mister-utka/Extracting-password-hashes-from-1C-postgres-database/internal/store"
	"github.com/mister-utka/Extracting-password-hashes-from-1C-postgres-database/pkg/v8hash"
)

func runDump(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd.Flags())
	if err != nil {
		return err
	}
	if err := setLogLevel(cfg.Logging.Level); err != nil {
		return err
	}
	if err := cfg.Validate(report.Names()); err != nil {
		return err
	}
	newWriter, err := report.Lookup(cfg.Output.Format)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	log := logrus.WithFields(logrus.Fields{
		"host":   cfg.Database.Host,
		"port":   cfg.Database.Port,
		"dbname": cfg.Database.DBName,
	})
	log.Debug("connecting")
	db, err := store.Open(ctx, cfg.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	rows, err := store.Select(ctx, db, store.Query{
		Table:       cfg.Query.Table,
		AdminColumn: cfg.Query.AdminColumn,
		NameColumn:  cfg.Query.NameColumn,
		DataColumn:  cfg.Query.DataColumn,
	})
	if err != nil {
		return err
	}
	defer rows.Close()

	out := newWriter(cmd.OutOrStdout())
	sum, err := v8hash.Dump(ctx, rows, out, v8hash.DumpOptions{Logger: log})
	if err != nil {
		return err
	}
	if err := out.Close(sum); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	log.WithFields(logrus.Fields{
		"rows":    sum.Rows,
		"decoded": sum.Decoded,
		"failed":  sum.Failed,
	}).Info("dump complete")
	return nil
}

// resolveConfig starts from the config file (or defaults) and applies every
// flag the user set explicitly.
func resolveConfig(flags *pflag.FlagSet) (*config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	strs := map[string]*string{
		"host":        &cfg.Database.Host,
		"port":        &cfg.Database.Port,
		"user":        &cfg.Database.User,
		"password":    &cfg.Database.Password,
		"dbname":      &cfg.Database.DBName,
		"sslmode":     &cfg.Database.SSLMode,
		"table":       &cfg.Query.Table,
		"data-col":    &cfg.Query.DataColumn,
		"name-col":    &cfg.Query.NameColumn,
		"admrole-col": &cfg.Query.AdminColumn,
		"format":      &cfg.Output.Format,
		"log-level":   &cfg.Logging.Level,
	}
	for name, dst := range strs {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetString(name)
		if err != nil {
			return nil, err
		}
		*dst = v
	}
	if flags.Changed("connect-timeout") {
		v, err := flags.GetInt("connect-timeout")
		if err != nil {
			return nil, err
		}
		cfg.Database.ConnectTimeout = v
	}
	return cfg, nil
}
