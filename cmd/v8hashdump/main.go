package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	rootCmd = &cobra.Command{
		Use:   "v8hashdump",
		Short: "Dump 1C:Enterprise user password hashes from PostgreSQL",
		Long: "v8hashdump reads the v8users table of a 1C:Enterprise PostgreSQL database, " +
			"removes the XOR mask from the data column and prints the SHA-1 hashes of each " +
			"user's password and upper-cased password.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setLogLevel(logLevel)
		},
		RunE: runDump,
	}

	configPath string
	logLevel   string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	addDumpFlags(rootCmd.Flags())

	rootCmd.AddCommand(decodeCmd, encodeCmd)
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.SetOutput(os.Stderr)
	ctx := context.Background()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logrus.Fatal(err)
	}
}

func addDumpFlags(f *pflag.FlagSet) {
	f.StringVar(&configPath, "config", "", "YAML config file; flags that are set explicitly override it")
	f.String("host", "localhost", "PostgreSQL host")
	f.String("port", "5432", "PostgreSQL port")
	f.String("user", "", "database user")
	f.String("password", "", "database password")
	f.String("dbname", "", "database name")
	f.String("sslmode", "disable", "PostgreSQL sslmode")
	f.Int("connect-timeout", 0, "connection timeout in seconds (0 waits indefinitely)")
	f.String("table", "v8users", "table holding users")
	f.String("data-col", "data", "column holding the masked DATA field")
	f.String("name-col", "name", "column holding the user name")
	f.String("admrole-col", "admrole", "column holding the admin role flag")
	f.String("format", "table", "output format (json, table, yaml)")
}

func setLogLevel(name string) error {
	level, err := logrus.ParseLevel(name)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)
	return nil
}
