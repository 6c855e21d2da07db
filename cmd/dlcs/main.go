package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	api "delicious/internal/client/delicious"
	"delicious/internal/config"
	"delicious/internal/logger"
)

var (
	Version = "0.1.0-dev"

	flagConfig    string
	flagUsername  string
	flagPassword  string
	flagKeepCache bool

	cfg *config.Config
	log *logger.Logger

	okMark   = color.New(color.FgGreen).SprintFunc()
	failMark = color.New(color.FgRed).SprintFunc()
)

var rootCmd = &cobra.Command{
	Use:           "dlcs",
	Short:         "Manage a del.icio.us bookmark collection from the command line",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := flagConfig
		if path == "" {
			path = config.DefaultPath()
		}

		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		levelName := cfg.LogLevel
		if os.Getenv("DLCS_DEBUG") != "" {
			levelName = "debug"
		}
		level, err := logger.ParseLevel(levelName)
		if err != nil {
			return err
		}
		log = logger.New(level)
		return nil
	},
}

var sharedClient *api.Client

// newClient builds an authenticated client from flags, config or the
// credentials file, in that order. Repeated calls within one invocation
// return the same client, so every request shares one throttle.
func newClient() (*api.Client, error) {
	if sharedClient != nil {
		return sharedClient, nil
	}

	username, password := flagUsername, flagPassword
	if username == "" {
		username = cfg.Delicious.Username
		password = cfg.Delicious.Password
	}

	var auth api.AuthMethod
	if username != "" && password != "" {
		auth = api.BasicAuth{Username: username, Password: password}
	} else {
		creds, err := api.LoadCredentials()
		if err != nil {
			return nil, err
		}
		auth = api.BasicAuth{Username: creds.Username, Password: creds.Password}
	}

	client := api.NewClient(auth).WithRateLimitBackoff()

	if cfg.Throttle.Interval != "" {
		interval, err := time.ParseDuration(cfg.Throttle.Interval)
		if err != nil {
			return nil, fmt.Errorf("invalid throttle interval %q: %w", cfg.Throttle.Interval, err)
		}
		client = client.WithThrottle(api.NewThrottle(interval))
		log.Debugf("throttle interval set to %s", interval)
	}

	sharedClient = client
	return client, nil
}

// colorOutput is the stdout writer the color package knows how to drive
// on every platform.
func colorOutput() io.Writer {
	return color.Output
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "config file (default: .dlcs.yaml or the user config dir)")
	rootCmd.PersistentFlags().StringVarP(&flagUsername, "username", "u", "", "del.icio.us username")
	rootCmd.PersistentFlags().StringVarP(&flagPassword, "password", "p", "", "del.icio.us password (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&flagKeepCache, "keep-cache", "C", false, "don't refresh locally cached files even when stale")

	rootCmd.AddCommand(
		postCmd(),
		getCmd(),
		allCmd(),
		recentCmd(),
		deleteCmd(),
		updateCmd(),
		datesCmd(),
		statsCmd(),
		tagsCmd(),
		renameCmd(),
		bundlesCmd(),
		bundleCmd(),
		deleteBundleCmd(),
		feedsCmd(),
		reqCmd(),
		importCmd(),
		exportCmd(),
		clearCacheCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", failMark("error:"), err)
		os.Exit(1)
	}
}
