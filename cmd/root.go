package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hiraeth92/BMC-API-Reliability-Test/internal/banner"
	"github.com/hiraeth92/BMC-API-Reliability-Test/internal/cli"
	"github.com/hiraeth92/BMC-API-Reliability-Test/internal/logging"
	"github.com/hiraeth92/BMC-API-Reliability-Test/internal/runner"
	"github.com/hiraeth92/BMC-API-Reliability-Test/internal/target"
)

var (
	cfgFile string

	// CLI Flags
	targetURL   string
	requests    int
	concurrency int
	timeoutMs   int
	thresholdMs float64
	acceptMin   int
	acceptMax   int
	logFile     string
)

var rootCmd = &cobra.Command{
	Use:   "relcheck",
	Short: "relcheck - HTTP reliability and performance probe",
	Long: `
relcheck fires a fixed batch of GET requests at a single URL through a
bounded worker pool, then verdicts two acceptance criteria on the sample:

1. Reliability : zero failed requests
2. Performance : average latency under the threshold

The statistical report (mean, stddev, P95) is appended to a text log.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// No target means nothing to probe; show usage instead
		if viper.GetString("url") == "" {
			return cmd.Help()
		}

		sink, err := logging.NewSink(viper.GetString("log-file"))
		if err != nil {
			return err
		}
		defer sink.Close()

		cfg := runner.Config{
			TargetURL:   viper.GetString("url"),
			Requests:    viper.GetInt("requests"),
			Concurrency: viper.GetInt("concurrency"),
			TimeoutMs:   viper.GetInt("timeout-ms"),
			ThresholdMs: viper.GetFloat64("threshold-ms"),
			AcceptMin:   viper.GetInt("accept-min"),
			AcceptMax:   viper.GetInt("accept-max"),
			LogFile:     sink.Path(),
		}

		if code := cli.Start(cfg, sink); code != 0 {
			sink.Close()
			os.Exit(code)
		}
		return nil
	},
}

func Execute() {
	// Custom Help with Banner
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		fmt.Println(banner.GetString())
		cmd.Usage()
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(targetCmd)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.relcheck.yaml)")

	rootCmd.Flags().StringVarP(&targetURL, "url", "u", "", "Target URL to probe")
	rootCmd.Flags().IntVarP(&requests, "requests", "n", runner.DefaultRequests, "Number of GET requests in the batch")
	rootCmd.Flags().IntVarP(&concurrency, "concurrency", "c", runner.DefaultConcurrency, "Worker pool size")
	rootCmd.Flags().IntVar(&timeoutMs, "timeout-ms", runner.DefaultTimeoutMs, "Per-request timeout in milliseconds")
	rootCmd.Flags().Float64Var(&thresholdMs, "threshold-ms", runner.DefaultThresholdMs, "Average latency threshold in milliseconds")
	rootCmd.Flags().IntVar(&acceptMin, "accept-min", 200, "Lowest acceptable HTTP status")
	rootCmd.Flags().IntVar(&acceptMax, "accept-max", 299, "Highest acceptable HTTP status")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "Report file (default is reliability_errors.log in the temp dir)")

	for _, key := range []string{
		"url", "requests", "concurrency", "timeout-ms",
		"threshold-ms", "accept-min", "accept-max", "log-file",
	} {
		viper.BindPFlag(key, rootCmd.Flags().Lookup(key))
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigType("yaml")
			viper.SetConfigName(".relcheck")
		}
	}
	viper.SetEnvPrefix("RELCHECK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	viper.ReadInConfig()
}

// --- Target Subcommand ---
var targetCmd = &cobra.Command{
	Use:   "target",
	Short: "Run the built-in sample target server",
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetInt("port")
		return target.Start(target.ServerConfig{Port: port})
	},
}

func init() {
	targetCmd.Flags().IntP("port", "p", 8080, "Port to serve the sample target on")
}
