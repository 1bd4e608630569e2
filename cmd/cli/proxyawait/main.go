package main

import (
	"fmt"
	"os"

	flags "github.com/jessevdk/go-flags"

	"github.com/core-tools/hsu-proxy-await/pkg/await"
	"github.com/core-tools/hsu-proxy-await/pkg/duration"
	"github.com/core-tools/hsu-proxy-await/pkg/logging"
)

type flagOptions struct {
	Port         int    `short:"p" long:"port" description:"Port of the local proxy admin server (default: 4191)"`
	Backoff      string `short:"b" long:"backoff" description:"Time to wait after a failed readiness check (default: 1s)"`
	Timeout      string `short:"t" long:"timeout" description:"Fail when the timeout elapses before the proxy becomes ready"`
	TimeoutFatal string `long:"timeout-fatal" choice:"true" choice:"false" description:"Whether a readiness timeout prevents CMD from running (default: true)"`
	Shutdown     bool   `short:"S" long:"shutdown" description:"Fork CMD and trigger proxy shutdown on completion"`
	Verbose      bool   `short:"v" long:"verbose" env:"PROXY_AWAIT_VERBOSE" description:"Print a message when the readiness check is disabled"`
	Config       string `short:"c" long:"config" description:"Path to a YAML configuration file"`

	Positional struct {
		Command string   `positional-arg-name:"CMD" description:"The command to run after the proxy is ready"`
		Args    []string `positional-arg-name:"ARGS" description:"Arguments to pass to CMD if specified"`
	} `positional-args:"yes"`
}

func main() {
	var opts flagOptions
	var argv []string = os.Args[1:]
	// PassAfterNonOption keeps CMD's own flags out of our parser.
	var parser = flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash|flags.PassAfterNonOption)
	var err error
	_, err = parser.ParseArgs(argv)
	if err != nil {
		if flags.WroteHelp(err) {
			fmt.Println(err)
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Command line flags parsing failed: %v\n", err)
		os.Exit(1)
	}

	cfg, err := assembleConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	zapLogger := logging.NewZapLogger(cfg.Verbose)
	logger := logging.NewLogger("proxy-await: ", logging.LogFuncs{
		Debugf: zapLogger.Debugf,
		Infof:  zapLogger.Infof,
		Warnf:  zapLogger.Warnf,
		Errorf: zapLogger.Errorf,
	})

	code := await.Run(cfg, logger)
	zapLogger.Sync()
	os.Exit(code)
}

// assembleConfig layers defaults, the optional configuration file and
// the command line, in increasing precedence, then validates the result.
func assembleConfig(opts flagOptions) (await.Config, error) {
	cfg := await.DefaultConfig()

	if opts.Config != "" {
		fileConfig, err := await.LoadConfigFromFile(opts.Config)
		if err != nil {
			return cfg, err
		}
		fileConfig.Apply(&cfg)
	}

	if opts.Port != 0 {
		cfg.Port = opts.Port
	}
	if opts.Backoff != "" {
		backoff, err := duration.Parse(opts.Backoff)
		if err != nil {
			return cfg, err
		}
		cfg.Backoff = backoff
	}
	if opts.Timeout != "" {
		timeout, err := duration.Parse(opts.Timeout)
		if err != nil {
			return cfg, err
		}
		cfg.Timeout = timeout
	}
	if opts.TimeoutFatal != "" {
		cfg.TimeoutFatal = opts.TimeoutFatal == "true"
	}
	if opts.Shutdown {
		cfg.Shutdown = true
	}
	if opts.Verbose {
		cfg.Verbose = true
	}
	if opts.Positional.Command != "" {
		cfg.Command = opts.Positional.Command
		cfg.Args = opts.Positional.Args
	}

	if err := await.ValidateConfig(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
