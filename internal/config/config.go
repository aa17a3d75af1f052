// Package config parses cardhub's command-line flags and environment
// variables into a Config, the way partybox's cobra/viper/pflag wiring did.
package config

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the server's runtime configuration.
type Config struct {
	Bind    string
	Port    int
	Prefix  string
	Profile bool
	TLSCert string
	TLSKey  string
	Verbose bool
	Version bool
}

// Validate checks field combinations that flag parsing alone can't enforce.
func (c *Config) Validate() error {
	if (c.TLSCert == "") != (c.TLSKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.Port)
	}
	return nil
}

// Scheme reports "https" when TLS is configured, else "http".
func (c *Config) Scheme() string {
	if c.TLSCert != "" && c.TLSKey != "" {
		return "https"
	}
	return "http"
}

// ReleaseVersion is the version string reported by --version and /version.
const ReleaseVersion = "0.1.0"

// NewCommand builds the root cobra command. serve is invoked after flag
// parsing and validation succeed, and owns the process's main loop.
func NewCommand(cfg *Config, serve func(ctx context.Context, cfg *Config) error) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("CARDHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "cardhub",
		Short:         "A multiplayer card-game server driven by pluggable rule modules.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       ReleaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.Bind, "bind", "b", "0.0.0.0", "address to bind to (env: CARDHUB_BIND)")
	fs.IntVarP(&cfg.Port, "port", "p", 8080, "port to listen on (env: CARDHUB_PORT)")
	fs.StringVar(&cfg.Prefix, "prefix", "", "path to prepend to all URLs, for use behind a reverse proxy (env: CARDHUB_PREFIX)")
	fs.BoolVar(&cfg.Profile, "profile", false, "register net/http/pprof handlers (env: CARDHUB_PROFILE)")
	fs.StringVar(&cfg.TLSCert, "tls-cert", "", "path to tls certificate (env: CARDHUB_TLS_CERT)")
	fs.StringVar(&cfg.TLSKey, "tls-key", "", "path to tls keyfile (env: CARDHUB_TLS_KEY)")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "display additional output (env: CARDHUB_VERBOSE)")
	fs.BoolVarP(&cfg.Version, "version", "V", false, "display version and exit (env: CARDHUB_VERSION)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("cardhub v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
