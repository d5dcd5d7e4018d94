package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/psaab/pnfcli/pkg/api"
	"github.com/psaab/pnfcli/pkg/daemon"
)

// settings is the merged view of flags, PNFCLI_* variables and the
// settings file, in that order of precedence.
type settings struct {
	ConfigFile  string
	HistoryFile string
	LogFile     string
	LogLevel    string
	MetricsAddr string
	ArchiveDir  string
	Archives    int
	Plain       bool

	APIUsers  map[string]string
	APITokens []string
}

func loadSettings(flags *pflag.FlagSet) (*settings, error) {
	v := viper.New()
	if err := v.BindPFlags(flags); err != nil {
		return nil, err
	}
	v.SetEnvPrefix("PNFCLI")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if path := v.GetString("settings"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("settings %s: %w", path, err)
		}
	}

	s := &settings{
		ConfigFile:  v.GetString("config"),
		HistoryFile: v.GetString("history"),
		LogFile:     v.GetString("log-file"),
		LogLevel:    v.GetString("log-level"),
		MetricsAddr: v.GetString("metrics-addr"),
		ArchiveDir:  v.GetString("archive-dir"),
		Archives:    v.GetInt("archives"),
		Plain:       v.GetBool("plain"),
		APIUsers:    v.GetStringMapString("api.users"),
		APITokens:   v.GetStringSlice("api.tokens"),
	}
	if s.Archives < 1 {
		return nil, fmt.Errorf("archives must be at least 1, got %d", s.Archives)
	}
	return s, nil
}

func (s *settings) daemonOptions() daemon.Options {
	opts := daemon.Options{
		ConfigFile:  s.ConfigFile,
		HistoryFile: s.HistoryFile,
		LogFile:     s.LogFile,
		LogLevel:    s.LogLevel,
		APIAddr:     s.MetricsAddr,
		ArchiveDir:  s.ArchiveDir,
		Archives:    s.Archives,
		Plain:       s.Plain,
	}
	if len(s.APIUsers) > 0 || len(s.APITokens) > 0 {
		opts.APIAuth = &api.AuthConfig{Users: s.APIUsers, Tokens: s.APITokens}
	}
	return opts
}
