package common

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/webbcam/tiflash/cli/arguments"
	"github.com/webbcam/tiflash/cli/feedback"
	"github.com/webbcam/tiflash/cli/globals"
	"github.com/webbcam/tiflash/config"
	"github.com/webbcam/tiflash/session"
)

// Settings merges the session flags with the user configuration file.
// Explicit flags always win over configuration values.
func Settings(cmd *cobra.Command, flags *arguments.SessionFlags, attach bool) *session.Settings {
	settings := &session.Settings{
		CCS:        flags.CCS,
		CCXML:      flags.CCXML,
		Serno:      flags.Serno,
		Devicetype: flags.Devicetype,
		Connection: flags.Connection,
		Chip:       flags.Chip,
		Timeout:    flags.Timeout,
		Fresh:      flags.Fresh,
		Attach:     attach,
		Debug:      globals.Verbose,
	}

	cfgPath := config.Find(globals.ConfigFile)
	if cfgPath == "" {
		if globals.ConfigFile != "" {
			feedback.Fatal("Config file not found: "+globals.ConfigFile, feedback.ErrNoConfigFile)
		}
		return settings
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		feedback.Fatal("Can't load config file: "+err.Error(), feedback.ErrNoConfigFile)
	}
	logrus.Debugf("loaded config file %s", cfgPath)

	if settings.CCS == "" {
		settings.CCS = cfg.CCS
	}
	if settings.Serno == "" && settings.Devicetype == "" && settings.CCXML == "" {
		settings.Serno = cfg.Serno
		settings.Devicetype = cfg.Devicetype
	}
	if settings.Connection == "" {
		settings.Connection = cfg.Connection
	}
	if cfg.Timeout > 0 && !cmd.Flags().Changed("timeout") {
		settings.Timeout = cfg.Timeout
	}
	return settings
}

// NewSession assembles the target session for a command, exiting through
// feedback on failure.
func NewSession(cmd *cobra.Command, flags *arguments.SessionFlags, attach bool) *session.Session {
	s, err := session.New(Settings(cmd, flags, attach))
	if err != nil {
		feedback.FatalError(err, feedback.ErrGeneric)
	}
	logrus.Debugf("session: ccs=%s ccxml=%s chip=%s", s.CCSPath, s.CCXMLPath, s.Chip)
	return s
}
