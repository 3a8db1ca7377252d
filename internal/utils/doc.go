// Package utils holds the configuration and logging plumbing shared by every
// zotdoctor command: a Viper-backed ConfigurationLoader that layers embedded
// defaults, config files and ZOTDOCTOR_ environment variables, and a
// LoggerFactory that builds zap loggers writing diagnostics to stderr.
package utils
