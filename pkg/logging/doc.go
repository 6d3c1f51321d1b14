// Package logging provides structured logging configuration for the OCPI client.
//
// This package wraps log/slog to provide consistent logging across all
// components. It supports configurable log levels, output formats, and an
// optional log file written alongside the console.
//
// # Usage
//
//	logger, closeLog, err := logging.Open(logging.Config{
//	    Level:  logging.LevelInfo,
//	    Format: logging.FormatText,
//	    File:   "/var/log/ocpi/client.log",
//	})
//	if err != nil {
//	    return err
//	}
//	defer closeLog()
//
//	logger.Info("discovered endpoints", "version", "2.2.1")
//
// # Integration
//
// Components accept a *slog.Logger in their constructor or via an option. If no
// logger is provided, they use logging.Nop().
package logging
