// Package logger provides structured logging for the SDK on top of zerolog.
//
//	log := logger.New(&logger.Config{Level: "debug", Format: "json"}, "agrovia")
//	log.WithComponent("httpclient").Info("request sent", logger.Fields("status", 200))
//
// The request engine logs through this package when its LogConfig enables
// it; logging is observational and never changes client behavior.
package logger
