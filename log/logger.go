package log

import logrus "github.com/sirupsen/logrus"

// Logger is the diagnostic sink accepted by library packages.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

type nop struct{}

func (nop) Debugf(string, ...interface{}) {}
func (nop) Infof(string, ...interface{})  {}
func (nop) Warnf(string, ...interface{})  {}

// Nop discards everything. It is the default for library callers.
var Nop Logger = nop{}

type global struct{}

func (global) Debugf(format string, args ...interface{}) { Debugf(format, args...) }
func (global) Infof(format string, args ...interface{})  { Infof(format, args...) }
func (global) Warnf(format string, args ...interface{})  { Warnf(format, args...) }

// Global routes to the package level functions configured by Setup.
func Global() Logger {
	return global{}
}

// Entry wraps a logrus entry, e.g. one carrying fields, as a Logger.
func Entry(e *logrus.Entry) Logger {
	return e
}
