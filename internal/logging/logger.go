// Package logging provides a small category-scoped logger for the
// mediation engine, in the spirit of the category loggers used
// elsewhere in this codebase: silent unless debug mode is enabled,
// one logger per category, lazily created.
package logging

import (
	"fmt"
	"log"
	"os"
	"sync"
)

// Category scopes a log line to a subsystem.
type Category string

const (
	CategoryPipeline   Category = "pipeline"
	CategoryPolicy     Category = "policy"
	CategoryHasher     Category = "hasher"
	CategoryClassifier Category = "classifier"
	CategoryLedger     Category = "ledger"
	CategoryVCS        Category = "vcs"
	CategoryCLI        Category = "cli"
)

var (
	mu      sync.RWMutex
	debug   bool
	loggers = make(map[Category]*log.Logger)
)

// SetDebug toggles whether Debug-level log lines are emitted at all.
// Mirrors the teacher's debug_mode gate: logging is silent by default.
func SetDebug(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	debug = enabled
}

// IsDebug reports whether debug logging is currently enabled.
func IsDebug() bool {
	mu.RLock()
	defer mu.RUnlock()
	return debug
}

func get(cat Category) *log.Logger {
	mu.RLock()
	l, ok := loggers[cat]
	mu.RUnlock()
	if ok {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[cat]; ok {
		return l
	}
	l = log.New(os.Stderr, fmt.Sprintf("[%s] ", cat), log.LstdFlags)
	loggers[cat] = l
	return l
}

// Debugf logs a debug-level line for the category, a no-op unless
// debug mode has been enabled.
func Debugf(cat Category, format string, args ...any) {
	if !IsDebug() {
		return
	}
	get(cat).Printf(format, args...)
}

// Warnf logs a warning-level line for the category. Warnings are
// always emitted; they are how swallowed hook failures surface to an
// operator without affecting control flow.
func Warnf(cat Category, format string, args ...any) {
	get(cat).Printf("WARN "+format, args...)
}

// Errorf logs an error-level line for the category.
func Errorf(cat Category, format string, args ...any) {
	get(cat).Printf("ERROR "+format, args...)
}
