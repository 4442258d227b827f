package logging

import (
	"leadforge-worker/internal/logging/adapters"
)

// Manager owns logger initialization from configuration.
type Manager struct {
	logger *MultiLogger
}

// NewManager creates a new logging manager.
func NewManager() *Manager {
	return &Manager{logger: NewMultiLogger()}
}

// Initialize wires a stdout adapter at the configured level and format.
func (m *Manager) Initialize(level, format string) error {
	m.logger.SetLevel(ParseLogLevel(level))

	adapter := adapters.NewStdoutAdapter("stdout", adapters.StdoutConfig{
		Format:    format,
		Colorized: false,
	})

	return m.logger.AddAdapter(adapter)
}

// GetLogger returns the initialized logger.
func (m *Manager) GetLogger() Logger {
	return m.logger
}

// Close closes the logging system.
func (m *Manager) Close() error {
	if m.logger != nil {
		return m.logger.Close()
	}
	return nil
}

var globalManager *Manager

// InitializeLogging initializes the global logging system.
func InitializeLogging(level, format string) error {
	globalManager = NewManager()
	return globalManager.Initialize(level, format)
}

// GetGlobalLogger returns the global logger instance, falling back to a
// bare stdout logger if InitializeLogging was never called.
func GetGlobalLogger() Logger {
	if globalManager == nil {
		globalManager = NewManager()
		_ = globalManager.Initialize("info", "json")
	}
	return globalManager.GetLogger()
}

// CloseLogging closes the global logging system.
func CloseLogging() error {
	if globalManager != nil {
		return globalManager.Close()
	}
	return nil
}
