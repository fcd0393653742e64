package build

import (
	"fmt"
)

const (
	// Gzip is the default compressor used for rolled log files.
	Gzip = "gzip"

	// Zstd is an alternative compressor for rolled log files.
	Zstd = "zstd"

	defaultLogCompressor = Gzip

	// DefaultMaxLogFiles is the default maximum number of log files to
	// keep.
	DefaultMaxLogFiles = 3

	// DefaultMaxLogFileSize is the default maximum log file size in MB.
	DefaultMaxLogFileSize = 10
)

// logCompressors maps the identifier for each supported compression algorithm
// to the extension used for the compressed log files.
var logCompressors = map[string]string{
	Gzip: "gz",
	Zstd: "zst",
}

// SupportedLogCompressor returns whether or not logCompressor is a supported
// compression algorithm for log files.
func SupportedLogCompressor(logCompressor string) bool {
	_, ok := logCompressors[logCompressor]

	return ok
}

// FileLoggerConfig holds the options of the optional log file.
type FileLoggerConfig struct {
	// Compressor is the algorithm used to compress rolled log files.
	Compressor string

	// MaxLogFiles is the number of rolled files to keep, 0 disables
	// rotation.
	MaxLogFiles int

	// MaxLogFileSize is the size in MB at which the file is rolled.
	MaxLogFileSize int
}

// DefaultFileLoggerConfig returns the default log file options.
func DefaultFileLoggerConfig() *FileLoggerConfig {
	return &FileLoggerConfig{
		Compressor:     defaultLogCompressor,
		MaxLogFiles:    DefaultMaxLogFiles,
		MaxLogFileSize: DefaultMaxLogFileSize,
	}
}

// Validate validates the FileLoggerConfig values.
func (c *FileLoggerConfig) Validate() error {
	if !SupportedLogCompressor(c.Compressor) {
		return fmt.Errorf("invalid log compressor: %v", c.Compressor)
	}

	if c.MaxLogFiles < 0 {
		return fmt.Errorf("invalid number of log files: %d",
			c.MaxLogFiles)
	}

	if c.MaxLogFileSize <= 0 {
		return fmt.Errorf("invalid log file size: %d MB",
			c.MaxLogFileSize)
	}

	return nil
}
