package validation

import (
	"fmt"
	"os"
)

// Output formats understood by the report generator.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// IsValidOutputFormat checks if the given format is supported.
func IsValidOutputFormat(format string) error {
	switch format {
	case FormatText, FormatJSON:
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s. Supported formats are 'text', 'json'", format)
	}
}

// IsValidOutputPath checks that path can be used as an output file: it must
// be set and must not name an existing directory.
func IsValidOutputPath(path string) error {
	if path == "" {
		return fmt.Errorf("output path must not be empty")
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("output path %s is a directory", path)
	}
	return nil
}

// IsValidFilePermissions checks if the given file mode is valid for files
// holding personal financial data.
func IsValidFilePermissions(mode os.FileMode) error {
	if mode&0007 != 0 {
		return fmt.Errorf("file permissions are too permissive: %s. Recommended 0600 or 0640", mode.String())
	}
	return nil
}
