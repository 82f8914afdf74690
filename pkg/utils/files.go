package utils

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Stdio is the path value that selects stdin or stdout.
const Stdio = "-"

func GetPathInfo(relPath string) (fullPath string, parentDir string, err error) {
	// Convert to absolute path (resolves ../../ and cleans the path)
	fullPath, err = filepath.Abs(relPath)
	if err != nil {
		return "", "", err
	}

	// Get the directory containing the file
	parentDir = filepath.Dir(fullPath)

	return fullPath, parentDir, nil
}

// DefaultOutputPath swaps the extension of inPath for ext. Reading from stdin
// writes to stdout.
func DefaultOutputPath(inPath, ext string) string {
	if inPath == Stdio {
		return Stdio
	}
	old := filepath.Ext(inPath)
	if old == "" || old == ext {
		return inPath + ext
	}
	return strings.TrimSuffix(inPath, old) + ext
}

// ReadSource returns the contents of path, or all of stdin for "-".
func ReadSource(path string, stdin io.Reader) (string, error) {
	if path == Stdio {
		data, err := io.ReadAll(stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

// WriteOutput writes data to path, or to stdout for "-".
func WriteOutput(path string, data string, stdout io.Writer) error {
	if path == Stdio {
		_, err := io.WriteString(stdout, data)
		return err
	}
	return os.WriteFile(path, []byte(data), 0o644)
}
