package utils

import (
	"os"
	"path/filepath"
	"runtime"
)

// GetProjectRootDir returns the absolute path to the CDK app root, the
// directory holding go.mod and cdk.json.
//
// Resolution order:
//  1. $PROJECT_ROOT env-var (explicit override)
//  2. Walk up from the directory of this source file until we find go.mod
//
// Panics if neither succeeds.
func GetProjectRootDir() string {
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return filepath.Clean(root)
	}

	_, thisFile, _, ok := runtime.Caller(0) // nolint: dogsled
	if !ok {
		panic("GetProjectRootDir: runtime.Caller failed (cannot determine source path)")
	}
	if root := climb(filepath.Dir(thisFile), "go.mod"); root != "" {
		return root
	}

	panic(`GetProjectRootDir: project root not found.
Set $PROJECT_ROOT or ensure go.mod exists somewhere above your source tree`)
}

// ProjectPath joins elem onto the project root.
func ProjectPath(elem ...string) string {
	return filepath.Join(append([]string{GetProjectRootDir()}, elem...)...)
}

func climb(dir string, marker string) string {
	for {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir { // reached filesystem root
			return ""
		}
		dir = parent
	}
}
