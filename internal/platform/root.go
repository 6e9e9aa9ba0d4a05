package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigNames are the file names recognised as a project configuration.
var ConfigNames = []string{"restorm.yaml", "restorm.yml"}

// FindRoot recursively looks upwards for a project root indicator.
// Indicators are a restorm.yaml/restorm.yml file or a .restorm directory.
// If found, returns the absolute path to the root.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if hasFile(dir, ".restorm") {
			return dir, nil
		}
		for _, name := range ConfigNames {
			if hasFile(dir, name) {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("root not found")
}

func hasFile(dir, name string) bool {
	path := filepath.Join(dir, name)
	_, err := os.Stat(path)
	return err == nil
}
