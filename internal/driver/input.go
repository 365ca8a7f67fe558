package driver

import (
	"fmt"
	"io"
	"os"

	"displaystr/internal/source"
)

// StdinName is the path shown for input read from standard input.
const StdinName = "<stdin>"

// Stdin is read by LoadInput for the path "-".
var Stdin io.Reader = os.Stdin

// LoadInput adds path to fs. "-" reads standard input into a virtual file.
func LoadInput(fs *source.FileSet, path string) (source.FileID, error) {
	if path != "-" {
		id, err := fs.Load(path)
		if err != nil {
			return 0, fmt.Errorf("failed to load %s: %w", path, err)
		}
		return id, nil
	}
	data, err := io.ReadAll(Stdin)
	if err != nil {
		return 0, fmt.Errorf("failed to read stdin: %w", err)
	}
	return fs.AddVirtual(StdinName, data), nil
}
