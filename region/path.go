package region

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/linearfmt/linear/errs"
)

// FileExtension is the extension of Linear region files.
const FileExtension = ".linear"

// FileName returns the region file name for region coordinates (x, z).
func FileName(x, z int) string {
	return "r." + strconv.Itoa(x) + "." + strconv.Itoa(z) + FileExtension
}

// ParseFileName extracts the region coordinates from a path like
// world/region/r.<x>.<z>.linear.
//
// The second and third dot-separated components of the base name are parsed as
// signed integers; the prefix and extension are not checked.
//
// Returns:
//   - int, int: Region coordinates
//   - error: ErrInvalidRegionPath if the coordinates cannot be parsed
func ParseFileName(path string) (x, z int, err error) {
	base := filepath.Base(path)
	parts := strings.Split(base, ".")
	if len(parts) < 3 {
		return 0, 0, fmt.Errorf("%w: %q", errs.ErrInvalidRegionPath, base)
	}

	x, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q: x: %w", errs.ErrInvalidRegionPath, base, err)
	}

	z, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q: z: %w", errs.ErrInvalidRegionPath, base, err)
	}

	return x, z, nil
}
