/*package version controls the version of the module and the run files
written for it.
*/
package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// SourceVersion is the version string representing the semantic version number
// of the source code.
const SourceVersion = "0.4.1"

var errFormat = errors.New("version string does not take the form of three " +
	"period-separated non-negative numbers")

// Parse parses a semantic version number string and returns an error if
// the string is invalid.
func Parse(s string) (major, minor, patch int, err error) {
	toks := strings.Split(strings.TrimSpace(s), ".")
	if len(toks) != 3 {
		return -1, -1, -1, fmt.Errorf("%w: '%s'", errFormat, s)
	}

	nums := [3]int{}
	for i := range toks {
		nums[i], err = strconv.Atoi(toks[i])
		if err != nil || nums[i] < 0 {
			return -1, -1, -1, fmt.Errorf("%w: '%s'", errFormat, s)
		}
	}
	return nums[0], nums[1], nums[2], nil
}

// Later returns true if s1 represents a later version of the source than
// s2. An error is returned if either is invalid.
func Later(s1, s2 string) (bool, error) {
	major1, minor1, patch1, err := Parse(s1)
	if err != nil {
		return false, err
	}
	major2, minor2, patch2, err := Parse(s2)
	if err != nil {
		return false, err
	}

	if major1 != major2 {
		return major1 > major2, nil
	} else if minor1 != minor2 {
		return minor1 > minor2, nil
	}
	return patch1 > patch2, nil
}

// Compatible returns nil if a file written for version s can be read by this
// source. The major and minor versions must agree and s can't be later than
// SourceVersion.
func Compatible(s string) error {
	major, minor, _, err := Parse(s)
	if err != nil {
		return err
	}
	smajor, sminor, _, _ := Parse(SourceVersion)
	if major != smajor || minor != sminor {
		return fmt.Errorf("version %s is not compatible with the source "+
			"version %s", s, SourceVersion)
	}
	if later, _ := Later(s, SourceVersion); later {
		return fmt.Errorf("version %s is later than the source version %s",
			s, SourceVersion)
	}
	return nil
}
