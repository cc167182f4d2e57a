package version

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

type semver [3]int

// parseSemver reads "[v]major.minor[.patch][-pre]". Pre-release and build
// suffixes are ignored.
func parseSemver(raw string) (semver, error) {
	var v semver

	core, _, _ := strings.Cut(strings.TrimPrefix(strings.TrimSpace(raw), "v"), "-")
	core, _, _ = strings.Cut(core, "+")

	parts := strings.Split(core, ".")
	if len(parts) < 2 || len(parts) > 3 {
		return v, fmt.Errorf("invalid version %q", raw)
	}

	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return v, fmt.Errorf("invalid version %q", raw)
		}
		v[i] = n
	}

	return v, nil
}

// Compare returns 1 if a is newer than b, -1 if older and 0 if equal.
func Compare(a, b string) (int, error) {
	av, err := parseSemver(a)
	if err != nil {
		return 0, err
	}

	bv, err := parseSemver(b)
	if err != nil {
		return 0, err
	}

	for i := range av {
		if c := cmp.Compare(av[i], bv[i]); c != 0 {
			return c, nil
		}
	}
	return 0, nil
}
