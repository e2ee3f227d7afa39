package models

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// versionPrefix matches the leading MAJOR.MINOR.PATCH of a raw version string.
// Anything after the third component (pre-release tags, build metadata) is ignored.
var versionPrefix = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)`)

// Version is an ordered sequence of numeric components.
// An empty Version means the raw string could not be parsed.
type Version []int

// Ordering is the result of comparing two versions.
type Ordering int

const (
	Less    Ordering = -1
	Equal   Ordering = 0
	Greater Ordering = 1
)

func ParseVersion(raw string) Version {
	m := versionPrefix.FindStringSubmatch(raw)
	if m == nil {
		return Version{}
	}
	v := make(Version, 0, 3)
	for _, part := range m[1:] {
		n, err := strconv.Atoi(part)
		if errors.Is(err, strconv.ErrRange) {
			// still orders after every representable component
			n = math.MaxInt
		} else if err != nil {
			return Version{}
		}
		v = append(v, n)
	}
	return v
}

func (v Version) IsEmpty() bool {
	return len(v) == 0
}

// Compare orders a and b lexicographically by component.
// A shorter version that is a prefix of a longer one sorts first, so the empty
// version is less than every parsed version.
func Compare(a, b Version) Ordering {
	for i := 0; i < len(a) && i < len(b); i++ {
		switch {
		case a[i] < b[i]:
			return Less
		case a[i] > b[i]:
			return Greater
		}
	}
	switch {
	case len(a) < len(b):
		return Less
	case len(a) > len(b):
		return Greater
	}
	return Equal
}

func (v Version) Less(other Version) bool {
	return Compare(v, other) == Less
}

func (v Version) String() string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}
