package util

import (
	"fmt"
	"strconv"
	"strings"
)

type Semver struct {
	Major      int
	Minor      int
	Patch      int
	Beta       bool
	Alpha      bool
	Prerelease int
}

// Parse reads MAJOR.MINOR.PATCH with an optional -alpha.N or -beta.N
// suffix.
func Parse(semver string) (Semver, error) {
	s := Semver{}
	version, pre, hasPre := strings.Cut(strings.TrimSpace(semver), "-")

	split := strings.Split(version, ".")
	if len(split) != 3 {
		return Semver{}, fmt.Errorf("invalid version: %q", semver)
	}
	nums := make([]int, 3)
	for i, part := range split {
		n, err := strconv.Atoi(part)
		if err != nil {
			return Semver{}, fmt.Errorf("invalid version: %q", semver)
		}
		nums[i] = n
	}
	s.Major, s.Minor, s.Patch = nums[0], nums[1], nums[2]

	if hasPre {
		kind, num, ok := strings.Cut(pre, ".")
		if !ok {
			return Semver{}, fmt.Errorf("invalid prerelease: %s", pre)
		}
		switch kind {
		case "beta":
			s.Beta = true
		case "alpha":
			s.Alpha = true
		default:
			return Semver{}, fmt.Errorf("invalid prerelease type: %s", kind)
		}
		n, err := strconv.Atoi(num)
		if err != nil {
			return Semver{}, fmt.Errorf("invalid prerelease: %s", pre)
		}
		s.Prerelease = n
	}

	return s, nil
}

func (s Semver) String() string {
	str := strconv.Itoa(s.Major) + "." + strconv.Itoa(s.Minor) + "." + strconv.Itoa(s.Patch)
	if s.Beta {
		str += "-beta." + strconv.Itoa(s.Prerelease)
	} else if s.Alpha {
		str += "-alpha." + strconv.Itoa(s.Prerelease)
	}
	return str
}

// stage orders alpha < beta < release.
func (s Semver) stage() int {
	switch {
	case s.Alpha:
		return 0
	case s.Beta:
		return 1
	}
	return 2
}

// Compare returns -1, 0 or 1 as s is older than, equal to or newer than o.
func (s Semver) Compare(o Semver) int {
	a := []int{s.Major, s.Minor, s.Patch, s.stage(), s.Prerelease}
	b := []int{o.Major, o.Minor, o.Patch, o.stage(), o.Prerelease}
	for i := range a {
		if a[i] < b[i] {
			return -1
		} else if a[i] > b[i] {
			return 1
		}
	}
	return 0
}

// Satisfies checks s against a single constraint: an exact version or one
// prefixed with ^, ~, >, >=, < or <=. An empty constraint matches anything.
func (s Semver) Satisfies(cmp string) (bool, error) {
	cmp = strings.TrimSpace(cmp)
	if cmp == "" || cmp == "*" {
		return true, nil
	}

	op := ""
	for _, prefix := range []string{">=", "<=", "^", "~", ">", "<", "="} {
		if strings.HasPrefix(cmp, prefix) {
			op = prefix
			cmp = cmp[len(prefix):]
			break
		}
	}

	c, err := Parse(cmp)
	if err != nil {
		return false, err
	}

	order := s.Compare(c)
	switch op {
	case "^":
		return order >= 0 && s.Major == c.Major, nil
	case "~":
		return order >= 0 && s.Major == c.Major && s.Minor == c.Minor, nil
	case ">":
		return order > 0, nil
	case ">=":
		return order >= 0, nil
	case "<":
		return order < 0, nil
	case "<=":
		return order <= 0, nil
	}
	return order == 0, nil
}
