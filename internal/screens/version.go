package screens

import "strings"

// ScreenAPIRemovedIn is the first Zabbix release without the screen API.
const ScreenAPIRemovedIn = "5.4"

// CheckSupport returns an error when the server no longer carries the
// screen API. Run once per session, before the first reconcile.
func CheckSupport(serverVersion string) error {
	if CompareVersions(serverVersion, ScreenAPIRemovedIn) >= 0 {
		return NewUnsupportedVersionError(serverVersion)
	}
	return nil
}

// CompareVersions compares dotted release versions ("5.2.4", "6.0")
// numerically per component. Missing components count as zero, and a
// component's trailing non-digits are ignored ("5.4.0beta1" reads as 5.4.0).
// Returns -1, 0, or 1.
func CompareVersions(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}
	for i := 0; i < n; i++ {
		var av, bv int
		if i < len(as) {
			av = leadingInt(as[i])
		}
		if i < len(bs) {
			bv = leadingInt(bs[i])
		}
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
	}
	return 0
}

func leadingInt(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
	}
	return n
}
