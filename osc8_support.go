package mdlite

import (
	"os"
	"strconv"
	"strings"
)

const (
	osc8Start = "\x1b]8;;"
	osc8Close = "\x1b\\"
	osc8End   = osc8Start + osc8Close
)

// osc8Programs lists TERM_PROGRAM values of terminals known to handle OSC 8.
var osc8Programs = map[string]bool{
	"iTerm.app": true,
	"WezTerm":   true,
	"vscode":    true,
	"ghostty":   true,
}

// DetectOSC8Support returns true if the current environment likely supports
// OSC 8 hyperlinks. OSC8=0 forces it off, OSC8=1 forces it on.
func DetectOSC8Support() bool {
	return detectOSC8(os.Getenv)
}

func detectOSC8(getenv func(string) string) bool {
	switch getenv("OSC8") {
	case "0":
		return false
	case "1":
		return true
	}
	if getenv("DOMTERM") != "" || getenv("WT_SESSION") != "" {
		return true
	}
	if osc8Programs[getenv("TERM_PROGRAM")] {
		return true
	}
	if strings.Contains(strings.ToLower(getenv("TERM")), "kitty") {
		return true
	}
	if n, err := strconv.Atoi(getenv("VTE_VERSION")); err == nil && n >= 5000 {
		return true
	}
	return false
}

func appendOSC8Open(dst []byte, href string) []byte {
	dst = append(dst, osc8Start...)
	dst = append(dst, href...)
	return append(dst, osc8Close...)
}
