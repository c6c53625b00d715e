package proc

import (
	"path"
	"regexp"
	"strings"
)

// maxNameLength caps the shortened display name.
const maxNameLength = 50

var (
	appBundleRe = regexp.MustCompile(`/Applications/([^/]+)\.app/`)
	macExecRe   = regexp.MustCompile(`\.app/Contents/MacOS/`)
	execOptRe   = regexp.MustCompile(`(\s--|\s-[a-z]|$)`)
)

// FormatName derives the shortened display name from a full command line.
//
// Shortening rules:
//
//	/Applications/Foo.app/Contents/MacOS/Foo  -> "Applications / Foo"
//	/Applications/Foo.app/Contents/MacOS/Bar  -> "Applications / Foo / Bar"
//	/opt/homebrew/bin/python                  -> "homebrew / python"
//	/usr/bin/cmd, /usr/sbin/cmd               -> "usr / cmd"
//	/bin/cmd, /sbin/cmd                       -> "bin / cmd"
//	/usr/local/bin/cmd                        -> "local / cmd"
//	/some/dir/cmd                             -> "dir / cmd"
//	cmd (no path)                             -> "(no path) / cmd"
//
// The result is capped at 50 characters, preferring to keep the executable
// basename intact. An empty command yields "unknown".
func FormatName(command string) string {
	if command == "" {
		return "unknown"
	}

	// Mac application bundles are matched against the whole command line
	// because bundle paths routinely contain spaces.
	if strings.Contains(command, "/Applications/") && strings.Contains(command, ".app/") {
		if name, ok := formatAppBundleName(command); ok {
			return name
		}
	}

	fields := strings.Fields(command)
	if len(fields) == 0 {
		return "unknown"
	}
	first := fields[0]

	switch {
	case strings.HasPrefix(first, "/opt/homebrew/"):
		return "homebrew / " + path.Base(first)
	case strings.HasPrefix(first, "/usr/bin/"), strings.HasPrefix(first, "/usr/sbin/"):
		return "usr / " + path.Base(first)
	case strings.HasPrefix(first, "/bin/"), strings.HasPrefix(first, "/sbin/"):
		return "bin / " + path.Base(first)
	case strings.HasPrefix(first, "/usr/local/bin/"):
		return "local / " + path.Base(first)
	}

	dir := path.Dir(first)
	base := path.Base(first)

	// Executed without a path (node, npm, python, ...).
	if dir == "." || dir == "/" {
		return "(no path) / " + base
	}

	parent := path.Base(dir)
	return capName(parent, base)
}

// formatAppBundleName handles /Applications/<App>.app paths.
func formatAppBundleName(command string) (string, bool) {
	m := appBundleRe.FindStringSubmatch(command)
	if m == nil {
		return "", false
	}
	appName := m[1]

	// Find the last executable after .app/Contents/MacOS/.
	var execPath string
	for _, loc := range macExecRe.FindAllStringIndex(command, -1) {
		remaining := command[loc[1]:]
		if opt := execOptRe.FindStringIndex(remaining); opt != nil {
			execPath = strings.TrimSpace(remaining[:opt[0]])
		} else {
			execPath = strings.TrimSpace(remaining)
		}
	}

	if execPath == "" {
		return "Applications / " + appName, true
	}

	execName := path.Base(execPath)
	if execName != appName {
		return "Applications / " + appName + " / " + execName, true
	}
	return "Applications / " + appName, true
}

// capName joins "parent / base" and enforces maxNameLength, abbreviating the
// parent directory first and falling back to truncating the basename.
func capName(parent, base string) string {
	result := parent + " / " + base
	if len(result) <= maxNameLength {
		return result
	}
	if len(base)+5 > maxNameLength {
		return base[:maxNameLength-3] + "..."
	}
	available := maxNameLength - len(base) - 3
	return parent[:available] + " / " + base
}

// FormatType derives the process-type token from the executable basename of
// a command line ("java", "python", ...). Returns "unknown" when the command
// is empty.
func FormatType(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return "unknown"
	}
	base := path.Base(fields[0])
	if i := strings.IndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	if base == "" {
		return "unknown"
	}
	return base
}
