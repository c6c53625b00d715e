package proc

import "strings"

// systemUsers are account names that mark a process as a system process.
// Matched exactly against the owning user.
var systemUsers = map[string]struct{}{
	"root":    {},
	"daemon":  {},
	"_":       {},
	"nobody":  {},
	"www":     {},
	"mail":    {},
	"sshd":    {},
	"postfix": {},
}

// systemNameMarkers are substrings of well-known system process names.
// Matched case-insensitively against the shortened display name.
var systemNameMarkers = []string{
	"kernel_task", "launchd", "windowserver", "loginwindow",
	"usereventagent", "syspolicyd", "trustd", "kextd",
	"fseventsd", "mds", "mdworker", "mdworker_shared",
	"cloudd", "com.apple", "com.apple.webkit", "vtdecoderxpcservice",
	"hidd", "distnoted", "coreaudiod", "bluetoothd", "airportd",
	"configd", "networksetupd", "networkd", "powerd", "thermalmonitord",
	"diskarbitrationd", "fsck", "fsck_hfs", "fsck_apfs", "mount",
	"kextstat", "kextload", "kextunload",
}

// systemPathPrefixes mark commands launched from system locations.
var systemPathPrefixes = []string{"/system/", "/usr/libexec/"}

// Classifier decides whether a record belongs to the operating system
// rather than to a user. The heuristic is deliberately conservative: when
// nothing matches, the process is treated as a user process.
type Classifier struct{}

// IsSystem reports whether the record looks like a system process.
func (Classifier) IsSystem(r Record) bool {
	if r.PID == 1 {
		return true
	}

	if _, ok := systemUsers[r.User]; ok {
		return true
	}

	name := strings.ToLower(r.Name)
	command := strings.ToLower(r.Command)

	for _, marker := range systemNameMarkers {
		if strings.Contains(name, marker) {
			return true
		}
	}

	for _, prefix := range systemPathPrefixes {
		if strings.HasPrefix(command, prefix) {
			return true
		}
	}

	// Children of init (PPID 1) are not automatically system processes:
	// plenty of user daemons and login-session processes are reparented
	// to init, so the classification falls through to "user".
	return false
}
