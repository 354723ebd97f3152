package proc

import (
	"net"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"
)

// Unknown is reported for any value that cannot be determined.
const Unknown = "unknown"

var (
	hostnameOnce sync.Once
	hostname     string

	programOnce sync.Once
	program     string

	versionOnce sync.Once
	version     string

	ipOnce sync.Once
	hostIP string
)

// Hostname returns the kernel host name.
func Hostname() string {
	hostnameOnce.Do(func() {
		h, err := os.Hostname()
		if err != nil || h == "" {
			hostname = Unknown
			return
		}
		hostname = h
	})
	return hostname
}

// ProgramName returns the base name of the running executable.
func ProgramName() string {
	programOnce.Do(func() {
		program = programFromArgs(os.Args)
	})
	return program
}

// Version returns the main module version recorded in the binary's build info.
// Binaries built from a working tree report "(devel)"; that is passed through.
func Version() string {
	versionOnce.Do(func() {
		info, ok := debug.ReadBuildInfo()
		if !ok || info.Main.Version == "" {
			version = Unknown
			return
		}
		version = info.Main.Version
	})
	return version
}

// HostIP returns the first non-loopback IPv4 address of an interface that is up.
func HostIP() string {
	ipOnce.Do(func() {
		hostIP = firstIPv4()
	})
	return hostIP
}

func programFromArgs(args []string) string {
	if len(args) == 0 || args[0] == "" {
		return Unknown
	}
	name := filepath.Base(args[0])
	name = strings.TrimSuffix(name, ".exe")
	if name == "." || name == string(filepath.Separator) || name == "" {
		return Unknown
	}
	return name
}

func firstIPv4() string {
	ifaces, err := net.Interfaces()
	if err != nil {
		return Unknown
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			if ip := ipv4Of(addr); ip != "" {
				return ip
			}
		}
	}
	return Unknown
}

func ipv4Of(addr net.Addr) string {
	var ip net.IP
	switch v := addr.(type) {
	case *net.IPNet:
		ip = v.IP
	case *net.IPAddr:
		ip = v.IP
	}
	if ip == nil || ip.IsLoopback() {
		return ""
	}
	if v4 := ip.To4(); v4 != nil {
		return v4.String()
	}
	return ""
}
