package config

const AppName = "udp-probe"

// Overridden at build time:
// go build -ldflags "-X github.com/SyntropyNet/udp-probe/internal/config.version=1.2.3"
var (
	version    = "0.0.0"
	subversion = "local"
)

func GetFullVersion() string {
	if subversion != "" {
		return version + "-" + subversion
	}
	return version
}
