package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/coursehub/internal/flagx"
)

// ValuedFlags lists every client flag that takes a value.
var ValuedFlags = []string{"-a", "-t", "-k", "-c", "-config"}

// parseFlags overlays -a, -t and -k. Other arguments (the -c config flag,
// positional commands) are filtered out first.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-k"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the coursehub API")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.TokenFile, "k", cfg.TokenFile, "session token file")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
