/*
Hfcd starts the hyperfixi compile service and begins listening for new
connections.

Usage:

	hfcd [flags]
	hfcd [flags] -l [[ADDRESS]:PORT]

Once started, hfcd listens for HTTP requests and serves POST /bundles, GET
/bundles/{id}, and POST /analyze (see internal/compileserver), responding
with JSON. By default it listens on localhost:8080; this can be changed
with the --listen/-l flag or the HYPERFIXI_LISTEN_ADDRESS environment
variable.

If a JWT token secret is not given, one is automatically generated. As a
consequence, in this mode of operation all tokens are rendered invalid as
soon as the server shuts down. This is suitable for testing, but a secret
must be given via flag or environment variable for production use.

The flags are:

	-v, --version
		Give the current version of hfcd and then exit.

	-l, --listen LISTEN_ADDRESS
		Listen on the given address. Must be in BIND_ADDRESS:PORT or :PORT
		format. Defaults to the value of HYPERFIXI_LISTEN_ADDRESS, and if
		that is not given, to localhost:8080.

	-s, --secret TOKEN_SECRET
		Use the provided secret for signing JWT bearer tokens. Defaults to
		the value of HYPERFIXI_TOKEN_SECRET. If no secret is given, a
		random one is generated.

	-d, --datastore FILE
		Path to the sqlite file backing the bundle artifact cache.
		Defaults to "bundles.db" in the current directory.

Grounded on cmd/tqserver/main.go's env-var-fallback-to-flag pattern and
server.go's New(secret, dbPath)-then-ServeForever(addr, port) shape.
*/
package main

import (
	"crypto/rand"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/codetalcott/hyperfixi/internal/bundlestore"
	"github.com/codetalcott/hyperfixi/internal/compileserver"
	"github.com/codetalcott/hyperfixi/internal/version"
	"github.com/spf13/pflag"
)

const (
	EnvListen = "HYPERFIXI_LISTEN_ADDRESS"
	EnvSecret = "HYPERFIXI_TOKEN_SECRET"
)

var (
	flagVersion = pflag.BoolP("version", "v", false, "Give the current version of hfcd and then exit.")
	flagListen  = pflag.StringP("listen", "l", "", "Listen on the given address.")
	flagSecret  = pflag.StringP("secret", "s", "", "Use the given secret for signing JWT bearer tokens.")
	flagStore   = pflag.StringP("datastore", "d", "bundles.db", "Path to the sqlite file backing the bundle artifact cache.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s (hyperfixi v%s)\n", version.ServerCurrent, version.Current)
		return
	}

	if len(pflag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		os.Exit(1)
	}

	listenAddr := os.Getenv(EnvListen)
	if pflag.Lookup("listen").Changed {
		listenAddr = *flagListen
	}
	if listenAddr == "" {
		listenAddr = "localhost:8080"
	}
	if !strings.Contains(listenAddr, ":") {
		fmt.Fprintf(os.Stderr, "Listen address is not in ADDRESS:PORT or :PORT format.\nDo -h for help.\n")
		os.Exit(1)
	}

	secretStr := os.Getenv(EnvSecret)
	if pflag.Lookup("secret").Changed {
		secretStr = *flagSecret
	}
	secret, err := resolveSecret(secretStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		os.Exit(1)
	}

	store, err := bundlestore.Open(*flagStore)
	if err != nil {
		log.Fatalf("FATAL could not open bundle store %q: %s", *flagStore, err.Error())
	}
	defer store.Close()

	srv := compileserver.New(store, secret)

	log.Printf("INFO  Starting hfcd %s on %s...", version.ServerCurrent, listenAddr)
	if err := http.ListenAndServe(listenAddr, srv); err != nil {
		log.Fatalf("FATAL server exited: %s", err.Error())
	}
}

// resolveSecret pads a too-short secret up to 32 bytes (repeating it, as
// cmd/tqserver/main.go does), rejects one over 64, and generates a random
// 64-byte secret if none was given.
func resolveSecret(s string) ([]byte, error) {
	if s == "" {
		secret := make([]byte, 64)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("generate token secret: %w", err)
		}
		log.Printf("WARN  Using generated token secret; all tokens issued will become invalid at shutdown")
		return secret, nil
	}

	secret := []byte(s)
	for len(secret) < 32 {
		doubled := make([]byte, len(secret)*2)
		copy(doubled, secret)
		copy(doubled[len(secret):], secret)
		secret = doubled
	}
	if len(secret) > 64 {
		return nil, fmt.Errorf("token secret is %d bytes, but it must be <= 64 bytes", len(secret))
	}
	return secret, nil
}
