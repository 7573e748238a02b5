package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/saylorsolutions/avscipher/cmd/internal"
	"github.com/saylorsolutions/avscipher/internal/api"
	"github.com/saylorsolutions/avscipher/internal/config"
	flag "github.com/spf13/pflag"
)

var version = "dev"

func main() {
	var (
		helpFlag bool
		envFiles []string
	)
	flags := flag.NewFlagSet("avsserver", flag.ContinueOnError)
	flags.BoolVarP(&helpFlag, "help", "h", false, "Prints this usage information.")
	flags.StringSliceVarP(&envFiles, "env-file", "e", []string{".env"}, "Env files to load before reading configuration. Missing files are ignored.")
	flags.Usage = func() {
		fmt.Printf(`
avsserver (%s) serves the AVS cipher over HTTP.

USAGE:  avsserver [FLAGS]

ENDPOINTS:
    POST /encrypt, POST /decrypt, POST /cipher, GET /health, GET /info

ENVIRONMENT:
    AVS_HOST             Listen host (default 0.0.0.0)
    AVS_PORT             Listen port (default 8000)
    AVS_ALLOWED_ORIGINS  Comma separated CORS origins, "*" allows all (default http://localhost:3000)
    AVS_MAX_BODY_BYTES   Maximum request body size (default 65536)
    AVS_READ_TIMEOUT     Request read/write timeout (default 10s)

FLAGS:
%s`, version, flags.FlagUsages())
	}
	if err := flags.Parse(os.Args[1:]); err != nil {
		flags.Usage()
		internal.Fatal("Error parsing flags: %v", err)
	}
	if helpFlag {
		flags.Usage()
		return
	}

	cfg, err := config.Load(envFiles...)
	if err != nil {
		internal.Fatal("Failed to load configuration: %v", err)
	}
	internal.Echo("Configuration loaded: %s", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := api.New(cfg, nil).Run(ctx); err != nil {
		internal.Fatal("Server failed: %v", err)
	}
}
