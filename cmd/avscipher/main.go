package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/saylorsolutions/avscipher/cmd/internal"
	flag "github.com/spf13/pflag"
)

var version = "dev"

func main() {
	opts, flags, err := parseArgs(os.Args[1:])
	if err != nil {
		flags.Usage()
		internal.Fatal("Error parsing flags: %v", err)
	}
	if opts.help || (len(os.Args) == 1) {
		flags.Usage()
		return
	}
	if opts.interactive {
		if err := runMenu(); err != nil {
			internal.Fatal("Menu failed: %v", err)
		}
		return
	}

	cmd := &command{
		opts:   opts,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		prompt: internal.PromptPassword,
	}
	if err := cmd.run(); err != nil {
		if errors.Is(err, errUsage) {
			flags.Usage()
		}
		internal.Fatal("%v", err)
	}
}

func parseArgs(args []string) (*options, *flag.FlagSet, error) {
	opts := new(options)
	flags := flag.NewFlagSet("avscipher", flag.ContinueOnError)
	flags.BoolVarP(&opts.help, "help", "h", false, "Prints this usage information.")
	flags.StringVarP(&opts.password, "password", "p", "", "Passphrase to use. You'll be prompted without echo if this isn't given.")
	flags.IntVarP(&opts.rounds, "rounds", "r", 3, "Number of additive rounds, must be at least 1.")
	flags.BoolVar(&opts.usePBR, "pbr", true, "Apply the Polyalphabetic Block-Reverse pass. Use --pbr=false to disable it.")
	flags.IntVarP(&opts.blockSize, "block-size", "b", 8, "PBR block size, must be at least 1.")
	flags.BoolVar(&opts.legacy, "legacy", false, "Use the legacy variant of the scheme, which appends a fixed suffix to the passphrase and doesn't use PBR.")
	flags.StringVarP(&opts.settings, "settings", "S", "", "Settings code printed during encryption. Overrides --rounds, --pbr, --block-size, and --legacy.")
	flags.BoolVarP(&opts.stream, "stream", "s", false, "Stream stdin to stdout through the round cipher. Requires --pbr=false.")
	flags.IntVarP(&opts.generate, "generate", "g", 0, "Print a random passphrase with the given length and exit.")
	flags.BoolVarP(&opts.interactive, "interactive", "i", false, "Start the interactive menu.")
	flags.Usage = func() {
		fmt.Printf(`
avscipher (%s) screens short messages with a passphrase, producing base64 tokens that are safe to copy and paste.

USAGE:  avscipher [FLAGS] encrypt|decrypt [TEXT]

ARGS:
    encrypt|decrypt selects the operation, "enc", "dec", "e", and "d" are also accepted.
    TEXT is the message to encrypt, or the token to decrypt. It's read from stdin when omitted.

FLAGS:
%s
SECURITY:
    This is obfuscation, not encryption!
The scheme has no authentication and is easily reversed by anyone with a sample of plain text.
The same passphrase, rounds, PBR, and block size settings are required to decrypt a token.
With PBR enabled, trailing '~' characters are removed from decrypted messages.
`, version, flags.FlagUsages())
	}

	if err := flags.Parse(args); err != nil {
		return nil, flags, err
	}
	opts.args = flags.Args()
	opts.settingsConflict = flags.Changed("rounds") || flags.Changed("pbr") || flags.Changed("block-size") || flags.Changed("legacy")
	return opts, flags, nil
}
