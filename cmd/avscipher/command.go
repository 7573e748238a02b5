package main

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/saylorsolutions/avscipher/cmd/internal"
	"github.com/saylorsolutions/avscipher/pkg/avs"
)

var errUsage = errors.New("invalid usage")

type operation int

const (
	opEncrypt operation = iota + 1
	opDecrypt
)

func parseOperation(s string) (operation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "encrypt", "enc", "e":
		return opEncrypt, nil
	case "decrypt", "dec", "d":
		return opDecrypt, nil
	default:
		return 0, fmt.Errorf("%w: unknown operation '%s'", errUsage, s)
	}
}

type options struct {
	help        bool
	password    string
	rounds      int
	usePBR      bool
	blockSize   int
	legacy      bool
	settings    string
	stream      bool
	generate    int
	interactive bool

	args             []string
	settingsConflict bool
}

func (o *options) params() (*avs.Params, error) {
	if len(o.settings) > 0 {
		if o.settingsConflict {
			return nil, fmt.Errorf("%w: --settings can't be combined with --rounds, --pbr, --block-size, or --legacy", errUsage)
		}
		s, err := avs.ParseSettings(o.settings)
		if err != nil {
			return nil, err
		}
		return avs.NewParams(s.Options()...)
	}
	opts := []avs.Opt{
		avs.Rounds(o.rounds),
		avs.UsePBR(o.usePBR),
		avs.BlockSize(o.blockSize),
	}
	if o.legacy {
		opts = append(opts, avs.LegacyVariant())
	}
	return avs.NewParams(opts...)
}

type promptFunc = func(prompt string, confirm bool) (string, error)

type command struct {
	opts   *options
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	prompt promptFunc
}

func (c *command) run() error {
	if c.opts.generate != 0 {
		pass, err := avs.GenPassphrase(c.opts.generate)
		if err != nil {
			return err
		}
		internal.EchoTo(c.stdout, pass)
		return nil
	}

	if len(c.opts.args) == 0 {
		return fmt.Errorf("%w: missing required operation argument", errUsage)
	}
	if len(c.opts.args) > 2 {
		return fmt.Errorf("%w: too many arguments, quote TEXT if it contains spaces", errUsage)
	}
	op, err := parseOperation(c.opts.args[0])
	if err != nil {
		return err
	}
	params, err := c.opts.params()
	if err != nil {
		return err
	}
	pass, err := c.passphrase(op)
	if err != nil {
		return err
	}

	if c.opts.stream {
		if len(c.opts.args) > 1 {
			return fmt.Errorf("%w: TEXT can't be given in stream mode", errUsage)
		}
		if params.UsePBR() {
			return fmt.Errorf("%w: stream mode requires --pbr=false", errUsage)
		}
		return c.runStream(op, params, pass)
	}

	var text string
	if len(c.opts.args) > 1 {
		text = c.opts.args[1]
	} else {
		text, err = internal.ReadText(c.stdin)
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
	}
	if len(strings.TrimSpace(text)) == 0 {
		return fmt.Errorf("%w: TEXT can't be empty", errUsage)
	}

	switch op {
	case opEncrypt:
		return c.encrypt(params, text, pass)
	default:
		return c.decrypt(params, text, pass)
	}
}

func (c *command) passphrase(op operation) (string, error) {
	if len(c.opts.password) > 0 {
		return c.opts.password, nil
	}
	if c.prompt == nil {
		return "", internal.ErrEmptyPassword
	}
	return c.prompt("Enter password (hidden): ", op == opEncrypt)
}

func (c *command) encrypt(params *avs.Params, text, pass string) error {
	token, err := params.Encrypt(text, pass)
	if err != nil {
		return err
	}
	internal.EchoTo(c.stdout, token)
	settings := params.Settings()
	internal.EchoTo(c.stderr, "Encryption settings: %s", settings)
	if code, err := settings.Encode(); err == nil {
		internal.EchoTo(c.stderr, "Settings code: %s", code)
	}
	return nil
}

func (c *command) decrypt(params *avs.Params, token, pass string) error {
	dec, err := params.Decrypt(token, pass)
	if err != nil {
		return err
	}
	internal.EchoTo(c.stdout, dec.Text)
	if err := dec.Warning(); err != nil {
		internal.EchoTo(c.stderr, "Warning: %v, replacement characters were substituted", err)
	}
	return nil
}

func (c *command) runStream(op operation, params *avs.Params, pass string) error {
	keys, err := params.Schedule(pass)
	if err != nil {
		return err
	}
	if op == opEncrypt {
		enc := base64.NewEncoder(base64.StdEncoding, c.stdout)
		w, err := avs.NewWriter(enc, keys, avs.Forward)
		if err != nil {
			return err
		}
		if _, err := io.Copy(w, c.stdin); err != nil {
			return fmt.Errorf("failed to stream input: %w", err)
		}
		if err := enc.Close(); err != nil {
			return err
		}
		_, err = fmt.Fprintln(c.stdout)
		return err
	}

	r, err := avs.NewReader(base64.NewDecoder(base64.StdEncoding, c.stdin), keys, avs.Inverse)
	if err != nil {
		return err
	}
	if _, err := io.Copy(c.stdout, r); err != nil {
		var corrupt base64.CorruptInputError
		if errors.As(err, &corrupt) {
			return fmt.Errorf("%w: %v", avs.ErrBase64Decode, err)
		}
		return fmt.Errorf("failed to stream input: %w", err)
	}
	return nil
}
