package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rivo/tview"
	"github.com/saylorsolutions/avscipher/pkg/avs"
)

// menuRequest holds the current values of the menu form.
type menuRequest struct {
	text      string
	password  string
	rounds    string
	usePBR    bool
	blockSize string
}

func newMenuRequest() *menuRequest {
	return &menuRequest{
		rounds:    strconv.Itoa(avs.DefaultRounds),
		usePBR:    avs.DefaultUsePBR,
		blockSize: strconv.Itoa(avs.DefaultBlockSize),
	}
}

// parseCount reads a positive count, using def when the field is blank or not a number.
// Values below 1 are raised to 1.
func parseCount(s string, def int) (n int, note string) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return def, ""
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def, fmt.Sprintf("Invalid number '%s', using default %d.", s, def)
	}
	return max(1, n), ""
}

// run performs the operation and renders the text shown in the output pane.
func (r *menuRequest) run(op operation) (string, error) {
	if len(strings.TrimSpace(r.text)) == 0 {
		return "", errors.New("message can't be empty")
	}
	if len(r.password) == 0 {
		return "", errors.New("password can't be empty")
	}
	var notes []string
	rounds, note := parseCount(r.rounds, avs.DefaultRounds)
	if len(note) > 0 {
		notes = append(notes, note)
	}
	blockSize, note := parseCount(r.blockSize, avs.DefaultBlockSize)
	if len(note) > 0 && r.usePBR {
		notes = append(notes, note)
	}
	params, err := avs.NewParams(avs.Rounds(rounds), avs.UsePBR(r.usePBR), avs.BlockSize(blockSize))
	if err != nil {
		return "", err
	}

	var out strings.Builder
	for _, n := range notes {
		out.WriteString(n + "\n")
	}
	switch op {
	case opEncrypt:
		token, err := params.Encrypt(r.text, r.password)
		if err != nil {
			return "", err
		}
		out.WriteString("Encrypted (base64 token), copy/paste this safely:\n\n")
		out.WriteString(token + "\n\n")
		out.WriteString("Encryption settings: " + params.Settings().String() + "\n")
	default:
		dec, err := params.Decrypt(r.text, r.password)
		if err != nil {
			return "", err
		}
		out.WriteString("Decrypted plaintext:\n\n")
		out.WriteString(dec.Text + "\n")
		if dec.Lossy {
			out.WriteString("\nWarning: the result wasn't valid UTF-8, replacement characters were substituted.\n")
		}
	}
	return out.String(), nil
}

func runMenu() error {
	var (
		app    = tview.NewApplication()
		req    = newMenuRequest()
		form   = tview.NewForm()
		output = tview.NewTextView()
	)
	output.SetWrap(true)
	output.SetBorder(true)
	output.SetTitle(" Output ")

	show := func(op operation) func() {
		return func() {
			result, err := req.run(op)
			if err != nil {
				output.SetText("Error: " + err.Error())
				return
			}
			output.SetText(result)
		}
	}

	form.
		AddInputField("Message / token", "", 60, nil, func(text string) { req.text = text }).
		AddPasswordField("Password", "", 30, '*', func(text string) { req.password = text }).
		AddInputField("Rounds", req.rounds, 6, tview.InputFieldInteger, func(text string) { req.rounds = text }).
		AddCheckbox("Use PBR", req.usePBR, func(checked bool) { req.usePBR = checked }).
		AddInputField("Block size", req.blockSize, 6, tview.InputFieldInteger, func(text string) { req.blockSize = text }).
		AddButton("Encrypt", show(opEncrypt)).
		AddButton("Decrypt", show(opDecrypt)).
		AddButton("Exit", app.Stop)
	form.SetBorder(true)
	form.SetTitle(fmt.Sprintf(" AVS Cipher %s ", version))

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(form, 15, 0, true).
		AddItem(output, 0, 1, false)
	return app.SetRoot(layout, true).EnableMouse(true).Run()
}
