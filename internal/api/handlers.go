package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/saylorsolutions/avscipher/pkg/avs"
)

// pipelineParams are the tuning fields shared by every cipher request.
// Fields left out of the request body keep their defaults.
type pipelineParams struct {
	Rounds    int  `json:"rounds"`
	UsePBR    bool `json:"use_pbr"`
	BlockSize int  `json:"block_size"`
}

func defaultPipelineParams() pipelineParams {
	return pipelineParams{
		Rounds:    avs.DefaultRounds,
		UsePBR:    avs.DefaultUsePBR,
		BlockSize: avs.DefaultBlockSize,
	}
}

func (p pipelineParams) validate() error {
	if p.Rounds < 1 {
		return errors.New("rounds must be at least 1")
	}
	if p.BlockSize < 1 {
		return errors.New("block size must be at least 1")
	}
	return nil
}

func (p pipelineParams) options() []avs.Opt {
	return []avs.Opt{
		avs.Rounds(p.Rounds),
		avs.UsePBR(p.UsePBR),
		avs.BlockSize(p.BlockSize),
	}
}

type EncryptRequest struct {
	Plaintext string `json:"plaintext"`
	Password  string `json:"password"`
	pipelineParams
}

type EncryptResponse struct {
	Success    bool   `json:"success"`
	Ciphertext string `json:"ciphertext"`
	Error      string `json:"error"`
}

type DecryptRequest struct {
	Ciphertext string `json:"ciphertext"`
	Password   string `json:"password"`
	pipelineParams
}

type DecryptResponse struct {
	Success   bool   `json:"success"`
	Plaintext string `json:"plaintext"`
	Lossy     bool   `json:"lossy,omitempty"`
	Error     string `json:"error"`
}

// CipherRequest is the combined request shape, where Operation selects encryption or decryption.
type CipherRequest struct {
	Text      string `json:"text"`
	Password  string `json:"password"`
	Operation string `json:"operation"`
	pipelineParams
}

type CipherResponse struct {
	Success bool   `json:"success"`
	Result  string `json:"result,omitempty"`
	Lossy   bool   `json:"lossy,omitempty"`
	Error   string `json:"error,omitempty"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"message": serviceName + " is running",
	})
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"cipher_name": serviceName,
		"version":     serviceVersion,
		"features": []string{
			"Multi-round additive cipher encryption",
			"Polyalphabetic Block-Reverse (PBR) enhancement",
			"Configurable block sizes",
			"Base64 encoded output",
			"Key evolution between rounds",
		},
		"defaults": defaultPipelineParams(),
	})
}

func (s *Server) handleEncrypt(w http.ResponseWriter, r *http.Request) {
	req := EncryptRequest{pipelineParams: defaultPipelineParams()}
	if !s.decode(w, r, &req) {
		return
	}
	if err := validateInputs(req.Plaintext, "plaintext", req.Password, req.pipelineParams); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	token, err := avs.Encrypt(req.Plaintext, req.Password, req.options()...)
	if err != nil {
		s.log.Printf("Encrypt failed: %v", err)
		writeJSON(w, http.StatusOK, EncryptResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, EncryptResponse{Success: true, Ciphertext: token})
}

func (s *Server) handleDecrypt(w http.ResponseWriter, r *http.Request) {
	req := DecryptRequest{pipelineParams: defaultPipelineParams()}
	if !s.decode(w, r, &req) {
		return
	}
	if err := validateInputs(req.Ciphertext, "ciphertext", req.Password, req.pipelineParams); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	dec, err := avs.Decrypt(req.Ciphertext, req.Password, req.options()...)
	if err != nil {
		writeJSON(w, http.StatusOK, DecryptResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, DecryptResponse{Success: true, Plaintext: dec.Text, Lossy: dec.Lossy})
}

func (s *Server) handleCipher(w http.ResponseWriter, r *http.Request) {
	req := CipherRequest{pipelineParams: defaultPipelineParams()}
	if !s.decode(w, r, &req) {
		return
	}
	if len(req.Text) == 0 || len(req.Password) == 0 || len(req.Operation) == 0 {
		writeError(w, http.StatusBadRequest, "Missing required fields: text, password, operation")
		return
	}
	if err := validateInputs(req.Text, "text", req.Password, req.pipelineParams); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch strings.ToLower(req.Operation) {
	case "encrypt":
		token, err := avs.Encrypt(req.Text, req.Password, req.options()...)
		if err != nil {
			s.log.Printf("Encrypt failed: %v", err)
			writeJSON(w, http.StatusOK, CipherResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, CipherResponse{Success: true, Result: token})
	case "decrypt":
		dec, err := avs.Decrypt(req.Text, req.Password, req.options()...)
		if err != nil {
			writeJSON(w, http.StatusOK, CipherResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, CipherResponse{Success: true, Result: dec.Text, Lossy: dec.Lossy})
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown operation '%s', expected encrypt or decrypt", req.Operation))
	}
}

func validateInputs(text, textField, password string, params pipelineParams) error {
	if len(strings.TrimSpace(text)) == 0 {
		return fmt.Errorf("%s cannot be empty", textField)
	}
	if len(strings.TrimSpace(password)) == 0 {
		return errors.New("password cannot be empty")
	}
	return params.validate()
}

// decode reads the JSON body into target, writing an error response and returning false if that fails.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("Request body exceeds %d bytes", maxErr.Limit))
			return false
		}
		writeError(w, http.StatusBadRequest, "Invalid JSON request body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
