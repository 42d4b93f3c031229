package server

import (
	"encoding/json"

	"github.com/apex/log"
	"github.com/gofiber/fiber/v2"

	gateway "github.com/ncecere/prompt-gateway"
	"github.com/ncecere/prompt-gateway/registry"
)

const (
	msgNoPrompt       = "No prompt provided"
	msgInvalidRequest = "Invalid request body"
	errorPrefix       = "Error: "
)

// GenerateRequest is the body of POST /generate.
type GenerateRequest struct {
	Prompt string `json:"prompt"`
	// Mode selects the preset. It is kept raw so that an absent key,
	// which selects the default preset, differs from "" or null, which
	// do not name a preset and fall back like any other unknown mode.
	Mode json.RawMessage `json:"mode,omitempty"`
}

// modeName returns the requested mode and whether the key was present.
// Non-string values are present but name no mode.
func (r GenerateRequest) modeName() (string, bool) {
	if r.Mode == nil {
		return "", false
	}
	var mode string
	if err := json.Unmarshal(r.Mode, &mode); err != nil {
		return "", true
	}
	return mode, true
}

// GenerateResponse is the body of every /generate reply: the generated
// text, a validation message, or "Error: <message>".
type GenerateResponse struct {
	Response string `json:"response"`
}

// Handler serves the gateway endpoints.
type Handler struct {
	completer gateway.Completer
	presets   registry.Registry
	log       log.Interface
}

// NewHandler returns a Handler that resolves presets from presets and
// sends calls to completer.
func NewHandler(completer gateway.Completer, presets registry.Registry, l log.Interface) *Handler {
	return &Handler{
		completer: completer,
		presets:   presets,
		log:       l,
	}
}

// Generate handles POST /generate.
func (h *Handler) Generate(c *fiber.Ctx) error {
	var req GenerateRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		h.log.WithField("request_id", requestID(c)).WithError(err).Warn("generate.invalid_body")
		return c.Status(fiber.StatusBadRequest).JSON(GenerateResponse{Response: msgInvalidRequest})
	}
	if req.Prompt == "" {
		return c.Status(fiber.StatusBadRequest).JSON(GenerateResponse{Response: msgNoPrompt})
	}

	mode, hasMode := req.modeName()
	ctxLog := h.log.WithFields(log.Fields{
		"request_id": requestID(c),
		"mode":       mode,
	})

	var preset gateway.Preset
	var err error
	if hasMode {
		preset, err = h.presets.Resolve(mode)
	} else {
		preset, err = h.presets.DefaultPreset()
	}
	if err != nil {
		ctxLog.WithError(err).Error("generate.preset")
		return c.Status(fiber.StatusInternalServerError).JSON(GenerateResponse{Response: errorPrefix + err.Error()})
	}

	text, err := h.completer.Complete(c.UserContext(), gateway.NewCall(preset, req.Prompt))
	if err != nil {
		ctxLog.WithField("model", preset.Model).WithError(err).Error("generate.upstream")
		return c.Status(fiber.StatusInternalServerError).JSON(GenerateResponse{Response: errorPrefix + err.Error()})
	}

	return c.JSON(GenerateResponse{Response: text})
}
