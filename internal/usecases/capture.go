package usecases

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"strings"

	domainerrors "suburbia-skate.backend/internal/domain/errors"
)

const (
	// Blank canvas exports encode to well under a kilobyte. Anything smaller
	// than this is treated as an empty capture.
	minCaptureBytes = 1000

	dataURLPrefix = "data:image/png;base64,"
)

var pngSignature = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// CaptureValidator validates captured design images before any upload or
// mint work happens. Validation failures are terminal, never retried.
type CaptureValidator struct{}

func NewCaptureValidator() *CaptureValidator {
	return &CaptureValidator{}
}

// Validate decodes a data-URL or raw base64 PNG payload and returns the
// raw image bytes.
func (v *CaptureValidator) Validate(imageData string) ([]byte, error) {
	payload := strings.TrimSpace(imageData)
	payload = strings.TrimPrefix(payload, dataURLPrefix)
	if payload == "" {
		return nil, domainerrors.NewError("empty capture payload", domainerrors.ErrCaptureInvalid)
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, domainerrors.NewError("capture is not valid base64", domainerrors.ErrCaptureInvalid)
	}

	if len(raw) < minCaptureBytes {
		return nil, domainerrors.NewError("capture too small, canvas was likely blank", domainerrors.ErrCaptureInvalid)
	}

	if !bytes.HasPrefix(raw, pngSignature) {
		return nil, domainerrors.NewError("capture is not a PNG", domainerrors.ErrCaptureInvalid)
	}

	cfg, err := png.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, domainerrors.NewError("capture has a corrupt PNG header", domainerrors.ErrCaptureInvalid)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return nil, domainerrors.NewError("capture has zero dimensions", domainerrors.ErrCaptureInvalid)
	}

	return raw, nil
}
