package telegram

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestRenderQR(t *testing.T) {
	png, err := RenderQR("2@abcDEF123,xyz==,session")
	if err != nil {
		t.Fatalf("RenderQR failed: %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Error("output is not a PNG")
	}
}

func TestRenderQR_Oversized(t *testing.T) {
	if _, err := RenderQR(strings.Repeat("x", 5000)); err == nil {
		t.Error("Expected error for oversized payload, got nil")
	}
}

func TestRenderQR_Empty(t *testing.T) {
	if _, err := RenderQR(""); !errors.Is(err, ErrEmptyQRPayload) {
		t.Errorf("Expected ErrEmptyQRPayload, got %v", err)
	}
}
