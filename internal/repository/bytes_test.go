package repository

import (
	"bytes"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/asklio/procurement/internal/common"
)

func TestDecodeStoredBytes(t *testing.T) {
	want := []byte{0x25, 0x50, 0x44, 0x46} // "%PDF"

	tests := []struct {
		name  string
		input any
	}{
		{"byte slice", []byte{0x25, 0x50, 0x44, 0x46}},
		{"bson binary", primitive.Binary{Subtype: 0x00, Data: []byte{0x25, 0x50, 0x44, 0x46}}},
		{"numeric sequence", []any{float64(0x25), float64(0x50), float64(0x44), float64(0x46)}},
		{"int32 sequence", []any{int32(0x25), int32(0x50), int32(0x44), int32(0x46)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeStoredBytes(tt.input)
			if err != nil {
				t.Fatalf("DecodeStoredBytes: %v", err)
			}
			if !bytes.Equal(got, want) {
				t.Errorf("got %v, want %v", got, want)
			}
		})
	}
}

func TestDecodeStoredBytesUnreadable(t *testing.T) {
	tests := []struct {
		name  string
		input any
	}{
		{"nil", nil},
		{"string", "not bytes"},
		{"map", map[string]any{"$binary": "stuff"}},
		{"fractional element", []any{float64(1.5)}},
		{"out of range", []any{float64(300)}},
		{"mixed types", []any{float64(1), "two"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeStoredBytes(tt.input)
			if !errors.Is(err, common.ErrUnreadableDocument) {
				t.Errorf("expected ErrUnreadableDocument, got %v", err)
			}
		})
	}
}
