package errors

import (
	"strings"
	"testing"
)

func TestValidateNodeID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{name: "valid simple", id: "p1", wantErr: false},
		{name: "valid prefixed", id: "static-3", wantErr: false},
		{name: "valid with dots", id: "doi.10.1234", wantErr: false},
		{name: "empty", id: "", wantErr: true},
		{name: "too long", id: strings.Repeat("a", 257), wantErr: true},
		{name: "control character", id: "p1\n", wantErr: true},
		{name: "path traversal", id: "../etc/passwd", wantErr: true},
		{name: "slash", id: "a/b", wantErr: true},
		{name: "backslash", id: "a\\b", wantErr: true},
		{name: "null byte", id: "a\x00b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNodeID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNodeID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateNodeID(%q) code = %v, want %v", tt.id, GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "relative file", path: "out/graph.json", wantErr: false},
		{name: "absolute file", path: "/tmp/graph.json", wantErr: false},
		{name: "empty", path: "", wantErr: true},
		{name: "too long", path: strings.Repeat("a", 501), wantErr: true},
		{name: "null byte", path: "a\x00b", wantErr: true},
		{name: "traversal", path: "../secrets", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "https", url: "https://example.com/paper.pdf", wantErr: false},
		{name: "http", url: "http://example.com", wantErr: false},
		{name: "empty", url: "", wantErr: true},
		{name: "ftp scheme", url: "ftp://example.com", wantErr: true},
		{name: "javascript scheme", url: "javascript:alert(1)", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		wantErr bool
	}{
		{name: "json", format: FormatJSON, wantErr: false},
		{name: "dot", format: FormatDOT, wantErr: false},
		{name: "empty", format: "", wantErr: true},
		{name: "unknown", format: "svg", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFormat(tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidFormat) {
				t.Errorf("ValidateFormat(%q) code = %v, want %v", tt.format, GetCode(err), ErrCodeInvalidFormat)
			}
		})
	}
}

func TestValidateCanvas(t *testing.T) {
	if err := ValidateCanvas(800, 600); err != nil {
		t.Errorf("ValidateCanvas(800, 600) = %v, want nil", err)
	}
	if err := ValidateCanvas(0, 0); err != nil {
		t.Errorf("ValidateCanvas(0, 0) = %v, want nil", err)
	}
	if err := ValidateCanvas(-1, 600); err == nil {
		t.Error("ValidateCanvas(-1, 600) = nil, want error")
	}
	if err := ValidateCanvas(800, -1); err == nil {
		t.Error("ValidateCanvas(800, -1) = nil, want error")
	}
}
