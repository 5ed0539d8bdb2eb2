package url

import (
	"errors"
	"testing"
)

func TestHostname(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "https page", input: "https://shop.example/page?q=1", want: "shop.example"},
		{name: "port stripped", input: "http://localhost:8080/", want: "localhost"},
		{name: "case folded", input: "https://Example.COM/", want: "example.com"},
		{name: "www kept", input: "https://www.example.com/", want: "www.example.com"},
		{name: "internal page", input: "chrome://newtab/", wantErr: true},
		{name: "about blank", input: "about:blank", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "malformed", input: "http://[::1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Hostname(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Hostname(%q) = %q, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Hostname(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Hostname(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestHostname_InternalPagesReportNoHost(t *testing.T) {
	_, err := Hostname("about:blank")
	if !errors.Is(err, ErrNoHost) {
		t.Fatalf("expected ErrNoHost, got %v", err)
	}
}

func TestSameHost(t *testing.T) {
	if !SameHost("https://a.com/x", "a.com") {
		t.Error("expected a.com to match")
	}
	if SameHost("https://sub.a.com/x", "a.com") {
		t.Error("subdomains must not match")
	}
	if SameHost("chrome://settings", "settings") {
		t.Error("internal pages must not match")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"shop.example/page", "https://shop.example/page"},
		{"http://a.com", "http://a.com"},
		{"about:blank", "about:blank"},
		{"not a url", "not a url"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.input); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
