package dispatch

import (
	"net/url"
	"strings"
	"testing"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"spaces become percent twenty", "hello world", "hello%20world"},
		{"newlines are escaped", "a\nb", "a%0Ab"},
		{"asterisks survive", "*bold*", "%2Abold%2A"},
		{"arabic round-trips", "طلب جديد", "%D8%B7%D9%84%D8%A8%20%D8%AC%D8%AF%D9%8A%D8%AF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Encode(tt.in)
			if got != tt.want {
				t.Errorf("Encode(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if strings.ContainsAny(got, " \n+") {
				t.Errorf("Encode(%q) left unsafe characters: %q", tt.in, got)
			}
			back, err := url.QueryUnescape(got)
			if err != nil {
				t.Fatalf("output is not valid percent-encoding: %v", err)
			}
			if back != tt.in {
				t.Errorf("round trip = %q, want %q", back, tt.in)
			}
		})
	}
}

func TestLink(t *testing.T) {
	wa := NewWhatsApp("https://wa.me", "962772272961")

	link := wa.Link("طلب جديد\nالمجموع: 42.00 دينار")

	const wantPrefix = "https://wa.me/962772272961?text="
	if !strings.HasPrefix(link, wantPrefix) {
		t.Fatalf("link = %q, want prefix %q", link, wantPrefix)
	}

	parsed, err := url.Parse(link)
	if err != nil {
		t.Fatalf("link does not parse: %v", err)
	}
	if got := parsed.Query().Get("text"); !strings.Contains(got, "42.00") {
		t.Errorf("decoded text = %q, want the total in it", got)
	}
	if strings.Contains(link, "\n") {
		t.Error("link contains a literal newline")
	}
}

func TestLink_TrailingSlashOnBase(t *testing.T) {
	wa := NewWhatsApp("https://wa.me/", "962772272961")
	if got, want := wa.ChatLink(), "https://wa.me/962772272961"; got != want {
		t.Errorf("ChatLink = %q, want %q", got, want)
	}
}
