package middleware

import "testing"

func TestParseWildcardOrigin(t *testing.T) {
	valid := map[string]wildcardOrigin{
		"https://*.example.com":         {scheme: "https://", suffix: ".example.com"},
		"http://*.localhost.dev":        {scheme: "http://", suffix: ".localhost.dev"},
		"https://*.habitmood.pages.dev": {scheme: "https://", suffix: ".habitmood.pages.dev"},
	}
	for pattern, want := range valid {
		got := parseWildcardOrigin(pattern)
		if got == nil || *got != want {
			t.Errorf("parseWildcardOrigin(%q) = %+v, want %+v", pattern, got, want)
		}
	}

	invalid := []string{
		"*.example.com",           // no scheme
		"*",                       // bare wildcard
		"https://example.*",       // wildcard not leading
		"https://*.*.example.com", // two wildcards
		"https://*example.com",    // no dot after the wildcard
		"https://*.com",           // tld only
		"https://example.com",     // exact origin
	}
	for _, pattern := range invalid {
		if got := parseWildcardOrigin(pattern); got != nil {
			t.Errorf("parseWildcardOrigin(%q) = %+v, want nil", pattern, got)
		}
	}
}

func TestWildcardOriginMatches(t *testing.T) {
	preview := parseWildcardOrigin("https://*.habitmood.pages.dev")
	if preview == nil {
		t.Fatal("preview pattern did not parse")
	}

	tests := []struct {
		origin string
		want   bool
	}{
		{"https://pr-42.habitmood.pages.dev", true},
		{"https://a1b2c3d4.habitmood.pages.dev", true},
		{"http://pr-42.habitmood.pages.dev", false},
		{"https://habitmood.pages.dev", false},
		{"https://a.b.habitmood.pages.dev", false},
		{"https://evil-habitmood.pages.dev", false},
		{"https://pr-42.habitmood.pages.dev.evil.com", false},
		{"https://pr-42.habitmood.pages.dev:8443", false},
		{"https://evil.com/.habitmood.pages.dev", false},
	}
	for _, tt := range tests {
		if got := preview.matches(tt.origin); got != tt.want {
			t.Errorf("matches(%q) = %v, want %v", tt.origin, got, tt.want)
		}
	}
}
