package darwininput

import "testing"

func TestParseCodeNames(t *testing.T) {
	tests := []struct {
		raw      string
		expected uint16
	}{
		{raw: "KEY_W", expected: 17},
		{raw: "key_space", expected: 57},
		{raw: "BTN_LEFT", expected: CodeBTNLeft},
		{raw: "30", expected: 30},
	}

	for _, tc := range tests {
		got, err := ParseCode(tc.raw)
		if err != nil {
			t.Fatalf("ParseCode(%q) returned error: %v", tc.raw, err)
		}
		if got != tc.expected {
			t.Fatalf("ParseCode(%q)=%d, want %d", tc.raw, got, tc.expected)
		}
	}

	if _, err := ParseCode("KEY_NOPE"); err == nil {
		t.Fatalf("ParseCode(KEY_NOPE) should fail")
	}
}

func TestMacKeycodeRoundTrip(t *testing.T) {
	for _, entry := range codeTable {
		code, ok := CodeFromMac(entry.mac)
		if !ok {
			t.Fatalf("CodeFromMac(0x%X) missing for %s", entry.mac, entry.name)
		}
		if code != entry.code {
			t.Fatalf("CodeFromMac(0x%X)=%d, want %d (%s)", entry.mac, code, entry.code, entry.name)
		}
	}
}

func TestFormatCodeNameFallback(t *testing.T) {
	if name := FormatCodeName(17); name != "KEY_W" {
		t.Fatalf("FormatCodeName(17)=%q, want KEY_W", name)
	}
	if name := FormatCodeName(999); name != "999" {
		t.Fatalf("FormatCodeName(999)=%q, want fallback to digits", name)
	}
}
