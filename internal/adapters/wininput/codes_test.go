package wininput

import "testing"

func TestParseCodeNamesAndAliases(t *testing.T) {
	tests := []struct {
		raw      string
		expected uint16
	}{
		{raw: "KEY_W", expected: 17},
		{raw: "key_space", expected: 57},
		{raw: "BTN_LEFT", expected: CodeBTNLeft},
		{raw: "BTN_BACK", expected: CodeBTNSide},
		{raw: "BTN_FORWARD", expected: CodeBTNExtra},
		{raw: "57", expected: 57},
		{raw: "0x110", expected: CodeBTNLeft},
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

	if _, err := ParseCode(""); err == nil {
		t.Fatalf("ParseCode(\"\") should fail")
	}
	if _, err := ParseCode("KEY_NOPE"); err == nil {
		t.Fatalf("ParseCode(KEY_NOPE) should fail")
	}
}

func TestFormatCodeName(t *testing.T) {
	if name := FormatCodeName(17); name != "KEY_W" {
		t.Fatalf("FormatCodeName(17)=%q, want KEY_W", name)
	}
	if name := FormatCodeName(CodeBTNRight); name != "BTN_RIGHT" {
		t.Fatalf("FormatCodeName(CodeBTNRight)=%q, want BTN_RIGHT", name)
	}
	if name := FormatCodeName(999); name != "999" {
		t.Fatalf("FormatCodeName(999)=%q, want fallback to digits", name)
	}
}

func TestCodeToVKMappings(t *testing.T) {
	tests := []struct {
		name string
		vk   uint32
	}{
		{name: "KEY_W", vk: 0x57},
		{name: "KEY_SPACE", vk: 0x20},
		{name: "KEY_LEFTSHIFT", vk: 0xA0},
		{name: "BTN_LEFT", vk: 0x01},
	}

	for _, tc := range tests {
		code, err := ParseCode(tc.name)
		if err != nil {
			t.Fatalf("ParseCode(%q) returned error: %v", tc.name, err)
		}
		vk, ok := CodeToVK(code)
		if !ok || vk != tc.vk {
			t.Fatalf("CodeToVK(%s)=0x%X,%v, want 0x%X,true", tc.name, vk, ok, tc.vk)
		}
	}

	if _, ok := CodeToVK(999); ok {
		t.Fatalf("CodeToVK(999) should report no mapping")
	}
}
