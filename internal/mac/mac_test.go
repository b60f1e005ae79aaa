package mac

import (
	"bytes"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "already canonical",
			input: "AA:BB:CC:DD:EE:FF",
			want:  "AA:BB:CC:DD:EE:FF",
		},
		{
			name:  "lowercase colons",
			input: "aa:bb:cc:dd:ee:ff",
			want:  "AA:BB:CC:DD:EE:FF",
		},
		{
			name:  "dashes",
			input: "aa-bb-cc-dd-ee-ff",
			want:  "AA:BB:CC:DD:EE:FF",
		},
		{
			name:  "cisco dotted",
			input: "aabb.ccdd.eeff",
			want:  "AA:BB:CC:DD:EE:FF",
		},
		{
			name:  "bare hex",
			input: "aabbccddeeff",
			want:  "AA:BB:CC:DD:EE:FF",
		},
		{
			name:  "mixed separators and case",
			input: " Aa-bB:cC.dD eE_fF ",
			want:  "AA:BB:CC:DD:EE:FF",
		},
		{
			name:  "too few digits",
			input: "aa:bb:cc:dd:ee",
			want:  "",
		},
		{
			name:  "too many digits",
			input: "aa:bb:cc:dd:ee:ff:00",
			want:  "",
		},
		{
			name:  "non-hex letters",
			input: "gg:hh:ii:jj:kk:ll",
			want:  "",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			// 13 hex digits after stripping - close is not good enough.
			name:  "thirteen digits",
			input: "aabbccddeeffa",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"aa:bb:cc:dd:ee:ff",
		"00-11-22-33-44-55",
		"A1B2.C3D4.E5F6",
		"deadbeefcafe",
	}

	for _, input := range inputs {
		once := Normalize(input)
		if once == "" {
			t.Fatalf("Normalize(%q) unexpectedly invalid", input)
		}
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent: Normalize(%q) = %q, Normalize(that) = %q", input, once, twice)
		}
	}
}

func TestValid(t *testing.T) {
	valid := []string{"aa:bb:cc:dd:ee:ff", "AABBCCDDEEFF", "aa-bb-cc-dd-ee-ff"}
	for _, input := range valid {
		if !Valid(input) {
			t.Errorf("Valid(%q) = false, want true", input)
		}
	}

	invalid := []string{"", "aa:bb:cc:dd:ee", "not a mac", "aa:bb:cc:dd:ee:ff:00"}
	for _, input := range invalid {
		if Valid(input) {
			t.Errorf("Valid(%q) = true, want false", input)
		}
	}
}

func TestBytes(t *testing.T) {
	got, err := Bytes("aa-bb-cc-dd-ee-ff")
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}

	want := []byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF}
	if !bytes.Equal(got, want) {
		t.Errorf("Bytes() = %x, want %x", got, want)
	}
}

func TestBytesInvalid(t *testing.T) {
	if _, err := Bytes("zz:zz"); err != ErrInvalidMAC {
		t.Errorf("Bytes() error = %v, want ErrInvalidMAC", err)
	}
}
