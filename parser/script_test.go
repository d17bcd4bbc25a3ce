package parser

import "testing"

// TestClassifyScriptPKH covers spec.md §8's S2 boundary scenario: a
// canonical PKH script derives the expected Base58Check address with
// prefix byte 80.
func TestClassifyScriptPKH(t *testing.T) {
	script := []byte{
		0x76, 0xA9, 0x14,
		0x62, 0xE9, 0x07, 0xB1, 0x5C, 0xBF, 0x27, 0xD5, 0x42, 0x53,
		0x99, 0xEB, 0xF6, 0xF0, 0xFB, 0x50, 0xEB, 0xB8, 0x8F, 0x18,
		0x88, 0xAC,
	}

	kind, h160, ok := ClassifyScript(script)
	if kind != PKH {
		t.Fatalf("kind = %v, want PKH", kind)
	}
	if !ok {
		t.Fatal("expected an h160 payload")
	}

	const want = "ZM4F9hVRsqLk6PB9Jx7AFMrNh8Xa6DjRK3"
	if got := Address(kind, h160); got != want {
		t.Fatalf("address = %q, want %q", got, want)
	}
}

func TestClassifyScriptP2SH(t *testing.T) {
	script := make([]byte, 23)
	script[0] = opHash160
	script[1] = 0x14
	for i := 0; i < 20; i++ {
		script[2+i] = byte(i + 1)
	}
	script[22] = opEqual

	kind, h160, ok := ClassifyScript(script)
	if kind != P2SH || !ok {
		t.Fatalf("kind = %v ok = %v, want P2SH true", kind, ok)
	}
	if Address(kind, h160) == "" {
		t.Fatal("expected non-empty P2SH address")
	}
}

func TestClassifyScriptTotal(t *testing.T) {
	cases := [][]byte{
		nil,
		{opReturn, 0x04, 'd', 'a', 't', 'a'},
		{opHash256, 0x01, 0x02, opEqual},
		{0xAB, 0xCD, 0xEF},
	}
	for _, s := range cases {
		kind, _, _ := ClassifyScript(s)
		// Every input maps to exactly one kind; the call itself must not panic,
		// and the returned kind must be one of the closed set.
		switch kind {
		case NonStandard, PKH, PK, P2SH, Data, Puzzle, Empty:
		default:
			t.Fatalf("unexpected kind %v for %x", kind, s)
		}
	}
}

func TestClassifyScriptEmpty(t *testing.T) {
	kind, _, ok := ClassifyScript(nil)
	if kind != Empty || ok {
		t.Fatalf("kind = %v ok = %v, want Empty false", kind, ok)
	}
}

func TestClassifyScriptData(t *testing.T) {
	kind, _, _ := ClassifyScript([]byte{opReturn, 0x02, 0xAA, 0xBB})
	if kind != Data {
		t.Fatalf("kind = %v, want Data", kind)
	}
}

func TestNonStandardAddressIsEmpty(t *testing.T) {
	if got := Address(NonStandard, [20]byte{}); got != "" {
		t.Fatalf("Address(NonStandard) = %q, want empty", got)
	}
}
