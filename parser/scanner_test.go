package parser

import "testing"

func buildFile(records [][]byte) []byte {
	var data []byte
	for _, rec := range records {
		data = append(data, MagicPattern[:]...)
		data = append(data, rec...)
	}
	return data
}

func TestScanFindsEachRecord(t *testing.T) {
	recs := [][]byte{
		append([]byte{80, 0, 0, 0}, make([]byte, 80)...),
		append([]byte{100, 0, 0, 0}, make([]byte, 100)...),
	}
	data := buildFile(recs)

	boundaries := Scan(data)
	if len(boundaries) != 2 {
		t.Fatalf("boundary count = %d, want 2", len(boundaries))
	}
	for i, b := range boundaries {
		if !ValidDeclaredSize(data, b) {
			t.Fatalf("record %d: declared size invalid", i)
		}
	}
}

// TestScanTreatsSpuriousMagicAsBoundary documents that Scan does not
// filter magic bytes occurring inside a payload: a spurious match still
// produces a boundary, left for declared-size validation to reject.
func TestScanTreatsSpuriousMagicAsBoundary(t *testing.T) {
	payload := append([]byte{0, 0, 0, 0}, MagicPattern[:]...)
	data := buildFile([][]byte{payload})

	boundaries := Scan(data)
	if len(boundaries) != 2 {
		t.Fatalf("boundary count = %d, want 2 (outer + spurious)", len(boundaries))
	}
}

func TestValidDeclaredSizeRejectsOutOfRange(t *testing.T) {
	rec := append([]byte{4, 0, 0, 0}, make([]byte, 4)...) // below BlockSizeMin
	data := buildFile([][]byte{rec})
	boundaries := Scan(data)
	if ValidDeclaredSize(data, boundaries[0]) {
		t.Fatal("expected declared size below BlockSizeMin to be invalid")
	}
}

func TestValidDeclaredSizeRejectsLengthMismatch(t *testing.T) {
	rec := append([]byte{90, 0, 0, 0}, make([]byte, 80)...) // declares 90, has 80
	data := buildFile([][]byte{rec})
	boundaries := Scan(data)
	if ValidDeclaredSize(data, boundaries[0]) {
		t.Fatal("expected a declared-size/payload-length mismatch to be invalid")
	}
}

func TestScanEmptyInput(t *testing.T) {
	if boundaries := Scan(nil); len(boundaries) != 0 {
		t.Fatalf("boundary count = %d, want 0", len(boundaries))
	}
}
