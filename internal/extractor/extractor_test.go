package extractor

import (
	"bytes"
	"compress/zlib"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestContentStreams(t *testing.T) {
	pdf := []byte("1 0 obj\n<< /Length 11 >>\nstream\nhello world\nendstream\nendobj\n" +
		"2 0 obj\nstream\r\nsecond\nendstream\n")
	streams := contentStreams(pdf)
	if len(streams) != 2 {
		t.Fatalf("expected 2 streams, got %d", len(streams))
	}
	if string(streams[0]) != "hello world\n" {
		t.Errorf("stream 0 = %q", streams[0])
	}
	if string(streams[1]) != "second\n" {
		t.Errorf("stream 1 = %q", streams[1])
	}
}

func TestInflate(t *testing.T) {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	w.Write([]byte("BT (compressed text) Tj ET"))
	w.Close()

	if got := string(inflate(buf.Bytes())); got != "BT (compressed text) Tj ET" {
		t.Errorf("inflate = %q", got)
	}

	// Non-zlib data passes through untouched.
	raw := []byte("plain content")
	if got := inflate(raw); !bytes.Equal(got, raw) {
		t.Errorf("inflate(plain) = %q", got)
	}
}

func TestStreamTextLiteralOperators(t *testing.T) {
	stream := []byte("BT\n1 0 0 1 50 700 Tm\n(Date) Tj\n0 -14 Td\n(01/02/2024 UPI-GROCERY 450.00) Tj\nET")
	got := streamText(stream, nil)
	want := "Date\n01/02/2024 UPI-GROCERY 450.00"
	if got != want {
		t.Errorf("streamText = %q, want %q", got, want)
	}
}

func TestStreamTextTJArrayOrder(t *testing.T) {
	stream := []byte("BT\n[(Bala) -250 (nce: 10,500.00)] TJ\nET")
	got := streamText(stream, nil)
	if got != "Balance: 10,500.00" {
		t.Errorf("streamText = %q", got)
	}
}

func TestUnescapePDF(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`a\(b\)c`, "a(b)c"},
		{`line1\nline2`, "line1\nline2"},
		{`tab\there`, "tab\there"},
		{`back\\slash`, `back\slash`},
		{`octal\101`, "octalA"},
		{`plain`, "plain"},
	}
	for _, tt := range tests {
		if got := unescapePDF(tt.in); got != tt.want {
			t.Errorf("unescapePDF(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseCharMapBFChar(t *testing.T) {
	content := `/CIDInit /ProcSet findresource begin
begincmap
beginbfchar
<0041> <0042>
<0001> <20B9>
endbfchar
endcmap`
	cm := parseCharMap(content)
	if got := cm.codes["0041"]; got != "B" {
		t.Errorf("code 0041 = %q, want B", got)
	}
	if got := cm.codes["0001"]; got != "₹" {
		t.Errorf("code 0001 = %q, want rupee sign", got)
	}
}

func TestParseCharMapBFRange(t *testing.T) {
	content := `beginbfrange
<0010> <0019> <0030>
endbfrange`
	cm := parseCharMap(content)
	// Codes 0010..0019 map onto the digits 0..9.
	if got := cm.codes["0010"]; got != "0" {
		t.Errorf("code 0010 = %q, want 0", got)
	}
	if got := cm.codes["0019"]; got != "9" {
		t.Errorf("code 0019 = %q, want 9", got)
	}
}

func TestParseCharMapRangeArray(t *testing.T) {
	content := `beginbfrange
<0001> <0003> [<0058> <0059> <005A>]
endbfrange`
	cm := parseCharMap(content)
	for code, want := range map[string]string{"0001": "X", "0002": "Y", "0003": "Z"} {
		if got := cm.codes[code]; got != want {
			t.Errorf("code %s = %q, want %q", code, got, want)
		}
	}
}

func TestCharMapDecode(t *testing.T) {
	cm := parseCharMap(`beginbfchar
<0001> <0048>
<0002> <0049>
endbfchar`)
	if got := cm.decode([]byte{0x00, 0x01, 0x00, 0x02}); got != "HI" {
		t.Errorf("decode = %q, want HI", got)
	}
}

func TestDecodeHexWithCharMap(t *testing.T) {
	cm := parseCharMap(`beginbfchar
<0001> <0055>
<0002> <0050>
<0003> <0049>
endbfchar`)
	if got := decodeHex("000100020003", cm); got != "UPI" {
		t.Errorf("decodeHex = %q, want UPI", got)
	}
}

func TestExtractRawWithCMap(t *testing.T) {
	// A stripped-down PDF body: one ToUnicode stream and one content
	// stream whose hex show strings need the CMap to decode.
	pdf := []byte(`3 0 obj
stream
beginbfchar
<0001> <0044>
<0002> <0065>
<0003> <0062>
<0004> <0069>
<0005> <0074>
endbfchar
endstream
4 0 obj
stream
BT
<00010002000300040005> Tj
ET
endstream
`)
	pages := extractRaw(pdf)
	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}
	if pages[0] != "Debit" {
		t.Errorf("page text = %q, want Debit", pages[0])
	}
}

func TestIsReadableText(t *testing.T) {
	statement := []string{strings.Repeat("Account Statement 01/02/2024 UPI-MERCHANT 450.00 Balance 10,250.00\n", 3)}
	if !isReadableText(statement) {
		t.Error("statement text reported unreadable")
	}

	if isReadableText([]string{"short"}) {
		t.Error("near-empty text reported readable")
	}

	garbage := []string{strings.Repeat("Ã¸â¦ï¿½", 30)}
	if isReadableText(garbage) {
		t.Error("mojibake text reported readable")
	}

	// Long readable English with none of the statement vocabulary.
	prose := []string{strings.Repeat("the quick brown fox jumps over the lazy dog ", 5)}
	if isReadableText(prose) {
		t.Error("non-statement prose reported readable")
	}
}

func TestTextQuality(t *testing.T) {
	if q := textQuality([]string{"Normal bank statement text 123.45"}); q < 0.95 {
		t.Errorf("clean text quality = %f", q)
	}
	if q := textQuality([]string{strings.Repeat("�", 100)}); q > 0.1 {
		t.Errorf("replacement-rune quality = %f", q)
	}
	if q := textQuality(nil); q != 0 {
		t.Errorf("empty quality = %f", q)
	}
}

func TestPagesFromBytesRejectsGarbage(t *testing.T) {
	e := New(testLogger())
	if _, err := e.PagesFromBytes([]byte("this is not a pdf at all")); err == nil {
		t.Fatal("expected error for non-PDF bytes")
	}
}

func TestPagesFromFileMissing(t *testing.T) {
	e := New(testLogger())
	if _, err := e.PagesFromFile("/nonexistent/statement.pdf"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
