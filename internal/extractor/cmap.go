package extractor

import (
	"encoding/hex"
	"regexp"
	"strings"
	"unicode/utf16"
)

// charMap translates font glyph codes to Unicode text. Statements set
// in CIDFont/Type0 fonts carry ToUnicode CMap streams with bfchar and
// bfrange sections; without them the show-operator bytes are opaque.
type charMap struct {
	// codes maps uppercase hex glyph codes to decoded Unicode strings.
	codes map[string]string
}

var (
	bfCharRe  = regexp.MustCompile(`(?s)beginbfchar\s*(.*?)\s*endbfchar`)
	bfRangeRe = regexp.MustCompile(`(?s)beginbfrange\s*(.*?)\s*endbfrange`)
	hexTokRe  = regexp.MustCompile(`<([0-9A-Fa-f]+)>`)
)

// findCharMaps scans decompressed streams for ToUnicode tables.
func findCharMaps(streams [][]byte) []*charMap {
	var maps []*charMap
	for _, stream := range streams {
		content := string(inflate(stream))
		if !strings.Contains(content, "beginbfchar") && !strings.Contains(content, "beginbfrange") {
			continue
		}
		if cm := parseCharMap(content); len(cm.codes) > 0 {
			maps = append(maps, cm)
		}
	}
	return maps
}

// mergeCharMaps folds per-font tables into one. Later fonts win on
// conflicting codes, which rarely matters since fonts partition the
// code space in practice.
func mergeCharMaps(maps []*charMap) *charMap {
	merged := &charMap{codes: make(map[string]string)}
	for _, cm := range maps {
		for k, v := range cm.codes {
			merged.codes[k] = v
		}
	}
	return merged
}

// parseCharMap reads the bfchar and bfrange sections of a ToUnicode
// stream.
func parseCharMap(content string) *charMap {
	cm := &charMap{codes: make(map[string]string)}

	// bfchar entries pair a glyph code with a Unicode value.
	for _, block := range bfCharRe.FindAllStringSubmatch(content, -1) {
		tokens := hexTokRe.FindAllStringSubmatch(block[1], -1)
		for i := 0; i+1 < len(tokens); i += 2 {
			if uni := utf16beString(tokens[i+1][1]); uni != "" {
				cm.codes[strings.ToUpper(tokens[i][1])] = uni
			}
		}
	}

	// bfrange entries map a code interval either to a Unicode start
	// value (incremented per code) or to an explicit array.
	for _, block := range bfRangeRe.FindAllStringSubmatch(content, -1) {
		for _, line := range strings.Split(block[1], "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if strings.Contains(line, "[") {
				cm.addRangeArray(line)
				continue
			}
			tokens := hexTokRe.FindAllStringSubmatch(line, -1)
			if len(tokens) < 3 {
				continue
			}
			start := hexValue(tokens[0][1])
			end := hexValue(tokens[1][1])
			dst := hexValue(tokens[2][1])
			if start < 0 || end < 0 || dst < 0 || end-start > 0xFFFF {
				continue
			}
			width := len(tokens[0][1])
			for code := start; code <= end; code++ {
				uni := utf16beString(paddedHex(dst+(code-start), len(tokens[2][1])))
				if uni != "" {
					cm.codes[paddedHex(code, width)] = uni
				}
			}
		}
	}

	return cm
}

// addRangeArray handles the <start> <end> [<u1> <u2> ...] form.
func (cm *charMap) addRangeArray(line string) {
	bracket := strings.Index(line, "[")
	if bracket < 0 {
		return
	}
	heads := hexTokRe.FindAllStringSubmatch(line[:bracket], -1)
	if len(heads) < 2 {
		return
	}
	start := hexValue(heads[0][1])
	if start < 0 {
		return
	}
	width := len(heads[0][1])
	for i, tok := range hexTokRe.FindAllStringSubmatch(line[bracket:], -1) {
		if uni := utf16beString(tok[1]); uni != "" {
			cm.codes[paddedHex(start+i, width)] = uni
		}
	}
}

// decode translates raw show-operator bytes through the table. The
// glyph code width is taken from the table's keys; unmapped multi-byte
// codes fall back to a single-byte lookup, then to printable ASCII.
func (cm *charMap) decode(raw []byte) string {
	if len(cm.codes) == 0 {
		return ""
	}

	width := 1
	for k := range cm.codes {
		width = len(k) / 2
		break
	}
	if width < 1 {
		width = 1
	}

	var b strings.Builder
	for i := 0; i <= len(raw)-width; i += width {
		chunk := raw[i : i+width]
		if uni, ok := cm.codes[strings.ToUpper(hex.EncodeToString(chunk))]; ok {
			b.WriteString(uni)
			continue
		}
		if width > 1 {
			if uni, ok := cm.codes[strings.ToUpper(hex.EncodeToString(chunk[:1]))]; ok {
				b.WriteString(uni)
				i -= width - 1
				continue
			}
		}
		if width == 1 && chunk[0] >= 32 && chunk[0] < 127 {
			b.WriteByte(chunk[0])
		}
	}
	return b.String()
}

func hexValue(h string) int {
	val := 0
	for _, c := range strings.ToUpper(h) {
		val <<= 4
		switch {
		case c >= '0' && c <= '9':
			val += int(c - '0')
		case c >= 'A' && c <= 'F':
			val += int(c-'A') + 10
		default:
			return -1
		}
	}
	return val
}

func paddedHex(val, width int) string {
	h := strings.ToUpper(hex.EncodeToString([]byte{byte(val >> 8), byte(val)}))
	if len(h) > width {
		h = h[len(h)-width:]
	}
	for len(h) < width {
		h = "0" + h
	}
	return h
}

// utf16beString decodes a hex-encoded UTF-16BE value, including
// surrogate pairs, into a Go string.
func utf16beString(h string) string {
	if len(h)%2 != 0 {
		h = "0" + h
	}
	data, err := hex.DecodeString(h)
	if err != nil {
		return ""
	}

	if len(data) == 4 {
		hi := rune(data[0])<<8 | rune(data[1])
		lo := rune(data[2])<<8 | rune(data[3])
		if hi >= 0xD800 && hi <= 0xDBFF && lo >= 0xDC00 && lo <= 0xDFFF {
			return string(utf16.DecodeRune(hi, lo))
		}
	}

	var b strings.Builder
	for i := 0; i+1 < len(data); i += 2 {
		b.WriteRune(rune(data[i])<<8 | rune(data[i+1]))
	}
	return b.String()
}
