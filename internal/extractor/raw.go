package extractor

import (
	"bytes"
	"compress/zlib"
	"encoding/hex"
	"io"
	"regexp"
	"strings"
	"unicode"
)

// extractRaw is the secondary extraction backend. It walks the PDF byte
// stream directly: collects ToUnicode CMap tables, then decodes the text
// operators (Tj, TJ, ') inside each content stream's BT..ET blocks.
// Each content stream that yields text becomes one pseudo-page, so the
// result aligns with page indexes for single-stream-per-page documents,
// which is what the CIDFont statements this backend exists for produce.
func extractRaw(data []byte) []string {
	streams := contentStreams(data)
	if len(streams) == 0 {
		return nil
	}

	var cm *charMap
	if maps := findCharMaps(streams); len(maps) > 0 {
		cm = mergeCharMaps(maps)
	}

	var pages []string
	for _, stream := range streams {
		text := streamText(inflate(stream), cm)
		if text != "" {
			pages = append(pages, text)
		}
	}
	return pages
}

// contentStreams returns every stream..endstream payload in the file.
func contentStreams(data []byte) [][]byte {
	var streams [][]byte
	offset := 0
	for offset < len(data) {
		idx := bytes.Index(data[offset:], []byte("stream"))
		if idx < 0 {
			break
		}
		start := offset + idx + len("stream")
		if start < len(data) && data[start] == '\r' {
			start++
		}
		if start < len(data) && data[start] == '\n' {
			start++
		}
		endIdx := bytes.Index(data[start:], []byte("endstream"))
		if endIdx < 0 {
			break
		}
		if endIdx > 0 {
			streams = append(streams, data[start:start+endIdx])
		}
		offset = start + endIdx + len("endstream")
	}
	return streams
}

// inflate zlib-decompresses the payload, or returns it unchanged when it
// is not FlateDecode data.
func inflate(data []byte) []byte {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return data
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return data
	}
	return out
}

var (
	hexShowRe   = regexp.MustCompile(`<([0-9A-Fa-f]+)>\s*Tj`)
	litShowRe   = regexp.MustCompile(`\(([^)]*)\)\s*Tj`)
	arrayShowRe = regexp.MustCompile(`\[([^\]]*)\]\s*TJ`)
	tickShowRe  = regexp.MustCompile(`\(([^)]*)\)\s*'`)
	hexStrRe    = regexp.MustCompile(`<([0-9A-Fa-f]+)>`)
	litStrRe    = regexp.MustCompile(`\(([^)]*)\)`)
	moveTextRe  = regexp.MustCompile(`[\d.\-]+\s+[\d.\-]+\s+T[dD]`)
)

// streamText decodes the text operators of one content stream.
func streamText(data []byte, cm *charMap) string {
	content := string(data)
	if !strings.Contains(content, "Tj") && !strings.Contains(content, "TJ") &&
		!strings.Contains(content, "BT") {
		return ""
	}

	var lines []string
	for _, block := range textBlocks(content) {
		lines = append(lines, blockLines(block, cm)...)
	}

	// Streams without BT/ET structure still get a flat pass.
	if len(lines) == 0 {
		if text := flatText(content, cm); text != "" {
			lines = append(lines, text)
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// textBlocks returns the BT..ET sections of a content stream.
func textBlocks(content string) []string {
	var blocks []string
	for {
		bt := strings.Index(content, "BT")
		if bt < 0 {
			break
		}
		et := strings.Index(content[bt:], "ET")
		if et < 0 {
			break
		}
		blocks = append(blocks, content[bt:bt+et+2])
		content = content[bt+et+2:]
	}
	return blocks
}

// blockLines walks one BT..ET block operator by operator. Td/TD moves
// and the T* operator start a new output line; show operators append to
// the current one.
func blockLines(block string, cm *charMap) []string {
	var lines []string
	var current strings.Builder

	flush := func() {
		if line := strings.TrimSpace(current.String()); line != "" {
			lines = append(lines, line)
		}
		current.Reset()
	}

	for _, op := range strings.Split(block, "\n") {
		op = strings.TrimSpace(op)

		if op == "T*" || moveTextRe.MatchString(op) {
			flush()
		}

		for _, m := range hexShowRe.FindAllStringSubmatch(op, -1) {
			current.WriteString(decodeHex(m[1], cm))
		}
		for _, m := range litShowRe.FindAllStringSubmatch(op, -1) {
			current.WriteString(decodeLiteral(m[1], cm))
		}
		for _, m := range arrayShowRe.FindAllStringSubmatch(op, -1) {
			current.WriteString(decodeArray(m[1], cm))
		}
		for _, m := range tickShowRe.FindAllStringSubmatch(op, -1) {
			flush()
			current.WriteString(decodeLiteral(m[1], cm))
		}
	}
	flush()
	return lines
}

// flatText extracts every show-operator string without line structure.
func flatText(content string, cm *charMap) string {
	var parts []string
	for _, m := range hexShowRe.FindAllStringSubmatch(content, -1) {
		if text := decodeHex(m[1], cm); text != "" {
			parts = append(parts, text)
		}
	}
	for _, m := range litShowRe.FindAllStringSubmatch(content, -1) {
		if text := decodeLiteral(m[1], cm); text != "" {
			parts = append(parts, text)
		}
	}
	for _, m := range arrayShowRe.FindAllStringSubmatch(content, -1) {
		if text := decodeArray(m[1], cm); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// decodeHex decodes a <...> string: CMap first, UTF-16BE next, then
// plain bytes.
func decodeHex(hexStr string, cm *charMap) string {
	raw, err := hex.DecodeString(hexStr)
	if err != nil {
		return ""
	}
	if cm != nil {
		if text := cm.decode(raw); text != "" {
			return text
		}
	}
	if len(raw) >= 2 && len(raw)%2 == 0 {
		var b strings.Builder
		for i := 0; i+1 < len(raw); i += 2 {
			cp := rune(raw[i])<<8 | rune(raw[i+1])
			if unicode.IsPrint(cp) || cp == ' ' {
				b.WriteRune(cp)
			}
		}
		if b.Len() > 0 {
			return b.String()
		}
	}
	return stripUnprintable(string(raw))
}

// decodeLiteral decodes a (...) string.
func decodeLiteral(s string, cm *charMap) string {
	decoded := unescapePDF(s)
	if cm != nil {
		if text := cm.decode([]byte(decoded)); text != "" && mostlyPrintable(text) {
			return text
		}
	}
	return stripUnprintable(decoded)
}

// decodeArray decodes a TJ array, keeping its strings in source order
// and ignoring the interleaved kerning numbers.
func decodeArray(arrayContent string, cm *charMap) string {
	type piece struct {
		pos   int
		isHex bool
		value string
	}
	var pieces []piece
	for _, idx := range hexStrRe.FindAllStringSubmatchIndex(arrayContent, -1) {
		pieces = append(pieces, piece{pos: idx[0], isHex: true, value: arrayContent[idx[2]:idx[3]]})
	}
	for _, idx := range litStrRe.FindAllStringSubmatchIndex(arrayContent, -1) {
		pieces = append(pieces, piece{pos: idx[0], value: arrayContent[idx[2]:idx[3]]})
	}
	for i := 1; i < len(pieces); i++ {
		for j := i; j > 0 && pieces[j].pos < pieces[j-1].pos; j-- {
			pieces[j], pieces[j-1] = pieces[j-1], pieces[j]
		}
	}

	var b strings.Builder
	for _, p := range pieces {
		if p.isHex {
			b.WriteString(decodeHex(p.value, cm))
		} else {
			b.WriteString(decodeLiteral(p.value, cm))
		}
	}
	return b.String()
}

// unescapePDF resolves \n, \t, \(, \\ and octal escapes in a literal string.
func unescapePDF(s string) string {
	var buf strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			buf.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			buf.WriteByte('\n')
		case 'r':
			buf.WriteByte('\r')
		case 't':
			buf.WriteByte('\t')
		case 'b':
			buf.WriteByte('\b')
		case 'f':
			buf.WriteByte('\f')
		case '(', ')', '\\':
			buf.WriteByte(s[i])
		default:
			if s[i] >= '0' && s[i] <= '7' {
				val := int(s[i] - '0')
				for j := 1; j < 3 && i+1 < len(s) && s[i+1] >= '0' && s[i+1] <= '7'; j++ {
					i++
					val = val*8 + int(s[i]-'0')
				}
				buf.WriteByte(byte(val))
			} else {
				buf.WriteByte(s[i])
			}
		}
	}
	return buf.String()
}

func stripUnprintable(s string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || r == '\n' || r == '\r' || r == '\t' {
			return r
		}
		return -1
	}, s))
}

func mostlyPrintable(s string) bool {
	runes := []rune(s)
	if len(runes) == 0 {
		return false
	}
	printable := 0
	for _, r := range runes {
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			printable++
		}
	}
	return float64(printable)/float64(len(runes)) > 0.5
}
