package extractor

import (
	"log"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// txtEncodings is tried in order; the first clean decode wins. The two
// Arabic code pages come before Latin-1 because Latin-1 accepts any byte.
var txtEncodings = []struct {
	name string
	enc  encoding.Encoding
}{
	{"utf-8", unicode.UTF8},
	{"utf-16", unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)},
	{"windows-1256", charmap.Windows1256},
	{"iso-8859-6", charmap.ISO8859_6},
	{"latin-1", charmap.ISO8859_1},
}

// extractTxt decodes a plain text file. If every candidate encoding fails,
// the bytes are force-decoded as UTF-8 with invalid sequences dropped.
func extractTxt(data []byte) string {
	for _, cand := range txtEncodings {
		var s string
		if cand.enc == unicode.UTF8 {
			if !utf8.Valid(data) {
				continue
			}
			s = string(data)
		} else {
			decoded, err := cand.enc.NewDecoder().Bytes(data)
			if err != nil {
				continue
			}
			s = string(decoded)
			// charmap decoders substitute undefined bytes instead of failing
			if strings.ContainsRune(s, utf8.RuneError) {
				continue
			}
		}
		log.Printf("extractor: text decoded as %s", cand.name)
		return strings.TrimSpace(s)
	}

	return strings.TrimSpace(strings.ToValidUTF8(string(data), ""))
}
