package extract

import (
	"encoding/xml"
	"io"
	"strings"
)

// flattenDocumentXML streams WordprocessingML and emits the text runs,
// separating paragraphs with newlines. Only w:t text, w:p paragraph and
// w:br / w:tab elements affect output; everything else is skipped.
func flattenDocumentXML(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var b strings.Builder
	inText := false
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "br":
				b.WriteByte('\n')
			case "tab":
				b.WriteByte(' ')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return b.String(), nil
}
