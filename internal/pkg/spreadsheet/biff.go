package spreadsheet

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/extrame/ole2"
	"github.com/xuri/excelize/v2"
)

// BIFF record identifiers.
const (
	recFormula    = 0x0006
	recEOF        = 0x000A
	recFormat5    = 0x001E
	recDateMode   = 0x0022
	recBoundSheet = 0x0085
	recMulRK      = 0x00BD
	recXF         = 0x00E0
	recLabelSST   = 0x00FD
	recNumber     = 0x0203
	recLabel      = 0x0204
	recBoolErr    = 0x0205
	recString     = 0x0207
	recRK         = 0x027E
	recFormat     = 0x041E
)

type cellPos struct {
	row, col int
}

// biffCell is one non-blank cell of the first worksheet. Text cells only record
// their position; their content lives in the shared string table.
type biffCell struct {
	value string
	text  bool
}

type biffSheet struct {
	cells  map[cellPos]biffCell
	maxRow int
}

type biffGlobals struct {
	date1904  bool
	xfFormats []uint16
	formats   map[uint16]string
	sheetPos  int64
}

// scanBIFF walks the records of the first worksheet of a BIFF workbook and
// returns the value of every non-text cell as it is stored: numbers unformatted,
// date-formatted numbers as ISO dates, formulas as their cached result.
func scanBIFF(r io.ReadSeeker) (*biffSheet, error) {
	stream, err := openWorkbookStream(r)
	if err != nil {
		return nil, err
	}

	g, err := scanGlobals(stream)
	if err != nil {
		return nil, err
	}
	if g.sheetPos < 0 {
		return nil, errors.New("workbook has no worksheets")
	}
	if _, err := stream.Seek(g.sheetPos, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek to worksheet: %w", err)
	}
	return scanSheet(stream, g)
}

func openWorkbookStream(r io.ReadSeeker) (io.ReadSeeker, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	doc, err := ole2.Open(r, "utf-8")
	if err != nil {
		return nil, err
	}
	dir, err := doc.ListDir()
	if err != nil {
		return nil, err
	}

	var book, root *ole2.File
	for _, f := range dir {
		switch f.Name() {
		case "Workbook", "Book":
			book = f
		case "Root Entry":
			root = f
		}
	}
	if book == nil || root == nil {
		return nil, errors.New("no workbook stream")
	}
	return doc.OpenFile(book, root), nil
}

func readRecord(r io.Reader) (uint16, []byte, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return 0, nil, err
	}
	body := make([]byte, binary.LittleEndian.Uint16(hdr[2:]))
	if _, err := io.ReadFull(r, body); err != nil {
		return 0, nil, err
	}
	return binary.LittleEndian.Uint16(hdr[:]), body, nil
}

func isStreamEnd(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}

func scanGlobals(r io.Reader) (*biffGlobals, error) {
	g := &biffGlobals{formats: make(map[uint16]string), sheetPos: -1}
	for {
		id, body, err := readRecord(r)
		if err != nil {
			if isStreamEnd(err) {
				return g, nil
			}
			return nil, err
		}

		switch id {
		case recDateMode:
			if len(body) >= 2 {
				g.date1904 = binary.LittleEndian.Uint16(body) == 1
			}
		case recFormat:
			if len(body) >= 2 {
				g.formats[binary.LittleEndian.Uint16(body)] = decodeString(body[2:])
			}
		case recFormat5:
			if len(body) >= 3 {
				n := min(int(body[2]), len(body)-3)
				g.formats[binary.LittleEndian.Uint16(body)] = latin1(body[3 : 3+n])
			}
		case recXF:
			if len(body) >= 4 {
				g.xfFormats = append(g.xfFormats, binary.LittleEndian.Uint16(body[2:]))
			}
		case recBoundSheet:
			if g.sheetPos < 0 && len(body) >= 4 {
				g.sheetPos = int64(binary.LittleEndian.Uint32(body))
			}
		case recEOF:
			return g, nil
		}
	}
}

func scanSheet(r io.Reader, g *biffGlobals) (*biffSheet, error) {
	s := &biffSheet{cells: make(map[cellPos]biffCell), maxRow: -1}
	// A formula with a text result is followed by a STRING record.
	var pending *cellPos

	for {
		id, body, err := readRecord(r)
		if err != nil {
			if isStreamEnd(err) {
				return s, nil
			}
			return nil, err
		}

		switch id {
		case recNumber:
			if len(body) >= 14 {
				row, col, xf := cellHeader(body)
				v := math.Float64frombits(binary.LittleEndian.Uint64(body[6:]))
				s.set(row, col, biffCell{value: g.formatNumber(xf, v)})
			}
		case recRK:
			if len(body) >= 10 {
				row, col, xf := cellHeader(body)
				s.set(row, col, biffCell{value: g.formatNumber(xf, rkValue(binary.LittleEndian.Uint32(body[6:])))})
			}
		case recMulRK:
			if len(body) >= 6 {
				row := int(binary.LittleEndian.Uint16(body))
				first := int(binary.LittleEndian.Uint16(body[2:]))
				for i := 0; 4+6*i+6 <= len(body)-2; i++ {
					off := 4 + 6*i
					xf := binary.LittleEndian.Uint16(body[off:])
					v := rkValue(binary.LittleEndian.Uint32(body[off+2:]))
					s.set(row, first+i, biffCell{value: g.formatNumber(xf, v)})
				}
			}
		case recLabelSST, recLabel:
			if len(body) >= 6 {
				row, col, _ := cellHeader(body)
				s.set(row, col, biffCell{text: true})
			}
		case recBoolErr:
			if len(body) >= 8 {
				row, col, _ := cellHeader(body)
				if body[7] == 0 {
					s.set(row, col, biffCell{value: boolString(body[6] != 0)})
				}
			}
		case recFormula:
			if len(body) >= 14 {
				row, col, xf := cellHeader(body)
				result := body[6:14]
				if result[6] != 0xFF || result[7] != 0xFF {
					v := math.Float64frombits(binary.LittleEndian.Uint64(result))
					s.set(row, col, biffCell{value: g.formatNumber(xf, v)})
					break
				}
				switch result[0] {
				case 0x00:
					pending = &cellPos{row: row, col: col}
				case 0x01:
					s.set(row, col, biffCell{value: boolString(result[2] != 0)})
				}
			}
		case recString:
			if pending != nil {
				s.set(pending.row, pending.col, biffCell{value: decodeString(body)})
				pending = nil
			}
		case recEOF:
			return s, nil
		}
	}
}

func cellHeader(body []byte) (row, col int, xf uint16) {
	return int(binary.LittleEndian.Uint16(body)),
		int(binary.LittleEndian.Uint16(body[2:])),
		binary.LittleEndian.Uint16(body[4:])
}

func (s *biffSheet) set(row, col int, c biffCell) {
	s.cells[cellPos{row: row, col: col}] = c
	if row > s.maxRow {
		s.maxRow = row
	}
}

// rkValue decodes the compressed RK number encoding.
func rkValue(rk uint32) float64 {
	var v float64
	if rk&0x02 != 0 {
		v = float64(int32(rk) >> 2)
	} else {
		v = math.Float64frombits(uint64(rk&0xFFFFFFFC) << 32)
	}
	if rk&0x01 != 0 {
		v /= 100
	}
	return v
}

func boolString(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

func (g *biffGlobals) formatNumber(xf uint16, v float64) string {
	if g.isDateXF(xf) {
		if t, err := excelize.ExcelDateToTime(v, g.date1904); err == nil {
			if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
				return t.Format("2006-01-02")
			}
			return t.Format("2006-01-02 15:04:05")
		}
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (g *biffGlobals) isDateXF(xf uint16) bool {
	if int(xf) >= len(g.xfFormats) {
		return false
	}
	idx := g.xfFormats[xf]
	switch {
	case idx >= 14 && idx <= 22, idx >= 27 && idx <= 36, idx >= 45 && idx <= 47, idx >= 50 && idx <= 58:
		return true
	}
	if code, ok := g.formats[idx]; ok {
		return isDateFormatCode(code)
	}
	return false
}

// isDateFormatCode reports whether a number format code renders a date.
// Quoted literals, escaped, padding and fill characters and bracketed sections
// are ignored. A bare "m" only counts as a month when no hour or second token
// is present.
func isDateFormatCode(code string) bool {
	var b strings.Builder
	var inQuote, inBracket, escaped bool
	for _, r := range code {
		switch {
		case escaped:
			escaped = false
		case inQuote:
			inQuote = r != '"'
		case inBracket:
			inBracket = r != ']'
		case r == '\\', r == '_', r == '*':
			escaped = true
		case r == '"':
			inQuote = true
		case r == '[':
			inBracket = true
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}

	tokens := b.String()
	if strings.ContainsAny(tokens, "dy") {
		return true
	}
	return strings.Contains(tokens, "m") && !strings.ContainsAny(tokens, "hs")
}

// decodeString reads a BIFF8 unicode string with a 16-bit character count.
func decodeString(b []byte) string {
	if len(b) < 3 {
		return ""
	}
	n := int(binary.LittleEndian.Uint16(b))
	flags := b[2]
	b = b[3:]
	if flags&0x08 != 0 {
		if len(b) < 2 {
			return ""
		}
		b = b[2:]
	}
	if flags&0x04 != 0 {
		if len(b) < 4 {
			return ""
		}
		b = b[4:]
	}

	if flags&0x01 == 0 {
		return latin1(b[:min(n, len(b))])
	}
	n = min(n, len(b)/2)
	units := make([]uint16, n)
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(b[2*i:])
	}
	return string(utf16.Decode(units))
}

func latin1(b []byte) string {
	runes := make([]rune, len(b))
	for i, c := range b {
		runes[i] = rune(c)
	}
	return string(runes)
}
