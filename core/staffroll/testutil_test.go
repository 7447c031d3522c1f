package staffroll

import (
	"encoding/binary"
	"testing"
)

// words builds a big-endian byte image from 32-bit words.
func words(ws ...uint32) []byte {
	out := make([]byte, 0, len(ws)*4)
	for _, w := range ws {
		out = binary.BigEndian.AppendUint32(out, w)
	}
	return out
}

// char packs one character the way the game does.
func char(r rune, bold bool, c Contents) uint32 {
	return formatState{bold: bold, contents: c}.pack(r)
}

// plain packs a string of unformatted characters.
func plain(s string) []uint32 {
	var ws []uint32
	for _, r := range s {
		ws = append(ws, char(r, false, ContentsRandom))
	}
	return ws
}

// record builds a non-blank binary record.
func record(indent uint32, chars ...uint32) []uint32 {
	return append([]uint32{indent, uint32(len(chars))}, chars...)
}

// fileImage builds a whole staffroll.bin from records.
func fileImage(records ...[]uint32) []byte {
	ws := []uint32{uint32(len(records))}
	for _, r := range records {
		ws = append(ws, r...)
	}
	return words(ws...)
}

var blankRecord = []uint32{blankSentinel}

// sampleImage is a small credits file exercising every kind of record.
func sampleImage() []byte {
	var bold []uint32
	for _, r := range "STAFF" {
		bold = append(bold, char(r, true, ContentsRandom))
	}
	var mixed []uint32
	mixed = append(mixed, plain("Ab")...)
	mixed = append(mixed, char('c', false, ContentsForceCoin), char('d', true, ContentsForceCoin))
	mixed = append(mixed, char('e', true, ContentsNoCoin), char('f', false, ContentsUnbreakable))
	mixed = append(mixed, plain("g")...)

	return fileImage(
		record(10, bold...),
		blankRecord,
		record(3, plain("Caety Sagoian")...),
		record(0, append([]uint32{copyrightWord}, plain("2009 Nintendo")...)...),
		blankRecord,
		record(12, mixed...),
		record(15),
	)
}

func mustDecodeBinary(t *testing.T, data []byte) File {
	t.Helper()
	f, err := DecodeBinary(data)
	if err != nil {
		t.Fatalf("DecodeBinary failed: %v", err)
	}
	return f
}
