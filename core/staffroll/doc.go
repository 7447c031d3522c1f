// Package staffroll converts the NSMBW credits file (staffroll.bin)
// to and from an editable text form.
//
// # Binary Layout
//
// All integers are big-endian uint32:
//
//	line_count
//	line_count × {
//	    header          0xFFFFFFFF marks a blank line and ends the record
//	    char_count      characters plus copyright markers (non-blank only)
//	    char_count × word
//	}
//
// For a non-blank record the header is the line's indent. Each word is
// either the copyright marker 0x20000000 or a packed character:
//
//	bit  28     bold
//	bits 4-11   codepoint - 32
//	bits 0-3    block contents (0 random, 1 coin, 2 no coin, >=3 unbreakable)
//
// # Text Layout
//
// One record per line, blank records as empty lines, everything else as
// "[indent]:content". Content mixes plain text with the tokens
// <copyrights>, <bold>, </bold>, <coin>, </coin>, <no_coin>, </no_coin>,
// <unbreakable> and </unbreakable>. Tokens are matched case-insensitively
// and written in lowercase. An omitted indent means "center the line",
// see [Line.AutoIndent].
//
// # Model
//
// Both codecs meet only at [Line]: an indent plus a sequence of [Part]
// values, each either [Text] or a [Tag]. A [File] is a slice of *Line in
// display order where nil entries are blank lines.
//
// Lines are independent of each other, so file-level operations on a
// [Codec] decode and encode lines in parallel and reassemble them in
// order.
package staffroll
