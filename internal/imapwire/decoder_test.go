package imapwire_test

import (
	"bufio"
	"strings"
	"testing"

	"github.com/emersion/go-imapauth/internal/imapwire"
)

func newDecoder(s string) *imapwire.Decoder {
	return imapwire.NewDecoder(bufio.NewReader(strings.NewReader(s)))
}

func TestAtom(t *testing.T) {
	tests := []struct {
		in   string
		atom string
		ok   bool
	}{
		{"OK ", "OK", true},
		{"T1 OK", "T1", true},
		{"CAPABILITY\r\n", "CAPABILITY", true},
		{"AUTH=PLAIN ", "AUTH=PLAIN", true},
		{"IMAP4rev1]", "IMAP4rev1", true},
		{" leading", "", false},
		{"\r\n", "", false},
	}
	for _, test := range tests {
		dec := newDecoder(test.in)
		var atom string
		ok := dec.Atom(&atom)
		if ok != test.ok {
			t.Errorf("Atom(%q) ok = %v, want %v", test.in, ok, test.ok)
			continue
		}
		if ok && atom != test.atom {
			t.Errorf("Atom(%q) = %q, want %q", test.in, atom, test.atom)
		}
	}
}

func TestText(t *testing.T) {
	dec := newDecoder("Logging in has failed\r\n")
	var text string
	if !dec.Text(&text) {
		t.Fatalf("Text() failed: %v", dec.Err())
	}
	if text != "Logging in has failed" {
		t.Errorf("Text() = %q, want %q", text, "Logging in has failed")
	}
	if !dec.CRLF() {
		t.Error("CRLF() failed after text")
	}
}

func TestStatusLine(t *testing.T) {
	dec := newDecoder("T1 OK Completed\r\n")

	var tag, typ, text string
	if !dec.ExpectAtom(&tag) || !dec.ExpectSP() || !dec.ExpectAtom(&typ) || !dec.ExpectSP() || !dec.ExpectText(&text) || !dec.ExpectCRLF() {
		t.Fatalf("decoding status line failed: %v", dec.Err())
	}
	if tag != "T1" || typ != "OK" || text != "Completed" {
		t.Errorf("got %q %q %q", tag, typ, text)
	}
}

func TestSpecial(t *testing.T) {
	dec := newDecoder("+ go ahead\r\n")
	if !dec.Special('+') {
		t.Fatal("Special('+') failed")
	}
	if dec.Special('*') {
		t.Error("Special('*') matched a space")
	}
	if !dec.ExpectSP() {
		t.Fatalf("ExpectSP() failed: %v", dec.Err())
	}
}

func TestExpectError(t *testing.T) {
	dec := newDecoder("NO\r\n")
	if dec.ExpectSpecial('+') {
		t.Fatal("ExpectSpecial('+') matched 'N'")
	}
	err := dec.Err()
	if err == nil {
		t.Fatal("Err() = nil after failed expectation")
	}
	if want := "expected '+', got 'N'"; err.Error() != want {
		t.Errorf("Err() = %q, want %q", err, want)
	}

	// The first error sticks
	var atom string
	dec.Atom(&atom)
	if dec.Err().Error() != "expected '+', got 'N'" {
		t.Errorf("sticky error lost: %v", dec.Err())
	}
}

func TestDiscardLine(t *testing.T) {
	dec := newDecoder("* 23 EXISTS\r\n+ ready\r\n")
	if !dec.DiscardLine() {
		t.Fatalf("DiscardLine() failed: %v", dec.Err())
	}
	if !dec.Special('+') {
		t.Error("DiscardLine() did not stop at the line terminator")
	}
}

func TestUnexpectedEOF(t *testing.T) {
	dec := newDecoder("T1 OK")
	var tag, typ, text string
	dec.ExpectAtom(&tag)
	dec.ExpectSP()
	dec.ExpectAtom(&typ)
	dec.ExpectSP()
	dec.ExpectText(&text)
	if dec.Err() == nil {
		t.Error("Err() = nil on truncated input")
	}
}
