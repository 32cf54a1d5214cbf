package internal_test

import (
	"bytes"
	"testing"

	"github.com/emersion/go-imapauth/internal"
	"github.com/emersion/go-imapauth/msgbuf"
)

func TestEncodeSASL(t *testing.T) {
	tests := []struct {
		in   []byte
		want string
	}{
		{nil, "="},
		{[]byte{}, "="},
		{[]byte("\x00tim\x00tanstaaftanstaaf"), "AHRpbQB0YW5zdGFhZnRhbnN0YWFm"},
	}
	for _, test := range tests {
		if got := internal.EncodeSASL(test.in); got != test.want {
			t.Errorf("EncodeSASL(%q) = %q, want %q", test.in, got, test.want)
		}
	}
}

func TestDecodeSASL(t *testing.T) {
	b, err := internal.DecodeSASL("=")
	if err != nil {
		t.Fatalf("DecodeSASL(\"=\") failed: %v", err)
	}
	if b == nil || len(b) != 0 {
		t.Errorf("DecodeSASL(\"=\") = %v, want a non-nil empty slice", b)
	}

	b, err = internal.DecodeSASL("AHRpbQB0YW5zdGFhZnRhbnN0YWFm")
	if err != nil {
		t.Fatalf("DecodeSASL failed: %v", err)
	}
	if !bytes.Equal(b, []byte("\x00tim\x00tanstaaftanstaaf")) {
		t.Errorf("DecodeSASL = %q, want the RFC 4616 example payload", b)
	}

	if _, err := internal.DecodeSASL("!!!"); err == nil {
		t.Error("DecodeSASL(\"!!!\") succeeded, want error")
	}
}

func TestPlainCommand(t *testing.T) {
	// RFC 4616 example credentials, with tim as both identities
	buf := msgbuf.New()
	n, err := internal.PlainCommand(buf, "AUTHENTICATE PLAIN", "tim", "tim", "tanstaaftanstaaf")
	if err != nil {
		t.Fatalf("PlainCommand failed: %v", err)
	}
	want := "AUTHENTICATE PLAIN dGltAHRpbQB0YW5zdGFhZnRhbnN0YWFm"
	if got := buf.String(); got != want {
		t.Errorf("buffer = %q, want %q", got, want)
	}
	if n != len(want) {
		t.Errorf("PlainCommand returned %v, want %v", n, len(want))
	}
}
