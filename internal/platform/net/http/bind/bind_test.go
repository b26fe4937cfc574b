package bind_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "tglang/internal/platform/errors"
	"tglang/internal/platform/net/http/bind"
)

type detectIn struct {
	Text string `json:"text" validate:"required,maxbytes=8"`
	Hint string `json:"hint,omitempty" validate:"omitempty,min=2"`
}

func post(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/detect", strings.NewReader(body))
}

func TestParseJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		body      string
		opts      bind.JSONOptions
		wantCode  perr.ErrorCode
		wantField string
		wantMsg   string
	}{
		{name: "ok", body: `{"text":"fn main"}`},
		{name: "empty", body: ``, wantCode: perr.ErrorCodeJSON, wantMsg: "empty body"},
		{name: "empty allowed still validates", body: ``, opts: bind.JSONOptions{AllowEmptyBody: true},
			wantCode: perr.ErrorCodeValidation, wantField: "text"},
		{name: "malformed", body: `{"text":`, wantCode: perr.ErrorCodeJSON, wantMsg: "invalid JSON"},
		{name: "unknown field", body: `{"text":"a","x":1}`, wantCode: perr.ErrorCodeJSON, wantMsg: "unknown field"},
		{name: "unknown allowed", body: `{"text":"a","x":1}`, opts: bind.JSONOptions{AllowUnknown: true}},
		{name: "trailing", body: `{"text":"a"}{"text":"b"}`, wantCode: perr.ErrorCodeJSON, wantMsg: "trailing"},
		{name: "too large", body: `{"text":"` + strings.Repeat("a", 64) + `"}`, opts: bind.JSONOptions{MaxBytes: 16},
			wantCode: perr.ErrorCodeTooLarge, wantMsg: "exceeds 16 bytes"},
		{name: "required", body: `{"text":""}`, wantCode: perr.ErrorCodeValidation, wantField: "text", wantMsg: "required"},
		// 4 runes, 9 bytes
		{name: "maxbytes counts bytes", body: `{"text":"ééé€"}`, wantCode: perr.ErrorCodeValidation,
			wantField: "text", wantMsg: "text must be at most 8 bytes"},
		{name: "min", body: `{"text":"a","hint":"g"}`, wantCode: perr.ErrorCodeValidation,
			wantField: "hint", wantMsg: "hint must be at least 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := bind.ParseJSON[detectIn](post(tt.body), tt.opts)
			if tt.wantCode == 0 && tt.wantField == "" && tt.wantMsg == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error")
			}
			if got := perr.CodeOf(err); got != tt.wantCode {
				t.Fatalf("code = %v, want %v (%v)", got, tt.wantCode, err)
			}
			w := perr.WireFrom(err)
			if w.Field != tt.wantField {
				t.Fatalf("field = %q, want %q", w.Field, tt.wantField)
			}
			if !strings.Contains(w.Message, tt.wantMsg) {
				t.Fatalf("message = %q, want %q", w.Message, tt.wantMsg)
			}
		})
	}
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()

	err := bind.RegisterValidation("upper", "{0} must be upper case", func(fl bind.FieldLevel) bool {
		s := fl.Field().String()
		return s == strings.ToUpper(s)
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	type in struct {
		Language string `json:"language" validate:"upper"`
	}
	if err := bind.Struct(in{Language: "RUST"}); err != nil {
		t.Fatalf("valid: %v", err)
	}
	err = bind.Struct(in{Language: "rust"})
	w := perr.WireFrom(err)
	if w.Field != "language" || w.Message != "language must be upper case" {
		t.Fatalf("wire = %+v", w)
	}
}

func TestFieldAndMessage_Plain(t *testing.T) {
	t.Parallel()
	if f, m := bind.FieldAndMessage(nil); f != "" || m != "" {
		t.Fatalf("nil = %q %q", f, m)
	}
	if f, m := bind.FieldAndMessage(perr.InvalidArgf("boom")); f != "" || m != "boom" {
		t.Fatalf("plain = %q %q", f, m)
	}
}
