package strings

import "testing"

func TestIfEmpty(t *testing.T) {
	t.Parallel()

	if got := IfEmpty([]string{"https://a.dev"}, []string{"*"}); len(got) != 1 || got[0] != "https://a.dev" {
		t.Fatalf("IfEmpty replaced a non empty slice: %#v", got)
	}
	var empty []string
	if got := IfEmpty(empty, []string{"*"}); len(got) != 1 || got[0] != "*" {
		t.Fatalf("IfEmpty did not return default: %#v", got)
	}
}

func TestMustString(t *testing.T) {
	if got := MustString("detect", "module name"); got != "detect" {
		t.Fatalf("want detect got %q", got)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("want panic for blank name")
		}
	}()
	_ = MustString("   ", "module name")
}

func TestMustPrefix(t *testing.T) {
	cases := map[string]string{
		"/detect/":   "/detect",
		" detect  ":  "/detect",
		"//detect//": "/detect",
		"/":          "", // panics
		"":           "", // panics
	}
	for in, want := range cases {
		if want == "" {
			func() {
				defer func() {
					if recover() == nil {
						t.Fatalf("want panic for %q", in)
					}
				}()
				_ = MustPrefix(in)
			}()
			continue
		}
		if got := MustPrefix(in); got != want {
			t.Fatalf("in %q want %q got %q", in, want, got)
		}
	}
}

func TestSQLNull(t *testing.T) {
	t.Parallel()

	if SQLNull("  ") != nil {
		t.Fatal("blank should map to NULL")
	}
	if got := SQLNull("wrong label"); got != "wrong label" {
		t.Fatalf("got %v", got)
	}
}
