package repokit

import (
	"testing"

	kit "tglang/internal/platform/testkit"
)

type repo struct{ q Queryer }

func TestMustBind(t *testing.T) {
	t.Parallel()
	b := BindFunc[repo](func(q Queryer) repo { return repo{q: q} })

	q := &recQ{}
	if got := MustBind[repo](b, q); got.q != q {
		t.Fatalf("bound to wrong queryer")
	}
	kit.MustPanic(t, func() { MustBind[repo](b, nil) })
}
