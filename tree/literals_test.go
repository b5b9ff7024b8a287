package tree

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNumberCloneIsDeepEqual(t *testing.T) {
	n := NewNumber(4.5, "px")
	n.PreComments = []*Comment{NewComment("// note")}

	clone := n.Clone().(*Number)
	if diff := cmp.Diff(n, clone); diff != "" {
		t.Fatalf("clone diverged from original (-want +got):\n%s", diff)
	}

	// Mutating the clone's comment slice must not alias the original's.
	clone.PreComments[0] = NewComment("// changed")
	if diff := cmp.Diff(n, clone); diff == "" {
		t.Fatalf("expected clone's PreComments to be an independent copy")
	}
}

func TestNumberOperateUnitRules(t *testing.T) {
	cases := []struct {
		name       string
		left       *Number
		op         byte
		right      *Number
		want       *Number
		wantErr    bool
	}{
		{name: "same unit add", left: NewNumber(10, "px"), op: '+', right: NewNumber(4, "px"), want: NewNumber(14, "px")},
		{name: "bare unit adopts other side's unit", left: NewNumber(10, ""), op: '+', right: NewNumber(4, "px"), want: NewNumber(14, "px")},
		{name: "incompatible units rejected", left: NewNumber(10, "px"), op: '+', right: NewNumber(4, "s"), wantErr: true},
		{name: "divide by zero rejected", left: NewNumber(10, "px"), op: '/', right: NewNumber(0, ""), wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.left.Operate(tc.op, tc.right, 0, "input.less")
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected an error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.want, got, cmp.Comparer(func(a, b *Number) bool {
				return a.Value == b.Value && a.Unit == b.Unit
			})); diff != "" {
				t.Fatalf("Operate result mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestColorStringShorthand(t *testing.T) {
	white := NewColor(255, 255, 255, 1)
	if got, want := white.String(true), "#fff"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if got, want := white.String(false), "#ffffff"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestColorOperateNumberMatchesColorOperate(t *testing.T) {
	grey := NewColor(128, 128, 128, 1)
	ten := NewNumber(10, "")

	a := grey.OperateNumber('+', ten)
	b := grey.Operate('+', NewColor(10, 10, 10, 1))
	if diff := cmp.Diff(a, b, cmp.Comparer(func(x, y *Color) bool {
		return x.R == y.R && x.G == y.G && x.B == y.B && x.A == y.A
	})); diff != "" {
		t.Fatalf("color+number should match componentwise color+color (-want +got):\n%s", diff)
	}
}
