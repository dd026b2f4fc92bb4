package component

import "testing"

func TestAnimatorEmitsOnlyChanges(t *testing.T) {
	cases := []struct {
		name  string
		apply func(a *Animator)
		want  int
	}{
		{"first_write", func(a *Animator) { a.SetFlag("isWalking", false) }, 1},
		{"same_value_twice", func(a *Animator) {
			a.SetFlag("isWalking", true)
			a.SetFlag("isWalking", true)
		}, 1},
		{"toggle", func(a *Animator) {
			a.SetFlag("isRunning", true)
			a.SetFlag("isRunning", false)
		}, 2},
		{"integer", func(a *Animator) {
			a.SetInteger("jumpCount", 1)
			a.SetInteger("jumpCount", 1)
			a.SetInteger("jumpCount", 2)
		}, 2},
		{"empty_name", func(a *Animator) { a.SetFlag("", true) }, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := NewAnimator()
			got := 0
			a.OnChange(func(*Animator, AnimatorChange) { got++ })
			c.apply(a)
			if got != c.want {
				t.Fatalf("expected %d changes, got %d", c.want, got)
			}
		})
	}
}

func TestAnimatorSnapshot(t *testing.T) {
	a := NewAnimator()
	a.SetInteger("jumpCount", 3)
	a.SetFlag("isWalking", true)
	a.SetFlag("isFalling", false)

	if !a.Flag("isWalking") || a.Flag("isFalling") || a.Int("jumpCount") != 3 {
		t.Fatalf("unexpected values: %s", a)
	}
	if got, want := a.String(), "isFalling=false isWalking=true jumpCount=3"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	var nilAnim *Animator
	nilAnim.SetFlag("isWalking", true)
	if nilAnim.Flag("isWalking") || nilAnim.Snapshot() != nil {
		t.Fatalf("nil animator should be inert")
	}
}
