package pyramid

import "testing"

func TestComputeMovement(t *testing.T) {
	t.Parallel()

	current := []string{"t1", "t4", "t2", "t3"}
	previous := []string{"t1", "t2", "t3", "t4"}

	if got := ComputeMovement("t4", current, previous); got != MovementUp {
		t.Fatalf("t4 movement=%s want up", got)
	}
	if got := ComputeMovement("t2", current, previous); got != MovementDown {
		t.Fatalf("t2 movement=%s want down", got)
	}
	if got := ComputeMovement("t1", current, previous); got != MovementNone {
		t.Fatalf("t1 movement=%s want none", got)
	}
}

func TestComputeMovement_NoHistory(t *testing.T) {
	t.Parallel()

	order := []string{"t1", "t2"}
	if got := ComputeMovement("t2", order, nil); got != MovementNone {
		t.Fatalf("movement without previous=%s want none", got)
	}
	if got := ComputeMovement("t3", append(order, "t3"), order); got != MovementNone {
		t.Fatalf("new entrant movement=%s want none", got)
	}
	if got := ComputeMovement("ghost", order, order); got != MovementNone {
		t.Fatalf("unknown team movement=%s want none", got)
	}
}
