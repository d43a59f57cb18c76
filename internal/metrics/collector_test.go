package metrics

import (
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/san-kum/moltopo/internal/numeric"
	"github.com/san-kum/moltopo/internal/topology"
)

func TestCollectorCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	if err != nil {
		t.Fatal(err)
	}

	mol := topology.New("water", topology.WithObserver(c))
	atoms := []*topology.Atom{
		topology.NewAtom("O", 15.999, numeric.Vec3{}, numeric.Vec3{}),
		topology.NewAtom("H", 1.008, numeric.Vec3{}, numeric.Vec3{}),
	}
	if err := mol.Atoms().AddMany(atoms); err != nil {
		t.Fatal(err)
	}
	_ = mol.Atoms().Add(atoms[0])
	_, _ = mol.Atoms().Pop(7)
	if _, err := mol.Atoms().Pop(0); err != nil {
		t.Fatal(err)
	}

	if got := testutil.ToFloat64(c.commits.WithLabelValues(topology.OpAddAtoms)); got != 1 {
		t.Errorf("add commits = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.commits.WithLabelValues(topology.OpPopAtom)); got != 1 {
		t.Errorf("pop commits = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.rejections.WithLabelValues(topology.OpAddAtoms, "ownership")); got != 1 {
		t.Errorf("ownership rejections = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.rejections.WithLabelValues(topology.OpPopAtom, "index")); got != 1 {
		t.Errorf("index rejections = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.atoms.WithLabelValues("water")); got != 1 {
		t.Errorf("atoms gauge = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.chains.WithLabelValues("water")); got != 1 {
		t.Errorf("chains gauge = %v, want 1", got)
	}
	if n := testutil.CollectAndCount(c.rejections); n != 2 {
		t.Errorf("rejection series = %d, want 2", n)
	}
}

func TestCollectorDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewCollector(reg); err != nil {
		t.Fatal(err)
	}
	if _, err := NewCollector(reg); err == nil {
		t.Error("expected error registering twice")
	}
}

func TestReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&topology.OwnershipError{Element: "x"}, "ownership"},
		{&topology.StructureError{}, "structure"},
		{&topology.IdentityError{}, "identity"},
		{fmt.Errorf("%w: 3", topology.ErrIndexRange), "index"},
		{fmt.Errorf("%w: x", topology.ErrNotOwned), "not_owned"},
		{errors.New("boom"), "other"},
	}

	for _, tt := range tests {
		if got := Reason(tt.err); got != tt.want {
			t.Errorf("Reason(%v) = %s, want %s", tt.err, got, tt.want)
		}
	}
}
