package topology

import (
	"errors"
	"strings"
	"testing"
)

func TestOwnedList_AddStampsOwner(t *testing.T) {
	l := newOwnedList[*Atom](7)
	as := newAtoms("a", "b", "c")

	if err := l.Add(as[0]); err != nil {
		t.Fatalf("Add error = %v", err)
	}
	if err := l.AddMany(as[1:]); err != nil {
		t.Fatalf("AddMany error = %v", err)
	}
	for _, a := range as {
		if a.Owner() != 7 {
			t.Errorf("%s owner = %s, want 7", a, a.Owner())
		}
	}
	checkIndices(t, &l.list)
}

func TestOwnedList_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		batch  func(l *OwnedList[*Atom], own []*Atom) []*Atom
		reason string
	}{
		{
			name:   "already here",
			batch:  func(_ *OwnedList[*Atom], own []*Atom) []*Atom { return []*Atom{own[0]} },
			reason: "cannot appear twice",
		},
		{
			name: "other molecule",
			batch: func(_ *OwnedList[*Atom], _ []*Atom) []*Atom {
				a := newAtoms("x")[0]
				a.setOwner(99)
				return []*Atom{a}
			},
			reason: "already a member of molecule 99",
		},
		{
			name: "claims owner but missing",
			batch: func(l *OwnedList[*Atom], _ []*Atom) []*Atom {
				a := newAtoms("x")[0]
				a.setOwner(l.Owner())
				return []*Atom{a}
			},
			reason: "missing from its list",
		},
		{
			name: "duplicate in batch",
			batch: func(_ *OwnedList[*Atom], _ []*Atom) []*Atom {
				a := newAtoms("x")[0]
				return []*Atom{a, a}
			},
			reason: "more than once",
		},
		{
			name:   "nil element",
			batch:  func(_ *OwnedList[*Atom], _ []*Atom) []*Atom { return []*Atom{nil} },
			reason: "cannot be added",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newOwnedList[*Atom](3)
			own := newAtoms("a", "b")
			if err := l.AddMany(own); err != nil {
				t.Fatal(err)
			}
			batch := tt.batch(&l, own)
			fresh := newAtoms("fresh")[0]
			batch = append([]*Atom{fresh}, batch...)

			err := l.AddMany(batch)
			if !errors.Is(err, ErrOwnership) {
				t.Fatalf("AddMany error = %v, want ErrOwnership", err)
			}
			if !strings.Contains(err.Error(), tt.reason) {
				t.Errorf("error %q does not mention %q", err, tt.reason)
			}
			if l.Len() != 2 {
				t.Errorf("Len() = %d after rejected batch, want 2", l.Len())
			}
			if fresh.Owner() != 0 || fresh.Index() != -1 {
				t.Errorf("valid member of rejected batch was committed: owner %s index %d", fresh.Owner(), fresh.Index())
			}
		})
	}
}

func TestOwnedList_PopClearsOwner(t *testing.T) {
	l := newOwnedList[*Atom](5)
	as := newAtoms("a", "b", "c")
	if err := l.AddMany(as); err != nil {
		t.Fatal(err)
	}

	a, err := l.Pop(-1)
	if err != nil {
		t.Fatal(err)
	}
	if a != as[2] || a.Owner() != 0 || a.Index() != -1 {
		t.Errorf("Pop(-1) = %s owner %s, want detached c", a, a.Owner())
	}

	if err := l.Remove(as[0]); err != nil {
		t.Fatal(err)
	}
	if as[0].Owner() != 0 {
		t.Errorf("removed atom still owned by %s", as[0].Owner())
	}
	if l.Len() != 1 || l.At(0) != as[1] || as[1].Index() != 0 {
		t.Errorf("remaining list wrong: len %d", l.Len())
	}

	if err := l.Add(a); err != nil {
		t.Errorf("re-adding popped atom: %v", err)
	}
}

func TestOwnedList_Insert(t *testing.T) {
	l := newOwnedList[*Atom](2)
	as := newAtoms("a", "b")
	if err := l.AddMany(as); err != nil {
		t.Fatal(err)
	}
	x := newAtoms("x")[0]
	if err := l.Insert(5, x); !errors.Is(err, ErrIndexRange) {
		t.Fatalf("Insert(5) error = %v, want ErrIndexRange", err)
	}
	if x.Owner() != 0 {
		t.Error("out-of-range insert stamped the owner")
	}
	if err := l.Insert(1, x); err != nil {
		t.Fatal(err)
	}
	if got := names(l.Items()); got != "axb" {
		t.Errorf("order = %q, want %q", got, "axb")
	}
	checkIndices(t, &l.list)
}

func TestOwnedList_InsertManyRemoveWhere(t *testing.T) {
	l := newOwnedList[*Atom](4)
	as := newAtoms("a", "b", "c", "d")
	if err := l.AddMany(as[:2]); err != nil {
		t.Fatal(err)
	}
	if err := l.insertMany(1, as[2:]); err != nil {
		t.Fatal(err)
	}
	if got := names(l.Items()); got != "acdb" {
		t.Errorf("order = %q, want %q", got, "acdb")
	}
	for _, a := range as {
		if a.Owner() != 4 {
			t.Errorf("%s owner = %s, want 4", a, a.Owner())
		}
	}

	removed := l.removeWhere(func(a *Atom) bool { return a == as[0] || a == as[3] })
	if got := names(removed); got != "ad" {
		t.Errorf("removed = %q, want %q", got, "ad")
	}
	for _, a := range removed {
		if a.Owner() != 0 || a.Index() != -1 {
			t.Errorf("%s still attached: owner %s index %d", a, a.Owner(), a.Index())
		}
	}
	if got := names(l.Items()); got != "cb" {
		t.Errorf("remaining = %q, want %q", got, "cb")
	}
	checkIndices(t, &l.list)
}

func TestOwnedList_RemoveNil(t *testing.T) {
	l := newOwnedList[*Atom](1)
	if err := l.AddMany(newAtoms("a")); err != nil {
		t.Fatal(err)
	}
	if err := l.Remove(nil); !errors.Is(err, ErrIdentity) {
		t.Errorf("Remove(nil) error = %v, want ErrIdentity", err)
	}
	if l.Contains(nil) {
		t.Error("Contains(nil) = true")
	}
	if l.Len() != 1 {
		t.Errorf("Len() = %d, want 1", l.Len())
	}
}
