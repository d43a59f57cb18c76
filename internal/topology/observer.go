package topology

// Logger interface for logging membership operations, injectable into the
// topology package.
type Logger interface {
	Debugf(format string, v ...any)
	Infof(format string, v ...any)
	Warnf(format string, v ...any)
	Errorf(format string, v ...any)
}

// NopLogger is a logger that does nothing (the default for new molecules).
type NopLogger struct{}

func (NopLogger) Debugf(format string, v ...any) {}
func (NopLogger) Infof(format string, v ...any)  {}
func (NopLogger) Warnf(format string, v ...any)  {}
func (NopLogger) Errorf(format string, v ...any) {}

// Kind names the element type an operation targeted.
type Kind string

const (
	KindAtom    Kind = "atom"
	KindResidue Kind = "residue"
	KindChain   Kind = "chain"
)

// Operation names reported in events.
const (
	OpAddAtoms     = "add-atoms"
	OpInsertAtom   = "insert-atom"
	OpAddToResidue = "add-to-residue"
	OpAddResidues  = "add-residues"
	OpAddChains    = "add-chains"
	OpPopAtom      = "pop-atom"
	OpPopResidue   = "pop-residue"
	OpPopChain     = "pop-chain"
)

// Event describes one committed or rejected operation. Atoms, Residues and
// Chains are the molecule's list lengths after the operation.
type Event struct {
	Molecule string
	Op       string
	Kind     Kind
	Count    int
	Atoms    int
	Residues int
	Chains   int
}

// Observer is notified after every committed operation and every rejected
// one. Rejected operations leave the molecule unchanged.
type Observer interface {
	OnCommit(ev Event)
	OnReject(ev Event, err error)
}

type Option func(*Molecule)

func WithLogger(l Logger) Option {
	return func(m *Molecule) {
		if l != nil {
			m.log = l
		}
	}
}

func WithObserver(o Observer) Option {
	return func(m *Molecule) {
		if o != nil {
			m.observers = append(m.observers, o)
		}
	}
}
