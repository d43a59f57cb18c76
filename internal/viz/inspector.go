package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/moltopo/internal/metrics"
	"github.com/san-kum/moltopo/internal/topology"
)

const (
	logHeight  = 6
	treeHeight = 16
	viewWidth  = 36
	viewHeight = 12
)

type keyMap struct {
	Up, Down    key.Binding
	Pop         key.Binding
	View        key.Binding
	Left, Right key.Binding
	Theme       key.Binding
	Quit        key.Binding
}

var keys = keyMap{
	Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("j/k", "navigate")),
	Down:  key.NewBinding(key.WithKeys("down", "j")),
	Pop:   key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "pop")),
	View:  key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "structure")),
	Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("h/l", "rotate")),
	Right: key.NewBinding(key.WithKeys("right", "l")),
	Theme: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
	Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// row is one line of the tree: exactly one of chain, residue, atom is set.
type row struct {
	depth   int
	chain   *topology.Chain
	residue *topology.Residue
	atom    *topology.Atom
}

func (r row) kind() topology.Kind {
	switch {
	case r.atom != nil:
		return topology.KindAtom
	case r.residue != nil:
		return topology.KindResidue
	default:
		return topology.KindChain
	}
}

// Inspector is the Bubble Tea model behind `moltopo inspect`.
type Inspector struct {
	mol    *topology.Molecule
	events *EventLog
	rows   []row
	cursor int

	status    string
	statusBad bool

	log      viewport.Model
	cam      *Camera
	showView bool
	theme    int
	style    palette
	width    int
}

// NewInspector browses mol. events may be nil; when set it should be the
// observer the molecule was built with.
func NewInspector(mol *topology.Molecule, events *EventLog) Inspector {
	m := Inspector{
		mol:    mol,
		events: events,
		log:    viewport.New(80, logHeight),
		cam:    NewCamera(),
		style:  newPalette(Themes[0]),
		width:  80,
	}
	m.rebuild()
	return m
}

func (m Inspector) Init() tea.Cmd { return nil }

func (m Inspector) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.log.Width = msg.Width
	}
	return m, nil
}

func (m Inspector) handleKey(msg tea.KeyMsg) (Inspector, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Pop):
		m.pop()
	case key.Matches(msg, keys.View):
		m.showView = !m.showView
	case key.Matches(msg, keys.Left):
		m.cam.RotateY(-0.2)
	case key.Matches(msg, keys.Right):
		m.cam.RotateY(0.2)
	case key.Matches(msg, keys.Theme):
		m.theme = (m.theme + 1) % len(Themes)
		m.style = newPalette(Themes[m.theme])
		m.setStatus("theme "+Themes[m.theme].Name, false)
	}
	return m, nil
}

// Selected returns the kind and display name of the row under the cursor.
func (m Inspector) Selected() (topology.Kind, string, bool) {
	if len(m.rows) == 0 {
		return "", "", false
	}
	r := m.rows[m.cursor]
	return r.kind(), label(r), true
}

func (m Inspector) Rows() int { return len(m.rows) }

func (m Inspector) Status() string { return m.status }

func (m *Inspector) pop() {
	if len(m.rows) == 0 {
		m.setStatus("nothing to pop", true)
		return
	}
	r := m.rows[m.cursor]
	name := label(r)
	var err error
	switch {
	case r.atom != nil:
		err = m.mol.Atoms().Remove(r.atom)
	case r.residue != nil:
		err = m.mol.Residues().Remove(r.residue)
	default:
		err = m.mol.Chains().Remove(r.chain)
	}
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	if err := m.mol.Validate(); err != nil {
		m.setStatus(err.Error(), true)
	} else {
		m.setStatus("popped "+name, false)
	}
	m.rebuild()
}

func (m *Inspector) setStatus(s string, bad bool) {
	m.status, m.statusBad = s, bad
}

func (m *Inspector) rebuild() {
	m.rows = nil
	for _, c := range m.mol.Chains().Items() {
		m.rows = append(m.rows, row{depth: 0, chain: c})
		for _, r := range c.Residues() {
			m.rows = append(m.rows, row{depth: 1, chain: c, residue: r})
			for _, a := range r.Atoms() {
				m.rows = append(m.rows, row{depth: 2, chain: c, residue: r, atom: a})
			}
		}
	}
	if m.cursor >= len(m.rows) {
		m.cursor = max(0, len(m.rows)-1)
	}
	if m.events != nil {
		m.log.SetContent(strings.Join(m.events.Lines(), "\n"))
		m.log.GotoBottom()
	}
}

func label(r row) string {
	switch {
	case r.atom != nil:
		return r.atom.String()
	case r.residue != nil:
		return r.residue.String()
	default:
		return r.chain.String()
	}
}

func (m Inspector) View() string {
	var b strings.Builder
	s := m.style

	b.WriteString("\n  " + s.title.Render("MOLTOPO") + "  " + s.normal.Render(m.mol.Name()) + "\n")
	b.WriteString("  " + s.muted.Render(fmt.Sprintf("%d chains · %d residues · %d atoms · %d dims",
		m.mol.Chains().Len(), m.mol.Residues().Len(), m.mol.Atoms().Len(), m.mol.NDims())) + "\n")
	b.WriteString("  " + Separator(min(m.width-4, 60)) + "\n")

	tree := m.viewTree()
	side := m.viewDetail()
	if m.showView {
		side = m.cam.Render(m.mol, viewWidth, viewHeight).String()
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tree, "  ", s.panel.Render(side)) + "\n")

	if m.status != "" {
		st := s.ok
		if m.statusBad {
			st = s.bad
		}
		b.WriteString("  " + st.Render(m.status) + "\n")
	}
	if m.events != nil {
		b.WriteString(s.muted.Render(m.log.View()) + "\n")
	}
	b.WriteString("\n  " + m.help() + "\n")
	return b.String()
}

func (m Inspector) viewTree() string {
	s := m.style
	if len(m.rows) == 0 {
		return s.muted.Render("  (empty molecule)")
	}
	start := max(0, min(m.cursor-treeHeight/2, len(m.rows)-treeHeight))
	end := min(len(m.rows), start+treeHeight)

	var b strings.Builder
	for i := start; i < end; i++ {
		r := m.rows[i]
		text := fmt.Sprintf("%-26s", strings.Repeat("  ", r.depth)+label(r))
		if i == m.cursor {
			b.WriteString("  " + s.selected.Render("▸ "+text) + "\n")
		} else {
			b.WriteString("    " + s.normal.Render(text) + "\n")
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m Inspector) viewDetail() string {
	s := m.style
	if len(m.rows) == 0 {
		return s.muted.Render("nothing selected")
	}
	r := m.rows[m.cursor]

	var atoms []*topology.Atom
	switch {
	case r.atom != nil:
		atoms = []*topology.Atom{r.atom}
	case r.residue != nil:
		atoms = r.residue.Atoms()
	default:
		atoms = r.chain.Atoms()
	}

	ke := metrics.PerAtomKinetic(m.mol)
	total, mass, selMass := ke.Sum(), m.mol.Masses().Sum(), 0.0
	var sel []float64
	selKE := 0.0
	for _, a := range atoms {
		selMass += a.Mass()
		sel = append(sel, ke[a.Index()])
		selKE += ke[a.Index()]
	}

	var b strings.Builder
	b.WriteString(s.title.Render(label(r)) + "\n")
	b.WriteString(s.muted.Render(fmt.Sprintf("%s · %d atom(s)", r.kind(), len(atoms))) + "\n\n")
	if r.atom != nil {
		pos, _ := m.mol.Position(r.atom)
		mom, _ := m.mol.Momentum(r.atom)
		b.WriteString(fmt.Sprintf("mass %s\n", s.accent.Render(fmt.Sprintf("%.3f", r.atom.Mass()))))
		b.WriteString(fmt.Sprintf("pos  %s\n", s.accent.Render(fmt.Sprintf("%7.3f %7.3f %7.3f", pos[0], pos[1], pos[2]))))
		b.WriteString(fmt.Sprintf("mom  %s\n", s.accent.Render(fmt.Sprintf("%7.3f %7.3f %7.3f", mom[0], mom[1], mom[2]))))
	}
	if mass > 0 {
		b.WriteString(fmt.Sprintf("mass %s %5.1f%%\n", ProgressBar(selMass/mass, 16), 100*selMass/mass))
	}
	b.WriteString(fmt.Sprintf("KE   %s %.4g", SparklineChart(sel, 16), selKE))
	if total > 0 {
		b.WriteString(fmt.Sprintf(" (%.1f%%)", 100*selKE/total))
	}
	if !ke.IsValid() {
		b.WriteString("\n" + s.bad.Render("non-finite momenta"))
	}
	return b.String()
}

func (m Inspector) help() string {
	s := m.style
	var parts []string
	for _, k := range []key.Binding{keys.Up, keys.Pop, keys.View, keys.Left, keys.Theme, keys.Quit} {
		h := k.Help()
		parts = append(parts, s.accent.Render(h.Key)+" "+s.muted.Render(h.Desc))
	}
	return strings.Join(parts, "  ")
}

// RunInspector starts the inspector in the alternate screen and blocks until
// the user quits.
func RunInspector(mol *topology.Molecule, events *EventLog) error {
	_, err := tea.NewProgram(NewInspector(mol, events), tea.WithAltScreen()).Run()
	return err
}
