package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/san-kum/moltopo/internal/assemble"
	"github.com/san-kum/moltopo/internal/config"
	"github.com/san-kum/moltopo/internal/export"
	"github.com/san-kum/moltopo/internal/logging"
	"github.com/san-kum/moltopo/internal/metrics"
	"github.com/san-kum/moltopo/internal/topology"
	"github.com/san-kum/moltopo/internal/viz"
)

var (
	configFile  string
	logLevel    string
	showMetrics bool
	writeConfig string
	svgPath     string
	themeName   string
	plotHeight  int
)

// main registers the moltopo commands and runs the root command. With no
// subcommand it opens the inspector on the default preset.
func main() {
	rootCmd := &cobra.Command{
		Use:   "moltopo",
		Short: "molecule membership and ownership engine",
		Args:  cobra.NoArgs,
		RunE:  inspect,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "molecule config file (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	buildCmd := &cobra.Command{
		Use:   "build [preset]",
		Short: "build a molecule and check its invariants",
		Args:  cobra.MaximumNArgs(1),
		RunE:  build,
	}
	buildCmd.Flags().BoolVar(&showMetrics, "metrics", false, "print membership metrics collected during the build")
	buildCmd.Flags().StringVar(&writeConfig, "write", "", "write the resolved config to this path")
	buildCmd.Flags().StringVar(&svgPath, "svg", "", "render the structure view to an SVG file")
	buildCmd.Flags().StringVar(&themeName, "theme", "cyberpunk", "SVG color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in molecules",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [preset]",
		Short: "plot per-atom masses and momenta",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plot,
	}
	plotCmd.Flags().IntVar(&plotHeight, "height", 10, "plot height in rows")

	inspectCmd := &cobra.Command{
		Use:   "inspect [preset]",
		Short: "browse a molecule interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE:  inspect,
	}

	rootCmd.AddCommand(buildCmd, presetsCmd, plotCmd, inspectCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// load resolves the config named by args or --config and builds it.
func load(args []string, opts ...topology.Option) (*topology.Molecule, *config.Config, *logging.Logger, error) {
	preset := ""
	if len(args) > 0 {
		preset = args[0]
	}
	cfg, err := assemble.NewRegistry().Resolve(preset, configFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w (available: %s)", err, strings.Join(config.ListPresets(), ", "))
	}

	level := logLevel
	if level == "" {
		level = cfg.LogLevel
	}
	log := logging.New(os.Stderr, level)
	opts = append(opts, topology.WithLogger(log))

	log.Infof("building %s (%d atoms)", cfg.Name, cfg.AtomCount())
	mol, err := assemble.New(cfg, opts...).Build()
	if err != nil {
		return nil, nil, nil, err
	}
	return mol, cfg, log, nil
}

func build(cmd *cobra.Command, args []string) error {
	var opts []topology.Option
	reg := prometheus.NewRegistry()
	if showMetrics {
		col, err := metrics.NewCollector(reg)
		if err != nil {
			return err
		}
		opts = append(opts, topology.WithObserver(col))
	}

	mol, cfg, log, err := load(args, opts...)
	if err != nil {
		return err
	}

	fmt.Println(viz.HeaderStyle.Render(mol.String()))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CHAIN\tRESIDUE\tATOMS\tFIRST\tMASS")
	for _, c := range mol.Chains().Items() {
		for _, r := range c.Residues() {
			first, mass := "-", 0.0
			for i, a := range r.Atoms() {
				if i == 0 {
					first = fmt.Sprintf("%d", a.Index())
				}
				mass += a.Mass()
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%.3f\n", c.Name(), r.Name(), r.Len(), first, mass)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	ke := metrics.NewKinetic()
	ke.Observe(mol)
	fmt.Printf("\natoms: %d  residues: %d  chains: %d\n", mol.Atoms().Len(), mol.Residues().Len(), mol.Chains().Len())
	fmt.Printf("ndims: %d  dof: %d  mass: %.3f  %s: %.4f\n",
		mol.NDims(), mol.DOF(), mol.Masses().Sum(), ke.Name(), ke.Value())

	if err := mol.Validate(); err != nil {
		log.Errorf("invariant check failed: %v", err)
		return err
	}
	fmt.Println("invariants: ok")

	if showMetrics {
		if err := printMetrics(reg); err != nil {
			return err
		}
	}
	if writeConfig != "" {
		if err := config.Save(writeConfig, cfg); err != nil {
			return err
		}
		log.Infof("wrote %s", writeConfig)
	}
	if svgPath != "" {
		if err := export.MoleculeSVG(svgPath, mol, viz.GetTheme(themeName)); err != nil {
			return err
		}
		log.Infof("wrote %s", svgPath)
	}
	return nil
}

func printMetrics(reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tLABELS\tVALUE")
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			value := m.GetGauge().GetValue()
			if c := m.GetCounter(); c != nil {
				value = c.GetValue()
			}
			fmt.Fprintf(w, "%s\t%s\t%g\n", mf.GetName(), strings.Join(labels, ","), value)
		}
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCHAINS\tRESIDUES\tLOOSE\tATOMS")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		residues := len(cfg.Residues)
		for _, c := range cfg.Chains {
			residues += len(c.Residues)
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\n", name, len(cfg.Chains), residues, len(cfg.Atoms), cfg.AtomCount())
	}
	return w.Flush()
}

func plot(cmd *cobra.Command, args []string) error {
	mol, _, _, err := load(args)
	if err != nil {
		return err
	}
	if mol.Atoms().Len() < 2 {
		return fmt.Errorf("need at least 2 atoms to plot, %s has %d", mol.Name(), mol.Atoms().Len())
	}

	fmt.Printf("molecule: %s\n", mol.Name())
	fmt.Printf("atoms: %d\n\n", mol.Atoms().Len())

	series := []struct {
		caption string
		data    []float64
	}{
		{"mass by atom index", mol.Masses()},
		{"|p| by atom index", metrics.MomentumNorms(mol)},
		{"kinetic energy by atom index", metrics.PerAtomKinetic(mol)},
	}
	for _, s := range series {
		graph := asciigraph.Plot(s.data,
			asciigraph.Height(plotHeight),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func inspect(cmd *cobra.Command, args []string) error {
	events := viz.NewEventLog()
	mol, _, _, err := load(args, topology.WithObserver(events))
	if err != nil {
		return err
	}
	return viz.RunInspector(mol, events)
}
