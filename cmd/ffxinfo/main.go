// Command ffxinfo lists the registered GPU backends, the compiled-in effect
// providers and the shader permutation tables they resolve variants from.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/ffx"
	"github.com/gogpu/ffx/backend"
	"github.com/gogpu/ffx/internal/shaders/fsr3upscaler"
	"github.com/gogpu/ffx/permutation"
	"github.com/gogpu/ffx/providers"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("ffxinfo: %v", err)
	}
}

func run(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("ffxinfo", flag.ContinueOnError)
	var (
		typ    = fs.String("type", "", "descriptor type in hex, e.g. 0x00010000 (default: all known types)")
		format = fs.String("format", "text", "output format: text or yaml")
		stages = fs.Bool("stages", false, "include shader stage table summaries")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	types := ffx.KnownDescTypes()
	if *typ != "" {
		v, err := strconv.ParseUint(*typ, 0, 32)
		if err != nil {
			return fmt.Errorf("invalid -type %q: %w", *typ, err)
		}
		types = []ffx.DescType{ffx.DescType(v)}
	}

	r := buildReport(providers.Registry, types)
	if *stages {
		for _, t := range fsr3upscaler.Stages() {
			r.Stages = append(r.Stages, summarize(t))
		}
	}

	switch *format {
	case "text":
		return writeText(w, r)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown -format %q (want text or yaml)", *format)
	}
}

type report struct {
	Backends []string      `yaml:"backends"`
	Types    []typeReport  `yaml:"types"`
	Stages   []stageReport `yaml:"stages,omitempty"`
}

type typeReport struct {
	Name      string           `yaml:"name"`
	Value     string           `yaml:"value"`
	Providers []providerReport `yaml:"providers"`
}

type providerReport struct {
	ID       string `yaml:"id"`
	Version  string `yaml:"version"`
	Selected bool   `yaml:"selected,omitempty"`
}

type stageReport struct {
	Name        string         `yaml:"name"`
	Options     []string       `yaml:"options"`
	Indirection int            `yaml:"indirection"`
	Variants    int            `yaml:"variants"`
	EntryPoint  string         `yaml:"entry_point"`
	Format      string         `yaml:"format"`
	Bindings    map[string]int `yaml:"bindings"`
}

func buildReport(reg *ffx.Registry, types []ffx.DescType) report {
	r := report{Backends: backend.Available()}
	for _, t := range types {
		tr := typeReport{Name: t.String(), Value: fmt.Sprintf("0x%08x", uint32(t))}

		n := reg.Versions(t, nil)
		versions := make([]ffx.Version, n)
		reg.Versions(t, versions)

		selected, _ := reg.Select(t, ffx.NoOverride)
		for _, v := range versions {
			tr.Providers = append(tr.Providers, providerReport{
				ID:       fmt.Sprintf("0x%016x", v.ID),
				Version:  v.Label,
				Selected: selected != nil && selected.ID() == v.ID,
			})
		}
		r.Types = append(r.Types, tr)
	}
	return r
}

// summarize describes a table by its first variant. Tables with more than
// one variant share a binding layout across variants.
func summarize(t *permutation.Table) stageReport {
	v := t.Variant(0)
	s := stageReport{
		Name:        t.Name(),
		Options:     t.Layout().Names(),
		Indirection: t.Size(),
		Variants:    t.Len(),
		EntryPoint:  v.EntryPoint,
		Format:      v.Blob.Format.String(),
		Bindings:    make(map[string]int),
	}
	for c := range permutation.NumBindingClasses {
		if v.Bindings.Present(c) {
			s.Bindings[c.String()] = v.Bindings.Count(c)
		}
	}
	return s
}

func writeText(w io.Writer, r report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "backends: %s\n\n", strings.Join(r.Backends, ", "))
	for _, t := range r.Types {
		fmt.Fprintf(tw, "%s (%s)\n", t.Name, t.Value)
		if len(t.Providers) == 0 {
			fmt.Fprintln(tw, "\t(no provider)")
			continue
		}
		for _, p := range t.Providers {
			mark := ""
			if p.Selected {
				mark = "default"
			}
			fmt.Fprintf(tw, "\t%s\t%s\t%s\n", p.ID, p.Version, mark)
		}
	}
	for _, s := range r.Stages {
		fmt.Fprintf(tw, "\nstage %s\n", s.Name)
		fmt.Fprintf(tw, "\toptions\t%s\n", strings.Join(s.Options, ", "))
		fmt.Fprintf(tw, "\tindirection\t%d entries -> %d variants\n", s.Indirection, s.Variants)
		fmt.Fprintf(tw, "\tprogram\t%s %s\n", s.Format, s.EntryPoint)
		for c := range permutation.NumBindingClasses {
			if n, ok := s.Bindings[c.String()]; ok {
				fmt.Fprintf(tw, "\t%s\t%d\n", c, n)
			}
		}
	}
	return tw.Flush()
}
