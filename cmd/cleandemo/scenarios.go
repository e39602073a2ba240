package main

import (
	"context"
	"fmt"
	"io"
	"reflect"

	"github.com/davecgh/go-spew/spew"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/idudko/go-autoclean/internal/example/feature"
	"github.com/idudko/go-autoclean/internal/example/userstore"
	"github.com/idudko/go-autoclean/pkg/autoclean"
)

type disposable struct {
	text string
	out  io.Writer
}

func (d *disposable) Close() error {
	_, err := fmt.Fprintf(d.out, "  Disposed %s\n", d.text)
	return err
}

type Parent struct {
	field *disposable
}

type MyStruct struct {
	Parent
	field *disposable
}

type ChildStruct struct {
	MyStruct
	field *disposable
}

func newChild(out io.Writer) *ChildStruct {
	c := &ChildStruct{field: &disposable{text: "Child field", out: out}}
	c.MyStruct.field = &disposable{text: "My field", out: out}
	c.Parent.field = &disposable{text: "Parent field", out: out}
	return c
}

// demo carries what every scenario needs.
type demo struct {
	cfg       Config
	selectors Selectors
	out       io.Writer
	logger    zerolog.Logger
	observer  autoclean.Observer
}

func (d *demo) cleaner(opts ...autoclean.Option) *autoclean.Cleaner {
	base := []autoclean.Option{
		autoclean.WithHierarchy(d.selectors.Hierarchy),
		autoclean.WithVisibility(d.selectors.Visibility),
		autoclean.WithResetOptions(d.selectors.Options),
		autoclean.WithLogger(d.logger),
		autoclean.WithObserver(d.observer),
	}
	return autoclean.New(append(base, opts...)...)
}

// runHierarchy prints which fields of a three-level chain are released for
// each hierarchy selection.
func (d *demo) runHierarchy() error {
	variants := []struct {
		title     string
		declared  reflect.Type
		hierarchy autoclean.Hierarchy
	}{
		{"Simple cleanup", reflect.TypeFor[ChildStruct](), autoclean.AllHierarchy},
		{"Only self", reflect.TypeFor[ChildStruct](), autoclean.Declared},
		{"Only parents", reflect.TypeFor[ChildStruct](), autoclean.Inherited},
		{"Only self (referred as base struct)", reflect.TypeFor[MyStruct](), autoclean.Declared},
		{"Only parent (referred as base struct)", reflect.TypeFor[MyStruct](), autoclean.Inherited},
		{"Only children (referred as base struct)", reflect.TypeFor[MyStruct](), autoclean.Descendant},
	}

	for _, v := range variants {
		fmt.Fprintf(d.out, "# %s\n", v.title)
		c := d.cleaner(
			autoclean.WithHierarchy(v.hierarchy),
			autoclean.WithVisibility(autoclean.AllVisibility),
			autoclean.WithResetOptions(autoclean.None),
		)
		if err := c.ResetAs(newChild(d.out), v.declared); err != nil {
			return err
		}
	}
	return nil
}

type planEntry struct {
	Owner     string `json:"owner"`
	Member    string `json:"member"`
	Partition string `json:"partition"`
	Access    string `json:"access"`
	Admitted  bool   `json:"admitted"`
	Reason    string `json:"reason,omitempty"`
	Release   bool   `json:"release"`
}

// runPlan shows the decisions for a ChildStruct referred to as MyStruct with
// the configured selectors, then applies them.
func (d *demo) runPlan() error {
	target := newChild(d.out)
	declared := reflect.TypeFor[MyStruct]()
	c := d.cleaner()

	decisions, err := c.Plan(target, declared)
	if err != nil {
		return err
	}

	entries := make([]planEntry, 0, len(decisions))
	for _, dec := range decisions {
		entries = append(entries, planEntry{
			Owner:     dec.Member.Owner.Name(),
			Member:    dec.Member.Name,
			Partition: dec.Member.Partition.String(),
			Access:    dec.Member.EffectiveAccess().String(),
			Admitted:  dec.Admitted,
			Reason:    dec.Reason,
			Release:   dec.Release,
		})
	}

	if err := d.printPlan(entries); err != nil {
		return err
	}

	if d.cfg.Dump {
		fmt.Fprintln(d.out, "# Before")
		spew.Fdump(d.out, target)
	}
	if err := c.ResetAs(target, declared); err != nil {
		return err
	}
	if d.cfg.Dump {
		fmt.Fprintln(d.out, "# After")
		spew.Fdump(d.out, target)
	}
	return nil
}

func (d *demo) printPlan(entries []planEntry) error {
	if d.cfg.Format == "json" {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(d.out, string(data))
		return err
	}

	for _, e := range entries {
		verdict := "reset"
		if !e.Admitted {
			verdict = "skip (" + e.Reason + ")"
		} else if e.Release {
			verdict = "release and reset"
		}
		fmt.Fprintf(d.out, "%-10s %-12s %-11s %-8s %s\n", e.Partition, e.Owner, e.Member, e.Access, verdict)
	}
	return nil
}

// runFeature runs the user feature scenarios with a teardown between them.
func (d *demo) runFeature(ctx context.Context, store userstore.Store) error {
	f := feature.NewUserFeature(store, d.logger)

	scenarios := []func(context.Context) error{
		f.AddingNewUserToDatabase,
		f.MandatoryFieldsValidation,
	}
	for _, scenario := range scenarios {
		err := scenario(ctx)
		if tdErr := f.TearDown(); tdErr != nil {
			return tdErr
		}
		if err != nil {
			return err
		}
	}

	for _, r := range f.Results() {
		status := "ok"
		if r.Err != nil {
			status = "FAILED: " + r.Err.Error()
		}
		fmt.Fprintf(d.out, "%s: %s ... %s\n", r.Scenario, r.Step, status)
	}
	return nil
}
