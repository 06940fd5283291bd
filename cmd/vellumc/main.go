// Command vellumc is the composition root wiring pkg/modules dependency
// binding into pkg/checker's semantic analysis and flushing
// pkg/diagnostics to stderr. It exists as ambient glue exercising the
// library end to end, not as a scoped CLI deliverable: source parsing is
// out of scope (see SPEC_FULL.md's Non-goals), so the module actually
// checked is the small fixture program built in sampleModule below
// rather than one read from a file on disk.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"vellum/pkg/ast"
	"vellum/pkg/checker"
	"vellum/pkg/diagnostics"
	"vellum/pkg/modules"
	"vellum/pkg/types"
)

func main() {
	depsFlag := flag.String("deps", "", "comma-separated name=url@rev git dependencies to fetch and bind")
	cacheDir := flag.String("cache", "", "cache directory for fetched dependency checkouts")
	selfNamespace := flag.String("namespace", "local", "this module's project namespace")
	selfName := flag.String("name", "main", "this module's unique name")
	flag.Parse()

	os.Exit(run(*depsFlag, *cacheDir, *selfNamespace, *selfName, os.Stdout, os.Stderr))
}

func run(depsFlag, cacheDir, selfNamespace, selfName string, stdout, stderr *os.File) int {
	reg := types.NewRegistry()
	c := checker.New(reg)
	binder := modules.NewBinder(reg, c.Scopes, c.ResolveTypeExpr)
	binder.RegisterSelf(&modules.Descriptor{ProjectNamespace: selfNamespace, UniqueName: selfName})

	if depsFlag != "" {
		if err := fetchAndBindDependencies(binder, cacheDir, depsFlag, stderr); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	}
	if err := binder.BindDependencyProcedures(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	c.CheckModule(sampleModule())
	c.VerifyContracts()

	status := c.Diags.ExitStatus()
	for _, d := range c.Diags.Flush() {
		fmt.Fprintln(stderr, diagnostics.Describe(d))
	}
	if status != 0 {
		return status
	}
	fmt.Fprintln(stdout, "ok")
	return 0
}

// fetchAndBindDependencies parses the -deps flag's name=url@rev entries,
// fetches each one via modules.GitSource, and registers it with the
// binder. If the checkout carries a module.yaml at its root, that
// descriptor is loaded and recorded; otherwise a bare descriptor is
// synthesized from the fetched name and pinned commit. Each dependency is
// registered with empty ModuleBindings: the export names a module.yaml
// lists are not turned into type or procedure bindings (there is no parser
// to read them out of the checkout's own source), so dependencies
// contribute only identity/namespace disambiguation.
func fetchAndBindDependencies(binder *modules.Binder, cacheDir, depsFlag string, stderr *os.File) error {
	if cacheDir == "" {
		cacheDir = "vellum-cache"
	}
	src := modules.NewGitSource(cacheDir)

	for _, entry := range strings.Split(depsFlag, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, rest, ok := strings.Cut(entry, "=")
		if !ok {
			return fmt.Errorf("vellumc: malformed dependency entry %q, want name=url@rev", entry)
		}
		url, rev, _ := strings.Cut(rest, "@")

		checkoutDir, commit, err := src.Fetch(name, url, modules.GitRef{Rev: rev})
		if err != nil {
			return fmt.Errorf("vellumc: fetch %s: %w", name, err)
		}
		fmt.Fprintf(stderr, "vellumc: fetched %s @ %s into %s\n", name, commit, checkoutDir)

		desc, err := modules.LoadDescriptor(filepath.Join(checkoutDir, "module.yaml"))
		if err != nil {
			desc = &modules.Descriptor{ProjectNamespace: name, UniqueName: commit}
		}
		if err := binder.RegisterDependencyTypes(desc, &modules.ModuleBindings{}); err != nil {
			return fmt.Errorf("vellumc: bind %s: %w", name, err)
		}
	}
	return nil
}

// sampleModule is a small fixture program exercising declaration
// inference, a provider call, and a struct definition. Its bindings all
// live in the module scope, which CheckModule never exits, so none of
// them is checked for use and the fixture checks without diagnostics.
func sampleModule() *ast.Module {
	return ast.NewModule("sample",
		ast.Struct("Point", false,
			ast.Field("x", ast.Ty("int")),
			ast.Field("y", ast.Ty("int")),
		),
		ast.Proc(ast.ProcProvider, "answer", nil, ast.Ty("int"),
			ast.NewBlock(
				ast.Return(ast.IntV(42)),
			),
		),
		ast.Decl("result", nil, ast.Call(ast.Id("answer"))),
	)
}
