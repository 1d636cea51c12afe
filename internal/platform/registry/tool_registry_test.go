// internal/platform/registry/tool_registry_test.go
package registry

import (
	"context"
	"testing"

	"github.com/DavidJovino/deivao-recon/internal/core/domain"
	"github.com/DavidJovino/deivao-recon/internal/core/ports"
	"github.com/DavidJovino/deivao-recon/internal/platform/logx"
	"github.com/DavidJovino/deivao-recon/internal/testutil"
)

// fakeTool implementa ports.Tool para tests del registry.
type fakeTool struct {
	name     string
	priority int
}

func (f *fakeTool) Name() string  { return f.name }
func (f *fakeTool) Priority() int { return f.priority }
func (f *fakeTool) Run(ctx context.Context, target domain.Target) *domain.ToolInvocation {
	return &domain.ToolInvocation{Tool: f.name, Target: target.Root, Outcome: domain.OutcomeSuccess}
}

func fakeFactory(desc ToolDescriptor, _ logx.Logger) (ports.Tool, error) {
	return &fakeTool{name: desc.Name, priority: desc.Priority}, nil
}

// shDescriptor usa "sh" como binario para que LookPath resuelva en
// cualquier entorno de test.
func shDescriptor(name string, priority int) ToolDescriptor {
	return ToolDescriptor{
		Name:     name,
		Binary:   "sh",
		Args:     []string{"-c", "echo " + DomainPlaceholder},
		Kind:     KindEnum,
		Priority: priority,
	}
}

func TestDescriptorValidate(t *testing.T) {
	tests := []struct {
		name    string
		desc    ToolDescriptor
		wantErr bool
	}{
		{"valid", shDescriptor("t1", 1), false},
		{"empty name", ToolDescriptor{Binary: "sh", Kind: KindEnum, Args: []string{DomainPlaceholder}}, true},
		{"empty binary", ToolDescriptor{Name: "t", Kind: KindEnum, Args: []string{DomainPlaceholder}}, true},
		{"bad kind", ToolDescriptor{Name: "t", Binary: "sh", Kind: "weird"}, true},
		{"enum without placeholder", ToolDescriptor{Name: "t", Binary: "sh", Kind: KindEnum, Args: []string{"-silent"}}, true},
		{"stdin enum without placeholder ok", ToolDescriptor{Name: "t", Binary: "sh", Kind: KindEnum, Stdin: true}, false},
		{"probe without placeholder ok", ToolDescriptor{Name: "t", Binary: "sh", Kind: KindProbe}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.desc.Validate()
			if tt.wantErr {
				testutil.AssertError(t, err, tt.name)
			} else {
				testutil.AssertNoError(t, err, tt.name)
			}
		})
	}
}

func TestRenderArgs(t *testing.T) {
	desc := ToolDescriptor{
		Name:   "t",
		Binary: "sh",
		Kind:   KindEnum,
		Args:   []string{"enum", "-d", DomainPlaceholder},
	}

	args := desc.RenderArgs("example.com")
	testutil.AssertEqual(t, args[2], "example.com", "placeholder replaced")
	testutil.AssertEqual(t, desc.Args[2], DomainPlaceholder, "original untouched")
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	r := NewToolRegistry(testutil.NewTestLogger())

	testutil.AssertNoError(t, r.Register(fakeFactory, shDescriptor("t1", 1)), "first register")
	testutil.AssertError(t, r.Register(fakeFactory, shDescriptor("t1", 1)), "duplicate rejected")
}

func TestAddDescriptorMergesPartialOverride(t *testing.T) {
	r := NewToolRegistry(testutil.NewTestLogger())
	base := shDescriptor("t1", 5)
	base.TimeoutS = 600
	base.Package = "example.com/t1"
	testutil.AssertNoError(t, r.Register(fakeFactory, base), "register")

	// Override parcial: solo timeout; el resto se conserva
	testutil.AssertNoError(t, r.AddDescriptor(ToolDescriptor{Name: "t1", TimeoutS: 60}), "override")

	merged, ok := r.Descriptor("t1")
	testutil.AssertTrue(t, ok, "descriptor present")
	testutil.AssertEqual(t, merged.TimeoutS, 60, "timeout overridden")
	testutil.AssertEqual(t, merged.Priority, 5, "priority preserved")
	testutil.AssertEqual(t, merged.Binary, "sh", "binary preserved")
	testutil.AssertEqual(t, merged.Package, "example.com/t1", "package preserved")
}

func TestResolveMissingBinaryNamesAlternatives(t *testing.T) {
	r := NewToolRegistry(testutil.NewTestLogger())

	missing := shDescriptor("ghost", 5)
	missing.Binary = "definitely-not-a-real-binary-xyz"
	missing.Alternatives = []string{"present"}
	testutil.AssertNoError(t, r.Register(fakeFactory, missing), "register ghost")
	testutil.AssertNoError(t, r.Register(fakeFactory, shDescriptor("present", 3)), "register present")

	resolved := r.Resolve([]string{"ghost", "present"})
	testutil.AssertEqual(t, len(resolved), 2, "both resolved")

	testutil.AssertFalse(t, resolved[0].Available, "ghost unavailable")
	testutil.AssertContains(t, resolved[0].Alternatives, "present", "installed alternative named")
	testutil.AssertTrue(t, resolved[1].Available, "present available")
	testutil.AssertTrue(t, resolved[1].Path != "", "path resolved")
}

func TestBuildOrdersByPriority(t *testing.T) {
	r := NewToolRegistry(testutil.NewTestLogger())

	testutil.AssertNoError(t, r.Register(fakeFactory, shDescriptor("low", 1)), "register low")
	testutil.AssertNoError(t, r.Register(fakeFactory, shDescriptor("high", 10)), "register high")
	testutil.AssertNoError(t, r.Register(fakeFactory, shDescriptor("mid", 5)), "register mid")

	tools, err := r.Build([]string{"low", "high", "mid"}, testutil.NewTestLogger())
	testutil.AssertNoError(t, err, "build")
	testutil.AssertEqual(t, len(tools), 3, "all built")
	testutil.AssertEqual(t, tools[0].Name(), "high", "highest priority first")
	testutil.AssertEqual(t, tools[1].Name(), "mid", "mid second")
	testutil.AssertEqual(t, tools[2].Name(), "low", "lowest last")
}

func TestBuildSkipsMissingTools(t *testing.T) {
	r := NewToolRegistry(testutil.NewTestLogger())

	missing := shDescriptor("ghost", 9)
	missing.Binary = "definitely-not-a-real-binary-xyz"
	testutil.AssertNoError(t, r.Register(fakeFactory, missing), "register ghost")
	testutil.AssertNoError(t, r.Register(fakeFactory, shDescriptor("ok", 1)), "register ok")

	tools, err := r.Build([]string{"ghost", "ok", "unregistered"}, testutil.NewTestLogger())
	testutil.AssertNoError(t, err, "build tolerates missing tools")
	testutil.AssertEqual(t, len(tools), 1, "only the available tool built")
	testutil.AssertEqual(t, tools[0].Name(), "ok", "available tool kept")
}

func TestBuildFailsWhenNothingAvailable(t *testing.T) {
	r := NewToolRegistry(testutil.NewTestLogger())

	missing := shDescriptor("ghost", 9)
	missing.Binary = "definitely-not-a-real-binary-xyz"
	testutil.AssertNoError(t, r.Register(fakeFactory, missing), "register ghost")

	_, err := r.Build([]string{"ghost"}, testutil.NewTestLogger())
	testutil.AssertError(t, err, "zero tools is an error")
}

func TestBuildFallsBackToGenericFactory(t *testing.T) {
	r := NewToolRegistry(testutil.NewTestLogger())
	r.RegisterGeneric(fakeFactory)

	// Descriptor sin factory dedicada, como los declarados por YAML
	testutil.AssertNoError(t, r.AddDescriptor(shDescriptor("custom", 2)), "add descriptor")

	tools, err := r.Build([]string{"custom"}, testutil.NewTestLogger())
	testutil.AssertNoError(t, err, "build with generic factory")
	testutil.AssertEqual(t, len(tools), 1, "built via generic factory")
	testutil.AssertEqual(t, tools[0].Name(), "custom", "name preserved")
}

func TestLoadFile(t *testing.T) {
	r := NewToolRegistry(testutil.NewTestLogger())
	testutil.AssertNoError(t, r.Register(fakeFactory, shDescriptor("known", 4)), "register known")

	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "tools.yaml", `
tools:
  - name: known
    timeout: 120
  - name: findomain
    binary: findomain
    args: ["--target", "{{domain}}", "--quiet"]
    priority: 3
`)

	testutil.AssertNoError(t, r.LoadFile(path), "load file")

	known, _ := r.Descriptor("known")
	testutil.AssertEqual(t, known.TimeoutS, 120, "override applied")
	testutil.AssertEqual(t, known.Priority, 4, "base fields kept")

	added, ok := r.Descriptor("findomain")
	testutil.AssertTrue(t, ok, "new descriptor added")
	testutil.AssertEqual(t, added.Priority, 3, "new descriptor fields")
	testutil.AssertEqual(t, string(added.Kind), string(KindEnum), "kind defaulted")
}

func TestLoadFileRejectsInvalid(t *testing.T) {
	r := NewToolRegistry(testutil.NewTestLogger())

	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "tools.yaml", `
tools:
  - name: broken
    binary: broken
    args: ["-silent"]
`)

	// enum sin placeholder ni stdin es inválido
	testutil.AssertError(t, r.LoadFile(path), "invalid descriptor rejected")
}
