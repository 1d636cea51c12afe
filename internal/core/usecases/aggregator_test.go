// internal/core/usecases/aggregator_test.go
package usecases

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/DavidJovino/deivao-recon/internal/adapters/output"
	"github.com/DavidJovino/deivao-recon/internal/core/domain"
	"github.com/DavidJovino/deivao-recon/internal/core/ports"
	"github.com/DavidJovino/deivao-recon/internal/testutil"
)

func mustTarget(t *testing.T, raw string) domain.Target {
	t.Helper()
	target, err := domain.NewTarget(raw)
	testutil.AssertNoError(t, err, "target "+raw)
	return target
}

func runTools(t *testing.T, target domain.Target, tools []ports.Tool) map[string]*domain.ToolInvocation {
	t.Helper()
	invocations := make(map[string]*domain.ToolInvocation, len(tools))
	for _, tool := range tools {
		invocations[tool.Name()] = tool.Run(context.Background(), target)
	}
	return invocations
}

func TestAggregateDedupAndProvenance(t *testing.T) {
	ws := output.NewWorkspace(t.TempDir())
	target := mustTarget(t, "example.com")
	agg := NewAggregator(ws, testutil.NewTestLogger())

	tools := []ports.Tool{
		&fakeTool{name: "amass", priority: 10, lines: []string{"a.example.com", "b.example.com"}},
		&fakeTool{name: "subfinder", priority: 8, lines: []string{"b.example.com", "c.example.com"}},
	}

	result, err := agg.Aggregate(target, tools, runTools(t, target, tools))
	testutil.AssertNoError(t, err, "aggregate")

	testutil.AssertEqual(t, len(result.Records), 3, "dedup across tools")
	testutil.AssertEqual(t, len(result.NewNames), 3, "all new on first run")
	testutil.AssertEqual(t, result.Records[0].Name, "a.example.com", "priority order first")
	testutil.AssertEqual(t, result.Records[1].Name, "b.example.com", "first seen wins position")
	testutil.AssertEqual(t, result.Records[2].Name, "c.example.com", "later tool appends")

	// b fue visto por ambas herramientas
	testutil.AssertTrue(t, result.Records[1].HasSource("amass"), "amass provenance")
	testutil.AssertTrue(t, result.Records[1].HasSource("subfinder"), "subfinder provenance")
	testutil.AssertFalse(t, result.Records[0].Known, "fresh records not marked known")
}

func TestAggregateNormalizesAndSkipsMalformed(t *testing.T) {
	ws := output.NewWorkspace(t.TempDir())
	target := mustTarget(t, "example.com")
	agg := NewAggregator(ws, testutil.NewTestLogger())

	tools := []ports.Tool{
		&fakeTool{name: "amass", priority: 10, lines: []string{
			"HTTPS://API.example.com/path",
			"api.example.com.",
			"",
			"# banner line",
			"out-of-scope.other.com",
			"<<garbage>>",
		}},
	}

	result, err := agg.Aggregate(target, tools, runTools(t, target, tools))
	testutil.AssertNoError(t, err, "aggregate")

	testutil.AssertEqual(t, len(result.Records), 1, "url and dotted form collapse to one")
	testutil.AssertEqual(t, result.Records[0].Name, "api.example.com", "normalized name")
	// blank y comment no cuentan; out-of-scope y garbage sí
	testutil.AssertEqual(t, result.Skipped, 2, "malformed lines counted")
}

func TestAggregateIdempotentAcrossRuns(t *testing.T) {
	base := t.TempDir()
	target := mustTarget(t, "example.com")
	tools := []ports.Tool{
		&fakeTool{name: "amass", priority: 10, lines: []string{"a.example.com", "b.example.com"}},
	}

	ws := output.NewWorkspace(base)
	agg := NewAggregator(ws, testutil.NewTestLogger())

	_, err := agg.Aggregate(target, tools, runTools(t, target, tools))
	testutil.AssertNoError(t, err, "first run")

	storePath := filepath.Join(base, "example.com", "recon", "all_subdomains.txt")
	first := testutil.ReadFile(t, storePath)

	// Segunda ejecución idéntica, workspace nuevo (proceso nuevo)
	ws2 := output.NewWorkspace(base)
	agg2 := NewAggregator(ws2, testutil.NewTestLogger())
	result, err := agg2.Aggregate(target, tools, runTools(t, target, tools))
	testutil.AssertNoError(t, err, "second run")

	second := testutil.ReadFile(t, storePath)
	testutil.AssertEqual(t, second, first, "persisted bytes identical")
	testutil.AssertEqual(t, len(result.NewNames), 0, "nothing new on identical rerun")
	testutil.AssertEqual(t, len(result.Records), 2, "all records loaded as known")
	testutil.AssertTrue(t, result.Records[0].Known, "prior entries marked known")
}

func TestAggregateMonotonicAppend(t *testing.T) {
	base := t.TempDir()
	target := mustTarget(t, "example.com")

	ws := output.NewWorkspace(base)
	agg := NewAggregator(ws, testutil.NewTestLogger())

	firstTools := []ports.Tool{
		&fakeTool{name: "amass", priority: 10, lines: []string{"a.example.com", "b.example.com"}},
	}
	_, err := agg.Aggregate(target, firstTools, runTools(t, target, firstTools))
	testutil.AssertNoError(t, err, "first run")

	secondTools := []ports.Tool{
		&fakeTool{name: "amass", priority: 10, lines: []string{"b.example.com", "z.example.com"}},
	}
	result, err := agg.Aggregate(target, secondTools, runTools(t, target, secondTools))
	testutil.AssertNoError(t, err, "second run")

	testutil.AssertEqual(t, len(result.Records), 3, "prior plus new")
	testutil.AssertEqual(t, result.Records[0].Name, "a.example.com", "position preserved")
	testutil.AssertEqual(t, result.Records[1].Name, "b.example.com", "position preserved")
	testutil.AssertEqual(t, result.Records[2].Name, "z.example.com", "new appended at end")
	testutil.AssertEqual(t, len(result.NewNames), 1, "only z is new")

	store, err := ws.AggregateStore(target)
	testutil.AssertNoError(t, err, "store")
	lines, err := store.Load()
	testutil.AssertNoError(t, err, "load")
	testutil.AssertEqual(t, len(lines), 3, "persisted list grew monotonically")
	testutil.AssertEqual(t, lines[2], "z.example.com", "append-only on disk")
}

func TestAggregateToleratesFailedTool(t *testing.T) {
	ws := output.NewWorkspace(t.TempDir())
	target := mustTarget(t, "example.com")
	agg := NewAggregator(ws, testutil.NewTestLogger())

	tools := []ports.Tool{
		&fakeTool{name: "amass", priority: 10, outcome: domain.OutcomeTimeout},
		&fakeTool{name: "subfinder", priority: 8, lines: []string{"a.example.com"}},
	}

	result, err := agg.Aggregate(target, tools, runTools(t, target, tools))
	testutil.AssertNoError(t, err, "aggregate with failed tool")
	testutil.AssertEqual(t, len(result.Records), 1, "surviving tool contributes")
	testutil.AssertTrue(t, result.Records[0].HasSource("subfinder"), "provenance from survivor")
}
