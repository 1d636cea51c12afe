// internal/adapters/output/workspace_test.go
package output

import (
	"path/filepath"
	"testing"

	"github.com/DavidJovino/deivao-recon/internal/core/domain"
	"github.com/DavidJovino/deivao-recon/internal/testutil"
)

func testTarget(t *testing.T) domain.Target {
	t.Helper()
	target, err := domain.NewTarget("example.com")
	testutil.AssertNoError(t, err, "target")
	return target
}

func TestWorkspaceLayout(t *testing.T) {
	base := t.TempDir()
	w := NewWorkspace(base)
	target := testTarget(t)

	recon, err := w.ReconDir(target)
	testutil.AssertNoError(t, err, "recon dir")
	testutil.AssertEqual(t, recon, filepath.Join(base, "example.com", "recon"), "recon path")
	testutil.AssertFileExists(t, recon, "recon dir created")

	reports, err := w.ReportsDir(target)
	testutil.AssertNoError(t, err, "reports dir")
	testutil.AssertEqual(t, reports, filepath.Join(base, "example.com", "reports"), "reports path")
	testutil.AssertFileExists(t, reports, "reports dir created")
}

func TestWriteToolOutput(t *testing.T) {
	base := t.TempDir()
	w := NewWorkspace(base)
	target := testTarget(t)

	path, err := w.WriteToolOutput(target, "amass", []string{"a.example.com", "b.example.com"})
	testutil.AssertNoError(t, err, "write")
	testutil.AssertEqual(t, path, filepath.Join(base, "example.com", "recon", "amass.txt"), "raw output path")
	testutil.AssertEqual(t, testutil.ReadFile(t, path), "a.example.com\nb.example.com\n", "lines written")

	// Reescritura por ejecución, no append
	path, err = w.WriteToolOutput(target, "amass", []string{"c.example.com"})
	testutil.AssertNoError(t, err, "rewrite")
	testutil.AssertEqual(t, testutil.ReadFile(t, path), "c.example.com\n", "replaced, not appended")
}

func TestWriteToolOutputSanitizesName(t *testing.T) {
	base := t.TempDir()
	w := NewWorkspace(base)

	path, err := w.WriteToolOutput(testTarget(t), "../evil tool", []string{"x"})
	testutil.AssertNoError(t, err, "write")
	testutil.AssertEqual(t, filepath.Base(path), "___evil_tool.txt", "unsafe characters replaced")
	testutil.AssertEqual(t, filepath.Dir(path), filepath.Join(base, "example.com", "recon"), "stays inside recon dir")
}

func TestStoresAreCanonicalPerPath(t *testing.T) {
	w := NewWorkspace(t.TempDir())
	target := testTarget(t)

	a, err := w.AggregateStore(target)
	testutil.AssertNoError(t, err, "first store")
	b, err := w.AggregateStore(target)
	testutil.AssertNoError(t, err, "second store")
	testutil.AssertTrue(t, a == b, "same instance per path")

	active, err := w.ActiveStore(target)
	testutil.AssertNoError(t, err, "active store")
	testutil.AssertTrue(t, a != active, "aggregate and active are distinct stores")
}

func TestAggregateAndActivePaths(t *testing.T) {
	base := t.TempDir()
	w := NewWorkspace(base)
	target := testTarget(t)

	agg, err := w.AggregateStore(target)
	testutil.AssertNoError(t, err, "aggregate store")
	testutil.AssertNoError(t, agg.Append([]string{"a.example.com"}), "append")
	testutil.AssertFileExists(t, filepath.Join(base, "example.com", "recon", "all_subdomains.txt"), "aggregate file")

	act, err := w.ActiveStore(target)
	testutil.AssertNoError(t, err, "active store")
	testutil.AssertNoError(t, act.Replace(nil), "replace empty")
	testutil.AssertFileExists(t, filepath.Join(base, "example.com", "recon", "active_subdomains.txt"), "active file")
}
