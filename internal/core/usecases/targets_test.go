// internal/core/usecases/targets_test.go
package usecases

import (
	"errors"
	"testing"

	"github.com/DavidJovino/deivao-recon/internal/core/domain"
	"github.com/DavidJovino/deivao-recon/internal/testutil"
)

func TestLoadTargetsFile(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "targets.txt",
		"example.com\n"+
			"\n"+
			"# comment line\n"+
			"  Sub.Example.ORG  \r\n"+
			"not a domain\n"+
			"example.com\n") // duplicado, colapsa

	input, err := LoadTargetsFile(path, testutil.NewTestLogger())
	testutil.AssertNoError(t, err, "load")

	testutil.AssertEqual(t, len(input.Targets), 2, "valid unique targets")
	testutil.AssertEqual(t, input.Targets[0].Root, "example.com", "first target")
	testutil.AssertEqual(t, input.Targets[1].Root, "sub.example.org", "normalized second target")

	testutil.AssertEqual(t, len(input.Skipped), 1, "invalid line recorded")
	testutil.AssertEqual(t, input.Skipped[0].Status, domain.TargetSkipped, "skipped status")
	testutil.AssertEqual(t, input.Skipped[0].Target, "not a domain", "raw value kept")
	testutil.AssertTrue(t, input.Skipped[0].Err != "", "reason recorded")
}

func TestLoadTargetsFileMissing(t *testing.T) {
	_, err := LoadTargetsFile("/definitely/not/here.txt", testutil.NewTestLogger())
	testutil.AssertError(t, err, "missing file")
	testutil.AssertTrue(t, errors.Is(err, domain.ErrInputUnreadable), "input error sentinel")
}

func TestLoadTargetsFileAllInvalid(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "targets.txt", "# only comments\n\nnot a domain\nco.uk\n")

	// Un archivo legible nunca aborta el batch: sin targets válidos
	// solo quedan entradas skipped, no hay nada que intentar
	input, err := LoadTargetsFile(path, testutil.NewTestLogger())
	testutil.AssertNoError(t, err, "readable file is never fatal")
	testutil.AssertLen(t, input.Targets, 0, "no valid targets")
	testutil.AssertLen(t, input.Skipped, 2, "invalid lines recorded as skipped")
	for _, s := range input.Skipped {
		testutil.AssertEqual(t, s.Status, domain.TargetSkipped, "skipped status")
	}
}

func TestSingleTarget(t *testing.T) {
	input, err := SingleTarget("Example.COM")
	testutil.AssertNoError(t, err, "valid domain")
	testutil.AssertEqual(t, len(input.Targets), 1, "one target")
	testutil.AssertEqual(t, input.Targets[0].Root, "example.com", "normalized")

	_, err = SingleTarget("co.uk")
	testutil.AssertError(t, err, "bare public suffix rejected")
}
