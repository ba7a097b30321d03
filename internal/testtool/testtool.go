// Package testtool writes shell scripts that stand in for the liftOver
// binary in tests. Each script takes the same four positional arguments:
// input, chain, mapped output, unmapped output.
package testtool

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// SkipUnlessShell skips tests that need a POSIX shell.
func SkipUnlessShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub tools need a POSIX shell")
	}
}

// Identity maps every region to itself.
func Identity(t *testing.T) string {
	return write(t, "identity", `cp "$1" "$3"
: > "$4"
echo "Reading liftover chains"
`)
}

// MappedOnly maps every region to itself and writes no unmapped file.
func MappedOnly(t *testing.T) string {
	return write(t, "mappedonly", `cp "$1" "$3"
`)
}

// Shift adds delta to start and end of every region.
func Shift(t *testing.T, delta int) string {
	return write(t, "shift", fmt.Sprintf(`awk -v d=%d 'BEGIN{OFS="\t"} {$2+=d; $3+=d; print}' "$1" > "$3"
: > "$4"
`, delta))
}

// FailAll leaves every region unmapped.
func FailAll(t *testing.T) string {
	return write(t, "failall", `: > "$3"
awk '{print "#Deleted in new"; print}' "$1" > "$4"
`)
}

// FailChain leaves every region unmapped when the chain file name contains
// match, and maps identically otherwise.
func FailChain(t *testing.T, match string) string {
	return write(t, "failchain", fmt.Sprintf(`case "$2" in
*%s*)
  : > "$3"
  cp "$1" "$4"
  ;;
*)
  cp "$1" "$3"
  : > "$4"
  ;;
esac
`, match))
}

// FailIndex leaves the region tagged with index unmapped.
func FailIndex(t *testing.T, index string) string {
	return write(t, "failindex", fmt.Sprintf(`awk -F '\t' '$4 != "%[1]s"' "$1" > "$3"
awk -F '\t' '$4 == "%[1]s" {print "#Deleted in new"; print}' "$1" > "$4"
`, index))
}

// Exit writes to stderr and exits with code.
func Exit(t *testing.T, code int) string {
	return write(t, "exit", fmt.Sprintf(`echo "ERROR: cannot read chain file" >&2
exit %d
`, code))
}

// Record appends each invocation's chain argument to log, then maps identically.
func Record(t *testing.T, log string) string {
	return write(t, "record", fmt.Sprintf(`echo "$2" >> %q
cp "$1" "$3"
: > "$4"
`, log))
}

func write(t *testing.T, name, body string) string {
	t.Helper()
	SkipUnlessShell(t)
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write stub tool: %v", err)
	}
	return path
}
