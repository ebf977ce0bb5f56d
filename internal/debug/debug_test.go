package debug

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"
)

func TestFlags(t *testing.T) {
	SetFlags(None)
	if Is(Perf) {
		t.Error("Perf should be disabled by default")
	}

	Enable(Perf)
	if !Is(Perf) {
		t.Error("Perf should be enabled after Enable()")
	}
	if Is(Mesh) {
		t.Error("Mesh should still be disabled")
	}

	SetFlags(All)
	if !Is(Perf) || !Is(Mesh) || !Is(Tectonics) {
		t.Error("All flags should be enabled")
	}

	Disable(Perf)
	if Is(Perf) {
		t.Error("Perf should be disabled after Disable()")
	}
	if !Is(Mesh) {
		t.Error("Mesh should remain enabled")
	}
}

func TestLog(t *testing.T) {
	// Capture output
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	SetFlags(Perf)

	Log(Perf, "Perf Check")
	Log(Mesh, "Mesh Check")

	output := buf.String()
	if !strings.Contains(output, "Perf Check") {
		t.Error("Should have logged Perf message")
	}
	if strings.Contains(output, "Mesh Check") {
		t.Error("Should NOT have logged Mesh message")
	}
}
