package fileclient

import (
	"math/rand"
	"strings"
	"testing"
)

func TestGenerateCommandsWritesEveryFileOnce(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	commands := GenerateCommands(3, 2, 2, 7, rng)

	initialWrites := 0
	for _, c := range commands[:3] {
		if !strings.HasPrefix(c, "write 7-") {
			t.Fatalf("expected initial write command, got %q", c)
		}
		initialWrites++
	}
	if initialWrites != 3 {
		t.Fatalf("expected 3 initial writes, got %d", initialWrites)
	}
}

func TestGenerateCommandsTotalCount(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	commands := GenerateCommands(2, 3, 4, 0, rng)
	if len(commands) != 2+3+4 {
		t.Fatalf("expected %d commands, got %d", 2+3+4, len(commands))
	}
}
