package fileclient

import (
	"fmt"
	"math/rand"
	"strings"
)

const payloadCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomPayload(rng *rand.Rand, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = payloadCharset[rng.Intn(len(payloadCharset))]
	}
	return string(b)
}

// GenerateCommands builds a command script exercising numFiles distinct
// files named "<clientNum>-<i>.txt", one initial write per file,
// followed by numWrites/numReads additional commands mixed in
// proportion to the remaining counts.
func GenerateCommands(numFiles, numWrites, numReads, clientNum int, rng *rand.Rand) []string {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	files := make([]string, 0, numFiles)
	commands := make([]string, 0, numFiles+numWrites+numReads)
	for i := 0; i < numFiles; i++ {
		file := fmt.Sprintf("%d-%d.txt", clientNum, i)
		files = append(files, file)
		commands = append(commands, fmt.Sprintf("write %s %s", file, randomPayload(rng, 100)))
	}

	remainingWrites, remainingReads := numWrites, numReads
	for remainingWrites > 0 || remainingReads > 0 {
		pRead := float64(remainingReads) / float64(remainingWrites+remainingReads)
		file := files[rng.Intn(len(files))]
		if rng.Float64() < pRead {
			commands = append(commands, fmt.Sprintf("read %s", file))
			remainingReads--
		} else {
			commands = append(commands, fmt.Sprintf("write %s %s", file, randomPayload(rng, 100)))
			remainingWrites--
		}
	}
	return commands
}

// WriteCommands joins commands into the newline-delimited script format
// Runner.Run expects.
func WriteCommands(commands []string) string {
	return strings.Join(commands, "\n")
}
