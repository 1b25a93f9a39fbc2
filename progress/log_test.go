package progress

import (
	"bytes"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}

func TestLogReporterQuietByDefault(t *testing.T) {
	buf := captureLog(t)
	r := NewLogReporter()

	r.Update("hidden detail")
	assert.Empty(t, buf.String())

	r.Finish("done")
	assert.Contains(t, buf.String(), "[+] done")

	r.Error("broken")
	assert.Contains(t, buf.String(), "[!] broken")
}

func TestLogReporterVerboseShowsUpdates(t *testing.T) {
	buf := captureLog(t)
	r := NewLogReporter().SetVerbose(true)

	r.Update("resolved %d names", 3)
	assert.Contains(t, buf.String(), "[*] resolved 3 names")
}
