// file: internal/metrics/metrics_test.go
// version: 2.0.0
// guid: 2662c48f-08fd-48e7-a088-dc9148f0275a

package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Counters(t *testing.T) {
	r := New()

	r.ObserveFile("moved")
	r.ObserveFile("moved")
	r.ObserveFile("error")
	r.ObserveMetadata("fallback")
	r.ObserveRestore("restored")
	r.AddBytesMoved(2048)
	r.AddBytesMoved(-5)
	r.IncPlaylists()
	r.ObserveRunDuration("organize", 1500*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.files.WithLabelValues("moved")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.files.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.metadataReads.WithLabelValues("fallback")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.restores.WithLabelValues("restored")))
	assert.Equal(t, 2048.0, testutil.ToFloat64(r.bytesMoved))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.playlists))
	assert.Equal(t, 1.5, testutil.ToFloat64(r.runDuration.WithLabelValues("organize")))
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var r *Recorder
	r.ObserveFile("moved")
	r.ObserveMetadata("ok")
	r.ObserveRestore("skipped")
	r.AddBytesMoved(10)
	r.IncPlaylists()
	r.ObserveRunDuration("undo", time.Second)
}

func TestRecorder_IndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.ObserveFile("moved")
	assert.Equal(t, 0.0, testutil.ToFloat64(b.files.WithLabelValues("moved")))
}

func TestRecorder_WriteTextfile(t *testing.T) {
	r := New()
	r.ObserveFile("skipped")

	path := filepath.Join(t.TempDir(), "organizer.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `music_organizer_files_total{outcome="skipped"} 1`), string(data))
}
