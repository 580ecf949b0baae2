package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gojot/internal/ui/pretty"
)

func TestFormatApplySummaryOneLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats pretty.ApplyStats
		want  string
	}{
		{
			name:  "saved",
			stats: pretty.ApplyStats{Path: "a.md", Steps: 5, Changed: 3, Additions: 2, Deletions: 1, Saved: true},
			want:  "a.md: 5 steps, 3 changed, +2 -1, saved\n",
		},
		{
			name:  "dry run",
			stats: pretty.ApplyStats{Path: "a.md", Steps: 1, Changed: 1, Additions: 1, DryRun: true},
			want:  "a.md: 1 step, 1 changed, +1 -0, dry run\n",
		},
		{
			name:  "nothing changed",
			stats: pretty.ApplyStats{Path: "a.md", Steps: 2},
			want:  "a.md: 2 steps, 0 changed, unchanged\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatApplySummaryOneLine(tt.stats))
		})
	}
}

func TestFormatApplySummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	result := styles.FormatApplySummary(pretty.ApplyStats{
		Path: "a.md", Steps: 4, Changed: 2, UndoDepth: 2, Additions: 3, Saved: true, Backup: "a.md.bak",
	})
	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "Steps run:         4")
	assert.Contains(t, result, "Undo depth:        2")
	assert.Contains(t, result, "Backup:            a.md.bak")
	assert.Contains(t, result, "Document saved")

	result = styles.FormatApplySummary(pretty.ApplyStats{Path: "a.md", DryRun: true})
	assert.Contains(t, result, "Dry run")
	assert.NotContains(t, result, "Backup:")
}
