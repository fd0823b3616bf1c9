package classify

import "testing"

func TestNotNeeded(t *testing.T) {
	rs := newTestRuleset()

	tests := []struct {
		name       string
		rel        string
		wantReason string
		wantFlag   bool
	}{
		{
			name:       "zip archive flagged unconditionally",
			rel:        "downloads/site.zip",
			wantReason: "Packaged artifact (.zip)",
			wantFlag:   true,
		},
		{
			name:       "bak file flagged",
			rel:        "notes/draft.bak",
			wantReason: "Packaged artifact (.bak)",
			wantFlag:   true,
		},
		{
			name:       "log file flagged",
			rel:        "runs/build.log",
			wantReason: "Packaged artifact (.log)",
			wantFlag:   true,
		},
		{
			name:       "backup token flagged",
			rel:        "backup/site/index.html",
			wantReason: "Looks like export/backup/temp",
			wantFlag:   true,
		},
		{
			name:       "export token flagged",
			rel:        "exports/reader.html",
			wantReason: "Looks like export/backup/temp",
			wantFlag:   true,
		},
		{
			name:     "plan dir token suppresses the token rule",
			rel:      "exports/Build_plan/reader.html",
			wantFlag: false,
		},
		{
			name: "suppression is a substring check, not a segment check",
			// The plan token appearing inside a file name still suppresses
			rel:      "old/build_plan_notes.html",
			wantFlag: false,
		},
		{
			name:       "packaging extension is not suppressed by the plan token",
			rel:        "Build_plan/old_site.zip",
			wantReason: "Packaged artifact (.zip)",
			wantFlag:   true,
		},
		{
			name:     "clean path not flagged",
			rel:      "docs/overview.md",
			wantFlag: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reason, flagged := rs.NotNeeded(tt.rel)
			if flagged != tt.wantFlag {
				t.Fatalf("flagged = %v, want %v (reason %q)", flagged, tt.wantFlag, reason)
			}
			if tt.wantFlag && reason != tt.wantReason {
				t.Errorf("reason = %q, want %q", reason, tt.wantReason)
			}
		})
	}
}
