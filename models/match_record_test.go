package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindFromScreenshotURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want RecordKind
	}{
		{"manual sentinel", ManualEntrySentinel, KindManual},
		{"daily total sentinel", DailyTotalEntrySentinel, KindDailyTotal},
		{"real object url", "https://cdn.example.com/screenshots/1/a.png", KindAutomatic},
		{"empty", "", KindAutomatic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindFromScreenshotURL(tt.url))
		})
	}
}

func TestIsDailyTotal(t *testing.T) {
	assert.True(t, MatchRecord{MatchNumber: 0}.IsDailyTotal())
	assert.False(t, MatchRecord{MatchNumber: 1}.IsDailyTotal())
}
