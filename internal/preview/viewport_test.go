package preview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScreenSizeStyle(t *testing.T) {
	tests := []struct {
		size  ScreenSize
		width string
		label string
	}{
		{ScreenMobile, "375px", "Mobile (375px)"},
		{ScreenTablet, "768px", "Tablet (768px)"},
		{ScreenDesktop, "1024px", "Desktop (1024px)"},
	}

	for _, tt := range tests {
		t.Run(string(tt.size), func(t *testing.T) {
			style := tt.size.Style()
			assert.Equal(t, tt.width, style.Width)
			assert.Equal(t, "100%", style.Height)
			assert.Equal(t, "none", style.Border)
			assert.Equal(t, tt.label, tt.size.Label())
			assert.True(t, tt.size.Valid())
		})
	}

	assert.False(t, ScreenSize("watch").Valid())
}
