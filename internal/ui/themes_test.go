package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/PneumoDetect/internal/toast"
)

func TestSetThemeByName(t *testing.T) {
	t.Cleanup(func() { SetTheme(&DefaultTheme) })

	for _, name := range GetAvailableThemes() {
		if !SetThemeByName(name) {
			t.Errorf("Expected theme %s to be accepted", name)
		}
		if got := GetTheme().Name; got != name {
			t.Errorf("Expected active theme %s, got %s", name, got)
		}
	}

	SetThemeByName("minimal")
	if SetThemeByName("neon") {
		t.Error("Expected unknown theme to be rejected")
	}
	if got := GetTheme().Name; got != "minimal" {
		t.Errorf("Expected unknown theme to keep minimal, got %s", got)
	}
}

func TestAvailableThemesOrder(t *testing.T) {
	want := []string{"default", "high-contrast", "minimal"}
	got := GetAvailableThemes()
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected %s at %d, got %s", want[i], i, got[i])
		}
	}
}

func TestPaletteFollowsColorSwitch(t *testing.T) {
	t.Cleanup(func() { SetColorDisabled(false) })
	t.Setenv("NO_COLOR", "")

	SetColorDisabled(false)
	colored := HighContrastTheme.Palette()
	if colored.Error != HighContrastTheme.Error {
		t.Errorf("Expected theme error color, got %v", colored.Error)
	}

	SetColorDisabled(true)
	plain := HighContrastTheme.Palette()
	if _, ok := plain.Error.(lipgloss.NoColor); !ok {
		t.Errorf("Expected NoColor when color is disabled, got %T", plain.Error)
	}
}

func TestToastStyleFallsBackToInfo(t *testing.T) {
	styles := newStyles(DefaultTheme)

	info := styles.ToastStyle(toast.TypeInfo).Render("x")
	if got := styles.ToastStyle(toast.Type("unknown")).Render("x"); got != info {
		t.Errorf("Expected unknown type to render like info, got %q", got)
	}
	if styles.Diagnosis(true).Render("x") != styles.Pneumonia.Render("x") {
		t.Error("Expected pneumonia style for a pneumonia diagnosis")
	}
}
