package domain

// ThemeMode is the colour scheme a user picked for the client.
type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"

	DefaultTheme = ThemeLight
)

func (m ThemeMode) Valid() bool {
	return m == ThemeLight || m == ThemeDark
}

func (m ThemeMode) Toggle() ThemeMode {
	if m == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}
