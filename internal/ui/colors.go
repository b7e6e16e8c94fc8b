package ui

// ColorRed returns the escape code for errors in the active theme.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorGreen returns the escape code for success in the active theme.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow returns the escape code for warnings in the active theme.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorBlue returns the primary accent of the active theme.
func ColorBlue() string { return GetCurrentTheme().Primary }

// ColorMagenta returns the informational color of the active theme.
func ColorMagenta() string { return GetCurrentTheme().Info }

// ColorGrey returns the secondary color of the active theme.
func ColorGrey() string { return GetCurrentTheme().Secondary }

// ColorReset returns the reset escape code of the active theme.
func ColorReset() string { return GetCurrentTheme().Reset }
