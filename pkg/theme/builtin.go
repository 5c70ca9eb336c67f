package theme

// thRegisterBuiltins registers all built-in themes in the registry.
// Registration order is the switch_theme cycle order.
func thRegisterBuiltins() {
	for _, p := range []Palette{
		thDefaultTheme(),
		thLofiNightTheme(),
		thDarkTheme(),
		thLightTheme(),
		thSynthwaveTheme(),
		thForestTheme(),
		thDraculaTheme(),
		thGruvboxTheme(),
	} {
		Register(p)
	}
}

func thPalette(name string, tokens [8]string) Palette {
	p := Palette{Name: name}
	for i, s := range Slots {
		p.set(s, MustParseColor(tokens[i]))
	}
	return p
}

// thDefaultTheme is the 16-color fallback every slot degrades to.
func thDefaultTheme() Palette {
	return thPalette("default", [8]string{
		"cyan", "yellow", "black", "white", "gray", "bright_cyan", "red", "green",
	})
}

// thLofiNightTheme is the dark theme the stock layout ships with.
func thLofiNightTheme() Palette {
	return thPalette("lofi_night", [8]string{
		"#bd93f9", "#ff79c6", "#282a36", "#f8f8f2", "#6272a4", "#8be9fd", "#ff5555", "#50fa7b",
	})
}

func thDarkTheme() Palette {
	return thPalette("dark", [8]string{
		"cyan", "yellow", "black", "white", "gray", "bright_cyan", "red", "green",
	})
}

func thLightTheme() Palette {
	return thPalette("light", [8]string{
		"blue", "magenta", "white", "black", "dark_gray", "bright_blue", "red", "green",
	})
}

// thSynthwaveTheme returns the neon retro theme.
func thSynthwaveTheme() Palette {
	return thPalette("synthwave", [8]string{
		"#ff00ff", "#00ffff", "#0a0a0a", "#ffffff", "#ff00ff", "#ffff00", "#ff0080", "#00ff80",
	})
}

func thForestTheme() Palette {
	return thPalette("forest", [8]string{
		"#228b22", "#daa520", "#0f1419", "#e6e6e6", "#556b2f", "#32cd32", "#dc143c", "#90ee90",
	})
}

func thDraculaTheme() Palette {
	return thPalette("dracula", [8]string{
		"#bd93f9", "#ff79c6", "#282a36", "#f8f8f2", "#6272a4", "#8be9fd", "#ff5555", "#50fa7b",
	})
}

// thGruvboxTheme returns the warm retro Gruvbox theme.
func thGruvboxTheme() Palette {
	return thPalette("gruvbox", [8]string{
		"#fabd2f", "#fe8019", "#282828", "#ebdbb2", "#928374", "#83a598", "#cc241d", "#b8bb26",
	})
}
