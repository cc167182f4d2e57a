package icon

// Icon identifies a symbol in the registry.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Lua
	Play
	Pause
	Clock
	Film
)

var icons = map[Icon]glyphs{
	Success: {
		Emoji:   "🎉",
		Nerd:    "\uf00c",
		Plain:   "Success",
		Kaomoji: "(ᵔ◡ᵔ)",
		Squares: "🟩",
	},
	Fail: {
		Emoji:   "💀",
		Nerd:    "\uf00d",
		Plain:   "Fail",
		Kaomoji: "(×﹏×)",
		Squares: "🟥",
	},
	Progress: {
		Emoji:   "⏳",
		Nerd:    "\uf110",
		Plain:   "...",
		Kaomoji: "(・_・)",
		Squares: "🟨",
	},
	Lua: {
		Emoji:   "🌙",
		Nerd:    "\ue620",
		Plain:   "Lua",
		Kaomoji: "(◕‿◕)",
		Squares: "🟦",
	},
	Play: {
		Emoji:   "▶️",
		Nerd:    "\uf04b",
		Plain:   ">",
		Kaomoji: "(｀・ω・)▶",
		Squares: "🟩",
	},
	Pause: {
		Emoji:   "⏸️",
		Nerd:    "\uf04c",
		Plain:   "||",
		Kaomoji: "(－_－)",
		Squares: "🟧",
	},
	Clock: {
		Emoji:   "⏱️",
		Nerd:    "\uf017",
		Plain:   "Time",
		Kaomoji: "(・ω・)",
		Squares: "⬜",
	},
	Film: {
		Emoji:   "🎞️",
		Nerd:    "\uf008",
		Plain:   "Media",
		Kaomoji: "(□_□)",
		Squares: "⬛",
	},
}
