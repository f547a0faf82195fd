package config

var DefaultConfig Config
var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		Colors: ConfigColors{
			BoardColor:    180,
			LineColor:     94,
			RedColor:      160,
			BlackColor:    232,
			CursorColorBG: 4,
			SelectedBG:    3,
			LastMoveBG:    2,
		},
		HanziPieces: false,
	}

	DefaultConfig = Config{
		Server: ServerConfig{
			Addr:        ":2888",
			WebDir:      "./web",
			OpenBrowser: true,
		},
		Engine: EngineConfig{
			Depth:  3,
			AISide: "black",
		},
		Selfplay: SelfplayConfig{
			Games:    20,
			Parallel: 4,
		},
		Theme: DefaultTheme,
	}
}
