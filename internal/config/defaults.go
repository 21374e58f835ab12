package config

const (
	defaultConfigPath = "~/.config/ripconsole/config.toml"
	defaultDataDir    = "~/.local/share/ripconsole"
	defaultLogDir     = "~/.local/share/ripconsole/logs"
	defaultTVDir      = "~/media/completed/tv"
	defaultAPIBind    = "127.0.0.1:8095"
	defaultLogFormat  = "console"
	defaultLogLevel   = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
			APIBind: defaultAPIBind,
		},
		Library: Library{
			TVDir: defaultTVDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
