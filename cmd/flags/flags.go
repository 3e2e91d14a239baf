package flags

var (
	Debug      = false
	ConfigPath = ""
)
