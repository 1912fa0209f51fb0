package cli

var (
	verbose bool

	// for run command
	configPath string
	runOnce    bool
	simPath    string

	// address of a running instance, for io/screens/frame commands
	serverAddr string

	// for frame command
	frameOutputPath string
)
