package cli

// ArgSpec describes a single argument for a command. Fields are textual
// and intended for help/validation UI rather than machine-enforced typing.
type ArgSpec struct {
	Name        string // human name
	Type        string // "int", "float", "percent", "enum", "path", "string"
	Required    bool
	Default     string // textual default (for help only)
	Description string
}

// CommandSpec defines a single command and its expected arguments.
type CommandSpec struct {
	Name        string
	Args        []ArgSpec
	Usage       string // short usage string
	Description string // brief description
}

// Commands is the list of commands understood by Session.Execute.
// Coordinates are view pixels.
var Commands = []CommandSpec{
	{
		Name:        "open",
		Args:        []ArgSpec{{"path", "path", false, "", "image file path (fzf picker when empty)"}},
		Usage:       "open [path]",
		Description: "Load an image in the background and attach it to the view.",
	},
	{
		Name:        "down",
		Args:        []ArgSpec{{"x", "float", true, "", "pointer x"}, {"y", "float", true, "", "pointer y"}},
		Usage:       "down <x> <y>",
		Description: "Press the pointer and pick the mask region under it.",
	},
	{
		Name:        "move",
		Args:        []ArgSpec{{"x", "float", true, "", "pointer x"}, {"y", "float", true, "", "pointer y"}},
		Usage:       "move <x> <y>",
		Description: "Move the pressed pointer, dragging the active region.",
	},
	{
		Name:        "up",
		Args:        []ArgSpec{{"x", "float", false, "", "pointer x"}, {"y", "float", false, "", "pointer y"}},
		Usage:       "up [x] [y]",
		Description: "Release the pointer and schedule the control fade-out.",
	},
	{
		Name: "drag",
		Args: []ArgSpec{
			{"x0", "float", true, "", "start x"}, {"y0", "float", true, "", "start y"},
			{"x1", "float", true, "", "end x"}, {"y1", "float", true, "", "end y"},
			{"steps", "int", false, "8", "number of move samples"},
		},
		Usage:       "drag <x0> <y0> <x1> <y1> [steps]",
		Description: "Down, a straight run of moves, then up.",
	},
	{
		Name:        "feather",
		Args:        []ArgSpec{{"value", "float", true, "0.7", "edge softness 0..1"}},
		Usage:       "feather <0..1>",
		Description: "Set where the gradient starts fading inside the oval.",
	},
	{
		Name:        "intensity",
		Args:        []ArgSpec{{"value", "int", true, "15", "-100 (white) .. 100 (black)"}},
		Usage:       "intensity <-100..100>",
		Description: "Set scrim color and strength.",
	},
	{
		Name: "progress",
		Args: []ArgSpec{
			{"target", "enum", true, "", "feather|intensity"},
			{"value", "percent", true, "", "seek-bar position 0..100"},
		},
		Usage:       "progress <feather|intensity> <0..100>",
		Description: "Set feather or intensity from a seek-bar position.",
	},
	{
		Name:        "rotate",
		Args:        []ArgSpec{{"op", "enum", true, "", "cw|ccw|180|flip|flop"}},
		Usage:       "rotate <cw|ccw|180|flip|flop>",
		Description: "Rotate or mirror the photo; the mask follows the new bounds.",
	},
	{
		Name:        "view",
		Args:        []ArgSpec{{"width", "int", true, "800", "view width"}, {"height", "int", true, "600", "view height"}},
		Usage:       "view <width> <height>",
		Description: "Resize the view; the photo is refit and the mask remapped.",
	},
	{
		Name:        "restore",
		Usage:       "restore",
		Description: "Save the widget state, rebuild the widget and restore it.",
	},
	{
		Name:        "status",
		Usage:       "status",
		Description: "Print image bounds, mask and style.",
	},
	{
		Name:        "preview",
		Args:        []ArgSpec{{"auto", "enum", false, "", "on|off toggles preview after each command"}},
		Usage:       "preview [on|off]",
		Description: "Render the current frame in the terminal.",
	},
	{
		Name:        "save",
		Args:        []ArgSpec{{"path", "path", true, "", "output file (png, jpg, gif, bmp, tiff)"}},
		Usage:       "save <path>",
		Description: "Write the current view frame, controls included.",
	},
	{
		Name:        "export",
		Args:        []ArgSpec{{"path", "path", true, "", "output file (png, jpg, gif, bmp, tiff)"}},
		Usage:       "export <path>",
		Description: "Bake the vignette into the photo at full resolution.",
	},
	{
		Name:        "update",
		Args:        []ArgSpec{{"apply", "enum", false, "", "yes installs the latest release"}},
		Usage:       "update [yes]",
		Description: "Check GitHub for a newer release.",
	},
	{
		Name:        "help",
		Args:        []ArgSpec{{"command", "string", false, "", "command name"}},
		Usage:       "help [command]",
		Description: "Show commands or a command's parameters.",
	},
	{
		Name:        "quit",
		Usage:       "quit",
		Description: "Exit.",
	},
}
