package cli

import (
	"bytes"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// imageGlobs lists the extensions the file picker offers.
var imageGlobs = []string{"jpg", "jpeg", "png", "gif", "webp", "bmp", "tif", "tiff"}

// SelectCommandWithFzf displays the commands in fzf and returns the selected
// command name.
func SelectCommandWithFzf(commands []CommandSpec) (string, error) {
	var b strings.Builder
	for _, c := range commands {
		fmt.Fprintf(&b, "%s: %s\n", c.Name, c.Description)
	}

	cmd := exec.Command("fzf", "--prompt=Command> ")
	cmd.Stdin = strings.NewReader(b.String())
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("error running fzf: %w", err)
	}
	return parseCommandSelection(out.String())
}

func parseCommandSelection(s string) (string, error) {
	name, _, _ := strings.Cut(strings.TrimSpace(s), ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("no command selected")
	}
	return name, nil
}

// findCommand builds the shell pipeline that lists image files under dir
// and hands them to fzf with a preview pane suited to the terminal.
func (p *Previewer) findCommand(dir string) string {
	var previewCmd string
	switch {
	case p.isKitty():
		previewCmd = "kitty +kitten icat --clear --transfer-mode=memory --stdin=no {} 2>/dev/null || chafa -s 80x40 {} 2>/dev/null"
	case p.isInlineCapable():
		previewCmd = "imgcat {} 2>/dev/null || chafa -s 80x40 {} 2>/dev/null"
	case p.isSixelCapable():
		previewCmd = "img2sixel {} 2>/dev/null || chafa -s 80x40 {} 2>/dev/null"
	default:
		previewCmd = "chafa -s 80x40 {} 2>/dev/null"
	}
	names := make([]string, len(imageGlobs))
	for i, g := range imageGlobs {
		names[i] = "-iname '*." + g + "'"
	}
	return fmt.Sprintf(
		"find %s -type f \\( %s \\) | fzf --height 100%% --border --prompt='Files> ' --preview=%q --preview-window='right:60%%'",
		strconv.Quote(dir),
		strings.Join(names, " -o "),
		previewCmd,
	)
}

// SelectFileWithFzf launches fzf over the image files found under startDir
// and returns the selected path. It needs find, bash and fzf on PATH.
func (p *Previewer) SelectFileWithFzf(startDir string) (string, error) {
	cmd := exec.Command("bash", "-c", p.findCommand(startDir))
	var out bytes.Buffer
	cmd.Stdout = &out
	err := cmd.Run()
	if p.isKitty() {
		// drop images the previewer left behind
		fmt.Fprint(p.Out, "\x1b_Ga=d\x1b\\")
	}
	if err != nil {
		return "", fmt.Errorf("error running fzf for files: %w", err)
	}
	selection := strings.TrimSpace(out.String())
	if selection == "" {
		return "", fmt.Errorf("no file selected")
	}
	return selection, nil
}
