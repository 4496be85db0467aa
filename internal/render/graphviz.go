package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrGraphvizMissing indicates the dot binary is not installed.
var ErrGraphvizMissing = errors.New("graphviz 'dot' not found in PATH")

// Graphviz lays out DOT source with the dot binary.
type Graphviz struct {
	Binary string
}

// LookGraphviz finds the dot binary.
func LookGraphviz() (*Graphviz, error) {
	path, err := exec.LookPath("dot")
	if err != nil {
		return nil, ErrGraphvizMissing
	}
	return &Graphviz{Binary: path}, nil
}

// Render lays out src and writes it to outPath in the given format (png, svg).
func (g *Graphviz) Render(ctx context.Context, src, format, outPath string) error {
	cmd := exec.CommandContext(ctx, g.Binary, "-Kdot", "-T"+format, "-o", outPath)
	cmd.Stdin = strings.NewReader(src)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running dot: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return nil
}
