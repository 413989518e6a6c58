package lpass

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

const (
	// Binary is the LastPass CLI executable name.
	Binary = "lpass"

	// listFormat yields one pipe-delimited line per vault entry:
	// id|name|fullname|url.
	listFormat = "%ai|%an|%aN|%al"

	// GroupURL is the placeholder URL the vault uses for folder entries.
	GroupURL = "http://group"

	// attachmentPrefix marks attachment descriptor lines in lpass show
	// output.
	attachmentPrefix = "att-"
)

var (
	ErrNotInstalled = errors.New("lpass CLI not found in PATH")
	ErrLoginFailed  = errors.New("lastpass login failed")
)

// Format selects the item metadata serialization.
type Format string

const (
	FormatPlain Format = "plain"
	FormatJSON  Format = "json"
)

// Ext returns the metadata file extension for the format.
func (f Format) Ext() string {
	if f == FormatJSON {
		return "json"
	}
	return "txt"
}

// Item is one vault entry as enumerated by lpass ls.
type Item struct {
	ID       string
	Name     string
	FullName string
	URL      string
}

// IsGroup reports whether the entry is a folder placeholder rather than
// a real item.
func (i Item) IsGroup() bool {
	return i.URL == GroupURL
}

// Client is the vault surface the export pipeline depends on.
type Client interface {
	Login(ctx context.Context, username string) error
	Logout(ctx context.Context) error
	List(ctx context.Context) ([]Item, error)
	ItemDetail(ctx context.Context, id string, format Format) ([]byte, error)
	AttachmentList(ctx context.Context, id string) ([]string, error)
	Attachment(ctx context.Context, id, attID string) ([]byte, error)
}

// CheckInstalled verifies the lpass binary is available.
func CheckInstalled() error {
	if _, err := exec.LookPath(Binary); err != nil {
		return fmt.Errorf("%w: %v", ErrNotInstalled, err)
	}
	return nil
}

// CLI runs the lpass binary. Debugf, when set, receives a trace of every
// invocation.
type CLI struct {
	Debugf func(format string, args ...any)
}

var _ Client = (*CLI)(nil)

// Login ensures an authenticated session, reusing an existing one when
// lpass already has it. The lpass binary prompts for the master password
// on its own terminal, so stdin/stderr are passed through.
func (c *CLI) Login(ctx context.Context, username string) error {
	if c.loggedIn(ctx) {
		c.debugf("lpass: reusing existing session")
		return nil
	}
	if username == "" {
		return fmt.Errorf("%w: no session and no username given", ErrLoginFailed)
	}

	c.debugf("lpass: login %s", username)
	cmd := exec.CommandContext(ctx, Binary, "login", "--trust", username)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %v", ErrLoginFailed, err)
	}
	return nil
}

// Logout drops the session. Best effort on the way out.
func (c *CLI) Logout(ctx context.Context) error {
	_, err := c.run(ctx, "logout", "--force")
	return err
}

// List enumerates every vault entry, folder placeholders included.
func (c *CLI) List(ctx context.Context) ([]Item, error) {
	out, err := c.run(ctx, "ls", "--sync=now", "--format="+listFormat)
	if err != nil {
		return nil, err
	}
	return ParseItems(out), nil
}

// ItemDetail fetches one item's metadata in the requested serialization.
func (c *CLI) ItemDetail(ctx context.Context, id string, format Format) ([]byte, error) {
	if format == FormatJSON {
		return c.run(ctx, "show", "--json", id)
	}
	return c.run(ctx, "show", id)
}

// AttachmentList returns the raw attachment descriptor lines
// ("attID: name") from the item's show output.
func (c *CLI) AttachmentList(ctx context.Context, id string) ([]string, error) {
	out, err := c.run(ctx, "show", id)
	if err != nil {
		return nil, err
	}
	return ParseAttachmentLines(out), nil
}

// Attachment fetches one attachment's bytes.
func (c *CLI) Attachment(ctx context.Context, id, attID string) ([]byte, error) {
	return c.run(ctx, "show", "--attach="+attID, "--quiet", id)
}

func (c *CLI) loggedIn(ctx context.Context) bool {
	cmd := exec.CommandContext(ctx, Binary, "status", "--quiet")
	return cmd.Run() == nil
}

func (c *CLI) run(ctx context.Context, args ...string) ([]byte, error) {
	c.debugf("lpass: %s", strings.Join(args, " "))

	out, err := exec.CommandContext(ctx, Binary, args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("lpass %s: %v: %s", args[0], err,
				strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("lpass %s: %w", args[0], err)
	}
	return out, nil
}

func (c *CLI) debugf(format string, args ...any) {
	if c.Debugf != nil {
		c.Debugf(format, args...)
	}
}

// ParseItems parses pipe-delimited ls output (id|name|fullname|url).
// Malformed lines are dropped.
func ParseItems(out []byte) []Item {
	var items []Item
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, "|", 4)
		if len(fields) < 4 || fields[0] == "" {
			continue
		}
		items = append(items, Item{
			ID:       fields[0],
			Name:     fields[1],
			FullName: fields[2],
			URL:      fields[3],
		})
	}
	return items
}

// ParseAttachmentLines extracts attachment descriptor lines from item
// show output. Descriptors look like "att-1759758-1: statement.pdf";
// only the "att-" prefix and the colon are relied upon.
func ParseAttachmentLines(out []byte) []string {
	var lines []string
	for _, line := range strings.Split(string(out), "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, attachmentPrefix) && strings.Contains(trimmed, ":") {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// ParseDescriptor splits an attachment descriptor line into id and
// declared name, trimming whitespace around the first colon. The name
// may be empty; an empty id marks the descriptor malformed.
func ParseDescriptor(line string) (attID, name string) {
	attID, name, _ = strings.Cut(line, ":")
	return strings.TrimSpace(attID), strings.TrimSpace(name)
}
