// Package webroot maps request targets onto files and directories under a
// document root.
package webroot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DirName is the directory under the working directory served by default
const DirName = "webroot"

var (
	ErrNotFound   = errors.New("not found")
	ErrNotRegular = errors.New("not a regular file or directory")
)

// Content is a resolved body and the media type to send it with
type Content struct {
	Body     []byte
	MimeType string
}

// Resolver looks request targets up under Root.
//
// Targets are appended to Root as plain strings with no cleaning, so a target
// such as "/../secret" can reach outside Root. Set ConfineToRoot to answer
// such targets with ErrNotFound instead.
type Resolver struct {
	Root          string
	ConfineToRoot bool
}

func New(root string) *Resolver {
	return &Resolver{Root: strings.TrimRight(root, string(filepath.Separator))}
}

// DefaultRoot returns the webroot directory under the working directory
func DefaultRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return filepath.Join(wd, DirName), nil
}

// Resolve returns the content for target. Missing entries, unreadable
// files and files with no known media type all yield ErrNotFound. Entries
// that are neither regular files nor directories yield ErrNotRegular. Any
// other error means the lookup itself broke.
func (r *Resolver) Resolve(target string) (Content, error) {
	full := r.Root + target

	if r.ConfineToRoot && !r.within(full) {
		return Content{}, fmt.Errorf("%w: %s escapes the document root", ErrNotFound, target)
	}

	info, err := os.Stat(full)
	if err != nil {
		return Content{}, fmt.Errorf("%w: %s", ErrNotFound, target)
	}

	switch mode := info.Mode(); {
	case mode.IsDir():
		return listDir(full)
	case !mode.IsRegular():
		// Reading a FIFO or device could block forever.
		return Content{}, fmt.Errorf("%w: %s is %s", ErrNotRegular, target, mode.Type())
	}

	mimeType := typeByExtension(full)
	if mimeType == "" {
		return Content{}, fmt.Errorf("%w: no media type for %s", ErrNotFound, target)
	}

	body, err := os.ReadFile(full)
	if err != nil {
		return Content{}, fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	return Content{Body: body, MimeType: mimeType}, nil
}

func (r *Resolver) within(full string) bool {
	rel, err := filepath.Rel(r.Root, filepath.Clean(full))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// listDir joins the names of the immediate entries with CRLF, in the order
// the filesystem returns them.
func listDir(dir string) (Content, error) {
	f, err := os.Open(dir)
	if err != nil {
		return Content{}, fmt.Errorf("open directory: %w", err)
	}
	defer f.Close()

	names, err := f.Readdirnames(-1)
	if err != nil {
		return Content{}, fmt.Errorf("list directory: %w", err)
	}

	return Content{
		Body:     []byte(strings.Join(names, "\r\n")),
		MimeType: "text/plain",
	}, nil
}
