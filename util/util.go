package util

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(prompt string, defaultYes bool) bool
}

// Prompt is a Confirmer reading answers from a terminal.
type Prompt struct {
	In        io.Reader
	Out       io.Writer
	AssumeYes bool // answer yes without asking (-y)

	reader *bufio.Reader
}

// NewPrompt creates a Prompt on stdin/stdout
func NewPrompt(assumeYes bool) *Prompt {
	return &Prompt{In: os.Stdin, Out: os.Stdout, AssumeYes: assumeYes}
}

// Confirm implements Confirmer
func (p *Prompt) Confirm(prompt string, defaultYes bool) bool {
	if p.AssumeYes {
		return true
	}
	if p.reader == nil {
		p.reader = bufio.NewReader(p.In)
	}
	return AskYN(p.reader, p.Out, prompt, defaultYes)
}

// AskYN prompts the user for yes/no confirmation
func AskYN(in *bufio.Reader, out io.Writer, prompt string, defaultYes bool) bool {
	if defaultYes {
		fmt.Fprintf(out, "%s [Y/n]: ", prompt)
	} else {
		fmt.Fprintf(out, "%s [y/N]: ", prompt)
	}

	response, _ := in.ReadString('\n')
	response = strings.ToLower(strings.TrimSpace(response))

	if response == "" {
		return defaultYes
	}

	return response == "y" || response == "yes"
}

// Answer is a Confirmer with a fixed reply, recording the prompts it saw.
type Answer struct {
	Reply   bool
	Prompts []string
}

// Confirm implements Confirmer
func (a *Answer) Confirm(prompt string, defaultYes bool) bool {
	a.Prompts = append(a.Prompts, prompt)
	return a.Reply
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// DirExists checks if a directory exists
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Writable reports whether the current user may create files in dir.
// A missing dir is judged by its nearest existing parent.
func Writable(dir string) bool {
	for dir != "" {
		if err := unix.Access(dir, unix.W_OK); err == nil {
			return true
		} else if !os.IsNotExist(err) {
			return false
		}
		parent := parentDir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return false
}

func parentDir(p string) string {
	p = strings.TrimRight(p, "/")
	i := strings.LastIndex(p, "/")
	switch {
	case i < 0:
		return ""
	case i == 0:
		return "/"
	}
	return p[:i]
}

// Contains checks if a string slice contains a value
func Contains(slice []string, value string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}
