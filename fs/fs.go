// Package fs prints a styled tree of a filesystem, used in dev mode to
// show which static and template files the server picked up.
package fs

import (
	"fmt"
	"io/fs"

	"github.com/wxmap/stations-live/style"
)

// Print renders the tree rooted at f under a section header.
func Print(name string, f fs.FS) {
	entries, err := fs.ReadDir(f, ".")
	if err != nil {
		fmt.Println(style.Error.Render(fmt.Sprintf("Error reading %s: %v", name, err)))
		return
	}

	fmt.Println(style.Section.Render(name + ":"))
	for _, entry := range entries {
		prefix := "  └─"
		if entry.IsDir() {
			fmt.Printf("%s %s\n", prefix, style.Dir.Render("📁 "+entry.Name()+"/"))
			printDir(f, entry.Name(), "     ")
		} else {
			fmt.Printf("%s %s\n", prefix, style.File.Render("📄 "+entry.Name()))
		}
	}
}

func printDir(f fs.FS, dir string, indent string) {
	entries, err := fs.ReadDir(f, dir)
	if err != nil {
		return
	}

	for i, entry := range entries {
		isLast := i == len(entries)-1
		prefix := indent + "└─"
		if !isLast {
			prefix = indent + "├─"
		}

		if entry.IsDir() {
			fmt.Printf("%s %s\n", prefix, style.Dir.Render("📁 "+entry.Name()+"/"))
			newIndent := indent
			if isLast {
				newIndent += "   "
			} else {
				newIndent += "│  "
			}
			printDir(f, dir+"/"+entry.Name(), newIndent)
		} else {
			fmt.Printf("%s %s\n", prefix, style.File.Render("📄 "+entry.Name()))
		}
	}
}
