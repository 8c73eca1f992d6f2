// Command rtttldump decodes an RTTTL string and prints the resulting
// note events, one per line, plus the total play time.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"chime/chimeos/rtttl"
	"chime/chimeos/songbook"
)

func main() {
	var (
		inPath = flag.String("in", "", "File holding one RTTTL string.")
		name   = flag.String("name", "", "Songbook entry to dump.")
	)
	flag.Parse()

	song, err := pickSong(*inPath, *name, flag.Args())
	if err != nil {
		fatalf("%v", err)
	}

	notes, err := rtttl.Notes(song)
	if err != nil {
		fatalf("parse: %v", err)
	}

	var total uint64
	for i, n := range notes {
		total += uint64(n.Millis)
		if n.Rest() {
			fmt.Printf("%3d  %-4s %5s  %5dms\n", i, "p", "", n.Millis)
			continue
		}
		fmt.Printf("%3d  %-4s %4dHz  %5dms\n", i, noteName(n), n.Frequency(), n.Millis)
	}
	fmt.Printf("total %d notes, %d.%03ds\n", len(notes), total/1000, total%1000)
}

func pickSong(inPath, name string, args []string) (string, error) {
	switch {
	case inPath != "":
		b, err := os.ReadFile(inPath)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	case name != "":
		song, ok := songbook.Get(name)
		if !ok {
			return "", fmt.Errorf("unknown song %q (have: %s)", name, strings.Join(songbook.Names(), ", "))
		}
		return song, nil
	case len(args) == 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("usage: rtttldump [-in file | -name song | 'name:d=4,o=6,b=63:c,d,e']")
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "rtttldump: "+format+"\n", args...)
	os.Exit(1)
}

var letters = [...]string{"", "c", "c#", "d", "d#", "e", "f", "f#", "g", "g#", "a", "a#", "b"}

func noteName(n rtttl.Note) string {
	if int(n.Semitone) >= len(letters) {
		return "?"
	}
	return fmt.Sprintf("%s%d", letters[n.Semitone], n.Octave)
}
