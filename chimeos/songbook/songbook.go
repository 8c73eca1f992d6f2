// Package songbook holds the built-in ringtone library. Entries are
// plain RTTTL strings keyed by a short name; firmware without a
// filesystem plays from here.
package songbook

import "sort"

var songs = map[string]string{
	"arkanoid": "Arkanoid:d=4,o=5,b=140:8g6,16p,16g.6,2a#6,32p,8a6,8g6,8f6,8a6,2g6",
	"indiana":  "Indiana:d=4,o=5,b=250:e,8p,8f,8g,8p,1c6,8p.,d,8p,8e,1f,p.,g,8p,8a,8b,8p,1f6,p,a,8p,8b,2c6,2d6,2e6",
	"mario":    "Mario:d=4,o=5,b=100:16e6,16e6,32p,8e6,16c6,8e6,8g6,8p,8g,8p,8c6,16p,8g,16p,8e,16p,8a,8b,16a#,8a,16g.,16e6,16g6,8a6,16f6,8g6,8e6,16c6,16d6,8b,16p",
	"scale":    "Scale:d=8,o=5,b=160:c,d,e,f,g,a,b,c6",
	"tetris":   "Tetris:d=4,o=5,b=160:e6,8b,8c6,8d6,16e6,16d6,8c6,8b,a,8a,8c6,e6,8d6,8c6,b,8b,8c6,d6,e6,c6,a,2a,8p,d6,8f6,a6,8g6,8f6,e6,8e6,8c6,e6,8d6,8c6,b,8b,8c6,d6,e6,c6,a,a",
}

// Get returns the RTTTL text for a song name.
func Get(name string) (string, bool) {
	s, ok := songs[name]
	return s, ok
}

// Names returns all song names in sorted order.
func Names() []string {
	out := make([]string, 0, len(songs))
	for name := range songs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
