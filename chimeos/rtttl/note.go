package rtttl

// Note is one decoded event of a song: either a pitched tone or a rest
// occupying Millis of timeline.
type Note struct {
	// Semitone is the offset from B of the previous octave: c=1 .. b=12,
	// sharps add one. 0 marks a rest.
	Semitone uint8
	Octave   uint8
	Millis   uint32
}

// Rest reports whether the note is silent.
func (n Note) Rest() bool { return n.Semitone == 0 }

// Frequency returns the note's output frequency in Hz, 0 for rests.
func (n Note) Frequency() uint32 { return Frequency(n.Octave, n.Semitone) }

// semitone numbers for the seven note letters, 1-based like the pitch
// table columns. Anything else (notably 'p') is a rest.
func semitoneFor(c byte) uint8 {
	switch c {
	case 'c':
		return 1
	case 'd':
		return 3
	case 'e':
		return 5
	case 'f':
		return 6
	case 'g':
		return 8
	case 'a':
		return 10
	case 'b':
		return 12
	}
	return 0
}

// nextNote decodes exactly one note token starting at pos and returns
// the note plus the cursor just past its trailing comma (when present).
// All reads are bounds-checked; a token truncated by end of text yields
// whatever was decoded so far.
func nextNote(song string, pos int, d defaults, whole uint32) (Note, int) {
	var n Note

	// Explicit duration divisor, e.g. "8" in "8d#".
	num, next := scanDigits(song, pos)
	pos = next
	if num > 0 {
		n.Millis = whole / uint32(num)
	} else {
		n.Millis = whole / uint32(d.duration)
	}

	if pos < len(song) {
		n.Semitone = semitoneFor(song[pos])
		pos++
	}

	// A sharp never turns a rest into a tone.
	if pos < len(song) && song[pos] == '#' {
		if n.Semitone != 0 {
			n.Semitone++
		}
		pos++
	}

	if pos < len(song) && song[pos] == '.' {
		n.Millis += n.Millis / 2
		pos++
	}

	// Single optional octave digit; otherwise the header default.
	if pos < len(song) && song[pos] >= '0' && song[pos] <= '9' {
		n.Octave = song[pos] - '0'
		pos++
	} else {
		n.Octave = d.octave
	}

	if pos < len(song) && song[pos] == ',' {
		pos++
	}
	return n, pos
}
