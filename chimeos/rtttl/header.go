package rtttl

import "errors"

// Built-in header defaults, used when the song omits a field.
const (
	DefaultDuration = 4
	DefaultOctave   = 6
	DefaultBPM      = 63
)

var (
	// ErrMissingHeader reports a song with no name/header separator.
	ErrMissingHeader = errors.New("rtttl: missing ':' after song name")
	// ErrZeroBPM reports a header whose b= field resolves to 0.
	ErrZeroBPM = errors.New("rtttl: header b= value is zero")
)

// defaults carries the per-song header values.
type defaults struct {
	duration int
	octave   uint8
	bpm      int
}

// parseHeader consumes the "name:d=N,o=N,b=NNN:" prefix of song and
// returns the header defaults, the whole-note duration in milliseconds
// and the index of the first note token.
//
// The field scan mirrors the usual RTTTL players: d, o and b are each
// optional but order-fixed, and the separator after a present field is
// skipped without being checked. A malformed separator therefore
// desynchronizes the cursor into the note list rather than failing the
// load; only a missing ':' and a zero BPM are rejected.
func parseHeader(song string) (defaults, uint32, int, error) {
	d := defaults{duration: DefaultDuration, octave: DefaultOctave, bpm: DefaultBPM}

	pos := 0
	for pos < len(song) && song[pos] != ':' {
		pos++
	}
	if pos >= len(song) {
		return defaults{}, 0, 0, ErrMissingHeader
	}
	pos++ // ':'

	if pos < len(song) && song[pos] == 'd' {
		pos += 2 // "d="
		num, next := scanDigits(song, pos)
		pos = next
		if num > 0 {
			d.duration = num
		}
		pos++ // ','
	}

	if pos < len(song) && song[pos] == 'o' {
		pos += 2 // "o="
		if pos < len(song) {
			num := int(song[pos] - '0')
			pos++
			if num >= 3 && num <= 7 {
				d.octave = uint8(num)
			}
		}
		pos++ // ','
	}

	if pos < len(song) && song[pos] == 'b' {
		pos += 2 // "b="
		num, next := scanDigits(song, pos)
		pos = next
		if num <= 0 {
			return defaults{}, 0, 0, ErrZeroBPM
		}
		d.bpm = num
		pos++ // ':'
	}

	if pos > len(song) {
		pos = len(song)
	}

	// BPM counts quarter notes per minute, so a whole note spans two
	// half-minute fractions.
	whole := uint32(60_000/d.bpm) * 2
	return d, whole, pos, nil
}

// scanDigits reads a run of decimal digits starting at pos.
func scanDigits(s string, pos int) (int, int) {
	num := 0
	for pos < len(s) && s[pos] >= '0' && s[pos] <= '9' {
		num = num*10 + int(s[pos]-'0')
		pos++
	}
	return num, pos
}
