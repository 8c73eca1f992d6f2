package rtttl

// octaveOffset shifts the RTTTL octave digit before the table lookup.
// With offset 0, octave 4 lands on the first table row.
const octaveOffset = 0

// pitches holds square-wave frequencies in Hz for octaves 4..7.
// Rows are 13 wide and indexed (octave-4)*13 + semitone with semitone
// 1..12 (c=1 .. b=12); index 0 of each row is unused so a semitone of
// 0 can mean "rest" without a sentinel check at every call site.
var pitches = [...]uint16{
	0, 262, 277, 294, 311, 330, 349, 370, 392, 415, 440, 466, 494,
	0, 523, 554, 587, 622, 659, 698, 740, 784, 831, 880, 932, 988,
	0, 1047, 1109, 1175, 1245, 1319, 1397, 1480, 1568, 1661, 1760, 1865, 1976,
	0, 2093, 2217, 2349, 2489, 2637, 2794, 2960, 3136, 3322, 3520, 3729, 3951,
}

// Frequency returns the output frequency in Hz for a (octave, semitone)
// pair, or 0 when the pair is a rest or falls outside the table.
func Frequency(octave uint8, semitone uint8) uint32 {
	if semitone == 0 || semitone > 12 {
		return 0
	}
	row := int(octave) + octaveOffset - 4
	if row < 0 || row >= len(pitches)/13 {
		return 0
	}
	return uint32(pitches[row*13+int(semitone)])
}
