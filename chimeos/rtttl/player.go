// Package rtttl parses RTTTL ringtone text and steps playback through a
// square-wave tone output without ever blocking the caller.
//
// The player owns no clock and no goroutine: the surrounding loop calls
// Step with the current tick (1 tick = 1 ms) and the player either waits
// out the sounding note by returning immediately, or decodes the next
// token and reprograms the tone output.
package rtttl

// Tone is the output peripheral contract. Both operations must return
// without waiting for the note to elapse.
type Tone interface {
	// Start emits freqHz until Mute or the next Start.
	Start(freqHz uint32) error
	// Mute silences the output.
	Mute()
}

// DefaultVolume matches the load-time volume of the usual RTTTL players.
const DefaultVolume = 10

// Player is a non-blocking RTTTL playback scheduler over one Tone.
//
// Concurrent use from multiple goroutines without external serialization
// is not supported; the intended driver is a single cooperative loop.
type Player struct {
	tone Tone

	song      string
	songStart int
	def       defaults
	whole     uint32
	volume    uint8
	loaded    bool

	pos      int
	deadline uint64
	playing  bool
}

// New returns a player bound to an already-configured tone output.
func New(tone Tone) *Player {
	return &Player{tone: tone}
}

// Load parses the song header and arms the player at the first note.
// Playback does not start until Play. The previous song, if any, is
// silenced and discarded even when Load fails.
func (p *Player) Load(song string) error {
	return p.LoadVolume(song, DefaultVolume)
}

// LoadVolume is Load with an explicit volume. The volume is retained for
// the output stage; it does not shape the note stream.
func (p *Player) LoadVolume(song string, volume uint8) error {
	p.tone.Mute()
	p.playing = false
	p.loaded = false
	p.deadline = 0

	def, whole, start, err := parseHeader(song)
	if err != nil {
		return err
	}

	p.song = song
	p.def = def
	p.whole = whole
	p.songStart = start
	p.pos = start
	p.volume = volume
	p.loaded = true
	return nil
}

// Play arms playback of the loaded song. It returns false when no song
// has been loaded. The first note is decoded lazily by the next Step.
func (p *Player) Play() bool {
	if !p.loaded {
		return false
	}
	p.playing = true
	return true
}

// Stop cancels playback immediately: the output is muted and the cursor
// rewinds to the first note so a later Play replays the song. Calling
// Stop while already stopped is a no-op.
func (p *Player) Stop() {
	if !p.playing {
		return
	}
	p.tone.Mute()
	p.playing = false
	p.pos = p.songStart
	p.deadline = 0
}

// Step advances playback by at most one note and returns whether the
// song is still in progress. now is the caller's tick value in
// milliseconds; Step returns in bounded time regardless of note length.
//
// While the current note's deadline has not passed, Step does nothing.
// At the deadline it decodes the next token, programs the tone output
// (or leaves it muted for a rest) and sets the next deadline. At end of
// text it mutes, rewinds to the first note and reports false.
func (p *Player) Step(now uint64) bool {
	if !p.playing {
		return false
	}
	if now < p.deadline {
		return true
	}

	if p.pos >= len(p.song) {
		p.tone.Mute()
		p.playing = false
		p.pos = p.songStart
		p.deadline = 0
		return false
	}

	// Stop whatever is still sounding before the next token.
	p.tone.Mute()

	n, next := nextNote(p.song, p.pos, p.def, p.whole)
	p.pos = next

	if freq := n.Frequency(); freq > 0 {
		_ = p.tone.Start(freq)
		p.deadline = now + uint64(n.Millis) + 1
	} else {
		p.deadline = now + uint64(n.Millis)
	}
	return true
}

// IsPlaying reports whether a song is in progress. Pure query.
func (p *Player) IsPlaying() bool { return p.playing }

// Done is the negation of IsPlaying. Pure query.
func (p *Player) Done() bool { return !p.playing }

// Volume returns the volume supplied at load time.
func (p *Player) Volume() uint8 { return p.volume }

// Notes eagerly decodes the whole song into its note events. It shares
// the header parser and tokenizer with the player and is meant for
// inspection tools and tests, not for playback.
func Notes(song string) ([]Note, error) {
	def, whole, pos, err := parseHeader(song)
	if err != nil {
		return nil, err
	}
	var out []Note
	for pos < len(song) {
		var n Note
		n, pos = nextNote(song, pos, def, whole)
		out = append(out, n)
	}
	return out, nil
}
