// Package preference turns stored feedback into tone and mood preferences.
package preference

import (
	"dotpi/internal/feedback"
	"dotpi/internal/mood"
	"dotpi/internal/tone"
)

// Snapshot is derived from the full feedback history. Its maps always hold
// exactly the fixed tone and mood keys. A Snapshot is shared by readers and
// must be treated as read-only.
type Snapshot struct {
	LikedTones    map[tone.Tone]int
	LikedMoods    map[mood.Mood]int
	DislikedTones map[tone.Tone]int
	Moods         map[mood.Mood]int
	// Entries is the number of feedback records scanned.
	Entries int

	likedToneOrder    []tone.Tone
	dislikedToneOrder []tone.Tone
	moodOrder         []mood.Mood
}

// Empty reports the "no feedback yet" state.
func (s Snapshot) Empty() bool { return s.Entries == 0 }

// NewSnapshot returns the all-zero snapshot.
func NewSnapshot() Snapshot {
	s := Snapshot{
		LikedTones:    make(map[tone.Tone]int, len(tone.All)),
		LikedMoods:    make(map[mood.Mood]int, len(mood.All)),
		DislikedTones: make(map[tone.Tone]int, len(tone.All)),
		Moods:         make(map[mood.Mood]int, len(mood.All)),
	}
	for _, t := range tone.All {
		s.LikedTones[t] = 0
		s.DislikedTones[t] = 0
	}
	for _, m := range mood.All {
		s.LikedMoods[m] = 0
		s.Moods[m] = 0
	}
	return s
}

// Aggregate scans entries in order. Entries with an unknown kind contribute
// nothing; unknown tones and moods are ignored individually.
func Aggregate(entries []feedback.Entry) Snapshot {
	s := NewSnapshot()
	for _, e := range entries {
		s.Entries++
		t, toneOK := tone.Parse(string(e.ToneUsed))
		m, moodOK := mood.Normalize(string(e.DetectedMood))

		if moodOK {
			if s.Moods[m] == 0 {
				s.moodOrder = append(s.moodOrder, m)
			}
			s.Moods[m]++
		}

		switch e.Feedback {
		case feedback.Like:
			if toneOK {
				if s.LikedTones[t] == 0 {
					s.likedToneOrder = append(s.likedToneOrder, t)
				}
				s.LikedTones[t]++
			}
			if moodOK {
				s.LikedMoods[m]++
			}
		case feedback.Dislike:
			if toneOK {
				if s.DislikedTones[t] == 0 {
					s.dislikedToneOrder = append(s.dislikedToneOrder, t)
				}
				s.DislikedTones[t]++
			}
		}
	}
	return s
}

// RecommendTone returns the most-liked tone, ties going to the tone that was
// liked first. With no history or no liked tones it returns tone.Default.
func RecommendTone(s Snapshot) tone.Tone {
	if t, ok := Learned(s); ok {
		return t
	}
	return tone.Default
}

// Learned reports the most-liked tone, if any tone has been liked.
func Learned(s Snapshot) (tone.Tone, bool) {
	if s.Empty() {
		return "", false
	}
	top := topN(s.LikedTones, withCanonical(s.likedToneOrder, tone.All), 1)
	if len(top) == 0 {
		return "", false
	}
	return top[0], true
}

// topN returns up to n keys with a positive count, highest first, ties in
// discovery order.
func topN[K comparable](counts map[K]int, order []K, n int) []K {
	out := make([]K, 0, n)
	used := make(map[K]bool, n)
	for len(out) < n {
		var best K
		bestCount := 0
		for _, k := range order {
			if !used[k] && counts[k] > bestCount {
				best, bestCount = k, counts[k]
			}
		}
		if bestCount == 0 {
			break
		}
		used[best] = true
		out = append(out, best)
	}
	return out
}

// withCanonical appends the canonical keys missing from the discovery order,
// so snapshots assembled by hand still rank deterministically.
func withCanonical[K comparable](order, canonical []K) []K {
	if len(order) == len(canonical) {
		return order
	}
	seen := make(map[K]bool, len(order))
	out := make([]K, 0, len(canonical))
	for _, k := range order {
		seen[k] = true
		out = append(out, k)
	}
	for _, k := range canonical {
		if !seen[k] {
			out = append(out, k)
		}
	}
	return out
}
