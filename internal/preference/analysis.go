package preference

import (
	"dotpi/internal/mood"
	"dotpi/internal/tone"
)

const noFeedbackStatus = "No feedback yet."

// Analysis is the summary view of a snapshot.
type Analysis struct {
	Status            string            `json:"status,omitempty"`
	Entries           int               `json:"entries"`
	RecommendedTone   tone.Tone         `json:"recommended_tone"`
	MostLikedTones    []tone.Tone       `json:"most_liked_tones"`
	MostDislikedTones []tone.Tone       `json:"most_disliked_tones"`
	CommonMoods       []mood.Mood       `json:"common_moods"`
	LikedToneCounts   map[tone.Tone]int `json:"liked_tone_counts"`
	LikedMoodCounts   map[mood.Mood]int `json:"liked_mood_counts"`
}

// Analyze lists the top two liked tones, disliked tones and moods.
func Analyze(s Snapshot) Analysis {
	a := Analysis{
		Entries:           s.Entries,
		RecommendedTone:   RecommendTone(s),
		MostLikedTones:    topN(s.LikedTones, withCanonical(s.likedToneOrder, tone.All), 2),
		MostDislikedTones: topN(s.DislikedTones, withCanonical(s.dislikedToneOrder, tone.All), 2),
		CommonMoods:       topN(s.Moods, withCanonical(s.moodOrder, mood.All), 2),
		LikedToneCounts:   s.LikedTones,
		LikedMoodCounts:   s.LikedMoods,
	}
	if s.Empty() {
		a.Status = noFeedbackStatus
	}
	return a
}
