package models

// Status is the lifecycle state of an Idea.
type Status string

const (
	StatusIdea       Status = "idea"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusIdea, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// StatusInfo is the display metadata rendered next to an idea's status.
type StatusInfo struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Emoji string `json:"emoji"`
	Short string `json:"short,omitempty"`
}

var statusTable = map[Status]StatusInfo{
	StatusIdea: {
		Key:   string(StatusIdea),
		Label: "Ide baru, belum dikerjakan",
		Emoji: "💡",
		Short: "Ide baru",
	},
	StatusInProgress: {
		Key:   string(StatusInProgress),
		Label: "Sedang dikembangkan",
		Emoji: "🔧",
		Short: "Dalam proses",
	},
	StatusDone: {
		Key:   string(StatusDone),
		Label: "Sudah selesai atau terealisasi",
		Emoji: "✅",
		Short: "Selesai",
	},
}

// Info returns the metadata for s. Unknown values echo the raw status back.
func (s Status) Info() StatusInfo {
	if info, ok := statusTable[s]; ok {
		return info
	}
	return StatusInfo{Key: string(s), Label: string(s)}
}
