package scribie

// Job states reported by the transcription service. Automated jobs
// finish in StateAutomaticDone; manually reviewed ones in StateDone.
const (
	StatePending       = "pending"
	StateProcessing    = "processing"
	StateDone          = "done"
	StateAutomaticDone = "automatic_done"
)

// IsTerminalSuccess reports whether a job state carries a finished
// transcript ready for download.
func IsTerminalSuccess(state string) bool {
	return state == StateDone || state == StateAutomaticDone
}

// IsTerminal reports whether polling should stop for this state.
// Anything that is neither pending nor processing is terminal.
func IsTerminal(state string) bool {
	return state != StatePending && state != StateProcessing
}

// Job identifies one submitted transcription job.
type Job struct {
	ID string `json:"id"`
}

// JobStatus is the status-poll response. DownloadURL is only populated
// once the job reaches a terminal success state.
type JobStatus struct {
	State       string `json:"state"`
	DownloadURL string `json:"download_url,omitempty"`
}

// Monologue is one speaker turn of the word-level transcript payload.
type Monologue struct {
	Speaker string `json:"speaker"`
	Words   []Word `json:"words"`
}

// Word is a single transcript token. Punctuation arrives as its own
// token glued to the preceding word, e.g. {"text": ","}.
type Word struct {
	Text string `json:"text"`
}
