package agent

import "github.com/vietravel-ai/travelbot/history"

// QueryKind classifies a user turn
type QueryKind int

const (
	// QueryText is a plain text turn
	QueryText QueryKind = iota
	// QueryImage is a turn whose query was derived from an image
	QueryImage
)

// String returns the string representation of QueryKind
func (k QueryKind) String() string {
	if k == QueryImage {
		return "image"
	}
	return "text"
}

// pipelineState is the mutable record flowing through one turn.
// Each stage reads fields written by earlier stages and writes only its
// own output fields; it is created per invocation and discarded after.
type pipelineState struct {
	// written by the caller
	query        string
	imagePayload []byte
	chatHistory  []history.Turn

	// written by classify
	queryKind QueryKind

	// written by retrieve
	retrievedPassages []string

	// written by generate
	baseAnswer string

	// written by extractLocation
	extractedLocation string

	// written by enrichWeather
	weatherBlock string
	advice       string

	// written by compose
	finalAnswer string
}

// TurnInput is one user turn handed to the pipeline
type TurnInput struct {
	Query   string
	Image   []byte // optional; non-empty selects the vision path
	History []history.Turn
}

// TurnResult is what the caller reads back
type TurnResult struct {
	FinalAnswer string
	History     []history.Turn
	QueryKind   QueryKind
	Location    string // extracted place name, "" when none
}
